// Package ledger contiene las primitivas atómicas sobre stock y saldos y el escritor
// de auditoría. Ninguna primitiva escribe auditoría: eso queda en AuditWriter, y ambos
// se invocan dentro de la misma transacción del caller.
package ledger

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
