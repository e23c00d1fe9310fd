package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// MoneyTransactionRepository append-only.
type MoneyTransactionRepository interface {
	Append(ctx context.Context, tx *entity.MoneyTransaction) error
	ListBySession(ctx context.Context, sessionID string) ([]*entity.MoneyTransaction, error)
	ListByReference(ctx context.Context, ref entity.Reference) ([]*entity.MoneyTransaction, error)
	// SourceBalance Σ in - Σ out de un origen (caja o banco).
	SourceBalance(ctx context.Context, sourceType, sourceID string) (decimal.Decimal, error)
}
