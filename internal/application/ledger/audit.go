package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// AuditWriter agrega registros inmutables de ItemLog y MoneyTransaction.
// Debe usarse con los repos de la misma transacción que la mutación auditada.
type AuditWriter struct {
	now func() time.Time
}

// NewAuditWriter construye el escritor; now permite fijar el reloj en tests.
func NewAuditWriter(now func() time.Time) *AuditWriter {
	if now == nil {
		now = time.Now
	}
	return &AuditWriter{now: now}
}

// ItemChange datos de un ItemLog.
type ItemChange struct {
	ItemID         string
	Type           string
	QuantityChange int
	OldStock       int
	NewStock       int
	Description    string
	UserID         string
	Reference      entity.Reference
}

// LogItemChange agrega un ItemLog.
func (w *AuditWriter) LogItemChange(ctx context.Context, r repository.Repos, c ItemChange) (*entity.ItemLog, error) {
	log := &entity.ItemLog{
		ID:             uuid.New().String(),
		ItemID:         c.ItemID,
		Type:           c.Type,
		QuantityChange: c.QuantityChange,
		OldStock:       c.OldStock,
		NewStock:       c.NewStock,
		Description:    c.Description,
		Reference:      c.Reference,
		UserID:         c.UserID,
		CreatedAt:      w.now(),
	}
	if err := r.ItemLogs.Append(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Money datos de un MoneyTransaction.
type Money struct {
	Direction   string
	Amount      decimal.Decimal
	SourceType  string
	SourceID    string
	SessionID   string
	Category    string
	Description string
	UserID      string
	Reference   entity.Reference
}

// LogMoneyTransaction agrega un MoneyTransaction.
func (w *AuditWriter) LogMoneyTransaction(ctx context.Context, r repository.Repos, m Money) (*entity.MoneyTransaction, error) {
	tx := &entity.MoneyTransaction{
		ID:                    uuid.New().String(),
		Type:                  m.Direction,
		Amount:                m.Amount,
		SourceType:            m.SourceType,
		SourceID:              m.SourceID,
		CashRegisterSessionID: m.SessionID,
		Category:              m.Category,
		Description:           m.Description,
		Reference:             m.Reference,
		UserID:                m.UserID,
		CreatedAt:             w.now(),
	}
	if err := r.Money.Append(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
