package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var (
	_ repository.ItemLogRepository          = (*ItemLogRepo)(nil)
	_ repository.MoneyTransactionRepository = (*MoneyTransactionRepo)(nil)
)

func scanReference(kind, id string) (entity.Reference, error) {
	k, err := entity.ParseReferenceKind(kind)
	if err != nil {
		return entity.Reference{}, err
	}
	return entity.Ref(k, id), nil
}

// ItemLogRepo tabla item_logs (solo INSERT y SELECT).
type ItemLogRepo struct {
	q Querier
}

// NewItemLogRepository construye el adaptador.
func NewItemLogRepository(q Querier) *ItemLogRepo {
	return &ItemLogRepo{q: q}
}

const itemLogColumns = `id, item_id, type, quantity_change, old_stock, new_stock, description, reference_type, reference_id, user_id, created_at`

// Append inserta un registro de auditoría de stock.
func (r *ItemLogRepo) Append(ctx context.Context, l *entity.ItemLog) error {
	_, err := r.q.Exec(ctx, `INSERT INTO item_logs (`+itemLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.ItemID, l.Type, l.QuantityChange, l.OldStock, l.NewStock, l.Description,
		l.Reference.Kind.String(), l.Reference.ID, l.UserID, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item_log: %w", err)
	}
	return nil
}

func collectItemLogs(rows pgx.Rows) ([]*entity.ItemLog, error) {
	defer rows.Close()
	var list []*entity.ItemLog
	for rows.Next() {
		var l entity.ItemLog
		var kind, refID string
		if err := rows.Scan(&l.ID, &l.ItemID, &l.Type, &l.QuantityChange, &l.OldStock, &l.NewStock,
			&l.Description, &kind, &refID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item_log: %w", err)
		}
		ref, err := scanReference(kind, refID)
		if err != nil {
			return nil, err
		}
		l.Reference = ref
		list = append(list, &l)
	}
	return list, mapInvalidID(rows.Err())
}

// ListByItem historial de un ítem, más recientes primero.
func (r *ItemLogRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.ItemLog, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemLogColumns+` FROM item_logs
		WHERE item_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list item_logs: %w", mapInvalidID(err))
	}
	return collectItemLogs(rows)
}

// ListByReference registros generados por una misma operación.
func (r *ItemLogRepo) ListByReference(ctx context.Context, ref entity.Reference) ([]*entity.ItemLog, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemLogColumns+` FROM item_logs
		WHERE reference_type = $1 AND reference_id = $2 ORDER BY created_at, id`, ref.Kind.String(), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("list item_logs by reference: %w", mapInvalidID(err))
	}
	return collectItemLogs(rows)
}

// MoneyTransactionRepo tabla money_transactions (solo INSERT y SELECT).
type MoneyTransactionRepo struct {
	q Querier
}

// NewMoneyTransactionRepository construye el adaptador.
func NewMoneyTransactionRepository(q Querier) *MoneyTransactionRepo {
	return &MoneyTransactionRepo{q: q}
}

const moneyColumns = `id, type, amount, source_type, source_id, cash_register_session_id, category, description, reference_type, reference_id, user_id, created_at`

// Append inserta un movimiento de dinero.
func (r *MoneyTransactionRepo) Append(ctx context.Context, m *entity.MoneyTransaction) error {
	_, err := r.q.Exec(ctx, `INSERT INTO money_transactions (`+moneyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.Type, m.Amount, m.SourceType, m.SourceID, nullable(m.CashRegisterSessionID), m.Category,
		m.Description, m.Reference.Kind.String(), m.Reference.ID, m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert money_transaction: %w", err)
	}
	return nil
}

func (r *MoneyTransactionRepo) list(ctx context.Context, where string, args ...any) ([]*entity.MoneyTransaction, error) {
	rows, err := r.q.Query(ctx, `SELECT `+moneyColumns+` FROM money_transactions WHERE `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list money_transactions: %w", mapInvalidID(err))
	}
	defer rows.Close()
	var list []*entity.MoneyTransaction
	for rows.Next() {
		var m entity.MoneyTransaction
		var sessionID *string
		var kind, refID string
		if err := rows.Scan(&m.ID, &m.Type, &m.Amount, &m.SourceType, &m.SourceID, &sessionID, &m.Category,
			&m.Description, &kind, &refID, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan money_transaction: %w", err)
		}
		m.CashRegisterSessionID = deref(sessionID)
		if m.Reference, err = scanReference(kind, refID); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, mapInvalidID(rows.Err())
}

// ListBySession movimientos asociados a una sesión de caja.
func (r *MoneyTransactionRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.MoneyTransaction, error) {
	return r.list(ctx, `cash_register_session_id = $1`, sessionID)
}

// ListByReference movimientos generados por una operación.
func (r *MoneyTransactionRepo) ListByReference(ctx context.Context, ref entity.Reference) ([]*entity.MoneyTransaction, error) {
	return r.list(ctx, `reference_type = $1 AND reference_id = $2`, ref.Kind.String(), ref.ID)
}

// SourceBalance Σ in - Σ out del origen.
func (r *MoneyTransactionRepo) SourceBalance(ctx context.Context, sourceType, sourceID string) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'in' THEN amount ELSE -amount END), 0)
		FROM money_transactions WHERE source_type = $1 AND source_id = $2`, sourceType, sourceID).Scan(&bal)
	if err != nil {
		return decimal.Zero, fmt.Errorf("source balance: %w", mapInvalidID(err))
	}
	return bal, nil
}
