package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// openingLockKey clave de pg_advisory_xact_lock para aperturas de caja.
const openingLockKey int64 = 0x706f735f6f70656e

// CashSessionRepo sesiones de caja, solicitudes de acceso y correcciones.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador.
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

const sessionColumns = `id, opened_by, closed_by, opening_balance, cash_sales, debt_repaid, expected_cash, actual_cash, status, opened_at, closed_at`

func scanSession(row pgx.Row) (*entity.CashRegisterSession, error) {
	var s entity.CashRegisterSession
	var closedBy *string
	if err := row.Scan(&s.ID, &s.OpenedBy, &closedBy, &s.OpeningBalance, &s.CashSales, &s.DebtRepaid,
		&s.ExpectedCash, &s.ActualCash, &s.Status, &s.OpenedAt, &s.ClosedAt); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan cash session: %w", err)
	}
	s.ClosedBy = deref(closedBy)
	return &s, nil
}

// Create inserta la sesión. Una segunda sesión abierta viola cash_register_sessions_one_open.
func (r *CashSessionRepo) Create(ctx context.Context, s *entity.CashRegisterSession) error {
	_, err := r.q.Exec(ctx, `INSERT INTO cash_register_sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.OpenedBy, nullable(s.ClosedBy), s.OpeningBalance, s.CashSales, s.DebtRepaid,
		s.ExpectedCash, s.ActualCash, s.Status, s.OpenedAt, s.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("insert cash session: %w", err)
	}
	return nil
}

// GetByID sesión por ID.
func (r *CashSessionRepo) GetByID(ctx context.Context, id string) (*entity.CashRegisterSession, error) {
	return scanSession(r.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_register_sessions WHERE id = $1`, id))
}

// GetForUpdate sesión bloqueada.
func (r *CashSessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashRegisterSession, error) {
	return scanSession(r.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_register_sessions WHERE id = $1 FOR UPDATE`, id))
}

// GetOpen la sesión abierta o nil.
func (r *CashSessionRepo) GetOpen(ctx context.Context) (*entity.CashRegisterSession, error) {
	return scanSession(r.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_register_sessions WHERE status = 'open'`))
}

// GetOpenForUpdate la sesión abierta bloqueada.
func (r *CashSessionRepo) GetOpenForUpdate(ctx context.Context) (*entity.CashRegisterSession, error) {
	return scanSession(r.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_register_sessions WHERE status = 'open' FOR UPDATE`))
}

// LockOpening toma un advisory lock de transacción para serializar aperturas.
func (r *CashSessionRepo) LockOpening(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, openingLockKey); err != nil {
		return fmt.Errorf("lock opening: %w", err)
	}
	return nil
}

// Update guarda acumulados, cierre y estado.
func (r *CashSessionRepo) Update(ctx context.Context, s *entity.CashRegisterSession) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE cash_register_sessions SET closed_by = $2, opening_balance = $3, cash_sales = $4,
			debt_repaid = $5, expected_cash = $6, actual_cash = $7, status = $8, closed_at = $9
		WHERE id = $1`,
		s.ID, nullable(s.ClosedBy), s.OpeningBalance, s.CashSales, s.DebtRepaid, s.ExpectedCash,
		s.ActualCash, s.Status, s.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("update cash session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("sesión de caja", s.ID)
	}
	return nil
}

const accessColumns = `id, session_id, requested_by, reason, status, resolved_by, resolved_at, created_at`

func scanAccessRequest(row pgx.Row) (*entity.SessionAccessRequest, error) {
	var a entity.SessionAccessRequest
	var resolvedBy *string
	if err := row.Scan(&a.ID, &a.SessionID, &a.RequestedBy, &a.Reason, &a.Status, &resolvedBy, &a.ResolvedAt, &a.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan access request: %w", err)
	}
	a.ResolvedBy = deref(resolvedBy)
	return &a, nil
}

// CreateAccessRequest inserta la solicitud.
func (r *CashSessionRepo) CreateAccessRequest(ctx context.Context, a *entity.SessionAccessRequest) error {
	_, err := r.q.Exec(ctx, `INSERT INTO session_access_requests (`+accessColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.SessionID, a.RequestedBy, a.Reason, a.Status, nullable(a.ResolvedBy), a.ResolvedAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert access request: %w", err)
	}
	return nil
}

// GetAccessRequestForUpdate solicitud bloqueada.
func (r *CashSessionRepo) GetAccessRequestForUpdate(ctx context.Context, id string) (*entity.SessionAccessRequest, error) {
	return scanAccessRequest(r.q.QueryRow(ctx, `SELECT `+accessColumns+` FROM session_access_requests WHERE id = $1 FOR UPDATE`, id))
}

// FindApprovedAccessForUpdate la solicitud aprobada más antigua sin usar.
func (r *CashSessionRepo) FindApprovedAccessForUpdate(ctx context.Context, sessionID, requesterID string) (*entity.SessionAccessRequest, error) {
	return scanAccessRequest(r.q.QueryRow(ctx, `SELECT `+accessColumns+` FROM session_access_requests
		WHERE session_id = $1 AND requested_by = $2 AND status = 'approved'
		ORDER BY created_at, id LIMIT 1 FOR UPDATE`, sessionID, requesterID))
}

// UpdateAccessRequest guarda estado y resolución.
func (r *CashSessionRepo) UpdateAccessRequest(ctx context.Context, a *entity.SessionAccessRequest) error {
	_, err := r.q.Exec(ctx, `UPDATE session_access_requests SET status = $2, resolved_by = $3, resolved_at = $4 WHERE id = $1`,
		a.ID, a.Status, nullable(a.ResolvedBy), a.ResolvedAt)
	if err != nil {
		return fmt.Errorf("update access request: %w", err)
	}
	return nil
}

// AppendAmendment inserta la corrección con valores anteriores y nuevos.
func (r *CashSessionRepo) AppendAmendment(ctx context.Context, a *entity.SessionAmendment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO session_amendments (id, session_id, access_request_id,
			old_opening_balance, old_cash_sales, old_debt_repaid, old_actual_cash,
			new_opening_balance, new_cash_sales, new_debt_repaid, new_actual_cash,
			reason, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		a.ID, a.SessionID, nullable(a.AccessRequestID),
		a.Old.OpeningBalance, a.Old.CashSales, a.Old.DebtRepaid, a.Old.ActualCash,
		a.New.OpeningBalance, a.New.CashSales, a.New.DebtRepaid, a.New.ActualCash,
		a.Reason, a.ActorID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session amendment: %w", err)
	}
	return nil
}

// ListAmendments correcciones de una sesión en orden cronológico.
func (r *CashSessionRepo) ListAmendments(ctx context.Context, sessionID string) ([]*entity.SessionAmendment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, session_id, access_request_id,
			old_opening_balance, old_cash_sales, old_debt_repaid, old_actual_cash,
			new_opening_balance, new_cash_sales, new_debt_repaid, new_actual_cash,
			reason, actor_id, created_at
		FROM session_amendments WHERE session_id = $1 ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session amendments: %w", mapInvalidID(err))
	}
	defer rows.Close()
	var list []*entity.SessionAmendment
	for rows.Next() {
		var a entity.SessionAmendment
		var reqID *string
		if err := rows.Scan(&a.ID, &a.SessionID, &reqID,
			&a.Old.OpeningBalance, &a.Old.CashSales, &a.Old.DebtRepaid, &a.Old.ActualCash,
			&a.New.OpeningBalance, &a.New.CashSales, &a.New.DebtRepaid, &a.New.ActualCash,
			&a.Reason, &a.ActorID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session amendment: %w", err)
		}
		a.AccessRequestID = deref(reqID)
		list = append(list, &a)
	}
	return list, mapInvalidID(rows.Err())
}
