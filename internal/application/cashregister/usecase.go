package cashregister

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/cashier"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// SessionUseCase ciclo de vida de la sesión de caja: none -> open -> closed,
// con corrección auditada de sesiones cerradas.
type SessionUseCase struct {
	txRunner ledger.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
	now      func() time.Time
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(txRunner ledger.TxRunner, repos repository.Repos, log zerolog.Logger) *SessionUseCase {
	return &SessionUseCase{
		txRunner: txRunner,
		repos:    repos,
		log:      log.With().Str("component", "cashregister").Logger(),
		now:      time.Now,
	}
}

// Open abre una sesión. Solo puede haber una abierta en todo el sistema.
func (uc *SessionUseCase) Open(ctx context.Context, actor entity.Actor, openingBalance decimal.Decimal) (*entity.CashRegisterSession, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if openingBalance.IsNegative() {
		return nil, domain.Invalid("opening_balance", "no puede ser negativo")
	}
	var session *entity.CashRegisterSession
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		// Serializa aperturas concurrentes antes de leer (evita check-then-act)
		if err := r.Sessions.LockOpening(ctx); err != nil {
			return err
		}
		open, err := r.Sessions.GetOpenForUpdate(ctx)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrSessionAlreadyOpen
		}
		session = &entity.CashRegisterSession{
			ID:             uuid.New().String(),
			OpenedBy:       actor.UserID,
			OpeningBalance: openingBalance.Round(cashier.MoneyScale),
			CashSales:      decimal.Zero,
			DebtRepaid:     decimal.Zero,
			Status:         entity.SessionOpen,
			OpenedAt:       uc.now(),
		}
		session.Recompute()
		return r.Sessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", session.ID).Str("user_id", actor.UserID).
		Str("opening_balance", session.OpeningBalance.String()).Msg("sesión de caja abierta")
	return session, nil
}

// Close cierra la sesión con el conteo físico. Solo quien la abrió o un admin.
func (uc *SessionUseCase) Close(ctx context.Context, actor entity.Actor, sessionID string, actualCash decimal.Decimal) (*entity.CashRegisterSession, error) {
	if actualCash.IsNegative() {
		return nil, domain.Invalid("actual_cash", "no puede ser negativo")
	}
	var session *entity.CashRegisterSession
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		s, err := r.Sessions.GetForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("sesión de caja", sessionID)
		}
		if !s.IsOpen() {
			return domain.Conflict("la sesión %s ya está cerrada", sessionID)
		}
		if s.OpenedBy != actor.UserID && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		now := uc.now()
		actual := actualCash.Round(cashier.MoneyScale)
		s.Status = entity.SessionClosed
		s.ClosedBy = actor.UserID
		s.ClosedAt = &now
		s.ActualCash = &actual
		session = s
		return r.Sessions.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	ev := uc.log.Info().Str("session_id", session.ID).Str("user_id", actor.UserID).
		Str("expected_cash", session.ExpectedCash.String()).Str("actual_cash", session.ActualCash.String())
	if d := session.Difference(); d != nil && !d.IsZero() {
		ev = ev.Str("difference", d.String())
	}
	ev.Msg("sesión de caja cerrada")
	return session, nil
}

// Current sesión abierta o ErrNoOpenSession.
func (uc *SessionUseCase) Current(ctx context.Context) (*entity.CashRegisterSession, error) {
	s, err := uc.repos.Sessions.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNoOpenSession
	}
	return s, nil
}

// Get sesión por ID.
func (uc *SessionUseCase) Get(ctx context.Context, id string) (*entity.CashRegisterSession, error) {
	s, err := uc.repos.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("sesión de caja", id)
	}
	return s, nil
}

// Transactions movimientos de dinero asociados a la sesión.
func (uc *SessionUseCase) Transactions(ctx context.Context, id string) ([]*entity.MoneyTransaction, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}
	return uc.repos.Money.ListBySession(ctx, id)
}

// Amendments historial de correcciones de la sesión.
func (uc *SessionUseCase) Amendments(ctx context.Context, id string) ([]*entity.SessionAmendment, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}
	return uc.repos.Sessions.ListAmendments(ctx, id)
}
