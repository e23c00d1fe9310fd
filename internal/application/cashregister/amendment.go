package cashregister

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/cashier"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// RequestAccess pide permiso para corregir una sesión cerrada.
func (uc *SessionUseCase) RequestAccess(ctx context.Context, actor entity.Actor, sessionID, reason string) (*entity.SessionAccessRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.Invalid("reason", "requerido")
	}
	var req *entity.SessionAccessRequest
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		s, err := r.Sessions.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("sesión de caja", sessionID)
		}
		if s.IsOpen() {
			return domain.Conflict("la sesión %s sigue abierta", sessionID)
		}
		req = &entity.SessionAccessRequest{
			ID:          uuid.New().String(),
			SessionID:   sessionID,
			RequestedBy: actor.UserID,
			Reason:      reason,
			Status:      entity.AccessPending,
			CreatedAt:   uc.now(),
		}
		return r.Sessions.CreateAccessRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ResolveAccess aprueba o rechaza una solicitud pendiente. Solo admin.
func (uc *SessionUseCase) ResolveAccess(ctx context.Context, actor entity.Actor, requestID string, approve bool) (*entity.SessionAccessRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var req *entity.SessionAccessRequest
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		ar, err := r.Sessions.GetAccessRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if ar == nil {
			return domain.NotFound("solicitud de acceso", requestID)
		}
		if ar.Status != entity.AccessPending {
			return domain.Conflict("la solicitud %s ya fue resuelta (%s)", requestID, ar.Status)
		}
		now := uc.now()
		ar.Status = entity.AccessRejected
		if approve {
			ar.Status = entity.AccessApproved
		}
		ar.ResolvedBy = actor.UserID
		ar.ResolvedAt = &now
		req = ar
		return r.Sessions.UpdateAccessRequest(ctx, ar)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("request_id", req.ID).Str("session_id", req.SessionID).
		Str("status", req.Status).Msg("solicitud de acceso resuelta")
	return req, nil
}

// AmendClosedSession corrige los totales de una sesión cerrada. Requiere admin o una
// solicitud aprobada para (sesión, solicitante), que queda consumida. Siempre deja un
// SessionAmendment con valores anteriores y nuevos.
func (uc *SessionUseCase) AmendClosedSession(ctx context.Context, actor entity.Actor, sessionID string, totals entity.SessionTotals, reason string) (*entity.SessionAmendment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.Invalid("reason", "requerido")
	}
	var amendment *entity.SessionAmendment
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		s, err := r.Sessions.GetForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("sesión de caja", sessionID)
		}
		if s.IsOpen() {
			return domain.Conflict("solo se corrigen sesiones cerradas")
		}
		var access *entity.SessionAccessRequest
		if !actor.IsAdmin() {
			access, err = r.Sessions.FindApprovedAccessForUpdate(ctx, sessionID, actor.UserID)
			if err != nil {
				return err
			}
			if access == nil {
				return domain.ErrForbidden
			}
		}
		old := s.Totals()
		if err := cashier.ApplyTotals(s, roundTotals(totals)); err != nil {
			return err
		}
		if err := r.Sessions.Update(ctx, s); err != nil {
			return err
		}
		amendment = &entity.SessionAmendment{
			ID:        uuid.New().String(),
			SessionID: s.ID,
			Old:       old,
			New:       s.Totals(),
			Reason:    reason,
			ActorID:   actor.UserID,
			CreatedAt: uc.now(),
		}
		if access != nil {
			amendment.AccessRequestID = access.ID
			access.Status = entity.AccessUsed
			if err := r.Sessions.UpdateAccessRequest(ctx, access); err != nil {
				return err
			}
		}
		return r.Sessions.AppendAmendment(ctx, amendment)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", sessionID).Str("user_id", actor.UserID).
		Str("old_expected", amendment.Old.OpeningBalance.Add(amendment.Old.CashSales).Add(amendment.Old.DebtRepaid).String()).
		Str("new_actual", amendment.New.ActualCash.String()).
		Msg("sesión de caja corregida")
	return amendment, nil
}

func roundTotals(t entity.SessionTotals) entity.SessionTotals {
	return entity.SessionTotals{
		OpeningBalance: t.OpeningBalance.Round(cashier.MoneyScale),
		CashSales:      t.CashSales.Round(cashier.MoneyScale),
		DebtRepaid:     t.DebtRepaid.Round(cashier.MoneyScale),
		ActualCash:     t.ActualCash.Round(cashier.MoneyScale),
	}
}
