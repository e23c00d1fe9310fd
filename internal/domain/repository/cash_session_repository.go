package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// CashSessionRepository sesiones de caja, solicitudes de acceso y correcciones auditadas.
type CashSessionRepository interface {
	Create(ctx context.Context, s *entity.CashRegisterSession) error
	GetByID(ctx context.Context, id string) (*entity.CashRegisterSession, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CashRegisterSession, error)
	// GetOpen devuelve la sesión abierta (global) o nil.
	GetOpen(ctx context.Context) (*entity.CashRegisterSession, error)
	// GetOpenForUpdate igual que GetOpen pero bloqueando la fila.
	GetOpenForUpdate(ctx context.Context) (*entity.CashRegisterSession, error)
	// LockOpening serializa aperturas concurrentes dentro de la transacción.
	LockOpening(ctx context.Context) error
	Update(ctx context.Context, s *entity.CashRegisterSession) error

	CreateAccessRequest(ctx context.Context, r *entity.SessionAccessRequest) error
	GetAccessRequestForUpdate(ctx context.Context, id string) (*entity.SessionAccessRequest, error)
	// FindApprovedAccessForUpdate solicitud aprobada y sin usar para (sesión, solicitante).
	FindApprovedAccessForUpdate(ctx context.Context, sessionID, requesterID string) (*entity.SessionAccessRequest, error)
	UpdateAccessRequest(ctx context.Context, r *entity.SessionAccessRequest) error

	AppendAmendment(ctx context.Context, a *entity.SessionAmendment) error
	ListAmendments(ctx context.Context, sessionID string) ([]*entity.SessionAmendment, error)
}
