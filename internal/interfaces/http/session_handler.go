package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/cashregister"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// SessionHandler sesiones de caja: apertura, cierre y correcciones auditadas.
type SessionHandler struct {
	uc *cashregister.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *cashregister.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir sesión de caja
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "opening_balance"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/open [post]
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.Open(c.UserContext(), ActorFrom(c), in.OpeningBalance)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSessionResponse(s))
}

// Current GET /api/sessions/current
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	s, err := h.uc.Current(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSessionResponse(s))
}

// GetByID GET /api/sessions/:id
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSessionResponse(s))
}

// Close godoc
// @Summary      Cerrar sesión de caja
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "actual_cash"
// @Success      200   {object}  dto.SessionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/close [post]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	s, err := h.uc.Close(c.UserContext(), ActorFrom(c), c.Params("id"), in.ActualCash)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSessionResponse(s))
}

// Transactions GET /api/sessions/:id/transactions
func (h *SessionHandler) Transactions(c *fiber.Ctx) error {
	list, err := h.uc.Transactions(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMoneyTransactionResponses(list))
}

// Amendments GET /api/sessions/:id/amendments
func (h *SessionHandler) Amendments(c *fiber.Ctx) error {
	list, err := h.uc.Amendments(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AmendmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAmendmentResponse(a))
	}
	return c.JSON(out)
}

// RequestAccess POST /api/sessions/:id/access-requests. Pide permiso para corregir una sesión cerrada.
func (h *SessionHandler) RequestAccess(c *fiber.Ctx) error {
	var in dto.AccessRequestCreate
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	req, err := h.uc.RequestAccess(c.UserContext(), ActorFrom(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAccessRequestResponse(req))
}

// ResolveAccess POST /api/access-requests/:id/resolve (admin)
func (h *SessionHandler) ResolveAccess(c *fiber.Ctx) error {
	var in dto.AccessRequestResolve
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	req, err := h.uc.ResolveAccess(c.UserContext(), ActorFrom(c), c.Params("id"), in.Approve)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAccessRequestResponse(req))
}

// Amend POST /api/sessions/:id/amend
func (h *SessionHandler) Amend(c *fiber.Ctx) error {
	var in dto.AmendSessionRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	totals := entity.SessionTotals{
		OpeningBalance: in.OpeningBalance,
		CashSales:      in.CashSales,
		DebtRepaid:     in.DebtRepaid,
		ActualCash:     in.ActualCash,
	}
	a, err := h.uc.AmendClosedSession(c.UserContext(), ActorFrom(c), c.Params("id"), totals, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAmendmentResponse(a))
}
