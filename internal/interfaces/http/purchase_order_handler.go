package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/purchasing"
	domaininv "github.com/jhoicas/pos-ledger-api/internal/domain/inventory"
)

// PurchaseOrderHandler órdenes de compra y su recepción.
type PurchaseOrderHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

func toOrderInput(in dto.PurchaseOrderRequest) purchasing.OrderInput {
	out := purchasing.OrderInput{Supplier: in.Supplier, Notes: in.Notes}
	for _, l := range in.Lines {
		out.Lines = append(out.Lines, purchasing.LineInput{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return out
}

// Create POST /api/purchase-orders
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.PurchaseOrderRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	po, err := h.uc.Create(c.UserContext(), ActorFrom(c), toOrderInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPurchaseOrderResponse(po))
}

// GetByID GET /api/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseOrderResponse(po))
}

// Update PUT /api/purchase-orders/:id. Solo en borrador.
func (h *PurchaseOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.PurchaseOrderRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	po, err := h.uc.Update(c.UserContext(), c.Params("id"), toOrderInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseOrderResponse(po))
}

// Delete DELETE /api/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve POST /api/purchase-orders/:id/approve (admin)
func (h *PurchaseOrderHandler) Approve(c *fiber.Ctx) error {
	po, err := h.uc.Approve(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseOrderResponse(po))
}

// Receive godoc
// @Summary      Recibir mercancía de una orden de compra
// @Description  received_quantity es acumulado por línea; reenviar el mismo valor no suma stock.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID de la orden"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "Cantidades acumuladas"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	lines := make([]domaininv.ReceiptLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, domaininv.ReceiptLine{PurchaseOrderItemID: l.PurchaseOrderItemID, ReceivedCumulative: l.ReceivedQuantity})
	}
	po, err := h.uc.Receive(c.UserContext(), ActorFrom(c), c.Params("id"), lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseOrderResponse(po))
}
