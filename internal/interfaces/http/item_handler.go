package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
)

// ItemHandler catálogo de ítems, historial y ajustes de stock.
type ItemHandler struct {
	items       *inventory.ItemUseCase
	adjustments *inventory.StockAdjustmentUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(items *inventory.ItemUseCase, adjustments *inventory.StockAdjustmentUseCase) *ItemHandler {
	return &ItemHandler{items: items, adjustments: adjustments}
}

func toItemInput(in dto.ItemRequest) inventory.ItemInput {
	return inventory.ItemInput{
		SKU:            in.SKU,
		Name:           in.Name,
		CategoryID:     in.CategoryID,
		Price:          in.Price,
		HasWarranty:    in.HasWarranty,
		WarrantyMonths: in.WarrantyMonths,
	}
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	item, err := h.items.Create(c.UserContext(), toItemInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// GetByID GET /api/items/:id
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.items.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// List GET /api/items?limit=20&offset=0
func (h *ItemHandler) List(c *fiber.Ctx) error {
	p, err := page(c, 20)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.items.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.ToItemResponse(it))
	}
	return c.JSON(out)
}

// Update PUT /api/items/:id. Solo metadatos; stock y costo cambian vía el ledger.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	item, err := h.items.Update(c.UserContext(), c.Params("id"), toItemInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Logs GET /api/items/:id/logs
func (h *ItemHandler) Logs(c *fiber.Ctx) error {
	p, err := page(c, 50)
	if err != nil {
		return respondError(c, err)
	}
	logs, err := h.items.History(c.UserContext(), c.Params("id"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemLogResponses(logs))
}

// Adjustments GET /api/items/:id/adjustments
func (h *ItemHandler) Adjustments(c *fiber.Ctx) error {
	list, err := h.adjustments.ListByItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockAdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToStockAdjustmentResponse(a))
	}
	return c.JSON(out)
}

// CreateAdjustment godoc
// @Summary      Ajuste manual de stock
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "item_id, quantity_change, reason"
// @Success      201   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *ItemHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	adj, err := h.adjustments.Create(c.UserContext(), ActorFrom(c), inventory.AdjustmentInput{
		ItemID: in.ItemID,
		Delta:  in.QuantityChange,
		Reason: in.Reason,
		Notes:  in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockAdjustmentResponse(adj))
}

// ReverseAdjustment DELETE /api/adjustments/:id. Revierte el delta y devuelve el log de la reversa.
func (h *ItemHandler) ReverseAdjustment(c *fiber.Ctx) error {
	log, err := h.adjustments.Reverse(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemLogResponse(log))
}
