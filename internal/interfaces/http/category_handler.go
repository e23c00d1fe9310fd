package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// CategoryHandler categorías de ítems.
type CategoryHandler struct {
	uc *inventory.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *inventory.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	cat, err := h.uc.Create(c.UserContext(), inventory.CategoryInput{Name: in.Name, Code: in.Code, ParentID: in.ParentID})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCategoryResponses([]*entity.Category{cat})[0])
}

// List GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCategoryResponses(list))
}
