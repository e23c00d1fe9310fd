package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/assembly"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
)

// AssemblyHandler ensamble de ítems compuestos.
type AssemblyHandler struct {
	uc *assembly.AssemblyUseCase
}

// NewAssemblyHandler construye el handler.
func NewAssemblyHandler(uc *assembly.AssemblyUseCase) *AssemblyHandler {
	return &AssemblyHandler{uc: uc}
}

// Create POST /api/assemblies
func (h *AssemblyHandler) Create(c *fiber.Ctx) error {
	var in dto.AssemblyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	input := assembly.AssembleInput{FinalItemID: in.FinalItemID, Quantity: in.Quantity, Notes: in.Notes}
	for _, p := range in.Parts {
		input.Parts = append(input.Parts, assembly.PartInput{ItemID: p.ItemID, PerUnitQuantity: p.PerUnitQuantity})
	}
	a, err := h.uc.Assemble(c.UserContext(), ActorFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAssemblyResponse(a))
}

// GetByID GET /api/assemblies/:id
func (h *AssemblyHandler) GetByID(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAssemblyResponse(a))
}
