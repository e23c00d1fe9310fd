package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

// SaleHandler ventas, comprobantes y consulta de garantías.
type SaleHandler struct {
	uc       *sales.SaleUseCase
	receipts *sales.ReceiptUseCase
	now      func() time.Time
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, receipts *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipts: receipts, now: time.Now}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock, crea garantías y mueve dinero en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Carrito y pago"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	input := sales.SaleInput{
		PaymentMethod: in.PaymentMethod,
		CustomerID:    in.CustomerID,
		BankAccountID: in.BankAccountID,
		AmountPaid:    in.AmountPaid,
		Lines:         make([]sales.CartLine, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		line := sales.CartLine{ItemID: l.ItemID, Quantity: l.Quantity, SerialNumbers: l.SerialNumbers}
		if l.Price != nil {
			line.Price = *l.Price
		}
		input.Lines = append(input.Lines, line)
	}
	sale, err := h.uc.RecordSale(c.UserContext(), ActorFrom(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale, h.now()))
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale, h.now()))
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	doc, filename, err := h.receipts.SaleReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}

// Warranties GET /api/warranties?serial=SN-1
func (h *SaleHandler) Warranties(c *fiber.Ctx) error {
	serial := c.Query("serial")
	if serial == "" {
		return respondError(c, domain.Invalid("serial", "requerido"))
	}
	list, err := h.uc.FindWarranties(c.UserContext(), serial)
	if err != nil {
		return respondError(c, err)
	}
	now := h.now()
	out := make([]dto.WarrantyResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.ToWarrantyResponse(w, now))
	}
	return c.JSON(out)
}
