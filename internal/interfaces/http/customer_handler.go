package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/customers"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
)

// CustomerHandler clientes y abonos a su deuda.
type CustomerHandler struct {
	uc    *customers.CustomerUseCase
	sales *sales.SaleUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.CustomerUseCase, saleUC *sales.SaleUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, sales: saleUC}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	customer, err := h.uc.Create(c.UserContext(), customers.CustomerInput{
		Name:    in.Name,
		TaxID:   in.TaxID,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCustomerResponse(customer))
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCustomerResponse(customer))
}

// List GET /api/customers?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	p, err := page(c, 20)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, cu := range list {
		out = append(out, dto.ToCustomerResponse(cu))
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Abono a la deuda del cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del cliente"
// @Param        body  body  dto.DebtPaymentRequest  true  "amount, method"
// @Success      201   {object}  dto.DebtPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/payments [post]
func (h *CustomerHandler) Pay(c *fiber.Ctx) error {
	var in dto.DebtPaymentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.sales.CollectDebtPayment(c.UserContext(), ActorFrom(c), sales.DebtPaymentInput{
		CustomerID:    c.Params("id"),
		Amount:        in.Amount,
		Method:        in.Method,
		BankAccountID: in.BankAccountID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DebtPaymentResponse{
		Customer:    dto.ToCustomerResponse(res.Customer),
		Session:     dto.ToSessionResponse(res.Session),
		Transaction: dto.ToMoneyTransactionResponse(res.Transaction),
	})
}

// Payments GET /api/customers/:id/payments
func (h *CustomerHandler) Payments(c *fiber.Ctx) error {
	list, err := h.sales.PaymentHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMoneyTransactionResponses(list))
}

// BankAccountHandler cuentas bancarias y su saldo.
type BankAccountHandler struct {
	uc *customers.BankAccountUseCase
}

// NewBankAccountHandler construye el handler.
func NewBankAccountHandler(uc *customers.BankAccountUseCase) *BankAccountHandler {
	return &BankAccountHandler{uc: uc}
}

// Create POST /api/bank-accounts
func (h *BankAccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBankAccountRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	acc, err := h.uc.Create(c.UserContext(), customers.BankAccountInput{Name: in.Name, Bank: in.Bank, Number: in.Number})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBankAccountResponse(acc))
}

// List GET /api/bank-accounts
func (h *BankAccountHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BankAccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToBankAccountResponse(a))
	}
	return c.JSON(out)
}

// Balance GET /api/bank-accounts/:id/balance
func (h *BankAccountHandler) Balance(c *fiber.Ctx) error {
	res, err := h.uc.Balance(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ToBankAccountResponse(res.Account)
	out.Balance = &res.Balance
	return c.JSON(out)
}
