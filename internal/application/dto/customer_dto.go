package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// CreateCustomerRequest body para POST /customers.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	TaxID   string `json:"tax_id,omitempty" validate:"max=50"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Address string `json:"address,omitempty" validate:"max=300"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TaxID       string          `json:"tax_id,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	DebtBalance decimal.Decimal `json:"debt_balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateBankAccountRequest body para POST /bank-accounts.
type CreateBankAccountRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Bank   string `json:"bank,omitempty" validate:"max=100"`
	Number string `json:"number,omitempty" validate:"max=50"`
}

// BankAccountResponse cuenta bancaria.
type BankAccountResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Bank      string           `json:"bank,omitempty"`
	Number    string           `json:"number,omitempty"`
	Active    bool             `json:"active"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToCustomerResponse mapea la entidad.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		TaxID:       c.TaxID,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		DebtBalance: c.DebtBalance,
		CreatedAt:   c.CreatedAt,
	}
}

// ToBankAccountResponse mapea la entidad.
func ToBankAccountResponse(a *entity.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bank:      a.Bank,
		Number:    a.Number,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}
