package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// SaleLineRequest línea del carrito. Price vacío usa el precio del ítem.
type SaleLineRequest struct {
	ItemID        string           `json:"item_id" validate:"required"`
	Quantity      int              `json:"quantity" validate:"required,min=1,max=2147483647"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	SerialNumbers []string         `json:"serial_numbers,omitempty" validate:"omitempty,dive,required,max=100"`
}

// CreateSaleRequest body para POST /sales.
type CreateSaleRequest struct {
	Lines         []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash bank credit"`
	CustomerID    string            `json:"customer_id,omitempty" validate:"required_if=PaymentMethod credit"`
	BankAccountID string            `json:"bank_account_id,omitempty" validate:"required_if=PaymentMethod bank"`
	AmountPaid    *decimal.Decimal  `json:"amount_paid,omitempty"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// WarrantyResponse garantía de una unidad.
type WarrantyResponse struct {
	ID             string    `json:"id"`
	SaleID         string    `json:"sale_id"`
	ItemID         string    `json:"item_id"`
	CustomerID     string    `json:"customer_id,omitempty"`
	SerialNumber   string    `json:"serial_number,omitempty"`
	WarrantyMonths int       `json:"warranty_months"`
	SoldAt         time.Time `json:"sold_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	Active         bool      `json:"active"`
}

// SaleResponse venta con líneas y garantías.
type SaleResponse struct {
	ID            string             `json:"id"`
	SessionID     string             `json:"session_id"`
	UserID        string             `json:"user_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	BankAccountID string             `json:"bank_account_id,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Total         decimal.Decimal    `json:"total"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	ChangeGiven   decimal.Decimal    `json:"change_given"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
	Warranties    []WarrantyResponse `json:"warranties,omitempty"`
}

// DebtPaymentRequest body para POST /customers/:id/payments.
type DebtPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method" validate:"required,oneof=cash bank"`
	BankAccountID string          `json:"bank_account_id,omitempty" validate:"required_if=Method bank"`
}

// DebtPaymentResponse estado tras el abono.
type DebtPaymentResponse struct {
	Customer    CustomerResponse         `json:"customer"`
	Session     SessionResponse          `json:"session"`
	Transaction MoneyTransactionResponse `json:"transaction"`
}

// ToSaleResponse mapea la entidad.
func ToSaleResponse(s *entity.Sale, now time.Time) SaleResponse {
	out := SaleResponse{
		ID:            s.ID,
		SessionID:     s.SessionID,
		UserID:        s.UserID,
		CustomerID:    s.CustomerID,
		PaymentMethod: s.PaymentMethod,
		BankAccountID: s.BankAccountID,
		Subtotal:      s.Subtotal,
		Total:         s.Total,
		AmountPaid:    s.AmountPaid,
		ChangeGiven:   s.ChangeGiven,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		Items:         make([]SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, SaleItemResponse{
			ID:       it.ID,
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal,
		})
	}
	for i := range s.Warranties {
		out.Warranties = append(out.Warranties, ToWarrantyResponse(&s.Warranties[i], now))
	}
	return out
}

// ToWarrantyResponse mapea la entidad marcando si sigue vigente en now.
func ToWarrantyResponse(w *entity.Warranty, now time.Time) WarrantyResponse {
	return WarrantyResponse{
		ID:             w.ID,
		SaleID:         w.SaleID,
		ItemID:         w.ItemID,
		CustomerID:     w.CustomerID,
		SerialNumber:   w.SerialNumber,
		WarrantyMonths: w.WarrantyMonths,
		SoldAt:         w.SoldAt,
		ExpiresAt:      w.ExpiresAt,
		Active:         w.ActiveAt(now),
	}
}
