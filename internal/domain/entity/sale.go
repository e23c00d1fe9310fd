package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentCash   = "cash"
	PaymentBank   = "bank"
	PaymentCredit = "credit"
)

// Estados de venta.
const (
	SaleCompleted = "completed"
	SaleRefunded  = "refunded"
	SaleVoided    = "voided"
)

// Sale venta registrada en una sesión de caja. Inmutable salvo estado y datos de devolución.
type Sale struct {
	ID                  string
	CustomerID          string // opcional salvo en crédito
	UserID              string
	SessionID           string
	PaymentMethod       string
	BankAccountID       string // solo en pago bank
	Subtotal            decimal.Decimal
	Total               decimal.Decimal
	AmountPaid          decimal.Decimal
	ChangeGiven         decimal.Decimal
	Status              string
	ParentSaleID        string // devoluciones
	RefundSource        string
	RefundBankAccountID string
	CreatedAt           time.Time

	Items      []SaleItem
	Warranties []Warranty
}

// SaleItem línea de venta.
type SaleItem struct {
	ID       string
	SaleID   string
	ItemID   string
	Quantity int
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}
