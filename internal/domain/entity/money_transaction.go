package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección del movimiento de dinero.
const (
	MoneyIn  = "in"
	MoneyOut = "out"
)

// Origen del dinero.
const (
	SourceCashRegister = "cash_register"
	SourceBankAccount  = "bank_account"
)

// Categorías de MoneyTransaction.
const (
	MoneyCategorySale        = "sale"
	MoneyCategoryRefund      = "refund"
	MoneyCategoryExpense     = "expense"
	MoneyCategoryDeposit     = "deposit"
	MoneyCategoryDebtPayment = "debt_payment"
)

// MoneyTransaction registro inmutable de dinero que entra o sale de caja o banco.
type MoneyTransaction struct {
	ID                    string
	Type                  string // in | out
	Amount                decimal.Decimal
	SourceType            string // cash_register | bank_account
	SourceID              string
	CashRegisterSessionID string // opcional
	Category              string
	Description           string
	Reference             Reference
	UserID                string
	CreatedAt             time.Time
}
