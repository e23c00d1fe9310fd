package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer cliente. DebtBalance sube con ventas a crédito y baja con abonos (>= 0).
type Customer struct {
	ID          string
	Name        string
	TaxID       string
	Email       string
	Phone       string
	Address     string
	DebtBalance decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
