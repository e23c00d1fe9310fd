package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assembly construcción de un ítem terminado a partir de componentes. Inmutable.
type Assembly struct {
	ID          string
	FinalItemID string
	Quantity    int
	UnitCost    decimal.Decimal // costo de partes por unidad terminada
	Notes       string
	UserID      string
	CreatedAt   time.Time

	Items []AssemblyItem
}

// AssemblyItem componente consumido.
type AssemblyItem struct {
	ID              string
	AssemblyID      string
	ItemID          string
	PerUnitQuantity int
	Quantity        int // consumido total = per_unit * assembly.quantity
	UnitCost        decimal.Decimal
}
