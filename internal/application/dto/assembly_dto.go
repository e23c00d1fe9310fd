package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// AssemblyPartRequest componente por unidad terminada.
type AssemblyPartRequest struct {
	ItemID          string `json:"item_id" validate:"required"`
	PerUnitQuantity int    `json:"per_unit_quantity" validate:"required,min=1,max=2147483647"`
}

// AssemblyRequest body para POST /assemblies.
type AssemblyRequest struct {
	FinalItemID string                `json:"final_item_id" validate:"required"`
	Quantity    int                   `json:"quantity" validate:"required,min=1,max=2147483647"`
	Parts       []AssemblyPartRequest `json:"parts" validate:"required,min=1,dive"`
	Notes       string                `json:"notes,omitempty" validate:"max=500"`
}

// AssemblyItemResponse componente consumido.
type AssemblyItemResponse struct {
	ItemID          string          `json:"item_id"`
	PerUnitQuantity int             `json:"per_unit_quantity"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// AssemblyResponse ensamble registrado.
type AssemblyResponse struct {
	ID          string                 `json:"id"`
	FinalItemID string                 `json:"final_item_id"`
	Quantity    int                    `json:"quantity"`
	UnitCost    decimal.Decimal        `json:"unit_cost"`
	Notes       string                 `json:"notes,omitempty"`
	UserID      string                 `json:"user_id"`
	CreatedAt   time.Time              `json:"created_at"`
	Items       []AssemblyItemResponse `json:"items"`
}

// ToAssemblyResponse mapea la entidad.
func ToAssemblyResponse(a *entity.Assembly) AssemblyResponse {
	out := AssemblyResponse{
		ID:          a.ID,
		FinalItemID: a.FinalItemID,
		Quantity:    a.Quantity,
		UnitCost:    a.UnitCost,
		Notes:       a.Notes,
		UserID:      a.UserID,
		CreatedAt:   a.CreatedAt,
		Items:       make([]AssemblyItemResponse, 0, len(a.Items)),
	}
	for _, it := range a.Items {
		out.Items = append(out.Items, AssemblyItemResponse{
			ItemID:          it.ItemID,
			PerUnitQuantity: it.PerUnitQuantity,
			Quantity:        it.Quantity,
			UnitCost:        it.UnitCost,
		})
	}
	return out
}
