package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// AssemblyPart componente por unidad terminada.
type AssemblyPart struct {
	Item            entity.Item
	PerUnitQuantity int
}

// PartConsumption consumo planeado de un componente.
type PartConsumption struct {
	Item     entity.Item
	PerUnit  int
	Quantity int
	OldStock int
	NewStock int
}

// AssemblyPlan resultado puro de un ensamble.
type AssemblyPlan struct {
	Parts          []PartConsumption
	TotalPartsCost decimal.Decimal // costo de partes por unidad terminada
	FinalOldStock  int
	FinalNewStock  int
	FinalOldCost   decimal.Decimal
	FinalNewCost   decimal.Decimal
}

// PlanAssembly verifica stock de todas las partes antes de mutar nada y calcula el
// consumo y el nuevo costo del ítem terminado.
func PlanAssembly(final entity.Item, quantity int, parts []AssemblyPart) (AssemblyPlan, error) {
	var plan AssemblyPlan
	if !ValidQuantity(quantity) {
		return AssemblyPlan{}, domain.Invalid("quantity", "cantidad fuera de rango")
	}
	if final.Stock > MaxStock-quantity {
		return AssemblyPlan{}, domain.Invalid("quantity", "el stock del terminado excede el máximo")
	}
	required := make([]int, len(parts))
	for i, p := range parts {
		units, ok := Units(p.PerUnitQuantity, quantity)
		if !ok {
			return AssemblyPlan{}, domain.Invalid("parts.per_unit_quantity",
				fmt.Sprintf("%s: consumo fuera de rango", p.Item.ID))
		}
		required[i] = units
	}
	for i, p := range parts {
		if p.Item.Stock < required[i] {
			return AssemblyPlan{}, &domain.InsufficientStockError{
				ItemID:    p.Item.ID,
				ItemName:  p.Item.Name,
				Required:  required[i],
				Available: p.Item.Stock,
			}
		}
	}
	plan.TotalPartsCost = decimal.Zero
	for i, p := range parts {
		plan.Parts = append(plan.Parts, PartConsumption{
			Item:     p.Item,
			PerUnit:  p.PerUnitQuantity,
			Quantity: required[i],
			OldStock: p.Item.Stock,
			NewStock: p.Item.Stock - required[i],
		})
		plan.TotalPartsCost = plan.TotalPartsCost.Add(p.Item.Cost.Mul(decimal.NewFromInt(int64(p.PerUnitQuantity))))
	}
	plan.FinalOldStock = final.Stock
	plan.FinalNewStock = final.Stock + quantity
	plan.FinalOldCost = final.Cost
	plan.FinalNewCost = final.Cost
	if plan.TotalPartsCost.IsPositive() {
		plan.FinalNewCost = plan.TotalPartsCost
	}
	return plan, nil
}

// Describe texto de auditoría con las partes consumidas.
func (p AssemblyPlan) Describe(quantity int, finalName string) string {
	parts := make([]string, 0, len(p.Parts))
	for _, c := range p.Parts {
		parts = append(parts, fmt.Sprintf("%s x%d", c.Item.Name, c.Quantity))
	}
	return fmt.Sprintf("ensamble de %d %s con: %s", quantity, finalName, strings.Join(parts, ", "))
}
