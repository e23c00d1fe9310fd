package entity

import "time"

// Motivos de ajuste.
const (
	AdjustmentReasonAdjustment  = "adjustment"
	AdjustmentReasonWarranty    = "warranty"
	AdjustmentReasonDamage      = "damage"
	AdjustmentReasonInternalUse = "internal_use"
)

// ValidAdjustmentReason verifica el motivo del ajuste.
func ValidAdjustmentReason(r string) bool {
	switch r {
	case AdjustmentReasonAdjustment, AdjustmentReasonWarranty, AdjustmentReasonDamage, AdjustmentReasonInternalUse:
		return true
	}
	return false
}

// StockAdjustment ajuste manual de stock. Borrarlo revierte el cambio.
type StockAdjustment struct {
	ID             string
	ItemID         string
	QuantityChange int
	Reason         string
	Notes          string
	OldStock       int
	NewStock       int
	UserID         string
	CreatedAt      time.Time
}
