package entity

import "time"

// Tipos de ItemLog.
const (
	ItemLogReceived   = "received"
	ItemLogAdjustment = "adjustment"
	ItemLogSale       = "sale"
	ItemLogAssembly   = "assembly"
	ItemLogReversed   = "reversed"
)

// ItemLog registro inmutable (append-only) de cada cambio de stock.
type ItemLog struct {
	ID             string
	ItemID         string
	Type           string
	QuantityChange int // con signo
	OldStock       int
	NewStock       int
	Description    string
	Reference      Reference
	UserID         string
	CreatedAt      time.Time
}
