package entity

import "time"

// Category agrupa ítems del catálogo (jerárquica opcional).
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string
	Code      string // único cuando existe
	CreatedAt time.Time
}
