package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// ItemRequest body para POST/PUT /items.
type ItemRequest struct {
	SKU            string          `json:"sku" validate:"omitempty,max=64"`
	Name           string          `json:"name" validate:"required,max=200"`
	CategoryID     string          `json:"category_id,omitempty"`
	Price          decimal.Decimal `json:"price"`
	HasWarranty    bool            `json:"has_warranty"`
	WarrantyMonths int             `json:"warranty_months" validate:"min=0,max=120"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	Stock          int             `json:"stock"`
	HasWarranty    bool            `json:"has_warranty"`
	WarrantyMonths int             `json:"warranty_months"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ItemLogResponse movimiento de stock.
type ItemLogResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantity_change"`
	OldStock       int       `json:"old_stock"`
	NewStock       int       `json:"new_stock"`
	Description    string    `json:"description"`
	ReferenceType  string    `json:"reference_type,omitempty"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// StockAdjustmentRequest body para POST /adjustments.
type StockAdjustmentRequest struct {
	ItemID         string `json:"item_id" validate:"required"`
	QuantityChange int    `json:"quantity_change" validate:"required,min=-2147483647,max=2147483647"`
	Reason         string `json:"reason" validate:"required,oneof=adjustment warranty damage internal_use"`
	Notes          string `json:"notes,omitempty" validate:"max=500"`
}

// StockAdjustmentResponse ajuste aplicado.
type StockAdjustmentResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	QuantityChange int       `json:"quantity_change"`
	Reason         string    `json:"reason"`
	Notes          string    `json:"notes,omitempty"`
	OldStock       int       `json:"old_stock"`
	NewStock       int       `json:"new_stock"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToItemResponse mapea la entidad.
func ToItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:             i.ID,
		SKU:            i.SKU,
		Name:           i.Name,
		CategoryID:     i.CategoryID,
		Price:          i.Price,
		Cost:           i.Cost,
		Stock:          i.Stock,
		HasWarranty:    i.HasWarranty,
		WarrantyMonths: i.WarrantyMonths,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// ToItemLogResponses mapea una lista de logs.
func ToItemLogResponses(logs []*entity.ItemLog) []ItemLogResponse {
	out := make([]ItemLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, ToItemLogResponse(l))
	}
	return out
}

// ToItemLogResponse mapea un log.
func ToItemLogResponse(l *entity.ItemLog) ItemLogResponse {
	return ItemLogResponse{
		ID:             l.ID,
		ItemID:         l.ItemID,
		Type:           l.Type,
		QuantityChange: l.QuantityChange,
		OldStock:       l.OldStock,
		NewStock:       l.NewStock,
		Description:    l.Description,
		ReferenceType:  l.Reference.Kind.String(),
		ReferenceID:    l.Reference.ID,
		UserID:         l.UserID,
		CreatedAt:      l.CreatedAt,
	}
}

// ToStockAdjustmentResponse mapea la entidad.
func ToStockAdjustmentResponse(a *entity.StockAdjustment) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		ID:             a.ID,
		ItemID:         a.ItemID,
		QuantityChange: a.QuantityChange,
		Reason:         a.Reason,
		Notes:          a.Notes,
		OldStock:       a.OldStock,
		NewStock:       a.NewStock,
		UserID:         a.UserID,
		CreatedAt:      a.CreatedAt,
	}
}

// CategoryRequest body para POST /categories.
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Code     string `json:"code,omitempty" validate:"omitempty,max=32"`
	ParentID string `json:"parent_id,omitempty"`
}

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponses convierte la lista de categorías.
func ToCategoryResponses(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CategoryResponse{ID: c.ID, ParentID: c.ParentID, Name: c.Name, Code: c.Code, CreatedAt: c.CreatedAt})
	}
	return out
}
