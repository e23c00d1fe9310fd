package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// PurchaseOrderLineRequest línea de OC.
type PurchaseOrderLineRequest struct {
	ItemID    string          `json:"item_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1,max=2147483647"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderRequest body para POST/PUT /purchase-orders.
type PurchaseOrderRequest struct {
	Supplier string                     `json:"supplier" validate:"required,max=200"`
	Notes    string                     `json:"notes,omitempty" validate:"max=1000"`
	Lines    []PurchaseOrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReceiveLineRequest cantidad acumulada recibida de una línea.
type ReceiveLineRequest struct {
	PurchaseOrderItemID string `json:"purchase_order_item_id" validate:"required"`
	ReceivedQuantity    int    `json:"received_quantity" validate:"min=0,max=2147483647"`
}

// ReceivePurchaseOrderRequest body para POST /purchase-orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	Lines []ReceiveLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseOrderItemResponse línea de OC.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"item_id"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ReceivedQuantity int             `json:"received_quantity"`
}

// PurchaseOrderResponse OC con líneas.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Supplier   string                      `json:"supplier"`
	Status     string                      `json:"status"`
	Notes      string                      `json:"notes,omitempty"`
	Total      decimal.Decimal             `json:"total"`
	CreatedBy  string                      `json:"created_by"`
	ApprovedBy string                      `json:"approved_by,omitempty"`
	ApprovedAt *time.Time                  `json:"approved_at,omitempty"`
	ReceivedAt *time.Time                  `json:"received_at,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
	Items      []PurchaseOrderItemResponse `json:"items"`
}

// ToPurchaseOrderResponse mapea la entidad.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) PurchaseOrderResponse {
	out := PurchaseOrderResponse{
		ID:         po.ID,
		Supplier:   po.Supplier,
		Status:     po.Status,
		Notes:      po.Notes,
		Total:      po.Total(),
		CreatedBy:  po.CreatedBy,
		ApprovedBy: po.ApprovedBy,
		ApprovedAt: po.ApprovedAt,
		ReceivedAt: po.ReceivedAt,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
		Items:      make([]PurchaseOrderItemResponse, 0, len(po.Items)),
	}
	for _, l := range po.Items {
		out.Items = append(out.Items, PurchaseOrderItemResponse{
			ID:               l.ID,
			ItemID:           l.ItemID,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			ReceivedQuantity: l.ReceivedQuantity,
		})
	}
	return out
}
