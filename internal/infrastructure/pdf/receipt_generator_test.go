package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/pdf"
)

func TestMoney(t *testing.T) {
	g := pdf.NewReceiptGenerator()
	assert.Equal(t, "$1.250.000,50", g.Money(decimal.RequireFromString("1250000.5")))
	assert.Equal(t, "$0,00", g.Money(decimal.Zero))
	assert.Equal(t, "$50,00", g.Money(decimal.NewFromInt(50)))
}

func TestRenderSaleReceipt(t *testing.T) {
	now := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:            "a1b2c3d4-0000-0000-0000-000000000000",
		PaymentMethod: entity.PaymentCash,
		Subtotal:      decimal.NewFromInt(100),
		Total:         decimal.NewFromInt(100),
		AmountPaid:    decimal.NewFromInt(100),
		CreatedAt:     now,
		Items: []entity.SaleItem{
			{ID: "si-1", ItemID: "item-1", Quantity: 2, Price: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(100)},
		},
		Warranties: []entity.Warranty{
			{ID: "w-1", ItemID: "item-1", SerialNumber: "SN-1", WarrantyMonths: 1, SoldAt: now, ExpiresAt: now.AddDate(0, 1, -3)},
		},
	}
	data := sales.ReceiptData{
		StoreName: "Tienda",
		Sale:      sale,
		Lines:     []sales.ReceiptLine{{SaleItem: sale.Items[0], ItemName: "Mouse"}},
	}

	doc, err := pdf.NewReceiptGenerator().RenderSaleReceipt(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	// Caso 2: sin venta
	_, err = pdf.NewReceiptGenerator().RenderSaleReceipt(context.Background(), sales.ReceiptData{})
	assert.Error(t, err)
}
