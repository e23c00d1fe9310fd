package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// ReceiptLine línea del comprobante con el nombre del ítem resuelto.
type ReceiptLine struct {
	entity.SaleItem
	ItemName string
	SKU      string
}

// ReceiptData todo lo que el generador necesita para dibujar el comprobante.
type ReceiptData struct {
	StoreName string
	Sale      *entity.Sale
	Customer  *entity.Customer // nil en ventas sin cliente
	Lines     []ReceiptLine
}

// ReceiptRenderer puerto de salida: genera el comprobante (PDF) de una venta.
type ReceiptRenderer interface {
	RenderSaleReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

// ReceiptUseCase arma los datos del comprobante y delega el dibujo al renderer.
type ReceiptUseCase struct {
	repos     repository.Repos
	renderer  ReceiptRenderer
	storeName string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(repos repository.Repos, renderer ReceiptRenderer, storeName string) *ReceiptUseCase {
	return &ReceiptUseCase{repos: repos, renderer: renderer, storeName: storeName}
}

// SaleReceipt devuelve los bytes del PDF y un nombre de archivo sugerido.
func (uc *ReceiptUseCase) SaleReceipt(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.NotFound("venta", saleID)
	}
	data := ReceiptData{StoreName: uc.storeName, Sale: sale}
	if sale.CustomerID != "" {
		if data.Customer, err = uc.repos.Customers.GetByID(ctx, sale.CustomerID); err != nil {
			return nil, "", err
		}
	}
	for _, si := range sale.Items {
		line := ReceiptLine{SaleItem: si, ItemName: si.ItemID}
		item, err := uc.repos.Items.GetByID(ctx, si.ItemID)
		if err != nil {
			return nil, "", err
		}
		if item != nil {
			line.ItemName = item.Name
			line.SKU = item.SKU
		}
		data.Lines = append(data.Lines, line)
	}
	doc, err := uc.renderer.RenderSaleReceipt(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: %w", err)
	}
	return doc, fmt.Sprintf("venta-%s.pdf", sale.ID), nil
}
