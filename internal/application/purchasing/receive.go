package purchasing

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// Receive registra cantidades acumuladas recibidas por línea. Solo la diferencia con lo
// ya recibido entra a stock (con costo promedio ponderado); repetir el mismo acumulado
// no cambia nada. El estado de la OC se deriva de las líneas.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, actor entity.Actor, id string, lines []inventory.ReceiptLine) (*entity.PurchaseOrder, error) {
	if len(lines) == 0 {
		return nil, domain.Invalid("lines", "no hay líneas para recibir")
	}
	var po *entity.PurchaseOrder
	received := 0
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		current, err := lockOrder(ctx, r, id)
		if err != nil {
			return err
		}
		if !current.Receivable() {
			return domain.Conflict("la orden %s está %s y no admite recepciones", id, current.Status)
		}
		index := make(map[string]int, len(current.Items))
		for i, l := range current.Items {
			index[l.ID] = i
		}
		ref := entity.Ref(entity.RefPurchaseOrder, current.ID)
		for _, in := range lines {
			i, ok := index[in.PurchaseOrderItemID]
			if !ok {
				return domain.NotFound("línea de orden de compra", in.PurchaseOrderItemID)
			}
			line := current.Items[i]
			if in.ReceivedCumulative < 0 || in.ReceivedCumulative > line.Quantity {
				return domain.Invalid("received_quantity", "debe estar entre 0 y la cantidad ordenada")
			}
			add := inventory.QuantityToAdd(line, in.ReceivedCumulative)
			if add == 0 {
				continue
			}
			res, err := ledger.ReceiveStock(ctx, r, line.ItemID, add, line.UnitPrice)
			if err != nil {
				return err
			}
			if _, err := uc.audit.LogItemChange(ctx, r, ledger.ItemChange{
				ItemID:         line.ItemID,
				Type:           entity.ItemLogReceived,
				QuantityChange: add,
				OldStock:       res.Old,
				NewStock:       res.New,
				Description:    describeReceipt(current.ID, add, line.UnitPrice),
				UserID:         actor.UserID,
				Reference:      ref,
			}); err != nil {
				return err
			}
			if err := r.PurchaseOrders.UpdateItemReceived(ctx, line.ID, in.ReceivedCumulative); err != nil {
				return err
			}
			current.Items[i].ReceivedQuantity = in.ReceivedCumulative
			received += add
		}

		status := inventory.DerivePOStatus(current.Status, current.Items)
		if status == current.Status {
			po = current
			return nil
		}
		now := uc.now()
		current.Status = status
		current.UpdatedAt = now
		if status == entity.POReceived && current.ReceivedAt == nil {
			current.ReceivedAt = &now
		}
		po = current
		return r.PurchaseOrders.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_order_id", id).Str("status", po.Status).
		Int("units_received", received).Msg("recepción de orden de compra")
	return po, nil
}
