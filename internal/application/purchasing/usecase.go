package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// LineInput línea de OC a crear o reemplazar.
type LineInput struct {
	ItemID    string
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderInput cabecera y líneas de una OC.
type OrderInput struct {
	Supplier string
	Notes    string
	Lines    []LineInput
}

// PurchaseOrderUseCase ciclo de vida de la OC:
// pending -approve-> approved -receive-> partially_received -receive-> received.
type PurchaseOrderUseCase struct {
	txRunner ledger.TxRunner
	repos    repository.Repos
	audit    *ledger.AuditWriter
	log      zerolog.Logger
	now      func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(txRunner ledger.TxRunner, repos repository.Repos, audit *ledger.AuditWriter, log zerolog.Logger) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner: txRunner,
		repos:    repos,
		audit:    audit,
		log:      log.With().Str("component", "purchasing").Logger(),
		now:      time.Now,
	}
}

func validateOrder(in OrderInput) error {
	if strings.TrimSpace(in.Supplier) == "" {
		return domain.Invalid("supplier", "requerido")
	}
	if len(in.Lines) == 0 {
		return domain.Invalid("lines", "la orden no tiene líneas")
	}
	seen := map[string]struct{}{}
	for _, l := range in.Lines {
		if l.ItemID == "" {
			return domain.Invalid("item_id", "requerido")
		}
		if _, dup := seen[l.ItemID]; dup {
			return domain.Invalid("item_id", "ítem repetido en la orden: "+l.ItemID)
		}
		seen[l.ItemID] = struct{}{}
		if !inventory.ValidQuantity(l.Quantity) {
			return domain.Invalid("quantity", "debe estar entre 1 y 2147483647")
		}
		if l.UnitPrice.IsNegative() {
			return domain.Invalid("unit_price", "no puede ser negativo")
		}
	}
	return nil
}

func buildLines(ctx context.Context, r repository.Repos, poID string, lines []LineInput) ([]entity.PurchaseOrderItem, error) {
	out := make([]entity.PurchaseOrderItem, 0, len(lines))
	for _, l := range lines {
		it, err := r.Items.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, domain.NotFound("ítem", l.ItemID)
		}
		out = append(out, entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: poID,
			ItemID:          l.ItemID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice.Round(inventory.CostScale),
		})
	}
	return out, nil
}

// Create crea la OC en estado pending.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, actor entity.Actor, in OrderInput) (*entity.PurchaseOrder, error) {
	if err := validateOrder(in); err != nil {
		return nil, err
	}
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		now := uc.now()
		po = &entity.PurchaseOrder{
			ID:        uuid.New().String(),
			Supplier:  strings.TrimSpace(in.Supplier),
			Status:    entity.POPending,
			Notes:     in.Notes,
			CreatedBy: actor.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		lines, err := buildLines(ctx, r, po.ID, in.Lines)
		if err != nil {
			return err
		}
		po.Items = lines
		return r.PurchaseOrders.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Update reemplaza proveedor, notas y líneas. Solo en pending.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, id string, in OrderInput) (*entity.PurchaseOrder, error) {
	if err := validateOrder(in); err != nil {
		return nil, err
	}
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		current, err := lockOrder(ctx, r, id)
		if err != nil {
			return err
		}
		if !current.Editable() {
			return domain.Conflict("la orden %s está %s y ya no se puede editar", id, current.Status)
		}
		lines, err := buildLines(ctx, r, id, in.Lines)
		if err != nil {
			return err
		}
		current.Supplier = strings.TrimSpace(in.Supplier)
		current.Notes = in.Notes
		current.UpdatedAt = uc.now()
		if err := r.PurchaseOrders.Update(ctx, current); err != nil {
			return err
		}
		if err := r.PurchaseOrders.ReplaceItems(ctx, id, lines); err != nil {
			return err
		}
		current.Items = lines
		po = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Delete elimina la OC. Solo en pending.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		current, err := lockOrder(ctx, r, id)
		if err != nil {
			return err
		}
		if !current.Editable() {
			return domain.Conflict("la orden %s está %s y no se puede eliminar", id, current.Status)
		}
		return r.PurchaseOrders.Delete(ctx, id)
	})
}

// Approve pending -> approved. Solo admin.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, actor entity.Actor, id string) (*entity.PurchaseOrder, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		current, err := lockOrder(ctx, r, id)
		if err != nil {
			return err
		}
		if current.Status != entity.POPending {
			return domain.Conflict("solo se aprueban órdenes pendientes (estado %s)", current.Status)
		}
		now := uc.now()
		current.Status = entity.POApproved
		current.ApprovedBy = actor.UserID
		current.ApprovedAt = &now
		current.UpdatedAt = now
		po = current
		return r.PurchaseOrders.Update(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_order_id", id).Str("user_id", actor.UserID).Msg("orden de compra aprobada")
	return po, nil
}

// Get OC con líneas.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.NotFound("orden de compra", id)
	}
	return po, nil
}

func lockOrder(ctx context.Context, r repository.Repos, id string) (*entity.PurchaseOrder, error) {
	po, err := r.PurchaseOrders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.NotFound("orden de compra", id)
	}
	return po, nil
}

func describeReceipt(poID string, qty int, price decimal.Decimal) string {
	return fmt.Sprintf("recepción OC %s: %d a %s", poID, qty, price.StringFixed(inventory.CostScale))
}
