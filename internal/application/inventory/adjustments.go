package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	stock "github.com/jhoicas/pos-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// AdjustmentInput ajuste manual de stock.
type AdjustmentInput struct {
	ItemID string
	Delta  int
	Reason string
	Notes  string
}

// StockAdjustmentUseCase ajustes de stock y su reversión.
type StockAdjustmentUseCase struct {
	txRunner ledger.TxRunner
	repos    repository.Repos
	audit    *ledger.AuditWriter
	log      zerolog.Logger
	now      func() time.Time
}

// NewStockAdjustmentUseCase construye el caso de uso.
func NewStockAdjustmentUseCase(txRunner ledger.TxRunner, repos repository.Repos, audit *ledger.AuditWriter, log zerolog.Logger) *StockAdjustmentUseCase {
	return &StockAdjustmentUseCase{
		txRunner: txRunner,
		repos:    repos,
		audit:    audit,
		log:      log.With().Str("component", "adjustments").Logger(),
		now:      time.Now,
	}
}

// Create aplica delta al stock (falla si queda negativo) y deja un ItemLog adjustment.
func (uc *StockAdjustmentUseCase) Create(ctx context.Context, actor entity.Actor, in AdjustmentInput) (*entity.StockAdjustment, error) {
	if in.ItemID == "" {
		return nil, domain.Invalid("item_id", "requerido")
	}
	if in.Delta == 0 {
		return nil, domain.Invalid("quantity_change", "no puede ser cero")
	}
	if in.Delta > stock.MaxStock || in.Delta < -stock.MaxStock {
		return nil, domain.Invalid("quantity_change", "fuera de rango")
	}
	if !entity.ValidAdjustmentReason(in.Reason) {
		return nil, domain.Invalid("reason", "debe ser adjustment, warranty, damage o internal_use")
	}
	var adj *entity.StockAdjustment
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		res, err := ledger.AdjustStock(ctx, r, in.ItemID, in.Delta)
		if err != nil {
			return err
		}
		adj = &entity.StockAdjustment{
			ID:             uuid.New().String(),
			ItemID:         in.ItemID,
			QuantityChange: in.Delta,
			Reason:         in.Reason,
			Notes:          in.Notes,
			OldStock:       res.Old,
			NewStock:       res.New,
			UserID:         actor.UserID,
			CreatedAt:      uc.now(),
		}
		if err := r.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		_, err = uc.audit.LogItemChange(ctx, r, ledger.ItemChange{
			ItemID:         in.ItemID,
			Type:           entity.ItemLogAdjustment,
			QuantityChange: in.Delta,
			OldStock:       res.Old,
			NewStock:       res.New,
			Description:    fmt.Sprintf("ajuste (%s) %s", in.Reason, in.Notes),
			UserID:         actor.UserID,
			Reference:      entity.Ref(entity.RefStockAdjustment, adj.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("adjustment_id", adj.ID).Str("item_id", adj.ItemID).
		Int("quantity_change", adj.QuantityChange).Str("reason", adj.Reason).Msg("ajuste de stock")
	return adj, nil
}

// Reverse deshace un ajuste: aplica el cambio negado (sin movimientos intermedios el stock
// vuelve a old_stock), deja un ItemLog reversed y elimina el ajuste.
func (uc *StockAdjustmentUseCase) Reverse(ctx context.Context, actor entity.Actor, adjustmentID string) (*entity.ItemLog, error) {
	var log *entity.ItemLog
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		adj, err := r.Adjustments.GetForUpdate(ctx, adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.NotFound("ajuste de stock", adjustmentID)
		}
		res, err := ledger.AdjustStock(ctx, r, adj.ItemID, -adj.QuantityChange)
		if err != nil {
			return err
		}
		log, err = uc.audit.LogItemChange(ctx, r, ledger.ItemChange{
			ItemID:         adj.ItemID,
			Type:           entity.ItemLogReversed,
			QuantityChange: -adj.QuantityChange,
			OldStock:       res.Old,
			NewStock:       res.New,
			Description:    fmt.Sprintf("reversión de ajuste %s (%s)", adj.ID, adj.Reason),
			UserID:         actor.UserID,
			Reference:      entity.Ref(entity.RefStockAdjustment, adj.ID),
		})
		if err != nil {
			return err
		}
		return r.Adjustments.Delete(ctx, adj.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("adjustment_id", adjustmentID).Int("new_stock", log.NewStock).Msg("ajuste revertido")
	return log, nil
}

// ListByItem ajustes vigentes de un ítem.
func (uc *StockAdjustmentUseCase) ListByItem(ctx context.Context, itemID string) ([]*entity.StockAdjustment, error) {
	return uc.repos.Adjustments.ListByItem(ctx, itemID)
}
