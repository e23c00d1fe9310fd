package assembly

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// PartInput componente y cantidad por unidad terminada.
type PartInput struct {
	ItemID          string
	PerUnitQuantity int
}

// AssembleInput entrada para ensamblar.
type AssembleInput struct {
	FinalItemID string
	Quantity    int
	Parts       []PartInput
	Notes       string
}

// AssemblyUseCase consume partes y produce un ítem terminado de forma atómica.
type AssemblyUseCase struct {
	txRunner ledger.TxRunner
	repos    repository.Repos
	audit    *ledger.AuditWriter
	log      zerolog.Logger
	now      func() time.Time
}

// NewAssemblyUseCase construye el caso de uso.
func NewAssemblyUseCase(txRunner ledger.TxRunner, repos repository.Repos, audit *ledger.AuditWriter, log zerolog.Logger) *AssemblyUseCase {
	return &AssemblyUseCase{
		txRunner: txRunner,
		repos:    repos,
		audit:    audit,
		log:      log.With().Str("component", "assembly").Logger(),
		now:      time.Now,
	}
}

func validate(in AssembleInput) error {
	if in.FinalItemID == "" {
		return domain.Invalid("final_item_id", "requerido")
	}
	if !inventory.ValidQuantity(in.Quantity) {
		return domain.Invalid("quantity", "debe estar entre 1 y 2147483647")
	}
	if len(in.Parts) == 0 {
		return domain.Invalid("parts", "el ensamble necesita al menos una parte")
	}
	seen := map[string]struct{}{}
	for _, p := range in.Parts {
		if p.ItemID == "" {
			return domain.Invalid("parts.item_id", "requerido")
		}
		if p.ItemID == in.FinalItemID {
			return domain.Invalid("parts.item_id", "el ítem terminado no puede ser su propia parte")
		}
		if _, dup := seen[p.ItemID]; dup {
			return domain.Invalid("parts.item_id", "parte repetida: "+p.ItemID)
		}
		seen[p.ItemID] = struct{}{}
		if p.PerUnitQuantity <= 0 {
			return domain.Invalid("parts.per_unit_quantity", "debe ser mayor que cero")
		}
		if _, ok := inventory.Units(p.PerUnitQuantity, in.Quantity); !ok {
			return domain.Invalid("parts.per_unit_quantity", "per_unit_quantity x quantity excede el máximo de stock")
		}
	}
	return nil
}

// Assemble verifica el stock de todas las partes antes de mutar; luego descuenta partes,
// suma el terminado, fija su costo al costo de partes y deja un ItemLog por ítem.
func (uc *AssemblyUseCase) Assemble(ctx context.Context, actor entity.Actor, in AssembleInput) (*entity.Assembly, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var asm *entity.Assembly
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		locked, err := lockAll(ctx, r, in)
		if err != nil {
			return err
		}
		final := locked[in.FinalItemID]
		parts := make([]inventory.AssemblyPart, len(in.Parts))
		for i, p := range in.Parts {
			parts[i] = inventory.AssemblyPart{Item: *locked[p.ItemID], PerUnitQuantity: p.PerUnitQuantity}
		}
		plan, err := inventory.PlanAssembly(*final, in.Quantity, parts)
		if err != nil {
			return err
		}

		now := uc.now()
		asm = &entity.Assembly{
			ID:          uuid.New().String(),
			FinalItemID: final.ID,
			Quantity:    in.Quantity,
			UnitCost:    plan.FinalNewCost,
			Notes:       in.Notes,
			UserID:      actor.UserID,
			CreatedAt:   now,
		}
		ref := entity.Ref(entity.RefAssembly, asm.ID)
		for _, c := range plan.Parts {
			res, err := ledger.AdjustStock(ctx, r, c.Item.ID, -c.Quantity)
			if err != nil {
				return err
			}
			if _, err := uc.audit.LogItemChange(ctx, r, ledger.ItemChange{
				ItemID:         c.Item.ID,
				Type:           entity.ItemLogAssembly,
				QuantityChange: -c.Quantity,
				OldStock:       res.Old,
				NewStock:       res.New,
				Description:    fmt.Sprintf("consumo para ensamble de %s", final.Name),
				UserID:         actor.UserID,
				Reference:      ref,
			}); err != nil {
				return err
			}
			asm.Items = append(asm.Items, entity.AssemblyItem{
				ID:              uuid.New().String(),
				AssemblyID:      asm.ID,
				ItemID:          c.Item.ID,
				PerUnitQuantity: c.PerUnit,
				Quantity:        c.Quantity,
				UnitCost:        c.Item.Cost,
			})
		}

		change, err := ledger.SetStockAndCost(ctx, r, final, in.Quantity, plan.FinalNewCost)
		if err != nil {
			return err
		}
		if _, err := uc.audit.LogItemChange(ctx, r, ledger.ItemChange{
			ItemID:         final.ID,
			Type:           entity.ItemLogAssembly,
			QuantityChange: in.Quantity,
			OldStock:       change.Old,
			NewStock:       change.New,
			Description:    plan.Describe(in.Quantity, final.Name),
			UserID:         actor.UserID,
			Reference:      ref,
		}); err != nil {
			return err
		}
		return r.Assemblies.Create(ctx, asm)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("final_item_id", in.FinalItemID).Msg("ensamble rechazado")
		return nil, err
	}
	uc.log.Info().Str("assembly_id", asm.ID).Str("final_item_id", asm.FinalItemID).
		Int("quantity", asm.Quantity).Str("unit_cost", asm.UnitCost.String()).Msg("ensamble registrado")
	return asm, nil
}

// Get ensamble con sus partes.
func (uc *AssemblyUseCase) Get(ctx context.Context, id string) (*entity.Assembly, error) {
	a, err := uc.repos.Assemblies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("ensamble", id)
	}
	return a, nil
}

// lockAll bloquea terminado y partes en orden de ID.
func lockAll(ctx context.Context, r repository.Repos, in AssembleInput) (map[string]*entity.Item, error) {
	ids := []string{in.FinalItemID}
	for _, p := range in.Parts {
		ids = append(ids, p.ItemID)
	}
	sort.Strings(ids)
	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		it, err := r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, domain.NotFound("ítem", id)
		}
		out[id] = it
	}
	return out, nil
}
