package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/cashier"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// CartLine línea del carrito. Price cero usa el precio del ítem.
type CartLine struct {
	ItemID        string
	Quantity      int
	Price         decimal.Decimal
	SerialNumbers []string
}

// SaleInput entrada para registrar una venta.
type SaleInput struct {
	Lines         []CartLine
	PaymentMethod string
	CustomerID    string
	BankAccountID string
	AmountPaid    *decimal.Decimal
}

// SaleUseCase registra ventas y abonos de deuda de forma transaccional.
type SaleUseCase struct {
	txRunner ledger.TxRunner
	repos    repository.Repos
	audit    *ledger.AuditWriter
	log      zerolog.Logger
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner ledger.TxRunner, repos repository.Repos, audit *ledger.AuditWriter, log zerolog.Logger) *SaleUseCase {
	return &SaleUseCase{
		txRunner: txRunner,
		repos:    repos,
		audit:    audit,
		log:      log.With().Str("component", "sales").Logger(),
		now:      time.Now,
	}
}

func validateSaleInput(in SaleInput) error {
	if len(in.Lines) == 0 {
		return domain.Invalid("lines", "el carrito está vacío")
	}
	for _, l := range in.Lines {
		if l.ItemID == "" {
			return domain.Invalid("item_id", "requerido")
		}
		if !inventory.ValidQuantity(l.Quantity) {
			return domain.Invalid("quantity", "debe estar entre 1 y 2147483647")
		}
		if l.Price.IsNegative() {
			return domain.Invalid("price", "no puede ser negativo")
		}
	}
	switch in.PaymentMethod {
	case entity.PaymentCash:
	case entity.PaymentBank:
		if in.BankAccountID == "" {
			return domain.Invalid("bank_account_id", "requerido en pago bancario")
		}
	case entity.PaymentCredit:
		if in.CustomerID == "" {
			return domain.Invalid("customer_id", "requerido en venta a crédito")
		}
	default:
		return domain.Invalid("payment_method", "debe ser cash, bank o credit")
	}
	return nil
}

// RecordSale valida el carrito, descuenta stock, crea garantías y aplica el efecto del
// método de pago, todo en una transacción. Cualquier fallo revierte la venta completa.
func (uc *SaleUseCase) RecordSale(ctx context.Context, actor entity.Actor, in SaleInput) (*entity.Sale, error) {
	if err := validateSaleInput(in); err != nil {
		return nil, err
	}
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		session, err := r.Sessions.GetOpenForUpdate(ctx)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNoOpenSession
		}
		if in.CustomerID != "" {
			c, err := r.Customers.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.NotFound("cliente", in.CustomerID)
			}
		}
		if in.PaymentMethod == entity.PaymentBank {
			if err := ensureBankAccount(ctx, r, in.BankAccountID); err != nil {
				return err
			}
		}

		items, err := lockCartItems(ctx, r, in.Lines)
		if err != nil {
			return err
		}

		// Stock suficiente para todas las líneas antes de escribir nada
		required := map[string]int{}
		for _, l := range in.Lines {
			required[l.ItemID] += l.Quantity
		}
		for id, qty := range required {
			if it := items[id]; it.Stock < qty {
				return &domain.InsufficientStockError{ItemID: id, ItemName: it.Name, Required: qty, Available: it.Stock}
			}
		}

		priced := make([]cashier.PricedLine, len(in.Lines))
		for i, l := range in.Lines {
			price := l.Price
			if price.IsZero() {
				price = items[l.ItemID].Price
			}
			priced[i] = cashier.PricedLine{ItemID: l.ItemID, Quantity: l.Quantity, Price: price}
		}
		totals, err := cashier.ComputeTotals(priced, in.PaymentMethod, in.AmountPaid)
		if err != nil {
			return err
		}

		now := uc.now()
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			CustomerID:    in.CustomerID,
			UserID:        actor.UserID,
			SessionID:     session.ID,
			PaymentMethod: in.PaymentMethod,
			BankAccountID: in.BankAccountID,
			Subtotal:      totals.Subtotal,
			Total:         totals.Total,
			AmountPaid:    totals.AmountPaid,
			ChangeGiven:   totals.ChangeGiven,
			Status:        entity.SaleCompleted,
			CreatedAt:     now,
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		seen := map[string]struct{}{}
		ref := entity.Ref(entity.RefSale, sale.ID)
		for i, l := range in.Lines {
			if err := uc.recordLine(ctx, r, actor, sale, priced[i], l.SerialNumbers, seen, ref, now); err != nil {
				return err
			}
		}

		return uc.applyPayment(ctx, r, actor, sale, session.ID, ref)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", actor.UserID).Str("payment_method", in.PaymentMethod).Msg("venta rechazada")
		return nil, err
	}
	uc.log.Info().Str("sale_id", sale.ID).Str("session_id", sale.SessionID).
		Str("payment_method", sale.PaymentMethod).Str("total", sale.Total.String()).
		Int("lines", len(sale.Items)).Msg("venta registrada")
	return sale, nil
}

// recordLine crea la línea, descuenta stock, audita y genera garantías por unidad.
func (uc *SaleUseCase) recordLine(
	ctx context.Context, r repository.Repos, actor entity.Actor, sale *entity.Sale,
	line cashier.PricedLine, serials []string, seen map[string]struct{}, ref entity.Reference, now time.Time,
) error {
	item, err := r.Items.GetForUpdate(ctx, line.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.NotFound("ítem", line.ItemID)
	}
	if len(serials) > 0 && !item.CarriesWarranty() {
		return domain.Invalid("serial_numbers", fmt.Sprintf("%s no maneja garantía", item.Name))
	}
	if err := cashier.CheckSerials(item.ID, line.Quantity, serials, seen); err != nil {
		return err
	}
	for _, serial := range serials {
		if serial == "" {
			continue
		}
		exists, err := r.Warranties.SerialExists(ctx, item.ID, serial)
		if err != nil {
			return err
		}
		if exists {
			return domain.Invalid("serial_numbers", fmt.Sprintf("el serial %s ya está registrado para %s", serial, item.Name))
		}
	}

	si := entity.SaleItem{
		ID:       uuid.New().String(),
		SaleID:   sale.ID,
		ItemID:   item.ID,
		Quantity: line.Quantity,
		Price:    line.Price,
		Subtotal: line.Subtotal(),
	}
	if err := r.Sales.CreateItem(ctx, &si); err != nil {
		return err
	}
	sale.Items = append(sale.Items, si)

	res, err := ledger.AdjustStock(ctx, r, item.ID, -line.Quantity)
	if err != nil {
		return err
	}
	if _, err := uc.audit.LogItemChange(ctx, r, ledger.ItemChange{
		ItemID:         item.ID,
		Type:           entity.ItemLogSale,
		QuantityChange: -line.Quantity,
		OldStock:       res.Old,
		NewStock:       res.New,
		Description:    fmt.Sprintf("venta %s", sale.ID),
		UserID:         actor.UserID,
		Reference:      ref,
	}); err != nil {
		return err
	}

	if !item.CarriesWarranty() {
		return nil
	}
	for unit := 0; unit < line.Quantity; unit++ {
		w := entity.Warranty{
			ID:             uuid.New().String(),
			SaleID:         sale.ID,
			SaleItemID:     si.ID,
			ItemID:         item.ID,
			CustomerID:     sale.CustomerID,
			WarrantyMonths: item.WarrantyMonths,
			SoldAt:         now,
			ExpiresAt:      cashier.WarrantyExpiry(now, item.WarrantyMonths),
		}
		if unit < len(serials) {
			w.SerialNumber = serials[unit]
		}
		if err := r.Warranties.Create(ctx, &w); err != nil {
			return err
		}
		sale.Warranties = append(sale.Warranties, w)
	}
	return nil
}

// applyPayment efectivo -> cash_sales + ingreso en caja; bank -> ingreso bancario con la
// sesión; crédito -> aumenta la deuda del cliente (no se mueve dinero).
func (uc *SaleUseCase) applyPayment(ctx context.Context, r repository.Repos, actor entity.Actor, sale *entity.Sale, sessionID string, ref entity.Reference) error {
	switch sale.PaymentMethod {
	case entity.PaymentCash:
		if _, _, _, err := ledger.AdjustCashSession(ctx, r, sessionID, entity.SessionCashSales, sale.Total); err != nil {
			return err
		}
		_, err := uc.audit.LogMoneyTransaction(ctx, r, ledger.Money{
			Direction:   entity.MoneyIn,
			Amount:      sale.Total,
			SourceType:  entity.SourceCashRegister,
			SourceID:    sessionID,
			SessionID:   sessionID,
			Category:    entity.MoneyCategorySale,
			Description: fmt.Sprintf("venta %s en efectivo", sale.ID),
			UserID:      actor.UserID,
			Reference:   ref,
		})
		return err
	case entity.PaymentBank:
		_, err := uc.audit.LogMoneyTransaction(ctx, r, ledger.Money{
			Direction:   entity.MoneyIn,
			Amount:      sale.Total,
			SourceType:  entity.SourceBankAccount,
			SourceID:    sale.BankAccountID,
			SessionID:   sessionID,
			Category:    entity.MoneyCategorySale,
			Description: fmt.Sprintf("venta %s por banco", sale.ID),
			UserID:      actor.UserID,
			Reference:   ref,
		})
		return err
	case entity.PaymentCredit:
		_, _, _, err := ledger.AdjustCustomerDebt(ctx, r, sale.CustomerID, sale.Total)
		return err
	}
	return domain.Invalid("payment_method", "desconocido")
}

// Get venta con líneas y garantías.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta", id)
	}
	return s, nil
}

// FindWarranties garantías registradas con un serial.
func (uc *SaleUseCase) FindWarranties(ctx context.Context, serial string) ([]*entity.Warranty, error) {
	if serial == "" {
		return nil, domain.Invalid("serial", "requerido")
	}
	return uc.repos.Warranties.FindBySerial(ctx, serial)
}

// lockCartItems bloquea los ítems en orden de ID para evitar interbloqueos entre ventas.
func lockCartItems(ctx context.Context, r repository.Repos, lines []CartLine) (map[string]*entity.Item, error) {
	ids := make([]string, 0, len(lines))
	set := map[string]struct{}{}
	for _, l := range lines {
		if _, ok := set[l.ItemID]; ok {
			continue
		}
		set[l.ItemID] = struct{}{}
		ids = append(ids, l.ItemID)
	}
	sort.Strings(ids)
	items := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		it, err := r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, domain.NotFound("ítem", id)
		}
		items[id] = it
	}
	return items, nil
}

func ensureBankAccount(ctx context.Context, r repository.Repos, id string) error {
	acc, err := r.BankAccounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if acc == nil {
		return domain.NotFound("cuenta bancaria", id)
	}
	if !acc.Active {
		return domain.Invalid("bank_account_id", "la cuenta bancaria está inactiva")
	}
	return nil
}
