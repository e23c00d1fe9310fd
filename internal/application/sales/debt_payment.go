package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/cashier"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// DebtPaymentInput abono a la deuda de un cliente.
type DebtPaymentInput struct {
	CustomerID    string
	Amount        decimal.Decimal
	Method        string // cash | bank
	BankAccountID string
}

// DebtPaymentResult estado tras el abono.
type DebtPaymentResult struct {
	Customer    *entity.Customer
	Session     *entity.CashRegisterSession
	Transaction *entity.MoneyTransaction
}

// CollectDebtPayment descuenta la deuda del cliente, suma debt_repaid en la sesión abierta
// (y cash_sales si es en efectivo) y registra el ingreso de dinero.
func (uc *SaleUseCase) CollectDebtPayment(ctx context.Context, actor entity.Actor, in DebtPaymentInput) (*DebtPaymentResult, error) {
	if in.CustomerID == "" {
		return nil, domain.Invalid("customer_id", "requerido")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount", "debe ser mayor que cero")
	}
	switch in.Method {
	case entity.PaymentCash:
	case entity.PaymentBank:
		if in.BankAccountID == "" {
			return nil, domain.Invalid("bank_account_id", "requerido en pago bancario")
		}
	default:
		return nil, domain.Invalid("method", "debe ser cash o bank")
	}
	amount := in.Amount.Round(cashier.MoneyScale)

	var out DebtPaymentResult
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		session, err := r.Sessions.GetOpenForUpdate(ctx)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNoOpenSession
		}
		customer, err := r.Customers.GetForUpdate(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NotFound("cliente", in.CustomerID)
		}
		if amount.GreaterThan(customer.DebtBalance) {
			return domain.Invalid("amount", fmt.Sprintf("el abono %s supera la deuda %s", amount, customer.DebtBalance))
		}
		if in.Method == entity.PaymentBank {
			if err := ensureBankAccount(ctx, r, in.BankAccountID); err != nil {
				return err
			}
		}

		c, _, _, err := ledger.AdjustCustomerDebt(ctx, r, customer.ID, amount.Neg())
		if err != nil {
			return err
		}
		out.Customer = c
		s, _, _, err := ledger.AdjustCashSession(ctx, r, session.ID, entity.SessionDebtRepaid, amount)
		if err != nil {
			return err
		}
		// El abono en efectivo también entra al cajón como venta en efectivo
		if in.Method == entity.PaymentCash {
			if s, _, _, err = ledger.AdjustCashSession(ctx, r, session.ID, entity.SessionCashSales, amount); err != nil {
				return err
			}
		}
		out.Session = s

		m := ledger.Money{
			Direction:   entity.MoneyIn,
			Amount:      amount,
			SourceType:  entity.SourceCashRegister,
			SourceID:    session.ID,
			SessionID:   session.ID,
			Category:    entity.MoneyCategoryDebtPayment,
			Description: fmt.Sprintf("abono de %s", customer.Name),
			UserID:      actor.UserID,
			Reference:   entity.Ref(entity.RefCustomerPayment, customer.ID),
		}
		if in.Method == entity.PaymentBank {
			m.SourceType = entity.SourceBankAccount
			m.SourceID = in.BankAccountID
		}
		out.Transaction, err = uc.audit.LogMoneyTransaction(ctx, r, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", in.CustomerID).Str("amount", amount.String()).
		Str("method", in.Method).Str("debt_balance", out.Customer.DebtBalance.String()).
		Msg("abono de deuda registrado")
	return &out, nil
}

// PaymentHistory abonos registrados para un cliente.
func (uc *SaleUseCase) PaymentHistory(ctx context.Context, customerID string) ([]*entity.MoneyTransaction, error) {
	return uc.repos.Money.ListByReference(ctx, entity.Ref(entity.RefCustomerPayment, customerID))
}
