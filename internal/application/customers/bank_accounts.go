package customers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// BankAccountInput alta de cuenta bancaria.
type BankAccountInput struct {
	Name   string
	Bank   string
	Number string
}

// BankAccountBalance saldo derivado de los movimientos de la cuenta.
type BankAccountBalance struct {
	Account *entity.BankAccount
	Balance decimal.Decimal
}

// BankAccountUseCase cuentas bancarias.
type BankAccountUseCase struct {
	accounts repository.BankAccountRepository
	money    repository.MoneyTransactionRepository
	now      func() time.Time
}

// NewBankAccountUseCase construye el caso de uso.
func NewBankAccountUseCase(accounts repository.BankAccountRepository, money repository.MoneyTransactionRepository) *BankAccountUseCase {
	return &BankAccountUseCase{accounts: accounts, money: money, now: time.Now}
}

// Create crea una cuenta activa.
func (uc *BankAccountUseCase) Create(ctx context.Context, in BankAccountInput) (*entity.BankAccount, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	acc := &entity.BankAccount{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Bank:      strings.TrimSpace(in.Bank),
		Number:    strings.TrimSpace(in.Number),
		Active:    true,
		CreatedAt: uc.now(),
	}
	if err := uc.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// List cuentas registradas.
func (uc *BankAccountUseCase) List(ctx context.Context) ([]*entity.BankAccount, error) {
	return uc.accounts.List(ctx)
}

// Balance suma ingresos menos egresos con origen en la cuenta.
func (uc *BankAccountUseCase) Balance(ctx context.Context, id string) (*BankAccountBalance, error) {
	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.NotFound("cuenta bancaria", id)
	}
	bal, err := uc.money.SourceBalance(ctx, entity.SourceBankAccount, id)
	if err != nil {
		return nil, err
	}
	return &BankAccountBalance{Account: acc, Balance: bal}, nil
}
