package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	UpdateDebt(ctx context.Context, id string, debt decimal.Decimal) error
}

// BankAccountRepository cuentas bancarias.
type BankAccountRepository interface {
	Create(ctx context.Context, account *entity.BankAccount) error
	GetByID(ctx context.Context, id string) (*entity.BankAccount, error)
	List(ctx context.Context) ([]*entity.BankAccount, error)
}
