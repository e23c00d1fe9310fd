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
	"github.com/jhoicas/pos-ledger-api/pkg/taxid"
)

// CustomerInput datos de alta de un cliente.
type CustomerInput struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// Create crea un cliente sin deuda. Un NIT con DV se verifica; TaxID duplicado devuelve
// domain.ErrDuplicate.
func (uc *CustomerUseCase) Create(ctx context.Context, in CustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	taxID, err := taxid.Validate(in.TaxID)
	if err != nil {
		return nil, domain.Invalid("tax_id", err.Error())
	}
	now := uc.now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        name,
		TaxID:       taxID,
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		DebtBalance: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente", id)
	}
	return c, nil
}

// List lista clientes.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}
