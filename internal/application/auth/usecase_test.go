package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-ledger-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestCreateUserYLogin(t *testing.T) {
	ctx := context.Background()
	uc := auth.NewAuthUseCase(memory.NewStore().Repos().Users, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "pos"}).
		WithHashCost(bcrypt.MinCost)

	user, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: " Caja@Tienda.co ", Password: "clave-segura", Role: entity.RoleCashier})
	require.NoError(t, err)
	assert.Equal(t, "caja@tienda.co", user.Email)
	assert.Equal(t, "caja@tienda.co", user.Name, "sin nombre se usa el email")

	// Caso 1: email repetido
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "caja@tienda.co", Password: "otra-clave", Role: entity.RoleCashier})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// Caso 2: rol desconocido
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "x@tienda.co", Password: "clave-segura", Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "CAJA@tienda.co", Password: "clave-segura"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleCashier, role)

	// Caso 3: password incorrecto
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caja@tienda.co", Password: "nope"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	// Caso 4: usuario inexistente
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "clave-segura"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
