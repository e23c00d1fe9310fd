package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	// Caso 1: ida y vuelta conserva user_id y role
	tok, err := jwt.Generate("s3cret", "user-1", "cashier", "pos-ledger", 5)
	require.NoError(t, err)
	uid, role, err := jwt.Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.Equal(t, "cashier", role)

	// Caso 2: otra clave rechaza el token
	_, _, err = jwt.Parse("otra", tok)
	assert.Error(t, err)

	// Caso 3: token expirado
	expired, err := jwt.Generate("s3cret", "user-1", "cashier", "pos-ledger", -1)
	require.NoError(t, err)
	_, _, err = jwt.Parse("s3cret", expired)
	assert.Error(t, err)

	// Caso 4: secret vacío
	_, err = jwt.Generate("", "user-1", "admin", "pos-ledger", 5)
	assert.Error(t, err)
}

func TestParse_ClaimsInvalidos(t *testing.T) {
	// Caso 1: token sin subject
	tok, err := jwt.Generate("s3cret", "", "admin", "pos-ledger", 5)
	require.NoError(t, err)
	_, _, err = jwt.Parse("s3cret", tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaims)

	// Caso 2: basura
	_, _, err = jwt.Parse("s3cret", "no.es.jwt")
	assert.Error(t, err)

	// Caso 3: secret vacío en Parse
	_, _, err = jwt.Parse("", tok)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
