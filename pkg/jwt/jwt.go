package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrEmptySecret   = errors.New("jwt: secret vacío")
	ErrInvalidClaims = errors.New("jwt: claims inválidos")
)

// Claims de sesión del POS. El rol viaja en el token; las capacidades se
// resuelven en el middleware contra la tabla de roles configurada.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Generate firma un token HS256 para el usuario. Subject lleva el userID y
// cada token recibe un jti propio.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve el subject y el rol.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", ErrEmptySecret
	}
	var c Claims
	_, err = jwt.ParseWithClaims(tokenString, &c,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return "", "", fmt.Errorf("jwt: %w", err)
	}
	if c.Subject == "" {
		return "", "", fmt.Errorf("%w: subject vacío", ErrInvalidClaims)
	}
	return c.Subject, c.Role, nil
}
