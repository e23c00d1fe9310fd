// Package taxid valida identificaciones tributarias colombianas de clientes.
package taxid

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid identificación mal formada o con dígito de verificación incorrecto.
var ErrInvalid = errors.New("taxid: identificación inválida")

// pesos módulo 11 de la DIAN, aplicados de derecha a izquierda sobre el número sin DV.
var weights = [...]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// CheckDigit dígito de verificación de un NIT (solo dígitos, sin DV).
func CheckDigit(number string) (int, error) {
	if number == "" || len(number) > len(weights) {
		return 0, fmt.Errorf("%w: el NIT debe tener entre 1 y %d dígitos", ErrInvalid, len(weights))
	}
	sum := 0
	for i := 0; i < len(number); i++ {
		c := number[len(number)-1-i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q no es numérico", ErrInvalid, number)
		}
		sum += int(c-'0') * weights[i]
	}
	r := sum % 11
	if r > 1 {
		return 11 - r, nil
	}
	return r, nil
}

// Normalize quita puntos y espacios. "900.123.456 - 8" -> "900123456-8".
func Normalize(id string) string {
	var b strings.Builder
	for _, r := range id {
		if unicode.IsDigit(r) || r == '-' || unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate acepta documentos sin DV (cédula, pasaporte) tal cual y verifica el DV
// cuando viene en la forma NIT-DV.
func Validate(id string) (string, error) {
	n := Normalize(id)
	number, dv, ok := strings.Cut(n, "-")
	if !ok {
		return n, nil
	}
	if len(dv) != 1 || dv[0] < '0' || dv[0] > '9' {
		return "", fmt.Errorf("%w: dígito de verificación %q", ErrInvalid, dv)
	}
	want, err := CheckDigit(number)
	if err != nil {
		return "", err
	}
	if int(dv[0]-'0') != want {
		return "", fmt.Errorf("%w: dígito de verificación esperado %d", ErrInvalid, want)
	}
	return n, nil
}
