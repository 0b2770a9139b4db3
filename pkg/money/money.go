// Package money valida montos en unidades mínimas (centavos) y códigos de moneda ISO-4217.
package money

import (
	"errors"
	"fmt"

	"golang.org/x/text/currency"
)

// MaxPriceCents precio máximo aceptado por el catálogo.
const MaxPriceCents int64 = 999_999_999

var (
	ErrInvalidCurrency = errors.New("moneda inválida")
	ErrInvalidAmount   = errors.New("monto inválido")
)

// ParseCurrency valida un código ISO-4217 de tres letras mayúsculas reconocido por x/text.
func ParseCurrency(code string) (string, error) {
	if len(code) != 3 {
		return "", fmt.Errorf("%w: %q debe tener 3 letras", ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q debe estar en mayúsculas", ErrInvalidCurrency, code)
		}
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q no es un código ISO-4217", ErrInvalidCurrency, code)
	}
	return unit.String(), nil
}

// ValidateCents valida un monto en centavos dentro de [0, max].
func ValidateCents(cents, max int64) error {
	if cents < 0 {
		return fmt.Errorf("%w: no puede ser negativo", ErrInvalidAmount)
	}
	if cents > max {
		return fmt.Errorf("%w: supera el máximo %d", ErrInvalidAmount, max)
	}
	return nil
}
