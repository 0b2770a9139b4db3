package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// Límites de texto aceptados por el libro.
const (
	MaxReasonLength         = 200
	MaxIdempotencyKeyLength = 100
)

// Límites numéricos de cantidades y stock mínimo: caben en un NUMERIC de
// Postgres y en el TEXT de SQLite sin perder precisión.
const (
	MaxDecimalPlaces = 12
	MaxIntegerDigits = 16
)

// ValidateMovement valida tipo y cantidad antes de cualquier escritura.
// Nunca corrige valores: una cantidad cero o un IN/OUT negativo se rechazan.
func ValidateMovement(t entity.MovementType, quantity decimal.Decimal) error {
	if !t.Valid() {
		return fmt.Errorf("%w: tipo de movimiento desconocido %q (use IN, OUT o ADJUST)", domain.ErrInvalidInput, string(t))
	}
	if quantity.IsZero() {
		return fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrInvalidInput)
	}
	if err := validateRange("quantity", quantity); err != nil {
		return err
	}
	if (t == entity.MovementTypeIN || t == entity.MovementTypeOUT) && quantity.IsNegative() {
		return fmt.Errorf("%w: la cantidad debe ser positiva para movimientos IN/OUT", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateMinStock valida el stock mínimo de un umbral (>= 0, sin recortes).
func ValidateMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return fmt.Errorf("%w: minStock debe ser >= 0", domain.ErrInvalidInput)
	}
	return validateRange("minStock", minStock)
}

// validateRange rechaza escalas o magnitudes fuera de rango. Solo mira exponente y
// dígitos del coeficiente: no reescala, así "1e-20000000" se descarta sin costo.
func validateRange(field string, v decimal.Decimal) error {
	exp := int64(v.Exponent())
	if exp < -MaxDecimalPlaces {
		return fmt.Errorf("%w: %s admite máximo %d decimales", domain.ErrInvalidInput, field, MaxDecimalPlaces)
	}
	if int64(v.NumDigits())+exp > MaxIntegerDigits {
		return fmt.Errorf("%w: %s admite máximo %d dígitos enteros", domain.ErrInvalidInput, field, MaxIntegerDigits)
	}
	return nil
}
