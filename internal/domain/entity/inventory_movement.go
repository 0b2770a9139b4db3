package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN     MovementType = "IN"     // entrada
	MovementTypeOUT    MovementType = "OUT"    // salida
	MovementTypeADJUST MovementType = "ADJUST" // ajuste (delta con signo)
)

// Valid indica si el tipo es uno de los tres tipos conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUST:
		return true
	}
	return false
}

// InventoryMovement es un registro inmutable del libro de movimientos de un material.
// Las correcciones se hacen agregando un movimiento compensatorio, nunca editando.
type InventoryMovement struct {
	ID             string
	MaterialID     string
	Type           MovementType
	Quantity       decimal.Decimal // IN/OUT positivo; ADJUST con signo
	Reason         string
	IdempotencyKey string // opcional, único por material
	CreatedAt      time.Time
}
