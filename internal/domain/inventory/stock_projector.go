package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// Delta devuelve el efecto con signo de un movimiento sobre el stock.
// IN suma, OUT resta y ADJUST suma su cantidad tal cual (puede ser negativa).
// La cantidad no se reinterpreta: el libro ya fue validado al agregar.
func Delta(m *entity.InventoryMovement) decimal.Decimal {
	switch m.Type {
	case entity.MovementTypeIN, entity.MovementTypeADJUST:
		return m.Quantity
	case entity.MovementTypeOUT:
		return m.Quantity.Neg()
	}
	return decimal.Zero
}

// ProjectStock pliega los movimientos (en orden de creación) en un único stock con signo.
// Función pura: sin piso en cero, el stock negativo se expone para detectar errores de captura.
func ProjectStock(movements []*entity.InventoryMovement) decimal.Decimal {
	stock := decimal.Zero
	for _, m := range movements {
		if m == nil {
			continue
		}
		stock = stock.Add(Delta(m))
	}
	return stock
}
