package entity

import "time"

// Product representa un producto terminado del catálogo.
// El precio se guarda siempre como entero en la unidad mínima de la moneda.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Currency    string // ISO-4217
	Active      bool
	CreatedAt   time.Time
}
