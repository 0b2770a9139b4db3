package entity

import "time"

// Material representa una materia prima del catálogo (lana, tinte, hilo...).
// El inventario solo necesita su identidad y su unidad; el resto es dato de catálogo.
type Material struct {
	ID        string
	Name      string
	Unit      string // unidad de despliegue, ej. "kg"
	Supplier  string
	Origin    string
	Certified bool
	CostCents *int64  // costo en unidades mínimas de la moneda (centavos)
	Currency  *string // ISO-4217, obligatorio si CostCents está presente
	CreatedAt time.Time
}
