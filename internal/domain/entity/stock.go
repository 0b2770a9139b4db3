package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialStock stock actual de un material. Derivado del libro de movimientos, nunca almacenado.
type MaterialStock struct {
	MaterialID string
	Stock      decimal.Decimal
}

// MaterialStockThreshold stock mínimo configurado para un material (a lo sumo uno por material).
type MaterialStockThreshold struct {
	MaterialID string
	MinStock   decimal.Decimal // siempre >= 0
	UpdatedAt  time.Time
}

// LowStockAlert material con umbral cuyo stock actual es estrictamente menor al mínimo.
type LowStockAlert struct {
	MaterialID string
	Name       string
	Unit       string
	Stock      decimal.Decimal
	MinStock   decimal.Decimal
}

// StockStatus estado de un material respecto de su umbral ("BAJO"/"OK" en el panel).
type StockStatus string

// Estados posibles de un material.
const (
	StockStatusNoThreshold StockStatus = "NO_THRESHOLD"
	StockStatusOK          StockStatus = "OK"
	StockStatusLow         StockStatus = "LOW"
)

// MaterialStockStatus stock actual, umbral (si existe) y estado de un material.
type MaterialStockStatus struct {
	MaterialID string
	Stock      decimal.Decimal
	MinStock   *decimal.Decimal
	Status     StockStatus
}
