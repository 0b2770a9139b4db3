package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// IsLow aplica la regla de stock bajo: estrictamente menor al mínimo.
// Un stock igual al mínimo se considera OK.
func IsLow(stock, minStock decimal.Decimal) bool {
	return stock.LessThan(minStock)
}

// ClassifyStock ubica un material en la máquina de estados NO_THRESHOLD / OK / LOW.
func ClassifyStock(stock decimal.Decimal, threshold *entity.MaterialStockThreshold) entity.StockStatus {
	if threshold == nil {
		return entity.StockStatusNoThreshold
	}
	if IsLow(stock, threshold.MinStock) {
		return entity.StockStatusLow
	}
	return entity.StockStatusOK
}

// EvaluateLowStock calcula el conjunto de alertas de stock bajo.
// Solo se evalúan materiales con umbral; los umbrales de materiales inexistentes se ignoran.
// Un material sin entrada en stocks se considera con stock cero (libro vacío).
// El resultado se ordena por MaterialID solo para tener una salida estable.
func EvaluateLowStock(
	materials map[string]*entity.Material,
	stocks map[string]decimal.Decimal,
	thresholds []*entity.MaterialStockThreshold,
) []entity.LowStockAlert {
	alerts := make([]entity.LowStockAlert, 0)
	for _, t := range thresholds {
		if t == nil {
			continue
		}
		material, ok := materials[t.MaterialID]
		if !ok || material == nil {
			continue
		}
		stock := stocks[t.MaterialID]
		if !IsLow(stock, t.MinStock) {
			continue
		}
		alerts = append(alerts, entity.LowStockAlert{
			MaterialID: material.ID,
			Name:       material.Name,
			Unit:       material.Unit,
			Stock:      stock,
			MinStock:   t.MinStock,
		})
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].MaterialID < alerts[j].MaterialID })
	return alerts
}
