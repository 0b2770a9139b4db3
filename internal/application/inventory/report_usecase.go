package inventory

import (
	"context"
	"fmt"
	"time"
)

// ReportUseCase exporta el conjunto de alertas de stock bajo a un formato descargable.
type ReportUseCase struct {
	alerts    *AlertUseCase
	renderers map[string]LowStockReportRenderer
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso con los renderers disponibles (indexados por extensión).
func NewReportUseCase(alerts *AlertUseCase, renderers ...LowStockReportRenderer) *ReportUseCase {
	byExt := make(map[string]LowStockReportRenderer, len(renderers))
	for _, r := range renderers {
		byExt[r.Extension()] = r
	}
	return &ReportUseCase{alerts: alerts, renderers: byExt, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Export genera el reporte de stock bajo en el formato pedido ("pdf", "xml").
//
// Retorna:
//   - (contenido, contentType, filename, nil) si todo sale bien.
//   - error envuelto si el formato no está registrado o falla la generación.
func (uc *ReportUseCase) Export(ctx context.Context, format string) (content []byte, contentType, filename string, err error) {
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, "", "", fmt.Errorf("reporte: formato %q no soportado", format)
	}

	// ── 1. Calcular alertas ───────────────────────────────────────────────────
	alerts, err := uc.alerts.LowStock(ctx)
	if err != nil {
		return nil, "", "", fmt.Errorf("reporte: calcular alertas: %w", err)
	}

	// ── 2. Generar documento ──────────────────────────────────────────────────
	now := uc.now().UTC()
	content, err = renderer.Render(ctx, LowStockReport{
		Title:       "Reporte de stock bajo",
		GeneratedAt: now.Format(time.RFC3339),
		Alerts:      alerts,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("reporte: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("stock_bajo_%s.%s", now.Format("20060102_150405"), renderer.Extension())
	return content, renderer.ContentType(), filename, nil
}
