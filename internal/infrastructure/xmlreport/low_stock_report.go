// Package xmlreport genera el reporte de stock bajo en XML con etree.
package xmlreport

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/kombaos/inventario-api/internal/application/inventory"
)

var _ inventory.LowStockReportRenderer = (*LowStockReportRenderer)(nil)

// LowStockReportRenderer implementa inventory.LowStockReportRenderer.
//
// Estructura:
//
//	<lowStockReport generatedAt="..." total="N">
//	  <title>...</title>
//	  <alert materialId="...">
//	    <name/> <unit/> <stock/> <minStock/> <shortage/>
//	  </alert>
//	</lowStockReport>
type LowStockReportRenderer struct{}

// NewLowStockReportRenderer construye el renderer.
func NewLowStockReportRenderer() *LowStockReportRenderer { return &LowStockReportRenderer{} }

// ContentType tipo MIME del documento.
func (g *LowStockReportRenderer) ContentType() string { return "application/xml" }

// Extension extensión del archivo generado.
func (g *LowStockReportRenderer) Extension() string { return "xml" }

// Render serializa el reporte con sangría de dos espacios.
func (g *LowStockReportRenderer) Render(_ context.Context, report inventory.LowStockReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("lowStockReport")
	root.CreateAttr("generatedAt", report.GeneratedAt)
	root.CreateAttr("total", strconv.Itoa(len(report.Alerts)))
	root.CreateElement("title").SetText(report.Title)

	for _, a := range report.Alerts {
		el := root.CreateElement("alert")
		el.CreateAttr("materialId", a.MaterialID)
		el.CreateElement("name").SetText(a.Name)
		el.CreateElement("unit").SetText(a.Unit)
		el.CreateElement("stock").SetText(a.Stock.String())
		el.CreateElement("minStock").SetText(a.MinStock.String())
		el.CreateElement("shortage").SetText(a.MinStock.Sub(a.Stock).String())
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xml: serializar reporte: %w", err)
	}
	return out.Bytes(), nil
}
