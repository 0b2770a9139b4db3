package xmlreport_test

import (
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/infrastructure/xmlreport"
)

func TestLowStockReportRenderer_XMLParseable(t *testing.T) {
	out, err := xmlreport.NewLowStockReportRenderer().Render(context.Background(), inventory.LowStockReport{
		Title:       "Reporte de stock bajo",
		GeneratedAt: "2026-01-02T03:04:05Z",
		Alerts: []entity.LowStockAlert{
			{MaterialID: "m-1", Name: "Tinte índigo", Unit: "l", Stock: decimal.RequireFromString("1.5"), MinStock: decimal.NewFromInt(4)},
			{MaterialID: "m-2", Name: "Hilo & cordón", Unit: "m", Stock: decimal.NewFromInt(-3), MinStock: decimal.Zero},
		},
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("lowStockReport")
	require.NotNil(t, root)
	assert.Equal(t, "2", root.SelectAttrValue("total", ""))

	alerts := root.SelectElements("alert")
	require.Len(t, alerts, 2)
	assert.Equal(t, "m-1", alerts[0].SelectAttrValue("materialId", ""))
	assert.Equal(t, "Tinte índigo", alerts[0].SelectElement("name").Text())
	assert.Equal(t, "2.5", alerts[0].SelectElement("shortage").Text())
	assert.Equal(t, "Hilo & cordón", alerts[1].SelectElement("name").Text(), "el texto se escapa y se recupera")
	assert.Equal(t, "-3", alerts[1].SelectElement("stock").Text())
}
