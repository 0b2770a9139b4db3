package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/application/usecase"
	"github.com/kombaos/inventario-api/internal/infrastructure/pdf"
	"github.com/kombaos/inventario-api/internal/infrastructure/storage"
	"github.com/kombaos/inventario-api/internal/infrastructure/xmlreport"
	apphttp "github.com/kombaos/inventario-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el backend en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	b := storage.NewMemory()
	t.Cleanup(b.Close)

	alerts := inventory.NewAlertUseCase(b.Materials, b.Movements, b.Thresholds, 2)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "inventario-test",
		Ledger:      inventory.NewLedgerUseCase(b.TxRunner, b.Materials, b.Movements),
		Stock:       inventory.NewStockUseCase(b.Materials, b.Movements),
		Thresholds:  inventory.NewThresholdUseCase(b.TxRunner, b.Materials, b.Thresholds),
		Alerts:      alerts,
		Reports:     inventory.NewReportUseCase(alerts, pdf.NewLowStockReportRenderer(), xmlreport.NewLowStockReportRenderer()),
		MaterialUC:  usecase.NewMaterialUseCase(b.Materials, b.TxRunner),
		ProductUC:   usecase.NewProductUseCase(b.Products),
	})
	return app
}

// do ejecuta la petición y devuelve status y cuerpo.
func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func createMaterial(t *testing.T, app *fiber.App, body string) dto.MaterialResponse {
	t.Helper()
	status, raw := do(t, app, http.MethodPost, "/api/materials", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.MaterialResponse](t, raw)
}

func postMovement(t *testing.T, app *fiber.App, materialID, typ, qty string) dto.MovementResponse {
	t.Helper()
	body := `{"materialId":"` + materialID + `","type":"` + typ + `","quantity":` + qty + `}`
	status, raw := do(t, app, http.MethodPost, "/api/inventory/movements", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.MovementResponse](t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	status, raw := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"status":"ok"`)
}

func TestMovements_AppendAndProjectStock(t *testing.T) {
	app := buildTestApp(t)
	m := createMaterial(t, app, `{"name":"Algodón orgánico","unit":"kg"}`)

	postMovement(t, app, m.ID, "IN", "10")
	postMovement(t, app, m.ID, "out", "3.5")
	postMovement(t, app, m.ID, "ADJUST", "-1")

	status, raw := do(t, app, http.MethodGet, "/api/materials/"+m.ID+"/stock", "")
	require.Equal(t, http.StatusOK, status)
	stock := decode[dto.MaterialStockResponse](t, raw)
	assert.Equal(t, m.ID, stock.MaterialID)
	assert.True(t, decimal.RequireFromString("5.5").Equal(stock.Stock), stock.Stock.String())

	status, raw = do(t, app, http.MethodGet, "/api/inventory/movements?materialId="+m.ID, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]dto.MovementResponse](t, raw)
	require.Len(t, list, 3)
	assert.Equal(t, "IN", list[0].Type)
	assert.Equal(t, "OUT", list[1].Type)
	assert.Equal(t, "ADJUST", list[2].Type)

	status, raw = do(t, app, http.MethodGet, "/api/inventory/movements/"+list[1].ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, list[1].ID, decode[dto.MovementResponse](t, raw).ID)
}

func TestMovements_IdempotentReplay(t *testing.T) {
	app := buildTestApp(t)
	m := createMaterial(t, app, `{"name":"Lino","unit":"m"}`)
	body := `{"materialId":"` + m.ID + `","type":"IN","quantity":"4"}`

	status, raw := do(t, app, http.MethodPost, "/api/inventory/movements", body, "Idempotency-Key", "compra-001")
	require.Equal(t, http.StatusCreated, status, string(raw))
	first := decode[dto.MovementResponse](t, raw)

	status, raw = do(t, app, http.MethodPost, "/api/inventory/movements", body, "Idempotency-Key", "compra-001")
	require.Equal(t, http.StatusOK, status, string(raw))
	replay := decode[dto.MovementResponse](t, raw)
	assert.Equal(t, first.ID, replay.ID)

	_, raw = do(t, app, http.MethodGet, "/api/inventory/movements?materialId="+m.ID, "")
	assert.Len(t, decode[[]dto.MovementResponse](t, raw), 1)
}

func TestMovements_Errors(t *testing.T) {
	app := buildTestApp(t)
	m := createMaterial(t, app, `{"name":"Cáñamo","unit":"kg"}`)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"cantidad cero", `{"materialId":"` + m.ID + `","type":"IN","quantity":0}`, http.StatusBadRequest, "VALIDATION"},
		{"IN negativo", `{"materialId":"` + m.ID + `","type":"IN","quantity":-2}`, http.StatusBadRequest, "VALIDATION"},
		{"tipo desconocido", `{"materialId":"` + m.ID + `","type":"MOVE","quantity":2}`, http.StatusBadRequest, "VALIDATION"},
		{"material inexistente", `{"materialId":"no-existe","type":"IN","quantity":2}`, http.StatusNotFound, "NOT_FOUND"},
		{"json roto", `{"materialId":`, http.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := do(t, app, http.MethodPost, "/api/inventory/movements", tt.body)
			assert.Equal(t, tt.wantStatus, status, string(raw))
			assert.Equal(t, tt.wantCode, decode[dto.ErrorResponse](t, raw).Code)
		})
	}

	_, raw := do(t, app, http.MethodPost, "/api/inventory/movements", `{"materialId":"`+m.ID+`","type":"IN","quantity":0}`)
	assert.Equal(t, "la cantidad no puede ser cero", decode[dto.ErrorResponse](t, raw).Message)

	status, _ := do(t, app, http.MethodGet, "/api/inventory/movements/no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, "/api/inventory/movements?materialId=no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMovements_DecimalesFueraDeRango(t *testing.T) {
	app := buildTestApp(t)
	m := createMaterial(t, app, `{"name":"Bambú","unit":"kg"}`)

	for _, qty := range []string{`"1e-20000000"`, `1e-20000000`, `"0.0000000000001"`, `"1e20"`} {
		status, raw := do(t, app, http.MethodPost, "/api/inventory/movements",
			`{"materialId":"`+m.ID+`","type":"IN","quantity":`+qty+`}`)
		assert.Equal(t, http.StatusBadRequest, status, qty)
		assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)
	}
	for _, minStock := range []string{`"1e-20000000"`, `"1e17"`} {
		status, raw := do(t, app, http.MethodPut, "/api/materials/"+m.ID+"/threshold", `{"minStock":`+minStock+`}`)
		assert.Equal(t, http.StatusBadRequest, status, minStock)
		assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)
	}

	_, raw := do(t, app, http.MethodGet, "/api/inventory/movements?materialId="+m.ID, "")
	assert.Empty(t, decode[[]dto.MovementResponse](t, raw), "nada se escribe al libro")
	status, _ := do(t, app, http.MethodGet, "/api/materials/"+m.ID+"/threshold", "")
	assert.Equal(t, http.StatusNotFound, status)

	postMovement(t, app, m.ID, "IN", `"0.000000000001"`)
	status, raw = do(t, app, http.MethodGet, "/api/materials/"+m.ID+"/stock", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decimal.RequireFromString("0.000000000001").Equal(decode[dto.MaterialStockResponse](t, raw).Stock))
}

func TestThresholdsAndAlerts(t *testing.T) {
	app := buildTestApp(t)
	m := createMaterial(t, app, `{"name":"Seda","unit":"m"}`)
	postMovement(t, app, m.ID, "IN", "10")

	status, _ := do(t, app, http.MethodGet, "/api/materials/"+m.ID+"/threshold", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, raw := do(t, app, http.MethodGet, "/api/materials/"+m.ID+"/status", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "NO_THRESHOLD", decode[dto.MaterialStatusResponse](t, raw).Status)

	status, raw = do(t, app, http.MethodPut, "/api/materials/"+m.ID+"/threshold", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = do(t, app, http.MethodPut, "/api/materials/"+m.ID+"/threshold", `{"minStock":-1}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// stock == mínimo no es stock bajo
	status, raw = do(t, app, http.MethodPut, "/api/materials/"+m.ID+"/threshold", `{"minStock":10}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	_, raw = do(t, app, http.MethodGet, "/api/inventory/alerts/low-stock", "")
	assert.Empty(t, decode[[]dto.LowStockAlertResponse](t, raw))

	status, _ = do(t, app, http.MethodPut, "/api/materials/"+m.ID+"/threshold", `{"minStock":"12.5"}`)
	require.Equal(t, http.StatusOK, status)

	_, raw = do(t, app, http.MethodGet, "/api/inventory/alerts/low-stock", "")
	alerts := decode[[]dto.LowStockAlertResponse](t, raw)
	require.Len(t, alerts, 1)
	assert.Equal(t, m.ID, alerts[0].MaterialID)
	assert.Equal(t, "Seda", alerts[0].Name)
	assert.True(t, decimal.NewFromInt(10).Equal(alerts[0].Stock))
	assert.True(t, decimal.RequireFromString("12.5").Equal(alerts[0].MinStock))

	_, raw = do(t, app, http.MethodGet, "/api/materials/"+m.ID+"/status", "")
	assert.Equal(t, "LOW", decode[dto.MaterialStatusResponse](t, raw).Status)

	status, _ = do(t, app, http.MethodDelete, "/api/materials/"+m.ID+"/threshold", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, app, http.MethodDelete, "/api/materials/"+m.ID+"/threshold", "")
	assert.Equal(t, http.StatusNoContent, status)

	_, raw = do(t, app, http.MethodGet, "/api/inventory/alerts/low-stock", "")
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestLowStockReports(t *testing.T) {
	app := buildTestApp(t)
	m := createMaterial(t, app, `{"name":"Lana merino","unit":"kg"}`)
	do(t, app, http.MethodPut, "/api/materials/"+m.ID+"/threshold", `{"minStock":5}`)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/alerts/low-stock/report.xml", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xml")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `materialId="`+m.ID+`"`)

	status, raw := do(t, app, http.MethodGet, "/api/inventory/alerts/low-stock/report.pdf", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestMaterials_CRUDAndFilters(t *testing.T) {
	app := buildTestApp(t)
	a := createMaterial(t, app, `{"name":"Algodón Pima","unit":"kg","supplier":"Textiles Andinos","origin":"Perú","certified":true}`)
	createMaterial(t, app, `{"name":"Poliéster reciclado","unit":"kg","supplier":"ReFibra","certified":false}`)

	status, raw := do(t, app, http.MethodGet, "/api/materials?q=ALGOD%C3%93N", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]dto.MaterialResponse](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, raw = do(t, app, http.MethodGet, "/api/materials?supplier=textiles%20andinos&certified=true", "")
	assert.Len(t, decode[[]dto.MaterialResponse](t, raw), 1)

	_, raw = do(t, app, http.MethodGet, "/api/materials?certified=false", "")
	assert.Len(t, decode[[]dto.MaterialResponse](t, raw), 1)

	status, raw = do(t, app, http.MethodGet, "/api/materials?certified=talvez", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = do(t, app, http.MethodPut, "/api/materials/"+a.ID, `{"name":"Algodón Pima","unit":"g"}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "g", decode[dto.MaterialResponse](t, raw).Unit)

	status, raw = do(t, app, http.MethodPost, "/api/materials", `{"name":"","unit":"kg"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = do(t, app, http.MethodGet, "/api/materials/no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMaterials_DeleteWithMovementsConflicts(t *testing.T) {
	app := buildTestApp(t)
	used := createMaterial(t, app, `{"name":"Yute","unit":"kg"}`)
	unused := createMaterial(t, app, `{"name":"Bambú","unit":"kg"}`)
	postMovement(t, app, used.ID, "IN", "1")

	status, raw := do(t, app, http.MethodDelete, "/api/materials/"+used.ID, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = do(t, app, http.MethodDelete, "/api/materials/"+unused.ID, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, app, http.MethodDelete, "/api/materials/"+unused.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProducts_CRUD(t *testing.T) {
	app := buildTestApp(t)

	status, raw := do(t, app, http.MethodPost, "/api/products", `{"name":"Camiseta básica","description":"Algodón orgánico","priceCents":4500,"currency":"COP"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	p := decode[dto.ProductResponse](t, raw)
	assert.True(t, p.Active)

	status, raw = do(t, app, http.MethodPut, "/api/products/"+p.ID, `{"priceCents":5000}`)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, int64(5000), decode[dto.ProductResponse](t, raw).PriceCents)

	status, raw = do(t, app, http.MethodPost, "/api/products", `{"name":"X","description":"Y","priceCents":1,"currency":"pesos"}`)
	assert.Equal(t, http.StatusBadRequest, status, string(raw))

	_, raw = do(t, app, http.MethodGet, "/api/products", "")
	assert.Len(t, decode[[]dto.ProductResponse](t, raw), 1)

	status, _ = do(t, app, http.MethodDelete, "/api/products/"+p.ID, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, app, http.MethodGet, "/api/products/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
}
