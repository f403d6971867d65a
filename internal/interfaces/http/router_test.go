package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorbis/ferreteria-api/internal/application/dto"
	"github.com/yorbis/ferreteria-api/internal/application/inventory"
	"github.com/yorbis/ferreteria-api/internal/application/purchasing"
	"github.com/yorbis/ferreteria-api/internal/application/sales"
	"github.com/yorbis/ferreteria-api/internal/application/settlement"
	"github.com/yorbis/ferreteria-api/internal/infrastructure/memory"
	apphttp "github.com/yorbis/ferreteria-api/internal/interfaces/http"
	"github.com/yorbis/ferreteria-api/pkg/logger"
)

// buildTestApp arma la aplicación Fiber completa sobre el almacén en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	invRepo := memory.NewInventoryRecordRepository(store)
	settlementRepo := memory.NewSettlementRepository(store)

	aggregator := settlement.NewAggregator(settlementRepo, logger.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		InventoryUC:  inventory.NewUseCase(invRepo),
		RecordSale:   sales.NewRecordSaleUseCase(txRunner, memory.NewSaleRepository(store), aggregator),
		ReceiveUC:    purchasing.NewReceivePurchaseUseCase(txRunner, memory.NewPurchaseRepository(store), invRepo),
		SettlementUC: settlement.NewQueryUseCase(settlementRepo, nil),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out := make([]byte, 0)
	if resp.Body != nil {
		b := new(bytes.Buffer)
		_, _ = b.ReadFrom(resp.Body)
		out = b.Bytes()
	}
	return resp, out
}

// TestAPI_FlujoCompraVentaCuadre recorre el flujo completo por HTTP: compra,
// búsqueda, venta y consulta del cuadre del día.
func TestAPI_FlujoCompraVentaCuadre(t *testing.T) {
	app := buildTestApp(t)

	// Compra: 100 unidades de cemento a costo 5
	resp, body := doJSON(t, app, http.MethodPost, "/api/purchases", fiber.Map{
		"sucursal":     "suc-1",
		"proveedor_id": "prov-1",
		"fecha":        "2026-08-28",
		"productos": []fiber.Map{{
			"codigo":          "CEM-1",
			"nombre":          "Cemento gris",
			"cantidad":        100,
			"precio_unitario": 5,
			"precio_total":    500,
		}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var purchaseOut dto.ReceivePurchaseResponse
	require.NoError(t, json.Unmarshal(body, &purchaseOut))
	require.Len(t, purchaseOut.AppliedLines, 1)
	assert.Empty(t, purchaseOut.FailedLines)

	// Búsqueda sin acentos ni mayúsculas
	resp, body = doJSON(t, app, http.MethodGet, "/api/products?sucursal=suc-1&q=CÉMENTO", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var found []dto.InventoryRecordResponse
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "CEM-1", found[0].Code)

	// Venta de 30 con pago en efectivo
	resp, body = doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"sucursal": "suc-1",
		"fecha":    "2026-08-28",
		"productos": []fiber.Map{{
			"producto": "CEM-1",
			"cantidad": 30,
		}},
		"pagos": []fiber.Map{{
			"metodo": "efectivo_usd",
			"monto":  250,
		}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var saleOut dto.SaleResponse
	require.NoError(t, json.Unmarshal(body, &saleOut))
	assert.Equal(t, "procesada", saleOut.Status)
	assert.True(t, saleOut.CostOfGoods.Equal(decimalFromInt(150)), "costo de mercancía 30*5")

	// El stock quedó en 70
	resp, body = doJSON(t, app, http.MethodGet, "/api/products/CEM-1?sucursal=suc-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.InventoryRecordResponse
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.True(t, rec.Quantity.Equal(decimalFromInt(70)))

	// Cuadre del día: el efectivo USD acumuló el pago. La acumulación corre en
	// un goroutine tras el commit de la venta, así que se consulta el endpoint
	// hasta que el resumen aparezca poblado.
	var summary dto.SettlementSummaryResponse
	require.Eventually(t, func() bool {
		resp, body = doJSON(t, app, http.MethodGet, "/api/settlements?sucursal=suc-1&fecha=2026-08-28", nil)
		if resp.StatusCode != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(body, &summary); err != nil {
			return false
		}
		return !summary.Totals["efectivo_usd"].IsZero()
	}, 2*time.Second, 10*time.Millisecond, "el resumen diario no se pobló a tiempo")
	assert.True(t, summary.Totals["efectivo_usd"].Equal(decimalFromInt(250)), "efectivo_usd fue %s", summary.Totals["efectivo_usd"])
	assert.True(t, summary.NetSales.Equal(decimalFromInt(250)))
	assert.True(t, summary.CostOfGoods.Equal(decimalFromInt(150)))
}

// TestAPI_VentaSinStock: la sobreventa responde 409 y no descuenta nada.
func TestAPI_VentaSinStock(t *testing.T) {
	app := buildTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/purchases", fiber.Map{
		"sucursal":     "suc-1",
		"proveedor_id": "prov-1",
		"productos": []fiber.Map{{
			"codigo": "POCO-1", "nombre": "Llave ajustable",
			"cantidad": 2, "precio_unitario": 10, "precio_total": 20,
		}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = doJSON(t, app, http.MethodPost, "/api/sales", fiber.Map{
		"sucursal":  "suc-1",
		"productos": []fiber.Map{{"producto": "POCO-1", "cantidad": 5}},
		"pagos":     []fiber.Map{{"metodo": "efectivo", "monto": 100}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errOut dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errOut))
	assert.Equal(t, "INSUFFICIENT_STOCK", errOut.Code)

	resp, body = doJSON(t, app, http.MethodGet, "/api/products/POCO-1?sucursal=suc-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.InventoryRecordResponse
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.True(t, rec.Quantity.Equal(decimalFromInt(2)))
}

// TestAPI_ProductoNoEncontrado: referencia inexistente responde 404.
func TestAPI_ProductoNoEncontrado(t *testing.T) {
	app := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/products/NO-EXISTE?sucursal=suc-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestAPI_CuadreDiaVacio: un día sin ventas responde 200 con todo en cero.
func TestAPI_CuadreDiaVacio(t *testing.T) {
	app := buildTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/settlements?sucursal=suc-1&fecha=2026-01-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary dto.SettlementSummaryResponse
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Len(t, summary.Totals, 9)
	assert.True(t, summary.NetSales.IsZero())
}

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
