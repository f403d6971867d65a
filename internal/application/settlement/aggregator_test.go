package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorbis/ferreteria-api/internal/application/settlement"
	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/infrastructure/memory"
	"github.com/yorbis/ferreteria-api/pkg/logger"
)

func newAggregator(t *testing.T) (*settlement.Aggregator, *memory.SettlementRepo) {
	t.Helper()
	repo := memory.NewSettlementRepository(memory.NewStore())
	return settlement.NewAggregator(repo, logger.Nop()), repo
}

func testSale(payments ...entity.Payment) *entity.Sale {
	return &entity.Sale{
		ID:          "venta-1",
		BranchID:    "suc-1",
		Date:        "2026-08-28",
		Payments:    payments,
		CostOfGoods: decimal.NewFromInt(150),
	}
}

// TestAggregatorApply_CasillasPorMetodo: cada pago cae en su casilla y el
// costo de mercancía se acumula aparte.
func TestAggregatorApply_CasillasPorMetodo(t *testing.T) {
	agg, repo := newAggregator(t)

	sale := testSale(
		entity.Payment{Method: "efectivo_usd", Amount: decimal.NewFromInt(100)},
		entity.Payment{Method: "zelle", Amount: decimal.NewFromInt(50)},
		entity.Payment{Method: "Pago Movil", Amount: decimal.NewFromInt(30)},
	)
	require.NoError(t, agg.Apply(sale))

	summary, err := repo.Get("suc-1", "2026-08-28")
	require.NoError(t, err)
	assert.True(t, summary.Totals[entity.BucketCashForeign].Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.Totals[entity.BucketWireForeign].Equal(decimal.NewFromInt(50)))
	assert.True(t, summary.Totals[entity.BucketMobileLocal].Equal(decimal.NewFromInt(30)))
	assert.True(t, summary.CostOfGoods.Equal(decimal.NewFromInt(150)))
	assert.True(t, summary.NetSales().Equal(decimal.NewFromInt(180)))
}

// TestAggregatorApply_MetodoDesconocidoSeDescarta: el monto de un método sin
// casilla no entra a ningún total (solo queda la advertencia en el log).
func TestAggregatorApply_MetodoDesconocidoSeDescarta(t *testing.T) {
	agg, repo := newAggregator(t)

	sale := testSale(
		entity.Payment{Method: "efectivo", Amount: decimal.NewFromInt(20)},
		entity.Payment{Method: "criptomoneda", Amount: decimal.NewFromInt(500)},
	)
	require.NoError(t, agg.Apply(sale))

	summary, err := repo.Get("suc-1", "2026-08-28")
	require.NoError(t, err)
	assert.True(t, summary.Totals[entity.BucketCashLocal].Equal(decimal.NewFromInt(20)))
	assert.True(t, summary.NetSales().Equal(decimal.NewFromInt(20)), "el monto desconocido no debe sumar")
}

// TestAggregatorApply_EsAditivoNoIdempotente: aplicar dos veces la misma
// venta duplica los montos. La guarda contra re-aplicación es del caller.
func TestAggregatorApply_EsAditivoNoIdempotente(t *testing.T) {
	agg, repo := newAggregator(t)
	sale := testSale(entity.Payment{Method: "efectivo_usd", Amount: decimal.NewFromInt(40)})

	require.NoError(t, agg.Apply(sale))
	require.NoError(t, agg.Apply(sale))

	summary, err := repo.Get("suc-1", "2026-08-28")
	require.NoError(t, err)
	assert.True(t, summary.Totals[entity.BucketCashForeign].Equal(decimal.NewFromInt(80)))
	assert.True(t, summary.CostOfGoods.Equal(decimal.NewFromInt(300)))
}

// TestAggregatorApply_DevolucionesRestanDeLaVentaNeta: las devoluciones se
// acumulan en positivo en su casilla pero restan en la venta neta.
func TestAggregatorApply_DevolucionesRestanDeLaVentaNeta(t *testing.T) {
	agg, repo := newAggregator(t)

	sale := testSale(
		entity.Payment{Method: "efectivo", Amount: decimal.NewFromInt(100)},
		entity.Payment{Method: "devoluciones", Amount: decimal.NewFromInt(25)},
	)
	require.NoError(t, agg.Apply(sale))

	summary, err := repo.Get("suc-1", "2026-08-28")
	require.NoError(t, err)
	assert.True(t, summary.Totals[entity.BucketReturns].Equal(decimal.NewFromInt(25)))
	assert.True(t, summary.NetSales().Equal(decimal.NewFromInt(75)))
}

// TestQueryGetSummary_DiaSinVentasEnCeros: un día sin movimiento devuelve el
// resumen con todas las casillas en cero, nunca "no encontrado".
func TestQueryGetSummary_DiaSinVentasEnCeros(t *testing.T) {
	repo := memory.NewSettlementRepository(memory.NewStore())
	uc := settlement.NewQueryUseCase(repo, nil)

	summary, err := uc.GetSummary("suc-1", "2026-01-15")
	require.NoError(t, err)
	assert.Len(t, summary.Totals, len(entity.AllBuckets))
	for b, v := range summary.Totals {
		assert.True(t, v.IsZero(), "casilla %s debe estar en cero", b)
	}
	assert.True(t, summary.NetSales().IsZero())
}

// TestQueryGetSummary_EntradaInvalida: sucursal vacía o fecha malformada.
func TestQueryGetSummary_EntradaInvalida(t *testing.T) {
	uc := settlement.NewQueryUseCase(memory.NewSettlementRepository(memory.NewStore()), nil)

	_, err := uc.GetSummary("", "2026-01-15")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetSummary("suc-1", "15/01/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestQueryGetRange_SoloDiasConMovimiento: el rango devuelve únicamente los
// días con ventas, en orden, y rechaza rangos invertidos.
func TestQueryGetRange_SoloDiasConMovimiento(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewSettlementRepository(store)
	agg := settlement.NewAggregator(repo, logger.Nop())
	uc := settlement.NewQueryUseCase(repo, nil)

	for _, date := range []string{"2026-08-25", "2026-08-27"} {
		sale := testSale(entity.Payment{Method: "efectivo", Amount: decimal.NewFromInt(10)})
		sale.Date = date
		require.NoError(t, agg.Apply(sale))
	}

	list, err := uc.GetRange("suc-1", "2026-08-24", "2026-08-28")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-08-25", list[0].Date)
	assert.Equal(t, "2026-08-27", list[1].Date)

	_, err = uc.GetRange("suc-1", "2026-08-28", "2026-08-24")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
