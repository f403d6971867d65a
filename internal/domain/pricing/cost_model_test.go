package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/pricing"
)

// TestPriceFromCost_MargenPorDefecto: con el 40% estándar, un costo de 60
// produce exactamente 100 (precio = costo / 0.60).
func TestPriceFromCost_MargenPorDefecto(t *testing.T) {
	price, err := pricing.PriceFromCost(decimal.NewFromInt(60), pricing.DefaultMarginPercent)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(100)), "precio esperado 100, fue %s", price)

	profit := pricing.Profit(decimal.NewFromInt(60), price)
	assert.True(t, profit.Equal(decimal.NewFromInt(40)))
	assert.True(t, pricing.MarginPercent(decimal.NewFromInt(60), profit).
		Round(2).Equal(decimal.NewFromFloat(66.67)),
		"el margen se expresa sobre el costo, no sobre el precio")
}

// TestPriceFromCost_RedondeoSoloAlPersistir: el precio crudo conserva los
// decimales; Round2 es una decisión del punto de persistencia.
func TestPriceFromCost_RedondeoSoloAlPersistir(t *testing.T) {
	price, err := pricing.PriceFromCost(decimal.NewFromInt(5), pricing.DefaultMarginPercent)
	require.NoError(t, err)
	assert.True(t, pricing.Round2(price).Equal(decimal.NewFromFloat(8.33)), "5/0.60 redondeado = 8.33, fue %s", pricing.Round2(price))
	assert.False(t, price.Equal(pricing.Round2(price)), "el valor crudo no debe venir redondeado")
}

// TestPriceFromCost_MargenInvalido: margen >= 100 o negativo rechazado.
func TestPriceFromCost_MargenInvalido(t *testing.T) {
	for _, margin := range []int64{100, 150, -1} {
		_, err := pricing.PriceFromCost(decimal.NewFromInt(10), decimal.NewFromInt(margin))
		assert.ErrorIs(t, err, domain.ErrInvalidMargin, "margen %d", margin)
	}
}

// TestMarginPercent_SinCosto: sin costo no hay margen calculable; retorna 0
// en lugar de dividir por cero.
func TestMarginPercent_SinCosto(t *testing.T) {
	got := pricing.MarginPercent(decimal.Zero, decimal.NewFromInt(10))
	assert.True(t, got.IsZero())
}
