// Package pricing implementa el modelo de costo/precio/utilidad (servicio de
// dominio, puro). Ningún otro componente puede derivar precio o utilidad por
// su cuenta: compras, ventas y lecturas pasan por aquí.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain"
)

// DefaultMarginPercent es la utilidad estándar cuando nadie fija precio ni
// margen explícito: precio = costo / 0.60.
var DefaultMarginPercent = decimal.NewFromInt(40)

var hundred = decimal.NewFromInt(100)

// PriceFromCost deriva el precio de venta a partir del costo y el porcentaje
// de utilidad: precio = costo / (1 - margen/100).
// Retorna ErrInvalidMargin con margen >= 100 (división por cero o negativa)
// o margen < 0.
func PriceFromCost(cost, marginPercent decimal.Decimal) (decimal.Decimal, error) {
	if marginPercent.GreaterThanOrEqual(hundred) || marginPercent.IsNegative() {
		return decimal.Zero, domain.ErrInvalidMargin
	}
	divisor := decimal.NewFromInt(1).Sub(marginPercent.Div(hundred))
	return cost.Div(divisor), nil
}

// Profit es la utilidad unitaria en dinero.
func Profit(cost, price decimal.Decimal) decimal.Decimal {
	return price.Sub(cost)
}

// MarginPercent es el porcentaje de utilidad sobre el costo; 0 cuando no hay
// costo (evita división por cero en productos sin valuación).
func MarginPercent(cost, profit decimal.Decimal) decimal.Decimal {
	if !cost.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return profit.Div(cost).Mul(hundred)
}

// Round2 redondea a 2 decimales. Se aplica únicamente al persistir, nunca en
// cálculos intermedios, para no acumular error de redondeo.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
