package inventory

import "github.com/shopspring/decimal"

// AverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock actual cero o negativo, el costo de la entrada manda.
func AverageCost(currentQty, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if !currentQty.GreaterThan(decimal.Zero) {
		return inCost
	}
	sum := currentQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
