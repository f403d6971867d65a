package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
)

// LotQuantity suma las cantidades de todos los lotes. Puede ser menor que la
// cantidad del registro cuando parte del stock entró antes de activarse el
// control de lotes.
func LotQuantity(lots []entity.Lot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.Quantity)
	}
	return total
}

// ConsumeLots descuenta qty de los lotes en orden de vencimiento ascendente
// (primero el que vence antes; los lotes sin vencimiento van al final),
// consumiendo parcialmente el último lote tocado si hace falta.
// Retorna los lotes restantes y el costo realmente consumido
// (sum cantidadConsumida * costoUnitarioDelLote), que alimenta el costo de
// mercancía vendida del resumen diario.
// Retorna ErrInsufficientStock si los lotes no cubren qty; en ese caso los
// lotes de entrada no se modifican.
func ConsumeLots(lots []entity.Lot, qty decimal.Decimal) ([]entity.Lot, decimal.Decimal, error) {
	if LotQuantity(lots).LessThan(qty) {
		return nil, decimal.Zero, domain.ErrInsufficientStock
	}

	ordered := make([]entity.Lot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Expiry, ordered[j].Expiry
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	remaining := qty
	costBasis := decimal.Zero
	var kept []entity.Lot
	for _, lot := range ordered {
		if !remaining.GreaterThan(decimal.Zero) {
			kept = append(kept, lot)
			continue
		}
		if lot.Quantity.LessThanOrEqual(remaining) {
			// Lote agotado por completo
			costBasis = costBasis.Add(lot.Quantity.Mul(lot.UnitCost))
			remaining = remaining.Sub(lot.Quantity)
			continue
		}
		// Consumo parcial: el lote sobrevive con el saldo
		costBasis = costBasis.Add(remaining.Mul(lot.UnitCost))
		lot.Quantity = lot.Quantity.Sub(remaining)
		remaining = decimal.Zero
		kept = append(kept, lot)
	}
	return kept, costBasis, nil
}
