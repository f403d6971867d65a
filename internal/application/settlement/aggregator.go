package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
	domainsettle "github.com/yorbis/ferreteria-api/internal/domain/settlement"
	"github.com/yorbis/ferreteria-api/pkg/logger"
)

// Aggregator acumula ventas confirmadas en el resumen de venta diaria por
// sucursal y casilla de método de pago. Corre después del commit de la venta,
// fuera de su transacción: una falla aquí se registra en el log y no invalida
// la venta (el resumen se puede reconstruir reproduciendo las ventas del día).
//
// Apply es aditivo, no idempotente: reaplicar la misma venta duplica los
// montos. La guarda contra re-aplicación es responsabilidad del caller.
type Aggregator struct {
	repo repository.SettlementRepository
	log  *logger.Logger
}

// NewAggregator construye el agregador.
func NewAggregator(repo repository.SettlementRepository, log *logger.Logger) *Aggregator {
	return &Aggregator{repo: repo, log: log}
}

// Apply suma los pagos de la venta a sus casillas y el costo de mercancía al
// acumulado del día. Un método de pago no reconocido no cae en ninguna
// casilla: se descarta de los totales con una advertencia en el log
// (comportamiento heredado, preservado a propósito).
func (a *Aggregator) Apply(sale *entity.Sale) error {
	totals := make(map[entity.Bucket]decimal.Decimal)
	for _, p := range sale.Payments {
		bucket, ok := domainsettle.BucketForMethod(p.Method)
		if !ok {
			a.log.Warn().
				Str("venta", sale.ID).
				Str("metodo", p.Method).
				Str("monto", p.Amount.String()).
				Msg("método de pago sin casilla, monto excluido del resumen")
			continue
		}
		totals[bucket] = totals[bucket].Add(p.Amount)
	}
	return a.repo.AddTotals(sale.BranchID, sale.Date, totals, sale.CostOfGoods)
}

// ApplyAsync ejecuta Apply en background, registrando la falla sin propagarla.
func (a *Aggregator) ApplyAsync(sale *entity.Sale) {
	go func() {
		if err := a.Apply(sale); err != nil {
			a.log.Error().
				Err(err).
				Str("venta", sale.ID).
				Str("sucursal", sale.BranchID).
				Str("fecha", sale.Date).
				Msg("no se pudo acumular la venta en el resumen diario")
		}
	}()
}
