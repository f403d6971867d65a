package repository

import (
	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
)

// SettlementRepository define el puerto del resumen de venta diaria.
type SettlementRepository interface {
	// AddTotals suma atómicamente los montos por casilla y el costo de
	// mercancía al resumen de (sucursal, fecha), creándolo si no existe.
	// Debe ser un incremento atómico (no leer-modificar-escribir) para no
	// perder actualizaciones entre ventas concurrentes del mismo día.
	AddTotals(branchID, date string, totals map[entity.Bucket]decimal.Decimal, costOfGoods decimal.Decimal) error
	// Get retorna el resumen del día, o uno en ceros si aún no existe.
	Get(branchID, date string) (*entity.SettlementSummary, error)
	// GetRange retorna los resúmenes existentes entre dos fechas inclusive.
	GetRange(branchID, from, to string) ([]*entity.SettlementSummary, error)
}
