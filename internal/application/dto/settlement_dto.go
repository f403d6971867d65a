package dto

import "github.com/shopspring/decimal"

// SettlementSummaryResponse resumen de venta diaria de una sucursal.
// Las casillas siguen el formulario del cuadre de caja; net_sales se calcula
// en cada lectura (suma de casillas menos devoluciones).
type SettlementSummaryResponse struct {
	BranchID    string                     `json:"sucursal"`
	Date        string                     `json:"fecha"`
	Totals      map[string]decimal.Decimal `json:"totales"`
	CostOfGoods decimal.Decimal            `json:"costo_mercancia"`
	NetSales    decimal.Decimal            `json:"venta_neta"`
}
