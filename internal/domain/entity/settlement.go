package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket es una de las casillas fijas del resumen de venta diaria, una por
// método de pago del cuadre de caja.
type Bucket string

const (
	BucketCashForeign    Bucket = "efectivo_usd"
	BucketWireForeign    Bucket = "zelle_usd"
	BucketVoucherForeign Bucket = "vales_usd"
	BucketCashLocal      Bucket = "efectivo_bs"
	BucketMobileLocal    Bucket = "pago_movil_bs"
	BucketCardDebit      Bucket = "punto_debito_bs"
	BucketCardCredit     Bucket = "punto_credito_bs"
	BucketTopup          Bucket = "recarga_bs"
	BucketReturns        Bucket = "devoluciones_bs"
)

// AllBuckets enumera las casillas en el orden en que se reportan.
var AllBuckets = []Bucket{
	BucketCashForeign,
	BucketWireForeign,
	BucketVoucherForeign,
	BucketCashLocal,
	BucketMobileLocal,
	BucketCardDebit,
	BucketCardCredit,
	BucketTopup,
	BucketReturns,
}

// SettlementSummary es el acumulado diario por sucursal de ingresos por método
// de pago más el costo de mercancía vendida. Es una proyección derivada de las
// ventas: se puede reconstruir reproduciendo el historial de ventas del día.
type SettlementSummary struct {
	BranchID    string
	Date        string // YYYY-MM-DD
	Totals      map[Bucket]decimal.Decimal
	CostOfGoods decimal.Decimal
	UpdatedAt   time.Time
}

// NewSettlementSummary devuelve un resumen con todas las casillas en cero.
// Los lectores nunca ven "no encontrado" para una sucursal/fecha válida.
func NewSettlementSummary(branchID, date string) *SettlementSummary {
	totals := make(map[Bucket]decimal.Decimal, len(AllBuckets))
	for _, b := range AllBuckets {
		totals[b] = decimal.Zero
	}
	return &SettlementSummary{
		BranchID:    branchID,
		Date:        date,
		Totals:      totals,
		CostOfGoods: decimal.Zero,
	}
}

// NetSales es la suma de todas las casillas menos devoluciones. Se calcula en
// cada lectura, nunca se almacena, para eliminar deriva incremental.
func (s *SettlementSummary) NetSales() decimal.Decimal {
	net := decimal.Zero
	for b, amount := range s.Totals {
		if b == BucketReturns {
			net = net.Sub(amount)
			continue
		}
		net = net.Add(amount)
	}
	return net
}
