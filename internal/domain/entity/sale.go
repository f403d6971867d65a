package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatusProcessed es el único estado posible de una venta en el núcleo:
// las ventas se insertan ya confirmadas, dentro de la misma transacción que
// descuenta el inventario, y son inmutables después.
const SaleStatusProcessed = "procesada"

// SaleItem es una línea de venta ya resuelta contra el inventario.
// CostBasis es el costo real consumido (por lotes o promedio ponderado).
type SaleItem struct {
	ProductID string          `json:"producto_id"`
	Code      string          `json:"codigo,omitempty"`
	Name      string          `json:"nombre"`
	Quantity  decimal.Decimal `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	LineTotal decimal.Decimal `json:"total_linea"`
	CostBasis decimal.Decimal `json:"costo_consumido"`
}

// Payment es una entrada del desglose de pago de una venta.
type Payment struct {
	Method  string          `json:"metodo"`
	Amount  decimal.Decimal `json:"monto"`
	BankRef string          `json:"referencia_banco,omitempty"`
}

// Sale representa una transacción de venta confirmada.
type Sale struct {
	ID          string
	BranchID    string
	Date        string // YYYY-MM-DD, día contable de la venta
	Items       []SaleItem
	Payments    []Payment
	Total       decimal.Decimal
	CostOfGoods decimal.Decimal // suma de CostBasis de todas las líneas
	Status      string
	CreatedAt   time.Time
	CreatedBy   string
}
