package dto

import "github.com/shopspring/decimal"

// SaleLineRequest una línea del body de POST /api/sales. Ref puede ser el ID
// del registro de inventario o el código del producto en la sucursal.
type SaleLineRequest struct {
	Ref      string          `json:"producto"`
	Quantity decimal.Decimal `json:"cantidad"`
}

// PaymentRequest una entrada del desglose de pago.
type PaymentRequest struct {
	Method  string          `json:"metodo"`
	Amount  decimal.Decimal `json:"monto"`
	BankRef string          `json:"referencia_banco,omitempty"`
}

// RecordSaleRequest body para POST /api/sales.
type RecordSaleRequest struct {
	BranchID string            `json:"sucursal"`
	Date     string            `json:"fecha,omitempty"` // YYYY-MM-DD; vacío = hoy
	Items    []SaleLineRequest `json:"productos"`
	Payments []PaymentRequest  `json:"pagos"`
}

// SaleItemResponse una línea de venta resuelta.
type SaleItemResponse struct {
	ProductID string          `json:"producto_id"`
	Code      string          `json:"codigo,omitempty"`
	Name      string          `json:"nombre"`
	Quantity  decimal.Decimal `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	LineTotal decimal.Decimal `json:"total_linea"`
}

// SaleResponse representación HTTP de una venta procesada.
type SaleResponse struct {
	ID          string             `json:"id"`
	BranchID    string             `json:"sucursal"`
	Date        string             `json:"fecha"`
	Items       []SaleItemResponse `json:"productos"`
	Payments    []PaymentRequest   `json:"pagos"`
	Total       decimal.Decimal    `json:"total"`
	CostOfGoods decimal.Decimal    `json:"costo_mercancia"`
	Status      string             `json:"estado"`
}
