package dto

import "github.com/shopspring/decimal"

// PurchaseLineRequest una línea del body de POST /api/purchases.
// precio_total es el costo autoritativo de la línea: el costo unitario que
// entra al promedio ponderado se deriva de precio_total/cantidad para que la
// base de costo sea exactamente aditiva aunque precio_unitario venga redondeado.
type PurchaseLineRequest struct {
	ProductID      string           `json:"producto_id,omitempty"`
	Code           string           `json:"codigo,omitempty"`
	Name           string           `json:"nombre"`
	Quantity       decimal.Decimal  `json:"cantidad"`
	UnitCost       decimal.Decimal  `json:"precio_unitario"`
	LineTotal      decimal.Decimal  `json:"precio_total"`
	IsNew          bool             `json:"es_nuevo,omitempty"`
	LotExpiry      string           `json:"fecha_vencimiento,omitempty"` // YYYY-MM-DD; activa control de lotes
	ExplicitPrice  *decimal.Decimal `json:"precio_venta,omitempty"`
	ExplicitMargin *decimal.Decimal `json:"porcentaje_utilidad,omitempty"`
}

// ReceivePurchaseRequest body para POST /api/purchases.
type ReceivePurchaseRequest struct {
	BranchID      string                `json:"sucursal"`
	SupplierID    string                `json:"proveedor_id"`
	SupplierName  string                `json:"proveedor_nombre,omitempty"`
	InvoiceNumber string                `json:"numero_factura,omitempty"`
	Date          string                `json:"fecha,omitempty"`
	Lines         []PurchaseLineRequest `json:"productos"`
	Notes         string                `json:"observaciones,omitempty"`
}

// FailedLineResponse una línea de compra que no pudo aplicarse al inventario.
// La compra no es atómica entre líneas: las demás quedan aplicadas.
type FailedLineResponse struct {
	Index  int    `json:"indice"`
	Name   string `json:"nombre"`
	Reason string `json:"motivo"`
}

// PurchaseItemResponse una línea del documento de compra. utilidad_estimada
// se calcula al leer contra el precio de venta vigente del producto; no se
// guarda con la compra.
type PurchaseItemResponse struct {
	ProductID        string          `json:"producto_id,omitempty"`
	Code             string          `json:"codigo,omitempty"`
	Name             string          `json:"nombre"`
	Quantity         decimal.Decimal `json:"cantidad"`
	UnitCost         decimal.Decimal `json:"precio_unitario"`
	LineTotal        decimal.Decimal `json:"precio_total"`
	EstimatedUtility decimal.Decimal `json:"utilidad_estimada"`
}

// PurchaseResponse documento de compra para los GET.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	BranchID      string                 `json:"sucursal"`
	SupplierID    string                 `json:"proveedor_id"`
	SupplierName  string                 `json:"proveedor_nombre,omitempty"`
	InvoiceNumber string                 `json:"numero_factura,omitempty"`
	Date          string                 `json:"fecha"`
	Items         []PurchaseItemResponse `json:"productos"`
	Total         decimal.Decimal        `json:"total"`
	Notes         string                 `json:"observaciones,omitempty"`
	CreatedBy     string                 `json:"creado_por,omitempty"`
}

// ReceivePurchaseResponse resultado de recibir una compra.
type ReceivePurchaseResponse struct {
	PurchaseID   string                    `json:"id"`
	AppliedLines []InventoryRecordResponse `json:"productos_actualizados"`
	FailedLines  []FailedLineResponse      `json:"productos_con_error"`
}
