package dto

import "github.com/shopspring/decimal"

// CreateRecordRequest body para POST /api/products (alta explícita de producto).
type CreateRecordRequest struct {
	BranchID       string           `json:"sucursal"`
	Code           string           `json:"codigo,omitempty"`
	Name           string           `json:"nombre"`
	Description    string           `json:"descripcion,omitempty"`
	Brand          string           `json:"marca,omitempty"`
	Cost           decimal.Decimal  `json:"costo"`
	ExplicitPrice  *decimal.Decimal `json:"precio_venta,omitempty"`
	ExplicitMargin *decimal.Decimal `json:"porcentaje_utilidad,omitempty"`
}

// LotResponse un lote en respuestas de inventario.
type LotResponse struct {
	Quantity decimal.Decimal `json:"cantidad"`
	UnitCost decimal.Decimal `json:"costo"`
	Expiry   string          `json:"fecha_vencimiento,omitempty"`
}

// InventoryRecordResponse representación HTTP de un registro de inventario.
// Cuando el registro no tiene precio persistido, precio/utilidad vienen
// sintetizados al margen por defecto (solo presentación, no se persiste).
type InventoryRecordResponse struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"sucursal"`
	Code          string          `json:"codigo,omitempty"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion,omitempty"`
	Brand         string          `json:"marca,omitempty"`
	Quantity      decimal.Decimal `json:"cantidad"`
	Cost          decimal.Decimal `json:"costo"`
	Price         decimal.Decimal `json:"precio_venta"`
	Profit        decimal.Decimal `json:"utilidad"`
	MarginPercent decimal.Decimal `json:"porcentaje_utilidad"`
	Lots          []LotResponse   `json:"lotes,omitempty"`
	Status        string          `json:"estado"`
}

// UpdateStatusRequest body para PATCH /api/products/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"estado"`
}
