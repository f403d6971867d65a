package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItem es una línea de un documento de compra tal como se recibió.
type PurchaseItem struct {
	ProductID string          `json:"producto_id,omitempty"`
	Code      string          `json:"codigo,omitempty"`
	Name      string          `json:"nombre"`
	Quantity  decimal.Decimal `json:"cantidad"`
	UnitCost  decimal.Decimal `json:"precio_unitario"`
	LineTotal decimal.Decimal `json:"precio_total"`
	IsNew     bool            `json:"es_nuevo,omitempty"`
}

// Purchase es un documento de compra a proveedor. Al registrarlo, cada línea
// se suma al inventario; la aplicación por línea no es atómica entre líneas.
type Purchase struct {
	ID            string
	BranchID      string
	SupplierID    string
	SupplierName  string
	InvoiceNumber string
	Date          string // YYYY-MM-DD
	Items         []PurchaseItem
	Total         decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string
}
