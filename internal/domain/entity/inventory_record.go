package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de inventario. Los inactivos se excluyen de venta y
// búsqueda pero se conservan para historial.
const (
	RecordStatusActive   = "activo"
	RecordStatusInactive = "inactivo"
)

// Lot es un lote de mercancía recibido a un costo unitario específico,
// opcionalmente con fecha de vencimiento. Se consume primero el lote que
// vence antes; los lotes sin vencimiento se consumen al final.
type Lot struct {
	Quantity decimal.Decimal `json:"cantidad"`
	UnitCost decimal.Decimal `json:"costo"`
	Expiry   *time.Time      `json:"fecha_vencimiento,omitempty"`
}

// InventoryRecord representa el stock de un producto en una sucursal.
// Quantity es la cantidad autoritativa y nunca puede quedar negativa; toda
// mutación pasa por el repositorio dentro de una transacción.
// La suma de los lotes debe igualar Quantity cuando el registro lleva lotes;
// sin lotes, Cost (promedio ponderado) representa la valuación completa.
type InventoryRecord struct {
	ID            string
	BranchID      string // sucursal dueña del registro; inmutable
	Code          string // SKU único por sucursal (opcional)
	Name          string
	Description   string
	Brand         string
	Quantity      decimal.Decimal
	Cost          decimal.Decimal // costo promedio ponderado
	Price         decimal.Decimal // precio de venta
	Profit        decimal.Decimal // Price - Cost
	MarginPercent decimal.Decimal // Profit / Cost * 100 (0 si Cost = 0)
	Lots          []Lot
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
	UpdatedBy     string
}

// TracksLots indica si el registro lleva control de lotes.
func (r *InventoryRecord) TracksLots() bool {
	return len(r.Lots) > 0
}

// IsActive indica si el registro participa en venta y búsqueda.
func (r *InventoryRecord) IsActive() bool {
	return r.Status != RecordStatusInactive
}
