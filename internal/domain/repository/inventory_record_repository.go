package repository

import "github.com/yorbis/ferreteria-api/internal/domain/entity"

// InventoryRecordRepository define el puerto de persistencia del registro de
// inventario (producto por sucursal). Los métodos Get* retornan (nil, nil)
// cuando el registro no existe; el caso de uso decide si eso es ErrNotFound.
// Toda mutación de cantidad/costo/lotes ocurre vía Update dentro de una
// transacción, con la fila bloqueada por GetForUpdate.
type InventoryRecordRepository interface {
	Create(rec *entity.InventoryRecord) error
	GetByID(id string) (*entity.InventoryRecord, error)
	GetByBranchAndCode(branchID, code string) (*entity.InventoryRecord, error)
	GetByBranchAndName(branchID, name string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.InventoryRecord, error)
	Update(rec *entity.InventoryRecord) error
	UpdateStatus(id, status string) error
	// Search busca por código, nombre, descripción o marca (parcial, sin
	// distinguir mayúsculas ni acentos); excluye inactivos.
	Search(branchID, query string, limit int) ([]*entity.InventoryRecord, error)
}
