package repository

import "github.com/yorbis/ferreteria-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia de compras a proveedor.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	ListByBranch(branchID, from, to string, limit, offset int) ([]*entity.Purchase, error)
}
