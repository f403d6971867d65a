package repository

import "github.com/yorbis/ferreteria-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia de ventas. Las ventas son
// inmutables una vez creadas: no hay Update ni Delete en el núcleo.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByBranchAndDate(branchID, date string) ([]*entity.Sale, error)
}
