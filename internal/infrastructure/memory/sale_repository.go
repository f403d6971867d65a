package memory

import (
	"sort"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	s    *Store
	inTx bool
}

// NewSaleRepository construye el repo atado al almacén.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// Create persiste una venta confirmada.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	defer r.lock()()
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

// GetByID obtiene una venta por ID, o (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	defer r.lock()()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

// ListByBranchAndDate lista las ventas de una sucursal en un día contable.
func (r *SaleRepo) ListByBranchAndDate(branchID, date string) ([]*entity.Sale, error) {
	defer r.lock()()
	var list []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.BranchID == branchID && sale.Date == date {
			list = append(list, cloneSale(sale))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}
