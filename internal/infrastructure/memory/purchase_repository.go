package memory

import (
	"sort"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación en memoria de PurchaseRepository.
type PurchaseRepo struct {
	s *Store
}

// NewPurchaseRepository construye el repo atado al almacén.
func NewPurchaseRepository(s *Store) *PurchaseRepo {
	return &PurchaseRepo{s: s}
}

// Create persiste el documento de compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchases[purchase.ID] = clonePurchase(purchase)
	return nil
}

// GetByID obtiene un documento de compra por ID, o (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return clonePurchase(p), nil
}

// ListByBranch lista compras de una sucursal en un rango de fechas con paginación.
func (r *PurchaseRepo) ListByBranch(branchID, from, to string, limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Purchase
	for _, p := range r.s.purchases {
		if p.BranchID == branchID && p.Date >= from && p.Date <= to {
			list = append(list, clonePurchase(p))
		}
	}
	// Fechas ISO: el orden lexicográfico es el cronológico.
	sort.Slice(list, func(i, j int) bool { return list[i].Date > list[j].Date })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
