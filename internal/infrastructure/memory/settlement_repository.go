package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo implementación en memoria de SettlementRepository.
type SettlementRepo struct {
	s *Store
}

// NewSettlementRepository construye el repo atado al almacén.
func NewSettlementRepository(s *Store) *SettlementRepo {
	return &SettlementRepo{s: s}
}

func settlementKey(branchID, date string) string {
	return branchID + "|" + date
}

// AddTotals suma los montos por casilla y el costo de mercancía, creando el
// resumen del día si no existe. Aditivo bajo el lock del almacén.
func (r *SettlementRepo) AddTotals(branchID, date string, totals map[entity.Bucket]decimal.Decimal, costOfGoods decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := settlementKey(branchID, date)
	summary, ok := r.s.settlements[key]
	if !ok {
		summary = entity.NewSettlementSummary(branchID, date)
		r.s.settlements[key] = summary
	}
	for b, amount := range totals {
		summary.Totals[b] = summary.Totals[b].Add(amount.Round(2))
	}
	summary.CostOfGoods = summary.CostOfGoods.Add(costOfGoods.Round(2))
	summary.UpdatedAt = time.Now()
	return nil
}

// Get retorna el resumen del día, o uno en ceros si aún no hay movimiento.
func (r *SettlementRepo) Get(branchID, date string) (*entity.SettlementSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	summary, ok := r.s.settlements[settlementKey(branchID, date)]
	if !ok {
		return entity.NewSettlementSummary(branchID, date), nil
	}
	return cloneSummary(summary), nil
}

// GetRange retorna los resúmenes existentes entre dos fechas inclusive.
func (r *SettlementRepo) GetRange(branchID, from, to string) ([]*entity.SettlementSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.SettlementSummary
	for _, summary := range r.s.settlements {
		if summary.BranchID == branchID && summary.Date >= from && summary.Date <= to {
			list = append(list, cloneSummary(summary))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list, nil
}
