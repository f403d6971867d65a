// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con la misma semántica que los adaptadores de PostgreSQL. Se usa
// en pruebas y demos sin base de datos.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
)

// Store guarda el estado compartido de todos los repos en memoria. El mutex
// serializa tanto las operaciones sueltas como las transacciones completas.
type Store struct {
	mu          sync.Mutex
	records     map[string]*entity.InventoryRecord
	sales       map[string]*entity.Sale
	purchases   map[string]*entity.Purchase
	settlements map[string]*entity.SettlementSummary // clave branch_id|fecha
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		records:     make(map[string]*entity.InventoryRecord),
		sales:       make(map[string]*entity.Sale),
		purchases:   make(map[string]*entity.Purchase),
		settlements: make(map[string]*entity.SettlementSummary),
	}
}

type storeState struct {
	records map[string]*entity.InventoryRecord
	sales   map[string]*entity.Sale
}

// snapshot copia el estado que una transacción puede tocar. Llamar con el
// lock tomado.
func (s *Store) snapshot() storeState {
	st := storeState{
		records: make(map[string]*entity.InventoryRecord, len(s.records)),
		sales:   make(map[string]*entity.Sale, len(s.sales)),
	}
	for id, rec := range s.records {
		st.records[id] = cloneRecord(rec)
	}
	for id, sale := range s.sales {
		st.sales[id] = cloneSale(sale)
	}
	return st
}

// restore revierte al estado del snapshot. Llamar con el lock tomado.
func (s *Store) restore(st storeState) {
	s.records = st.records
	s.sales = st.sales
}

func cloneRecord(rec *entity.InventoryRecord) *entity.InventoryRecord {
	cp := *rec
	if rec.Lots != nil {
		cp.Lots = make([]entity.Lot, len(rec.Lots))
		for i, lot := range rec.Lots {
			cp.Lots[i] = lot
			if lot.Expiry != nil {
				exp := *lot.Expiry
				cp.Lots[i].Expiry = &exp
			}
		}
	}
	return &cp
}

func cloneSale(sale *entity.Sale) *entity.Sale {
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	cp.Payments = append([]entity.Payment(nil), sale.Payments...)
	return &cp
}

func clonePurchase(p *entity.Purchase) *entity.Purchase {
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	return &cp
}

func cloneSummary(s *entity.SettlementSummary) *entity.SettlementSummary {
	cp := *s
	cp.Totals = make(map[entity.Bucket]decimal.Decimal, len(s.Totals))
	for b, v := range s.Totals {
		cp.Totals[b] = v
	}
	return &cp
}
