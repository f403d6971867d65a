package memory

import (
	"strings"
	"time"

	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
	"github.com/yorbis/ferreteria-api/pkg/textutil"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación en memoria de InventoryRecordRepository.
// Con inTx true no toma el lock del Store: el TxRunner ya lo tiene.
type InventoryRecordRepo struct {
	s    *Store
	inTx bool
}

// NewInventoryRecordRepository construye el repo atado al almacén.
func NewInventoryRecordRepository(s *Store) *InventoryRecordRepo {
	return &InventoryRecordRepo{s: s}
}

func (r *InventoryRecordRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// Create persiste un registro nuevo, validando código único por sucursal.
func (r *InventoryRecordRepo) Create(rec *entity.InventoryRecord) error {
	defer r.lock()()
	if rec.Code != "" {
		for _, other := range r.s.records {
			if other.BranchID == rec.BranchID && other.Code == rec.Code {
				return domain.ErrDuplicateCode
			}
		}
	}
	stored := cloneRecord(rec)
	stored.Cost = stored.Cost.Round(2)
	stored.Price = stored.Price.Round(2)
	stored.Profit = stored.Profit.Round(2)
	stored.MarginPercent = stored.MarginPercent.Round(2)
	r.s.records[rec.ID] = stored
	return nil
}

// GetByID obtiene un registro por ID, o (nil, nil) si no existe.
func (r *InventoryRecordRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	defer r.lock()()
	rec, ok := r.s.records[id]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

// GetByBranchAndCode obtiene un registro por sucursal y código.
func (r *InventoryRecordRepo) GetByBranchAndCode(branchID, code string) (*entity.InventoryRecord, error) {
	defer r.lock()()
	for _, rec := range r.s.records {
		if rec.BranchID == branchID && rec.Code == code && code != "" {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

// GetByBranchAndName obtiene un registro por sucursal y nombre exacto.
func (r *InventoryRecordRepo) GetByBranchAndName(branchID, name string) (*entity.InventoryRecord, error) {
	defer r.lock()()
	for _, rec := range r.s.records {
		if rec.BranchID == branchID && rec.Name == name {
			return cloneRecord(rec), nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el lock del Store ya serializa.
func (r *InventoryRecordRepo) GetForUpdate(id string) (*entity.InventoryRecord, error) {
	return r.GetByID(id)
}

// Update reemplaza el registro, redondeando los montos a dos decimales.
func (r *InventoryRecordRepo) Update(rec *entity.InventoryRecord) error {
	defer r.lock()()
	if _, ok := r.s.records[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := cloneRecord(rec)
	stored.Cost = stored.Cost.Round(2)
	stored.Price = stored.Price.Round(2)
	stored.Profit = stored.Profit.Round(2)
	stored.MarginPercent = stored.MarginPercent.Round(2)
	stored.UpdatedAt = time.Now()
	r.s.records[rec.ID] = stored
	return nil
}

// UpdateStatus cambia solo el estado del registro.
func (r *InventoryRecordRepo) UpdateStatus(id, status string) error {
	defer r.lock()()
	rec, ok := r.s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = status
	rec.UpdatedAt = time.Now()
	return nil
}

// Search busca registros activos por código, nombre, descripción o marca,
// sin distinguir mayúsculas ni acentos.
func (r *InventoryRecordRepo) Search(branchID, query string, limit int) ([]*entity.InventoryRecord, error) {
	defer r.lock()()
	needle := textutil.Fold(query)
	var list []*entity.InventoryRecord
	for _, rec := range r.s.records {
		if rec.BranchID != branchID || !rec.IsActive() {
			continue
		}
		haystack := textutil.Fold(strings.Join([]string{rec.Code, rec.Name, rec.Description, rec.Brand}, " "))
		if strings.Contains(haystack, needle) {
			list = append(list, cloneRecord(rec))
		}
		if len(list) >= limit {
			break
		}
	}
	return list, nil
}
