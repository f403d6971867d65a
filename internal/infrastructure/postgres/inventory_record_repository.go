package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
	"github.com/yorbis/ferreteria-api/pkg/textutil"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación del puerto InventoryRecordRepository
// sobre PostgreSQL (usable con pool o tx). Los lotes se guardan como JSONB
// en la misma fila: se leen y escriben siempre junto con la cantidad, bajo
// el mismo lock de fila.
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador de persistencia de inventario. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const inventoryRecordColumns = `id, branch_id, code, name, description, brand, quantity, cost, price, profit, margin_percent, lots, status, created_at, updated_at, created_by, updated_by`

// Create persiste un registro nuevo. El código debe ser único por sucursal.
func (r *InventoryRecordRepo) Create(rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + inventoryRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.BranchID, nullIfEmpty(rec.Code), rec.Name, rec.Description, rec.Brand,
		rec.Quantity, rec.Cost, rec.Price, rec.Profit, rec.MarginPercent,
		rec.Lots, rec.Status, rec.CreatedAt, rec.UpdatedAt, rec.CreatedBy, rec.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *InventoryRecordRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory record")
}

// GetByBranchAndCode obtiene un registro por sucursal y código.
func (r *InventoryRecordRepo) GetByBranchAndCode(branchID, code string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE branch_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, code), "get inventory record by code")
}

// GetByBranchAndName obtiene un registro por sucursal y nombre exacto.
func (r *InventoryRecordRepo) GetByBranchAndName(branchID, name string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE branch_id = $1 AND name = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, name), "get inventory record by name")
}

// GetForUpdate obtiene un registro y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryRecordRepo) GetForUpdate(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryRecordColumns + ` FROM inventory_records WHERE id = $1 FOR UPDATE`
	rec, err := r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory record for update")
	if err != nil && isLockConflict(err) {
		return nil, domain.ErrConflict
	}
	return rec, err
}

// Update reemplaza cantidad, costos, precios y lotes del registro. Los montos
// se redondean a dos decimales en el punto de persistencia.
func (r *InventoryRecordRepo) Update(rec *entity.InventoryRecord) error {
	query := `
		UPDATE inventory_records
		SET name = $2, description = $3, brand = $4, quantity = $5, cost = $6,
		    price = $7, profit = $8, margin_percent = $9, lots = $10,
		    status = $11, updated_at = now(), updated_by = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.Name, rec.Description, rec.Brand, rec.Quantity,
		rec.Cost.Round(2), rec.Price.Round(2), rec.Profit.Round(2), rec.MarginPercent.Round(2),
		rec.Lots, rec.Status, rec.UpdatedBy,
	)
	if err != nil {
		if isLockConflict(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update inventory record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado (activo/inactivo) del registro.
func (r *InventoryRecordRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory_records SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update inventory record status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search busca registros activos por código, nombre, descripción o marca.
// La comparación ignora mayúsculas y acentos (unaccent en la base, Fold en el
// término de búsqueda).
func (r *InventoryRecordRepo) Search(branchID, query string, limit int) ([]*entity.InventoryRecord, error) {
	pattern := "%" + textutil.Fold(query) + "%"
	sql := `
		SELECT ` + inventoryRecordColumns + `
		FROM inventory_records
		WHERE branch_id = $1 AND status <> 'inactivo'
		  AND (unaccent(lower(coalesce(code, ''))) LIKE $2
		    OR unaccent(lower(name)) LIKE $2
		    OR unaccent(lower(description)) LIKE $2
		    OR unaccent(lower(brand)) LIKE $2)
		ORDER BY name
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), sql, branchID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search inventory records: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (r *InventoryRecordRepo) scanOne(row pgx.Row, op string) (*entity.InventoryRecord, error) {
	rec, err := scanInventoryRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	var code *string
	err := row.Scan(
		&rec.ID, &rec.BranchID, &code, &rec.Name, &rec.Description, &rec.Brand,
		&rec.Quantity, &rec.Cost, &rec.Price, &rec.Profit, &rec.MarginPercent,
		&rec.Lots, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy, &rec.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if code != nil {
		rec.Code = *code
	}
	return &rec, nil
}

// nullIfEmpty deja el código en NULL cuando viene vacío, para que el unique
// por (branch_id, code) no choque entre registros sin código.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
