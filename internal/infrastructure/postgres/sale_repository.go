package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool
// o tx). Las líneas y el desglose de pago se guardan como JSONB: la venta es
// inmutable y siempre se lee completa.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta confirmada. Es el último insert de la transacción
// de venta: si algo anterior falló, nunca llega aquí.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, branch_id, sale_date, items, payments, total, cost_of_goods, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.BranchID, sale.Date, sale.Items, sale.Payments,
		sale.Total, sale.CostOfGoods, sale.Status, sale.CreatedAt, sale.CreatedBy,
	)
	if err != nil {
		if isLockConflict(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, branch_id, to_char(sale_date, 'YYYY-MM-DD'), items, payments, total, cost_of_goods, status, created_at, created_by
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.BranchID, &s.Date, &s.Items, &s.Payments,
		&s.Total, &s.CostOfGoods, &s.Status, &s.CreatedAt, &s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListByBranchAndDate lista las ventas de una sucursal en un día contable.
func (r *SaleRepo) ListByBranchAndDate(branchID, date string) ([]*entity.Sale, error) {
	query := `
		SELECT id, branch_id, to_char(sale_date, 'YYYY-MM-DD'), items, payments, total, cost_of_goods, status, created_at, created_by
		FROM sales WHERE branch_id = $1 AND sale_date = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, branchID, date)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BranchID, &s.Date, &s.Items, &s.Payments,
			&s.Total, &s.CostOfGoods, &s.Status, &s.CreatedAt, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
