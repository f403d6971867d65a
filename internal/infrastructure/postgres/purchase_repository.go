package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable
// con pool o tx). Las líneas se guardan como JSONB: el documento de compra es
// un registro histórico, se lee siempre completo.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste el documento de compra tal como se recibió.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, branch_id, supplier_id, supplier_name, invoice_number, purchase_date, items, total, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.BranchID, purchase.SupplierID, purchase.SupplierName,
		purchase.InvoiceNumber, purchase.Date, purchase.Items, purchase.Total,
		purchase.Notes, purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene un documento de compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, branch_id, supplier_id, supplier_name, invoice_number, to_char(purchase_date, 'YYYY-MM-DD'), items, total, notes, created_at, created_by
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.BranchID, &p.SupplierID, &p.SupplierName, &p.InvoiceNumber,
		&p.Date, &p.Items, &p.Total, &p.Notes, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// ListByBranch lista compras de una sucursal en un rango de fechas con paginación.
func (r *PurchaseRepo) ListByBranch(branchID, from, to string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, branch_id, supplier_id, supplier_name, invoice_number, to_char(purchase_date, 'YYYY-MM-DD'), items, total, notes, created_at, created_by
		FROM purchases
		WHERE branch_id = $1 AND purchase_date BETWEEN $2 AND $3
		ORDER BY purchase_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, branchID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.BranchID, &p.SupplierID, &p.SupplierName, &p.InvoiceNumber,
			&p.Date, &p.Items, &p.Total, &p.Notes, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
