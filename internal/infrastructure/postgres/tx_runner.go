package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yorbis/ferreteria-api/internal/application/purchasing"
	"github.com/yorbis/ferreteria-api/internal/application/sales"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)
var _ purchasing.LineTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario y ventas
// atados a la tx y hace Commit o Rollback. Es la transacción de venta: el
// descuento de stock y el insert de la venta comparten suerte.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventoryRecordRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(invRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInventory inicia una transacción solo con el repo de inventario. Es la
// transacción por línea del registro de compras: cada línea confirma o falla
// por separado.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRecordRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
