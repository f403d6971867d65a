package memory

import (
	"context"

	"github.com/yorbis/ferreteria-api/internal/application/purchasing"
	"github.com/yorbis/ferreteria-api/internal/application/sales"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)
var _ purchasing.LineTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks bajo el lock del almacén, con snapshot y
// rollback para emular la atomicidad de una transacción de base de datos.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner atado al almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos de inventario y ventas; si fn falla, el estado
// queda como antes.
func (t *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
	saleRepo repository.SaleRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.snapshot()
	invRepo := &InventoryRecordRepo{s: t.s, inTx: true}
	saleRepo := &SaleRepo{s: t.s, inTx: true}
	if err := fn(invRepo, saleRepo); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// RunInventory ejecuta fn solo con el repo de inventario, con la misma
// semántica de rollback.
func (t *TxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRecordRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.snapshot()
	if err := fn(&InventoryRecordRepo{s: t.s, inTx: true}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
