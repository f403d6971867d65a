package purchasing

import (
	"context"

	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

// LineTxRunner ejecuta una función dentro de una transacción con el
// repositorio de inventario atado a esa tx. La compra aplica cada línea en su
// propia transacción: una línea que falla no revierte las ya aplicadas
// (resultado parcial reportado al caller, comportamiento heredado).
type LineTxRunner interface {
	RunInventory(ctx context.Context, fn func(invRepo repository.InventoryRecordRepository) error) error
}
