package sales

import (
	"context"

	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que los N descuentos de inventario
// y la inserción de la venta se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRecordRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// SettlementNotifier recibe la venta ya confirmada para acumularla en el
// resumen diario. Es asíncrono y best-effort: su falla se registra en el log
// pero nunca revierte la venta (el resumen es una proyección reconstruible).
type SettlementNotifier interface {
	ApplyAsync(sale *entity.Sale)
}
