package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/yorbis/ferreteria-api/internal/application/inventory"
	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	domaininv "github.com/yorbis/ferreteria-api/internal/domain/inventory"
	"github.com/yorbis/ferreteria-api/internal/domain/pricing"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

// RecordSaleUseCase procesa una venta del punto de venta: resuelve cada línea
// contra el inventario, valida stock con la fila bloqueada, descuenta lotes
// por vencimiento y persiste la venta, todo en una sola transacción.
// Tras el commit dispara la acumulación del resumen diario de forma asíncrona.
type RecordSaleUseCase struct {
	txRunner   TxRunner
	saleRepo   repository.SaleRepository
	settlement SettlementNotifier
}

// NewRecordSaleUseCase construye el caso de uso. saleRepo es el adaptador
// atado al pool (solo lecturas); las escrituras usan los repos de la tx.
func NewRecordSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, settlement SettlementNotifier) *RecordSaleUseCase {
	return &RecordSaleUseCase{txRunner: txRunner, saleRepo: saleRepo, settlement: settlement}
}

// SaleLineInput una línea solicitada: referencia (id o código) y cantidad.
type SaleLineInput struct {
	Ref      string
	Quantity decimal.Decimal
}

// SaleInput entrada para RecordSale.
type SaleInput struct {
	BranchID   string
	Date       string // YYYY-MM-DD; vacío = fecha actual
	Items      []SaleLineInput
	Payments   []entity.Payment
	ActingUser string
}

// RecordSale valida la solicitud, ejecuta la transacción y retorna la venta
// confirmada. Cualquier falla en cualquier línea aborta la venta completa:
// no quedan escrituras parciales visibles.
//
// La verificación de stock se hace contra la cantidad leída con SELECT FOR
// UPDATE dentro de la transacción, nunca contra un valor cacheado: dos ventas
// concurrentes del mismo producto no pueden sobrevender entre las dos.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	if in.BranchID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Ref == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	paymentTotal := decimal.Zero
	for _, p := range in.Payments {
		if p.Amount.IsNegative() {
			return nil, domain.ErrInvalidPayment
		}
		paymentTotal = paymentTotal.Add(p.Amount)
	}
	// La suma de pagos debe ser > 0; el núcleo no cruza pagos contra el total
	// de líneas (diferencias de tasa de cambio se concilian en el cuadre).
	if !paymentTotal.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidPayment
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		BranchID:  in.BranchID,
		Date:      date,
		Payments:  in.Payments,
		Status:    entity.SaleStatusProcessed,
		CreatedAt: now,
		CreatedBy: in.ActingUser,
	}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRecordRepository,
		saleRepo repository.SaleRepository,
	) error {
		total := decimal.Zero
		costOfGoods := decimal.Zero
		items := make([]entity.SaleItem, 0, len(in.Items))

		for _, line := range in.Items {
			item, costBasis, err := uc.consumeLine(invRepo, in.BranchID, line, now, in.ActingUser)
			if err != nil {
				return err
			}
			items = append(items, *item)
			total = total.Add(item.LineTotal)
			costOfGoods = costOfGoods.Add(costBasis)
		}

		sale.Items = items
		sale.Total = pricing.Round2(total)
		sale.CostOfGoods = pricing.Round2(costOfGoods)
		// La venta se inserta de última, dentro de la misma transacción que
		// descontó cada línea.
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	uc.settlement.ApplyAsync(sale)
	return sale, nil
}

// consumeLine resuelve la línea, bloquea la fila y descuenta stock y lotes.
// Retorna la línea resuelta y la base de costo consumida.
func (uc *RecordSaleUseCase) consumeLine(
	invRepo repository.InventoryRecordRepository,
	branchID string,
	line SaleLineInput,
	now time.Time,
	actingUser string,
) (*entity.SaleItem, decimal.Decimal, error) {
	rec, err := appinv.ResolveRef(invRepo, branchID, line.Ref)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if rec == nil || !rec.IsActive() {
		return nil, decimal.Zero, domain.ErrNotFound
	}

	// Releer con la fila bloqueada: la cantidad cacheada de la resolución
	// puede estar desactualizada bajo ventas concurrentes.
	rec, err = invRepo.GetForUpdate(rec.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if rec == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}
	if rec.Quantity.LessThan(line.Quantity) {
		return nil, decimal.Zero, domain.ErrInsufficientStock
	}

	var costBasis decimal.Decimal
	if rec.TracksLots() {
		// Los lotes pueden cubrir menos que la cantidad del registro cuando
		// hubo stock recibido antes de activarse el control de lotes: se
		// agotan los lotes y el resto sale al costo promedio ponderado.
		fromLots := decimal.Min(line.Quantity, domaininv.LotQuantity(rec.Lots))
		remaining, basis, err := domaininv.ConsumeLots(rec.Lots, fromLots)
		if err != nil {
			return nil, decimal.Zero, err
		}
		rec.Lots = remaining
		costBasis = basis.Add(line.Quantity.Sub(fromLots).Mul(rec.Cost))
	} else {
		costBasis = line.Quantity.Mul(rec.Cost)
	}

	rec.Quantity = rec.Quantity.Sub(line.Quantity)
	rec.UpdatedAt = now
	rec.UpdatedBy = actingUser
	if err := invRepo.Update(rec); err != nil {
		return nil, decimal.Zero, err
	}

	appinv.SynthesizePrice(rec)
	item := &entity.SaleItem{
		ProductID: rec.ID,
		Code:      rec.Code,
		Name:      rec.Name,
		Quantity:  line.Quantity,
		UnitPrice: rec.Price,
		LineTotal: pricing.Round2(line.Quantity.Mul(rec.Price)),
		CostBasis: pricing.Round2(costBasis),
	}
	return item, costBasis, nil
}

// GetSale obtiene una venta confirmada por ID.
func (uc *RecordSaleUseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}
