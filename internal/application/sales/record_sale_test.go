package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorbis/ferreteria-api/internal/application/purchasing"
	"github.com/yorbis/ferreteria-api/internal/application/sales"
	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/infrastructure/memory"
)

// notifierStub captura las ventas notificadas al agregador, de forma
// síncrona para poder afirmar sobre ellas sin esperas.
type notifierStub struct {
	mu    sync.Mutex
	sales []*entity.Sale
}

func (n *notifierStub) ApplyAsync(sale *entity.Sale) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sales = append(n.sales, sale)
}

type fixture struct {
	store    *memory.Store
	uc       *sales.RecordSaleUseCase
	notifier *notifierStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	notifier := &notifierStub{}
	uc := sales.NewRecordSaleUseCase(memory.NewTxRunner(store), memory.NewSaleRepository(store), notifier)
	return &fixture{store: store, uc: uc, notifier: notifier}
}

// seedProduct da de alta un producto con stock vía una compra, que es como
// entra mercancía en el flujo real.
func (f *fixture) seedProduct(t *testing.T, code, name string, qty, unitCost int64) *entity.InventoryRecord {
	t.Helper()
	purchaseUC := purchasing.NewReceivePurchaseUseCase(
		memory.NewTxRunner(f.store),
		memory.NewPurchaseRepository(f.store),
		memory.NewInventoryRecordRepository(f.store),
	)
	result, err := purchaseUC.ReceivePurchase(context.Background(), purchasing.PurchaseInput{
		BranchID:   "suc-1",
		SupplierID: "prov-1",
		Lines: []purchasing.PurchaseLineInput{{
			Code:      code,
			Name:      name,
			Quantity:  decimal.NewFromInt(qty),
			UnitCost:  decimal.NewFromInt(unitCost),
			LineTotal: decimal.NewFromInt(qty * unitCost),
		}},
	})
	require.NoError(t, err)
	require.Empty(t, result.FailedLines)
	return result.AppliedLines[0]
}

func cashPayment(amount int64) []entity.Payment {
	return []entity.Payment{{Method: "efectivo_usd", Amount: decimal.NewFromInt(amount)}}
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// sale0Date es el día contable por defecto de una venta sin fecha: hoy.
func sale0Date() string {
	return time.Now().Format("2006-01-02")
}

// TestRecordSale_CompraVentaCompleta: compra de 100 a costo 5, venta de 30.
// Queda cantidad 70 y el costo de mercancía vendida es 30*5 = 150.
func TestRecordSale_CompraVentaCompleta(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "CEM-1", "Cemento gris", 100, 5)

	sale, err := f.uc.RecordSale(context.Background(), sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "CEM-1", Quantity: decimal.NewFromInt(30)}},
		Payments: cashPayment(250),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusProcessed, sale.Status)
	assert.True(t, sale.CostOfGoods.Equal(decimal.NewFromInt(150)), "costo esperado 150, fue %s", sale.CostOfGoods)
	require.Len(t, sale.Items, 1)
	// Precio por defecto 5/0.60 = 8.33; total 30 * 8.33 = 249.90
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromFloat(8.33)))
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(249.90)), "total esperado 249.90, fue %s", sale.Total)

	rec, err := memory.NewInventoryRecordRepository(f.store).GetByBranchAndCode("suc-1", "CEM-1")
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(70)))

	// La venta quedó persistida y el agregador fue notificado tras el commit.
	stored, err := f.uc.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, stored.ID)
	require.Len(t, f.notifier.sales, 1)
	assert.Equal(t, sale.ID, f.notifier.sales[0].ID)
}

// TestRecordSale_TodoONada: si una línea no tiene stock, la venta completa se
// revierte: ni la línea buena descuenta, ni se persiste la venta, ni se
// notifica el resumen.
func TestRecordSale_TodoONada(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "OK-1", "Tornillos", 50, 1)
	f.seedProduct(t, "POCO-1", "Llave ajustable", 2, 10)

	_, err := f.uc.RecordSale(context.Background(), sales.SaleInput{
		BranchID: "suc-1",
		Items: []sales.SaleLineInput{
			{Ref: "OK-1", Quantity: decimal.NewFromInt(10)},
			{Ref: "POCO-1", Quantity: decimal.NewFromInt(5)}, // solo hay 2
		},
		Payments: cashPayment(100),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	invRepo := memory.NewInventoryRecordRepository(f.store)
	ok1, _ := invRepo.GetByBranchAndCode("suc-1", "OK-1")
	assert.True(t, ok1.Quantity.Equal(decimal.NewFromInt(50)), "la línea buena no debe haber descontado")

	ventas, err := memory.NewSaleRepository(f.store).ListByBranchAndDate("suc-1", sale0Date())
	require.NoError(t, err)
	assert.Empty(t, ventas)
	assert.Empty(t, f.notifier.sales)
}

// TestRecordSale_NuncaNegativo: vender más de lo que hay rechaza; vender
// exactamente lo que hay deja cero.
func TestRecordSale_NuncaNegativo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "UNI-1", "Silicón", 3, 2)
	ctx := context.Background()

	_, err := f.uc.RecordSale(ctx, sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "UNI-1", Quantity: decimal.NewFromInt(4)}},
		Payments: cashPayment(20),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.uc.RecordSale(ctx, sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "UNI-1", Quantity: decimal.NewFromInt(3)}},
		Payments: cashPayment(20),
	})
	require.NoError(t, err)

	rec, _ := memory.NewInventoryRecordRepository(f.store).GetByBranchAndCode("suc-1", "UNI-1")
	assert.True(t, rec.Quantity.IsZero())
}

// TestRecordSale_ConcurrenciaSinSobreventa: con 10 en stock, dos ventas
// simultáneas de 6 no pueden pasar las dos. Exactamente una confirma y la
// cantidad final es 4.
func TestRecordSale_ConcurrenciaSinSobreventa(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "CON-1", "Alambre", 10, 3)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.RecordSale(context.Background(), sales.SaleInput{
				BranchID: "suc-1",
				Items:    []sales.SaleLineInput{{Ref: "CON-1", Quantity: decimal.NewFromInt(6)}},
				Payments: cashPayment(50),
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una de las dos ventas debe confirmar")

	rec, _ := memory.NewInventoryRecordRepository(f.store).GetByBranchAndCode("suc-1", "CON-1")
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(4)), "cantidad final esperada 4, fue %s", rec.Quantity)
}

// TestRecordSale_ConsumePorLotes: un producto con lotes descuenta primero el
// que vence antes y acumula la base de costo real de los lotes tocados.
func TestRecordSale_ConsumePorLotes(t *testing.T) {
	f := newFixture(t)
	store := f.store

	purchaseUC := purchasing.NewReceivePurchaseUseCase(
		memory.NewTxRunner(store),
		memory.NewPurchaseRepository(store),
		memory.NewInventoryRecordRepository(store),
	)
	ctx := context.Background()

	exp1 := mustDate("2026-09-01")
	exp2 := mustDate("2026-12-01")
	l1 := purchasing.PurchaseLineInput{
		Code: "MED-1", Name: "Medicina veterinaria",
		Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(10),
		LineTotal: decimal.NewFromInt(50), LotExpiry: &exp1,
	}
	_, err := purchaseUC.ReceivePurchase(ctx, purchasing.PurchaseInput{
		BranchID: "suc-1", SupplierID: "prov-1", Lines: []purchasing.PurchaseLineInput{l1},
	})
	require.NoError(t, err)

	l2 := l1
	l2.Quantity = decimal.NewFromInt(5)
	l2.UnitCost = decimal.NewFromInt(12)
	l2.LineTotal = decimal.NewFromInt(60)
	l2.LotExpiry = &exp2
	_, err = purchaseUC.ReceivePurchase(ctx, purchasing.PurchaseInput{
		BranchID: "suc-1", SupplierID: "prov-1", Lines: []purchasing.PurchaseLineInput{l2},
	})
	require.NoError(t, err)

	sale, err := f.uc.RecordSale(ctx, sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "MED-1", Quantity: decimal.NewFromInt(7)}},
		Payments: cashPayment(100),
	})
	require.NoError(t, err)
	// 5*10 del lote que vence antes + 2*12 del siguiente = 74
	assert.True(t, sale.CostOfGoods.Equal(decimal.NewFromInt(74)), "base de costo esperada 74, fue %s", sale.CostOfGoods)

	rec, _ := memory.NewInventoryRecordRepository(store).GetByBranchAndCode("suc-1", "MED-1")
	require.Len(t, rec.Lots, 1)
	assert.True(t, rec.Lots[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(3)))
}

// TestRecordSale_LotesParciales: stock recibido antes de activarse el control
// de lotes convive con lotes posteriores; la suma de lotes queda por debajo de
// la cantidad del registro. Una venta que cabe en la cantidad total no debe
// rechazarse: se agotan los lotes y el resto sale al costo promedio.
func TestRecordSale_LotesParciales(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "ALI-1", "Alimento para perros", 10, 3)

	purchaseUC := purchasing.NewReceivePurchaseUseCase(
		memory.NewTxRunner(f.store),
		memory.NewPurchaseRepository(f.store),
		memory.NewInventoryRecordRepository(f.store),
	)
	ctx := context.Background()
	exp := mustDate("2026-12-01")
	_, err := purchaseUC.ReceivePurchase(ctx, purchasing.PurchaseInput{
		BranchID: "suc-1", SupplierID: "prov-1",
		Lines: []purchasing.PurchaseLineInput{{
			Code: "ALI-1", Name: "Alimento para perros",
			Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(6),
			LineTotal: decimal.NewFromInt(30), LotExpiry: &exp,
		}},
	})
	require.NoError(t, err)

	// 15 en stock pero los lotes solo suman 5; vender 7 debe pasar.
	sale, err := f.uc.RecordSale(ctx, sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "ALI-1", Quantity: decimal.NewFromInt(7)}},
		Payments: cashPayment(100),
	})
	require.NoError(t, err, "hay 15 en stock; vender 7 no debería fallar")

	// 5*6 del lote + 2 al promedio ponderado (10*3 + 5*6)/15 = 4 → 30+8 = 38
	assert.True(t, sale.CostOfGoods.Equal(decimal.NewFromInt(38)), "base de costo esperada 38, fue %s", sale.CostOfGoods)

	rec, err := memory.NewInventoryRecordRepository(f.store).GetByBranchAndCode("suc-1", "ALI-1")
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(8)))
	assert.Empty(t, rec.Lots)
}

// TestRecordSale_Validaciones: líneas vacías, cantidades no positivas, pagos
// en cero o negativos y fechas malformadas rechazan antes de la transacción.
func TestRecordSale_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "VAL-1", "Lija", 10, 1)
	ctx := context.Background()

	_, err := f.uc.RecordSale(ctx, sales.SaleInput{BranchID: "suc-1", Payments: cashPayment(5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordSale(ctx, sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "VAL-1", Quantity: decimal.Zero}},
		Payments: cashPayment(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordSale(ctx, sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "VAL-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)

	_, err = f.uc.RecordSale(ctx, sales.SaleInput{
		BranchID: "suc-1",
		Date:     "31-12-2026",
		Items:    []sales.SaleLineInput{{Ref: "VAL-1", Quantity: decimal.NewFromInt(1)}},
		Payments: cashPayment(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rec, _ := memory.NewInventoryRecordRepository(f.store).GetByBranchAndCode("suc-1", "VAL-1")
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(10)), "ninguna validación debe tocar stock")
}

// TestRecordSale_ProductoInactivo: un registro inactivo no se vende.
func TestRecordSale_ProductoInactivo(t *testing.T) {
	f := newFixture(t)
	rec := f.seedProduct(t, "INA-1", "Producto retirado", 10, 2)

	invRepo := memory.NewInventoryRecordRepository(f.store)
	require.NoError(t, invRepo.UpdateStatus(rec.ID, entity.RecordStatusInactive))

	_, err := f.uc.RecordSale(context.Background(), sales.SaleInput{
		BranchID: "suc-1",
		Items:    []sales.SaleLineInput{{Ref: "INA-1", Quantity: decimal.NewFromInt(1)}},
		Payments: cashPayment(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
