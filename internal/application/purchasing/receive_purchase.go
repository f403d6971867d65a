package purchasing

import (
	"context"
	"strings"
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

// ReceivePurchaseUseCase registra una compra a proveedor y suma cada línea al
// inventario: si el producto existe aumenta cantidad y recalcula el costo
// promedio ponderado; si no existe lo crea con precio al margen por defecto.
type ReceivePurchaseUseCase struct {
	txRunner     LineTxRunner
	purchaseRepo repository.PurchaseRepository
	invRepo      repository.InventoryRecordRepository
}

// NewReceivePurchaseUseCase construye el caso de uso. invRepo es el adaptador
// atado al pool (validaciones de lectura); las mutaciones usan el repo de la tx.
func NewReceivePurchaseUseCase(
	txRunner LineTxRunner,
	purchaseRepo repository.PurchaseRepository,
	invRepo repository.InventoryRecordRepository,
) *ReceivePurchaseUseCase {
	return &ReceivePurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		invRepo:      invRepo,
	}
}

// PurchaseLineInput una línea de compra.
type PurchaseLineInput struct {
	ProductID      string
	Code           string
	Name           string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	LineTotal      decimal.Decimal
	IsNew          bool
	LotExpiry      *time.Time
	ExplicitPrice  *decimal.Decimal
	ExplicitMargin *decimal.Decimal
}

// PurchaseInput entrada para ReceivePurchase.
type PurchaseInput struct {
	BranchID      string
	SupplierID    string
	SupplierName  string
	InvoiceNumber string
	Date          string
	Notes         string
	Lines         []PurchaseLineInput
	ActingUser    string
}

// FailedLine una línea que no pudo aplicarse al inventario.
type FailedLine struct {
	Index  int
	Name   string
	Reason string
}

// Result resultado de recibir una compra: el documento persistido más el
// detalle de líneas aplicadas y fallidas.
type Result struct {
	Purchase     *entity.Purchase
	AppliedLines []*entity.InventoryRecord
	FailedLines  []FailedLine
}

// ReceivePurchase valida la compra, la persiste y aplica las líneas al
// inventario una por una, cada una en su propia transacción. Las fallas por
// línea se recolectan y reportan; no revierten las líneas ya aplicadas.
//
// Guardas de código: códigos repetidos dentro de la misma compra, o una línea
// marcada como producto nuevo cuyo código ya existe en la sucursal, rechazan
// la compra completa con ErrDuplicateCode antes de aplicar nada (evita
// fusionar en silencio dos productos distintos con un código mal tecleado).
func (uc *ReceivePurchaseUseCase) ReceivePurchase(ctx context.Context, in PurchaseInput) (*Result, error) {
	if in.BranchID == "" || in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if strings.TrimSpace(line.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	seen := make(map[string]bool)
	for _, line := range in.Lines {
		code := appinv.NormalizeCode(line.Code)
		if code == "" {
			continue
		}
		if seen[code] {
			return nil, domain.ErrDuplicateCode
		}
		seen[code] = true
	}
	for _, line := range in.Lines {
		if !line.IsNew || line.Code == "" {
			continue
		}
		existing, err := uc.invRepo.GetByBranchAndCode(in.BranchID, appinv.NormalizeCode(line.Code))
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicateCode
		}
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	now := time.Now()

	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		BranchID:      in.BranchID,
		SupplierID:    in.SupplierID,
		SupplierName:  in.SupplierName,
		InvoiceNumber: in.InvoiceNumber,
		Date:          date,
		Notes:         in.Notes,
		CreatedAt:     now,
		CreatedBy:     in.ActingUser,
	}
	total := decimal.Zero
	for _, line := range in.Lines {
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ProductID: line.ProductID,
			Code:      appinv.NormalizeCode(line.Code),
			Name:      strings.TrimSpace(line.Name),
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			LineTotal: line.LineTotal,
			IsNew:     line.IsNew,
		})
		total = total.Add(line.LineTotal)
	}
	purchase.Total = pricing.Round2(total)

	// El documento de compra se guarda primero; después se aplica línea a
	// línea, como hace el flujo original.
	if err := uc.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	result := &Result{Purchase: purchase}
	for i, line := range in.Lines {
		rec, err := uc.applyLine(ctx, in.BranchID, line, now, in.ActingUser)
		if err != nil {
			result.FailedLines = append(result.FailedLines, FailedLine{
				Index:  i,
				Name:   line.Name,
				Reason: err.Error(),
			})
			continue
		}
		result.AppliedLines = append(result.AppliedLines, rec)
	}
	return result, nil
}

// applyLine suma una línea al inventario dentro de su propia transacción.
func (uc *ReceivePurchaseUseCase) applyLine(
	ctx context.Context,
	branchID string,
	line PurchaseLineInput,
	now time.Time,
	actingUser string,
) (*entity.InventoryRecord, error) {
	if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var applied *entity.InventoryRecord
	err := uc.txRunner.RunInventory(ctx, func(invRepo repository.InventoryRecordRepository) error {
		rec, err := uc.resolveLine(invRepo, branchID, line)
		if err != nil {
			return err
		}
		if rec == nil {
			created, err := uc.createFromLine(branchID, line, now, actingUser, invRepo)
			if err != nil {
				return err
			}
			applied = created
			return nil
		}

		rec, err = invRepo.GetForUpdate(rec.ID)
		if err != nil {
			return err
		}

		// Costo unitario autoritativo desde el total de línea: mantiene la
		// base de costo exactamente aditiva aunque el unitario venga redondeado.
		unitCost := line.UnitCost
		if line.LineTotal.GreaterThan(decimal.Zero) {
			unitCost = line.LineTotal.Div(line.Quantity)
		}

		newCost := domaininv.AverageCost(rec.Quantity, rec.Cost, line.Quantity, unitCost)
		rec.Quantity = rec.Quantity.Add(line.Quantity)
		rec.Cost = newCost

		if rec.TracksLots() || line.LotExpiry != nil {
			rec.Lots = append(rec.Lots, entity.Lot{
				Quantity: line.Quantity,
				UnitCost: unitCost,
				Expiry:   line.LotExpiry,
			})
		}

		if err := uc.reprice(rec, line); err != nil {
			return err
		}

		rec.UpdatedAt = now
		rec.UpdatedBy = actingUser
		if err := invRepo.Update(rec); err != nil {
			return err
		}
		applied = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// resolveLine busca el registro existente por código y, si no, por nombre
// exacto dentro de la sucursal.
func (uc *ReceivePurchaseUseCase) resolveLine(
	invRepo repository.InventoryRecordRepository,
	branchID string,
	line PurchaseLineInput,
) (*entity.InventoryRecord, error) {
	if code := appinv.NormalizeCode(line.Code); code != "" {
		rec, err := invRepo.GetByBranchAndCode(branchID, code)
		if err != nil || rec != nil {
			return rec, err
		}
	}
	return invRepo.GetByBranchAndName(branchID, strings.TrimSpace(line.Name))
}

// reprice recalcula precio y utilidad tras un cambio de costo. Si la línea
// trae precio explícito ese manda; si el registro ya tenía precio se preserva
// y solo se recalcula la utilidad contra el costo nuevo; sin precio en ningún
// lado se deriva al margen por defecto.
func (uc *ReceivePurchaseUseCase) reprice(rec *entity.InventoryRecord, line PurchaseLineInput) error {
	switch {
	case line.ExplicitPrice != nil:
		rec.Price = pricing.Round2(*line.ExplicitPrice)
	case line.ExplicitMargin != nil:
		price, err := pricing.PriceFromCost(rec.Cost, *line.ExplicitMargin)
		if err != nil {
			return err
		}
		rec.Price = pricing.Round2(price)
	case rec.Price.IsZero():
		price, err := pricing.PriceFromCost(rec.Cost, pricing.DefaultMarginPercent)
		if err != nil {
			return err
		}
		rec.Price = pricing.Round2(price)
	}
	profit := pricing.Profit(rec.Cost, rec.Price)
	rec.Profit = pricing.Round2(profit)
	rec.MarginPercent = pricing.Round2(pricing.MarginPercent(rec.Cost, profit))
	return nil
}

// createFromLine crea el registro de inventario para un producto que llega
// por primera vez en una compra.
func (uc *ReceivePurchaseUseCase) createFromLine(
	branchID string,
	line PurchaseLineInput,
	now time.Time,
	actingUser string,
	invRepo repository.InventoryRecordRepository,
) (*entity.InventoryRecord, error) {
	unitCost := line.UnitCost
	if line.LineTotal.GreaterThan(decimal.Zero) {
		unitCost = line.LineTotal.Div(line.Quantity)
	}
	if !unitCost.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	price, err := appinv.ResolvePrice(unitCost, line.ExplicitPrice, line.ExplicitMargin)
	if err != nil {
		return nil, err
	}
	profit := pricing.Profit(unitCost, price)

	rec := &entity.InventoryRecord{
		ID:            uuid.New().String(),
		BranchID:      branchID,
		Code:          appinv.NormalizeCode(line.Code),
		Name:          strings.TrimSpace(line.Name),
		Quantity:      line.Quantity,
		Cost:          pricing.Round2(unitCost),
		Price:         pricing.Round2(price),
		Profit:        pricing.Round2(profit),
		MarginPercent: pricing.Round2(pricing.MarginPercent(unitCost, profit)),
		Status:        entity.RecordStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     actingUser,
	}
	if line.LotExpiry != nil {
		rec.Lots = []entity.Lot{{Quantity: line.Quantity, UnitCost: unitCost, Expiry: line.LotExpiry}}
	}
	if err := invRepo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetPurchase obtiene una compra por ID.
func (uc *ReceivePurchaseUseCase) GetPurchase(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListPurchases lista compras de una sucursal, opcionalmente por rango de fechas.
func (uc *ReceivePurchaseUseCase) ListPurchases(ctx context.Context, branchID, from, to string, limit, offset int) ([]*entity.Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	if from == "" {
		from = "0001-01-01"
	}
	if to == "" {
		to = "9999-12-31"
	}
	return uc.purchaseRepo.ListByBranch(branchID, from, to, limit, offset)
}

// EstimatedUtilities calcula la utilidad estimada de cada línea de la compra
// contra el precio de venta vigente del producto: (precio - costo unitario) *
// cantidad. No se persiste con la compra; una línea cuyo producto ya no
// existe reporta cero.
func (uc *ReceivePurchaseUseCase) EstimatedUtilities(p *entity.Purchase) []decimal.Decimal {
	out := make([]decimal.Decimal, len(p.Items))
	for i, item := range p.Items {
		out[i] = decimal.Zero
		rec, err := uc.resolveItem(p.BranchID, item)
		if err != nil || rec == nil {
			continue
		}
		price := rec.Price
		if price.IsZero() && rec.Cost.IsPositive() {
			if derived, derr := pricing.PriceFromCost(rec.Cost, pricing.DefaultMarginPercent); derr == nil {
				price = derived
			}
		}
		out[i] = pricing.Round2(price.Sub(item.UnitCost).Mul(item.Quantity))
	}
	return out
}

// resolveItem busca el registro de una línea ya persistida: por código y, si
// no, por nombre exacto dentro de la sucursal.
func (uc *ReceivePurchaseUseCase) resolveItem(branchID string, item entity.PurchaseItem) (*entity.InventoryRecord, error) {
	if code := appinv.NormalizeCode(item.Code); code != "" {
		rec, err := uc.invRepo.GetByBranchAndCode(branchID, code)
		if err != nil || rec != nil {
			return rec, err
		}
	}
	return uc.invRepo.GetByBranchAndName(branchID, strings.TrimSpace(item.Name))
}
