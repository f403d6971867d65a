package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/pricing"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

// searchLimitMax tope de resultados de búsqueda (heredado del punto de venta).
const searchLimitMax = 100

// UseCase operaciones de lectura y alta explícita sobre el registro de
// inventario. Las mutaciones de stock viven en purchasing y sales; ningún
// otro componente toca cantidad/costo/precio directamente.
type UseCase struct {
	repo repository.InventoryRecordRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.InventoryRecordRepository) *UseCase {
	return &UseCase{repo: repo}
}

// CreateRecordInput alta explícita de producto ("producto nuevo" fuera de una compra).
type CreateRecordInput struct {
	BranchID       string
	Code           string
	Name           string
	Description    string
	Brand          string
	Cost           decimal.Decimal
	ExplicitPrice  *decimal.Decimal
	ExplicitMargin *decimal.Decimal
	ActingUser     string
}

// CreateRecord valida y persiste un registro nuevo con estado activo.
// El precio sale del precio explícito, o del margen explícito, o del 40% por
// defecto. Falla con ErrDuplicateCode si el código ya existe en la sucursal.
func (uc *UseCase) CreateRecord(ctx context.Context, in CreateRecordInput) (*entity.InventoryRecord, error) {
	if strings.TrimSpace(in.Name) == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Cost.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	price, err := ResolvePrice(in.Cost, in.ExplicitPrice, in.ExplicitMargin)
	if err != nil {
		return nil, err
	}
	profit := pricing.Profit(in.Cost, price)

	now := time.Now()
	rec := &entity.InventoryRecord{
		ID:            uuid.New().String(),
		BranchID:      in.BranchID,
		Code:          NormalizeCode(in.Code),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Brand:         in.Brand,
		Quantity:      decimal.Zero,
		Cost:          pricing.Round2(in.Cost),
		Price:         pricing.Round2(price),
		Profit:        pricing.Round2(profit),
		MarginPercent: pricing.Round2(pricing.MarginPercent(in.Cost, profit)),
		Status:        entity.RecordStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     in.ActingUser,
	}
	if err := uc.repo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get resuelve un registro por ID o por código dentro de la sucursal.
// Retorna ErrNotFound si no existe o está inactivo (salvo includeInactive).
func (uc *UseCase) Get(ctx context.Context, branchID, ref string, includeInactive bool) (*entity.InventoryRecord, error) {
	rec, err := ResolveRef(uc.repo, branchID, ref)
	if err != nil {
		return nil, err
	}
	if rec == nil || (!includeInactive && !rec.IsActive()) {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// SetStatus activa o inactiva un registro (los inactivos se conservan para historial).
func (uc *UseCase) SetStatus(ctx context.Context, id, status string) error {
	if status != entity.RecordStatusActive && status != entity.RecordStatusInactive {
		return domain.ErrInvalidInput
	}
	rec, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.repo.UpdateStatus(id, status)
}

// Search búsqueda del punto de venta: código, nombre, descripción o marca,
// parcial y sin distinguir mayúsculas ni acentos; excluye inactivos.
// Los registros sin precio salen con precio/utilidad sintetizados al margen
// por defecto; eso no se persiste.
func (uc *UseCase) Search(ctx context.Context, branchID, query string, limit int) ([]*entity.InventoryRecord, error) {
	if limit <= 0 || limit > searchLimitMax {
		limit = searchLimitMax
	}
	records, err := uc.repo.Search(branchID, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		SynthesizePrice(rec)
	}
	return records, nil
}

// ResolveRef busca primero por ID y luego por código exacto en la sucursal.
// Retorna (nil, nil) si no hay coincidencia.
func ResolveRef(repo repository.InventoryRecordRepository, branchID, ref string) (*entity.InventoryRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := repo.GetByID(ref)
	if err != nil {
		return nil, err
	}
	if rec != nil && (branchID == "" || rec.BranchID == branchID) {
		return rec, nil
	}
	return repo.GetByBranchAndCode(branchID, NormalizeCode(ref))
}

// ResolvePrice deriva el precio: explícito > margen explícito > 40% por defecto.
func ResolvePrice(cost decimal.Decimal, explicitPrice, explicitMargin *decimal.Decimal) (decimal.Decimal, error) {
	if explicitPrice != nil {
		if explicitPrice.IsNegative() {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return *explicitPrice, nil
	}
	margin := pricing.DefaultMarginPercent
	if explicitMargin != nil {
		margin = *explicitMargin
	}
	return pricing.PriceFromCost(cost, margin)
}

// SynthesizePrice completa precio/utilidad al margen por defecto sobre un
// registro sin precio persistido (solo presentación).
func SynthesizePrice(rec *entity.InventoryRecord) {
	if !rec.Price.IsZero() || !rec.Cost.GreaterThan(decimal.Zero) {
		return
	}
	price, err := pricing.PriceFromCost(rec.Cost, pricing.DefaultMarginPercent)
	if err != nil {
		return
	}
	rec.Price = pricing.Round2(price)
	profit := pricing.Profit(rec.Cost, rec.Price)
	rec.Profit = pricing.Round2(profit)
	rec.MarginPercent = pricing.Round2(pricing.MarginPercent(rec.Cost, profit))
}

// NormalizeCode normaliza un SKU: sin espacios y en mayúsculas, como lo
// registra el lector de código de barras del punto de venta.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
