package settlement

import (
	"fmt"
	"time"

	"github.com/yorbis/ferreteria-api/internal/domain"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
	"github.com/yorbis/ferreteria-api/internal/domain/repository"
)

// QueryUseCase consulta los resúmenes de venta diaria acumulados.
type QueryUseCase struct {
	repo   repository.SettlementRepository
	report ReportGenerator
}

// NewQueryUseCase construye el caso de uso de consulta de cuadres.
func NewQueryUseCase(repo repository.SettlementRepository, report ReportGenerator) *QueryUseCase {
	return &QueryUseCase{repo: repo, report: report}
}

// GetSummary devuelve el cuadre de una sucursal y fecha. Si no hubo ventas el
// resumen sale con todas las casillas en cero, nunca ausente.
func (uc *QueryUseCase) GetSummary(branchID, date string) (*entity.SettlementSummary, error) {
	if branchID == "" {
		return nil, fmt.Errorf("%w: sucursal requerida", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, date)
	}
	return uc.repo.Get(branchID, date)
}

// GetRange devuelve los cuadres de un rango de fechas inclusivo, solo los días
// con movimiento.
func (uc *QueryUseCase) GetRange(branchID, from, to string) ([]*entity.SettlementSummary, error) {
	if branchID == "" {
		return nil, fmt.Errorf("%w: sucursal requerida", domain.ErrInvalidInput)
	}
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inicial inválida %q", domain.ErrInvalidInput, from)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha final inválida %q", domain.ErrInvalidInput, to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return uc.repo.GetRange(branchID, from, to)
}

// DailyReportPDF genera el PDF del cuadre de una fecha.
func (uc *QueryUseCase) DailyReportPDF(branchID, date string) ([]byte, error) {
	summary, err := uc.GetSummary(branchID, date)
	if err != nil {
		return nil, err
	}
	return uc.report.DailyReport(summary)
}
