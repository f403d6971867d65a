package settlement

import "github.com/yorbis/ferreteria-api/internal/domain/entity"

// ReportGenerator produce el cuadre diario en un documento imprimible.
type ReportGenerator interface {
	DailyReport(summary *entity.SettlementSummary) ([]byte, error)
}
