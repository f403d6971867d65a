// Package pdf implementa la generación del cuadre de caja diario imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cuadre de caja  │  Sucursal + Fecha                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Método de pago | Monto                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Venta neta / Costo de mercancía                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appsettlement "github.com/yorbis/ferreteria-api/internal/application/settlement"
	"github.com/yorbis/ferreteria-api/internal/domain/entity"
)

var _ appsettlement.ReportGenerator = (*MarotoSettlementReport)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles de cada casilla, en el orden de entity.AllBuckets.
var bucketLabels = map[entity.Bucket]string{
	entity.BucketCashForeign:    "Efectivo (USD)",
	entity.BucketWireForeign:    "Zelle (USD)",
	entity.BucketVoucherForeign: "Vales (USD)",
	entity.BucketCashLocal:      "Efectivo (Bs)",
	entity.BucketMobileLocal:    "Pago móvil (Bs)",
	entity.BucketCardDebit:      "Punto de venta débito (Bs)",
	entity.BucketCardCredit:     "Punto de venta crédito (Bs)",
	entity.BucketTopup:          "Recargas (Bs)",
	entity.BucketReturns:        "Devoluciones (Bs)",
}

// MarotoSettlementReport implementa settlement.ReportGenerator usando Maroto v2.
type MarotoSettlementReport struct{}

// NewMarotoSettlementReport construye el generador.
func NewMarotoSettlementReport() *MarotoSettlementReport { return &MarotoSettlementReport{} }

// DailyReport genera el PDF del cuadre y devuelve sus bytes.
func (g *MarotoSettlementReport) DailyReport(summary *entity.SettlementSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cuadre de caja", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, b := range entity.AllBuckets {
		m.AddRows(bucketRow(bucketLabels[b], summary.Totals[b].StringFixed(2)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y sucursal + fecha (der).
func headerRow(summary *entity.SettlementSummary) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("CUADRE DE CAJA DIARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Sucursal: "+summary.BranchID, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha: "+summary.Date, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de casillas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Método de pago", 8, align.Left),
		h("Monto", 4, align.Right),
	)
}

// bucketRow: una fila por casilla del cuadre.
func bucketRow(label, amount string) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{
			Size: 9, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(4).Add(text.New(amount, props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// totalsRow: venta neta y costo de mercancía del día.
func totalsRow(summary *entity.SettlementSummary) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("VENTA NETA:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Left,
				Color: colorPrimary, Top: 2, Left: 1,
			}),
			text.New("Costo de mercancía vendida:", props.Text{
				Size: 8, Align: align.Left, Top: 10, Left: 1, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(summary.NetSales().StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
			text.New(summary.CostOfGoods.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 10, Right: 1, Color: colorGray,
			}),
		),
	)
}
