// Package pdf genera la carta de reclamo en PDF que el seller adjunta al caso
// de Seller Support: listado de reclamos abiertos con cantidades, montos y
// fechas límite, más los totales del scope.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + marketplace  │  Fecha de emisión           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INTRO: Párrafo de solicitud de investigación               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Envío | Tipo | Cant | Monto | Días restantes  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: reclamos listados / monto potencial               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
	"github.com/jhoicas/Reembolsos-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ recovery.ClaimLetterGenerator = (*MarotoClaimLetterGenerator)(nil)

// MarotoClaimLetterGenerator implementa recovery.ClaimLetterGenerator usando Maroto v2.
type MarotoClaimLetterGenerator struct{}

// NewMarotoClaimLetterGenerator construye el generador.
func NewMarotoClaimLetterGenerator() *MarotoClaimLetterGenerator { return &MarotoClaimLetterGenerator{} }

// GenerateClaimLetter genera el PDF y devuelve sus bytes.
func (g *MarotoClaimLetterGenerator) GenerateClaimLetter(
	_ context.Context,
	scope entity.Scope,
	claims []entity.ReimbursementRecord,
	summary *entity.ClaimSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("FBA Reimbursement Claim", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(scope))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(introRow(len(claims)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableClaimRows(claims) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(claims, summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y marketplace + fecha de emisión (der).
func headerRow(scope entity.Scope) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("SOLICITUD DE REEMBOLSO FBA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario perdido y faltantes de envíos entrantes", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Marketplace: %s (%s)", scope.Country, scope.Region), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// introRow: párrafo de solicitud dirigido a Seller Support.
func introRow(count int) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf(
				"Estimado equipo de Seller Support: solicitamos la investigación y reembolso de los "+
					"%d casos listados a continuación, correspondientes a unidades perdidas en bodega y "+
					"unidades enviadas no recibidas, conforme a la política de reembolsos de FBA.",
				count,
			), props.Text{Size: 9, Top: 2}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de reclamos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 3, align.Left),
		h("Envío", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Monto", 2, align.Right),
		h("Días", 1, align.Center),
	)
}

// tableClaimRows: una fila por reclamo abierto.
func tableClaimRows(claims []entity.ReimbursementRecord) []core.Row {
	result := make([]core.Row, 0, len(claims))
	for _, c := range claims {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(c.SKU, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(c.ShipmentID, "—"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(c.ReimbursementType), props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", c.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(c.Amount.StringFixed(2)+" "+nonEmpty(c.Currency, "USD"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", c.DaysToDeadline), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(claims []entity.ReimbursementRecord, summary *entity.ClaimSummary) core.Row {
	total := decimal.Zero
	for _, c := range claims {
		total = total.Add(c.Amount)
	}

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	grandValue := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	potencialHistorico := ""
	if summary != nil {
		potencialHistorico = summary.TotalPotential.StringFixed(2)
	}

	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label(fmt.Sprintf("Reclamos listados: %d", len(claims)), 2),
			label("Monto solicitado:", 7),
		),
		col.New(4).Add(
			grandValue(total.StringFixed(2), 7),
			text.New("Potencial acumulado del scope: "+potencialHistorico, props.Text{
				Size: 7, Align: align.Right, Top: 12, Color: colorGray, Right: 1,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
