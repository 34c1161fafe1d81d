package export

// Layout A4 del resumen de conferencia:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CONFERÊNCIA DE CARGA                  Gerado em: data/hora │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GRUPO: Emitente - Cidade/UF   Notas | Itens | Peso | Valor │
//	│    NF 123 | 07/10/2024 | Placa | Transportadora | Obs.      │
//	│      cProd | xProd | Qtd XML | Qtd Conf. | Status           │
//	└─────────────────────────────────────────────────────────────┘

import (
	"fmt"
	"strings"

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

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
)

var _ batecarga.ReportExporter = (*PDFExporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 175}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 21, Green: 128, Blue: 61}
	colorDiverge = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// PDFExporter genera un resumen imprimible de la conferencia usando Maroto v2.
type PDFExporter struct{}

// NewPDFExporter construye el exportador PDF.
func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

func (e *PDFExporter) Format() string      { return "pdf" }
func (e *PDFExporter) Extension() string   { return ".pdf" }
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Export genera el documento y devuelve sus bytes.
func (e *PDFExporter) Export(groups []entity.ShipmentGroup, opts batecarga.ExportOptions) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Conferência de Carga", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(opts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	noteLabel := opts.NoteLabel
	if noteLabel == "" {
		noteLabel = DefaultNoteLabel
	}
	for _, g := range groups {
		m.AddRows(groupRow(g))
		for _, inv := range g.Invoices {
			m.AddRows(invoiceRow(inv, noteLabel))
			m.AddRows(itemHeaderRow())
			for _, it := range inv.Items {
				m.AddRows(itemRow(it))
			}
		}
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(opts batecarga.ExportOptions) core.Row {
	generated := ""
	if !opts.GeneratedAt.IsZero() {
		generated = "Gerado em: " + opts.GeneratedAt.Format("02/01/2006 15:04")
	}
	return row.New(12).Add(
		col.New(8).Add(text.New("CONFERÊNCIA DE CARGA", props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(generated, props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 4,
		})),
	)
}

func groupRow(g entity.ShipmentGroup) core.Row {
	place := g.City
	if g.State != "" {
		place += "/" + g.State
	}
	summary := fmt.Sprintf("%d notas | %d itens | %s volumes | %s kg | R$ %s",
		g.Totals.InvoiceCount, g.Totals.ItemCount,
		g.Totals.VolumeCount.String(),
		formatDecimal(g.Totals.GrossWeight, 3),
		formatDecimal(g.Totals.Value, 2),
	)
	return row.New(12).Add(
		col.New(12).Add(
			text.New(nonEmpty(g.IssuerTradeName, "—")+" - "+nonEmpty(place, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
			text.New(summary, props.Text{Size: 7.5, Color: colorGray, Top: 7.5}),
		),
	)
}

func invoiceRow(inv entity.Invoice, noteLabel string) core.Row {
	parts := []string{
		"NF " + nonEmpty(inv.Number, "—"),
		nonEmpty(inv.IssueDate, "—"),
		"Placa: " + nonEmpty(inv.Plate, "—"),
		"Transp: " + nonEmpty(inv.CarrierName, "Não Informado"),
		"Dest: " + nonEmpty(inv.DestinationName, "—"),
	}
	if inv.Observation != "" {
		parts = append(parts, noteLabel+": "+inv.Observation)
	}
	return row.New(7).Add(col.New(12).Add(
		text.New(strings.Join(parts, "  |  "), props.Text{Style: fontstyle.Bold, Size: 8, Top: 1.5, Left: 2}),
	))
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(5).Add(
		h("cProd", 2, align.Left),
		h("Descrição", 5, align.Left),
		h("Qtd XML", 2, align.Right),
		h("Qtd Conf.", 2, align.Right),
		h("Status", 1, align.Center),
	)
}

func itemRow(it entity.LineItem) core.Row {
	statusColor := colorGray
	switch it.Status {
	case entity.ReconciliationMatched:
		statusColor = colorOK
	case entity.ReconciliationDivergent:
		statusColor = colorDiverge
	}
	return row.New(5).Add(
		col.New(2).Add(text.New(it.ProductCode, props.Text{Size: 7, Top: 1, Left: 1})),
		col.New(5).Add(text.New(it.ProductDescription, props.Text{Size: 7, Top: 1, Left: 1})),
		col.New(2).Add(text.New(
			strings.TrimSpace(it.ExpectedQuantityText+" "+it.UnitOfMeasure),
			props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(nonEmpty(it.CheckedQuantity, "—"), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(nonEmpty(string(it.Status), "—"), props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Center, Color: statusColor, Top: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatDecimal formatea con separador de miles "." y decimal "," (pt-BR).
// Ej: 1234567.5 con 2 decimales → "1.234.567,50"
func formatDecimal(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+2)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf)
	if frac != "" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
