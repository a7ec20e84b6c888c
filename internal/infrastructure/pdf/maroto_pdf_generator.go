// Package pdf genera el libro imprimible (compras o ventas) con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT/NRC  │  Título del libro + Periodo       │
//	│  Contador / Estado / Fecha de emisión                                │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TABLA: No | Fecha | Documento | Proveedor/Cliente | NIT | montos    │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TOTALES                                                             │
//	│  ANULADAS (solo ventas)                                              │
//	└──────────────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appl "github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appl.LedgerPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa libro.LedgerPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// column celda de la tabla: ancho en la grilla de 12 y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

var (
	purchaseColumns = []column{
		{"No", 1, align.Center},
		{"Fecha", 1, align.Center},
		{"Documento", 2, align.Left},
		{"Proveedor", 3, align.Left},
		{"NIT/NRC", 1, align.Left},
		{"Exentas", 1, align.Right},
		{"Gravadas", 1, align.Right},
		{"Crédito Fiscal", 1, align.Right},
		{"Total", 1, align.Right},
	}
	saleColumns = []column{
		{"No", 1, align.Center},
		{"Fecha", 1, align.Center},
		{"Documento", 2, align.Left},
		{"Cliente", 3, align.Left},
		{"NIT/NRC", 1, align.Left},
		{"Exentas", 1, align.Right},
		{"Gravadas", 1, align.Right},
		{"Débito Fiscal", 1, align.Right},
		{"Total", 1, align.Right},
	}
)

// LedgerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) LedgerPDF(data *appl.LedgerData) ([]byte, error) {
	company := data.Company
	period := data.Period

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(period.Kind.Title()+" "+period.Label(), true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, period))
	m.AddRows(infoRow(period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	columns := purchaseColumns
	var body [][]string
	if period.Kind.IsSales() {
		columns = saleColumns
		for _, e := range data.Sales {
			body = append(body, saleCells(e))
		}
	} else {
		for _, e := range data.Purchases {
			body = append(body, purchaseCells(e))
		}
	}

	m.AddRows(tableHeaderRow(columns))
	for _, cells := range body {
		m.AddRows(tableRow(columns, cells, nil))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(columns, data))

	if len(data.Cancelled) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("FACTURAS ANULADAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorRed, Top: 1,
			}),
		)))
		for _, e := range data.Cancelled {
			cells := saleCells(e)
			cells[5], cells[6], cells[7], cells[8] = "ANULADA", "", "", ""
			m.AddRows(tableRow(columns, cells, colorRed))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: Razón social + NIT/NRC (izq) y título del libro + periodo (der).
func headerRow(company *entity.Company, period *entity.Period) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("NIT: %s   |   NRC: %s", nonEmpty(company.NIT, "—"), nonEmpty(company.NRC, "—")), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(period.Kind.Title()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(period.Label(), "—"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// infoRow: contador, estado y fecha de emisión.
func infoRow(period *entity.Period) core.Row {
	state := "BORRADOR"
	if period.State == entity.StateValidated {
		state = "VALIDADO"
	}
	fecha := nonEmpty(formatDate(period.Date), "—")
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Contador: %s   |   Estado: %s   |   Fecha de emisión: %s",
			nonEmpty(period.ContadorName, "—"), state, fecha,
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(columns []column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(cols...)
}

// tableRow: una fila por línea del libro.
func tableRow(columns []column, cells []string, color *props.Color) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(cells[i], props.Text{
			Size: 7, Align: c.align, Top: 1, Left: 1, Right: 1, Color: color,
		})))
	}
	return row.New(6).Add(cols...)
}

// totalsRow: totales bajo las columnas de montos.
func totalsRow(columns []column, data *appl.LedgerData) core.Row {
	t := data.Totals
	values := []string{
		formatMoney(t.Exentas),
		formatMoney(t.Gravadas),
		formatMoney(t.Impuesto),
		formatMoney(t.Total),
	}
	labelSize := 0
	for _, c := range columns[:len(columns)-len(values)] {
		labelSize += c.size
	}
	cols := []core.Col{col.New(labelSize).Add(text.New(
		fmt.Sprintf("TOTALES (%d documentos)", t.Count), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 2,
			Color: colorPrimary,
		}))}
	for _, v := range values {
		cols = append(cols, col.New(1).Add(text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func purchaseCells(e *entity.PurchaseEntry) []string {
	return []string{
		fmt.Sprint(e.Sequence),
		formatDate(e.InvoiceDate),
		documentLabel(e.DocType, e.DocNumber),
		e.PartnerName,
		e.PartnerNIT,
		formatMoney(decimal.Sum(e.InternasExentas, e.InternacionesExentas, e.ImportacionesExentas)),
		formatMoney(decimal.Sum(e.InternasGravadas, e.InternacionesGravadasBienes,
			e.ImportacionesGravadasBienes, e.ImportacionesGravadasServicios)),
		formatMoney(e.CreditoFiscal),
		formatMoney(e.Total),
	}
}

func saleCells(e *entity.SaleEntry) []string {
	return []string{
		fmt.Sprint(e.Sequence),
		formatDate(e.InvoiceDate),
		documentLabel(e.DocType, e.DocNumber),
		e.PartnerName,
		e.PartnerNIT,
		formatMoney(e.Exentas),
		formatMoney(e.Gravadas),
		formatMoney(e.DebitoFiscal),
		formatMoney(e.Total),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func documentLabel(docType, number string) string {
	if docType == "" {
		return number
	}
	return docType + " " + number
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// formatMoney dos decimales con coma de miles.
// Ej: 1234567.5 → "1,234,567.50", -25 → "-25.00"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf) + "." + frac
}
