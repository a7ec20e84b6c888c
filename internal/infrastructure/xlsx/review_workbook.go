// Package xlsx genera la hoja de cálculo de revisión de un libro con excelize.
package xlsx

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appl "github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

const (
	headerColor  = "4472C4"
	numFmtMoney  = 4 // #,##0.00
	dateLayout   = "02/01/2006"
	defaultWidth = 16
)

var (
	purchaseHeaders = []string{
		"No", "Fecha Emisión", "Código MH", "Tipo de Documento", "DCL",
		"Número de Documento", "Número de Control", "Código de Generación",
		"Sello Digital", "Proveedor", "Internas Exentas", "Internas Gravadas",
		"Crédito Fiscal", "Total",
	}
	saleHeaders = []string{
		"No", "Fecha Emisión", "Número de Documento", "Número de Control",
		"Código Generación", "Sello Recepción", "Cliente", "Ventas Exentas",
		"Ventas Gravadas", "Débito Fiscal", "Total",
	}
)

var _ appl.WorkbookGenerator = (*ReviewWorkbook)(nil)

// ReviewWorkbook implementa libro.WorkbookGenerator.
type ReviewWorkbook struct{}

// NewReviewWorkbook crea el generador.
func NewReviewWorkbook() *ReviewWorkbook {
	return &ReviewWorkbook{}
}

type styles struct {
	header, money, totalLabel, totalMoney int
}

// Workbook escribe encabezado, una fila por línea y la fila de totales.
// Recibe las líneas ya filtradas; no decide qué entra.
func (g *ReviewWorkbook) Workbook(data *appl.LedgerData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(data.Period.Kind)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	var headers []string
	var rows [][]any
	if data.Period.Kind.IsSales() {
		headers = saleHeaders
		for _, e := range data.Sales {
			rows = append(rows, saleRow(e))
		}
	} else {
		headers = purchaseHeaders
		for _, e := range data.Purchases {
			rows = append(rows, purchaseRow(e))
		}
	}

	if err := writeRow(f, sheet, 1, toAny(headers)); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", st.header); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, defaultWidth); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columnas: %w", err)
	}

	// las últimas cuatro columnas son siempre montos
	firstMoney, _ := excelize.ColumnNumberToName(len(headers) - 3)
	for i, r := range rows {
		row := i + 2
		if err := writeRow(f, sheet, row, r); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell(firstMoney, row), cell(lastCol, row), st.money); err != nil {
			return nil, fmt.Errorf("xlsx: estilo montos: %w", err)
		}
	}

	totalRow := len(rows) + 2
	t := data.Totals
	totals := make([]any, len(headers)-4)
	totals[len(totals)-1] = "TOTALES"
	totals = append(totals, money(t.Exentas), money(t.Gravadas), money(t.Impuesto), money(t.Total))
	if err := writeRow(f, sheet, totalRow, totals); err != nil {
		return nil, err
	}
	labelCol, _ := excelize.ColumnNumberToName(len(headers) - 4)
	if err := f.SetCellStyle(sheet, cell(labelCol, totalRow), cell(labelCol, totalRow), st.totalLabel); err != nil {
		return nil, fmt.Errorf("xlsx: estilo totales: %w", err)
	}
	if err := f.SetCellStyle(sheet, cell(firstMoney, totalRow), cell(lastCol, totalRow), st.totalMoney); err != nil {
		return nil, fmt.Errorf("xlsx: estilo totales: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// SheetName nombre de la hoja; Excel limita los nombres a 31 caracteres.
func SheetName(kind entity.LedgerKind) string {
	if kind.IsSales() {
		return "Libro de Ventas"
	}
	return "Libro de Compras"
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	if st.money, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney}); err != nil {
		return st, fmt.Errorf("xlsx: estilo montos: %w", err)
	}
	if st.totalLabel, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, fmt.Errorf("xlsx: estilo totales: %w", err)
	}
	if st.totalMoney, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: numFmtMoney}); err != nil {
		return st, fmt.Errorf("xlsx: estilo totales: %w", err)
	}
	return st, nil
}

func purchaseRow(e *entity.PurchaseEntry) []any {
	return []any{
		e.Sequence,
		formatDate(e.InvoiceDate),
		e.CodigoMH,
		e.DocType,
		e.DCL,
		e.DocNumber,
		e.ControlNumber,
		e.GenerationCode,
		e.ReceivedSeal,
		e.PartnerName,
		money(e.InternasExentas),
		money(e.InternasGravadas),
		money(e.CreditoFiscal),
		money(e.Total),
	}
}

func saleRow(e *entity.SaleEntry) []any {
	return []any{
		e.Sequence,
		formatDate(e.InvoiceDate),
		e.DocNumber,
		e.ControlNumber,
		e.GenerationCode,
		e.ReceivedSeal,
		e.PartnerName,
		money(e.Exentas),
		money(e.Gravadas),
		money(e.DebitoFiscal),
		money(e.Total),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cell("A", row), &values); err != nil {
		return fmt.Errorf("xlsx: escribir fila %d: %w", row, err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// money valor numérico para la celda; el formato lo da el estilo.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
