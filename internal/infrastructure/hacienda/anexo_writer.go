// Package hacienda genera los anexos CSV que recibe el Ministerio de Hacienda:
// punto y coma como separador, sin encabezados, montos con dos decimales y fechas DD/MM/YYYY.
package hacienda

import (
	"bytes"
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appl "github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	mh "github.com/jhoicas/libros-fiscales/pkg/hacienda"
)

// Codificaciones de salida soportadas.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// Número de columnas de cada anexo.
const (
	ColumnsAnexo1 = 20
	ColumnsAnexo2 = 23
	ColumnsAnexo3 = 21
)

const dateFormat = "02/01/2006"

var _ appl.AnexoWriter = (*AnexoWriter)(nil)

// AnexoWriter implementa libro.AnexoWriter.
type AnexoWriter struct {
	encoding string
}

// NewAnexoWriter construye el writer con la codificación indicada (utf-8 o windows-1252).
func NewAnexoWriter(enc string) (*AnexoWriter, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", EncodingUTF8, "utf8":
		return &AnexoWriter{encoding: EncodingUTF8}, nil
	case EncodingWindows1252, "cp1252":
		return &AnexoWriter{encoding: EncodingWindows1252}, nil
	default:
		return nil, fmt.Errorf("hacienda: codificación no soportada %q", enc)
	}
}

// Compras Anexo 3, 21 columnas (A-U), solo líneas seleccionadas.
func (w *AnexoWriter) Compras(entries []*entity.PurchaseEntry) ([]byte, error) {
	var rows [][]string
	for _, e := range sortPurchases(entries) {
		if !e.Selected {
			continue
		}
		// A-F identificación, G-O montos, P-U clasificación y anexo
		rows = append(rows, []string{
			formatDate(e.InvoiceDate),
			orDefault(e.DocClass, mh.ClassDTE),
			orDefault(e.DocType, mh.DocComprobanteCredito),
			purchaseDocNumber(e),
			mh.StripHyphens(e.PartnerNIT),
			e.PartnerName,
			money(e.InternasExentas),
			money(e.InternacionesExentas),
			money(e.ImportacionesExentas),
			money(e.InternasGravadas),
			money(e.InternacionesGravadasBienes),
			money(e.ImportacionesGravadasBienes),
			money(e.ImportacionesGravadasServicios),
			money(e.CreditoFiscal),
			money(e.Total),
			mh.StripHyphens(e.DUI),
			orDefault(e.TipoOperacion, mh.PurchaseOperationGravada),
			orDefault(e.Clasificacion, mh.PurchaseClassGasto),
			orDefault(e.Sector, mh.PurchaseSectorServicios),
			orDefault(e.TipoCostoGasto, mh.PurchaseCostInterno),
			mh.AnexoCompras,
		})
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError(domain.ErrNothingToExport, "Debe seleccionar al menos una factura.")
	}
	return w.write(rows)
}

// VentasContribuyentes Anexo 1, 20 columnas (A-T), solo líneas seleccionadas no anuladas.
func (w *AnexoWriter) VentasContribuyentes(entries []*entity.SaleEntry) ([]byte, error) {
	var rows [][]string
	for _, e := range sortSales(entries) {
		if !e.Selected || e.Cancelled {
			continue
		}
		dte := e.GenerationCode != ""
		resolution, series, docNumber, internal := "N/A", "SERIE", e.DocNumber, e.ControlNumber
		if dte {
			resolution = mh.StripHyphens(e.ControlNumber)
			series = e.ReceivedSeal
			docNumber = mh.StripHyphens(e.GenerationCode)
			internal = ""
		} else {
			if e.Resolution != "" {
				resolution = e.Resolution
			}
			if e.Series != "" {
				series = e.Series
			}
			if internal == "" {
				internal = e.DocNumber
			}
			internal = mh.StripHyphens(internal)
		}
		// A-I documento y cliente, J-P montos, Q-T DUI, renta y anexo
		rows = append(rows, []string{
			formatDate(e.InvoiceDate),
			classOf(e.GenerationCode),
			orDefault(e.DocType, mh.DocComprobanteCredito),
			resolution,
			series,
			docNumber,
			internal,
			mh.CleanTaxID(e.PartnerNIT),
			e.PartnerName,
			money(e.Exentas),
			money(e.NoSujetas),
			money(e.Gravadas),
			money(e.DebitoFiscal),
			money(e.CuentaTerceros),
			money(e.DebitoTerceros),
			money(e.Total),
			mh.StripHyphens(e.DUI),
			orDefault(e.TipoOperacionRenta, mh.RentaOperationGravada),
			orDefault(e.TipoIngresoRenta, mh.RentaIncomeComerciales),
			mh.AnexoVentasContribuyentes,
		})
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError(domain.ErrNothingToExport, "Debe seleccionar al menos una factura.")
	}
	return w.write(rows)
}

// VentasConsumidor Anexo 2, 23 columnas (A-W), todas las líneas no anuladas.
// La columna T es la suma de K a S, no el total de la factura.
func (w *AnexoWriter) VentasConsumidor(entries []*entity.SaleEntry) ([]byte, error) {
	var rows [][]string
	for _, e := range sortSales(entries) {
		if e.Cancelled {
			continue
		}
		resolution, series := "N/A", "N/A"
		controlFrom := "N/A"
		docFrom := mh.StripHyphens(e.GenerationCode)
		if e.GenerationCode == "" {
			resolution = orDefault(e.Resolution, "N/A")
			series = orDefault(e.Series, "N/A")
			controlFrom = mh.StripHyphens(e.ControlNumber)
			docFrom = e.DocNumber
		}
		// A-J documento, K-S montos, T total de K-S, U-W renta y anexo
		rows = append(rows, []string{
			formatDate(e.InvoiceDate),
			classOf(e.GenerationCode),
			orDefault(e.DocType, mh.DocFactura),
			resolution,
			series,
			controlFrom,
			controlFrom,
			docFrom,
			docFrom,
			"", // J: máquina registradora
			money(e.Exentas),
			money(e.ExentasNoSujetas),
			money(e.NoSujetas),
			money(e.GravadasLocales),
			money(e.ExportCentroamerica),
			money(e.ExportFueraCentroamerica),
			money(e.ExportServicios),
			money(e.ZonasFrancas),
			money(e.CuentaTerceros),
			money(e.SubColumnsTotal()),
			orDefault(e.TipoOperacionRenta, mh.RentaOperationGravada),
			orDefault(e.TipoIngresoRenta, mh.RentaIncomeComerciales),
			mh.AnexoVentasConsumidor,
		})
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError(domain.ErrNothingToExport, "No hay facturas para exportar. Genere el detalle primero.")
	}
	return w.write(rows)
}

func (w *AnexoWriter) write(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	var out io.Writer = &buf
	var closer io.Closer
	if w.encoding == EncodingWindows1252 {
		tw := transform.NewWriter(&buf, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		out, closer = tw, tw
	}

	cw := csv.NewWriter(out)
	cw.Comma = ';'
	cw.UseCRLF = true
	if err := cw.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("hacienda: escribir csv: %w", err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return nil, fmt.Errorf("hacienda: codificar csv: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func purchaseDocNumber(e *entity.PurchaseEntry) string {
	switch {
	case e.GenerationCode != "":
		return mh.StripHyphens(e.GenerationCode)
	case e.ControlNumber != "":
		return mh.StripHyphens(e.ControlNumber)
	default:
		return e.DocNumber
	}
}

func classOf(generationCode string) string {
	if generationCode != "" {
		return mh.ClassDTE
	}
	return mh.ClassImpreso
}

func sortPurchases(in []*entity.PurchaseEntry) []*entity.PurchaseEntry {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b *entity.PurchaseEntry) int { return cmp.Compare(a.Sequence, b.Sequence) })
	return out
}

func sortSales(in []*entity.SaleEntry) []*entity.SaleEntry {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b *entity.SaleEntry) int { return cmp.Compare(a.Sequence, b.Sequence) })
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
