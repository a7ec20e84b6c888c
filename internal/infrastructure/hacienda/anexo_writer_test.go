package hacienda_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/infrastructure/hacienda"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lines(t *testing.T, b []byte) [][]string {
	t.Helper()
	raw := strings.TrimSuffix(string(b), "\r\n")
	var out [][]string
	for _, l := range strings.Split(raw, "\r\n") {
		out = append(out, strings.Split(l, ";"))
	}
	return out
}

func newWriter(t *testing.T, enc string) *hacienda.AnexoWriter {
	t.Helper()
	w, err := hacienda.NewAnexoWriter(enc)
	require.NoError(t, err)
	return w
}

func TestCompras_Anexo3(t *testing.T) {
	entries := []*entity.PurchaseEntry{
		{
			Sequence:         2,
			InvoiceDate:      time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			DocClass:         "1",
			DocType:          "03",
			DocNumber:        "CCF-001",
			PartnerNIT:       "0614-150390-102-3",
			PartnerName:      "Ferretería El Martillo",
			InternasGravadas: d("100"),
			CreditoFiscal:    d("13"),
			Total:            d("113"),
			DUI:              "00016297-5",
			TipoOperacion:    "1",
			Sector:           "4",
			TipoCostoGasto:   "5",
			Selected:         true,
		},
		{
			Sequence:        1,
			InvoiceDate:     time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
			DocClass:        "4",
			DocType:         "05",
			GenerationCode:  "A1B2C3D4-E5F6-4789-ABCD-0123456789EF",
			ControlNumber:   "DTE-05-M001P000-000000000000001",
			PartnerNIT:      "0614-010101-101-1",
			InternasExentas: d("7.5"),
			Total:           d("7.5"),
			Selected:        true,
		},
		{Sequence: 3, DocType: "03", Selected: false},
	}

	out, err := newWriter(t, "").Compras(entries)
	require.NoError(t, err)
	rows := lines(t, out)
	require.Len(t, rows, 2, "solo líneas seleccionadas")
	for _, r := range rows {
		assert.Len(t, r, hacienda.ColumnsAnexo3)
	}

	first := rows[0]
	assert.Equal(t, "02/03/2024", first[0])
	assert.Equal(t, "A1B2C3D4E5F64789ABCD0123456789EF", first[3], "código de generación sin guiones")
	assert.Equal(t, "7.50", first[6])
	assert.Equal(t, "0.00", first[9])
	assert.Equal(t, "2", first[17], "clasificación vacía usa gasto")
	assert.Equal(t, "3", first[20])

	second := rows[1]
	assert.Equal(t, []string{
		"15/03/2024", "1", "03", "CCF-001", "06141503901023", "Ferretería El Martillo",
		"0.00", "0.00", "0.00", "100.00", "0.00", "0.00", "0.00", "13.00", "113.00",
		"000162975", "1", "2", "4", "5", "3",
	}, second)
}

func TestCompras_SinSeleccion(t *testing.T) {
	_, err := newWriter(t, "utf-8").Compras([]*entity.PurchaseEntry{{Sequence: 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNothingToExport))
	assert.Equal(t, "Debe seleccionar al menos una factura.", err.Error())
}

func TestVentasContribuyentes_Anexo1(t *testing.T) {
	entries := []*entity.SaleEntry{
		{
			Sequence:       1,
			InvoiceDate:    time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			DocType:        "03",
			GenerationCode: "AAAA-BBBB",
			ControlNumber:  "DTE-03-0001",
			ReceivedSeal:   "2024ABCDEF",
			PartnerNIT:     "0614-150390/102-3",
			PartnerName:    "Cliente SA",
			Gravadas:       d("200"),
			DebitoFiscal:   d("26"),
			Total:          d("226"),
			Selected:       true,
		},
		{
			Sequence:      2,
			InvoiceDate:   time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
			DocType:       "05",
			DocNumber:     "NC-0002",
			ControlNumber: "",
			Resolution:    "15041-RES-CR-001",
			Exentas:       d("10"),
			Total:         d("10"),
			Selected:      true,
		},
		{Sequence: 3, DocType: "03", Selected: true, Cancelled: true},
	}

	out, err := newWriter(t, "").VentasContribuyentes(entries)
	require.NoError(t, err)
	rows := lines(t, out)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Len(t, r, hacienda.ColumnsAnexo1)
	}
	assert.Equal(t, []string{
		"05/03/2024", "4", "03", "DTE030001", "2024ABCDEF", "AAAABBBB", "", "06141503901023", "Cliente SA",
		"0.00", "0.00", "200.00", "26.00", "0.00", "0.00", "226.00", "", "1", "3", "1",
	}, rows[0])
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "15041-RES-CR-001", rows[1][3])
	assert.Equal(t, "SERIE", rows[1][4])
	assert.Equal(t, "NC-0002", rows[1][5])
	assert.Equal(t, "NC0002", rows[1][6])
}

func TestVentasConsumidor_Anexo2(t *testing.T) {
	entries := []*entity.SaleEntry{
		{
			Sequence:        1,
			InvoiceDate:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			DocType:         "01",
			GenerationCode:  "1111-2222",
			GravadasLocales: d("113"),
			Gravadas:        d("113"),
			Total:           d("113"),
			Selected:        false,
		},
		{
			Sequence:                 2,
			InvoiceDate:              time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
			DocType:                  "11",
			DocNumber:                "EXP-0001",
			ControlNumber:            "CTRL-01",
			ExportFueraCentroamerica: d("500"),
			Exentas:                  d("1.25"),
			Total:                    d("900"),
			Selected:                 true,
		},
		{Sequence: 3, DocType: "01", Cancelled: true},
	}

	out, err := newWriter(t, "").VentasConsumidor(entries)
	require.NoError(t, err)
	rows := lines(t, out)
	require.Len(t, rows, 2, "todas las líneas no anuladas, seleccionadas o no")
	for _, r := range rows {
		assert.Len(t, r, hacienda.ColumnsAnexo2)
	}

	dte := rows[0]
	assert.Equal(t, "4", dte[1])
	assert.Equal(t, []string{"N/A", "N/A", "N/A", "N/A", "11112222", "11112222", ""}, dte[3:10])
	assert.Equal(t, "113.00", dte[13])
	assert.Equal(t, "113.00", dte[19])
	assert.Equal(t, "2", dte[22])

	printed := rows[1]
	assert.Equal(t, "1", printed[1])
	assert.Equal(t, []string{"N/A", "N/A", "CTRL01", "CTRL01", "EXP-0001", "EXP-0001"}, printed[3:9])
	assert.Equal(t, "501.25", printed[19], "T suma K a S, no el total de la factura")
}

func TestVentasConsumidor_Vacio(t *testing.T) {
	_, err := newWriter(t, "").VentasConsumidor([]*entity.SaleEntry{{Sequence: 1, Cancelled: true}})
	assert.True(t, errors.Is(err, domain.ErrNothingToExport))
}

func TestWindows1252(t *testing.T) {
	entries := []*entity.PurchaseEntry{{
		Sequence:    1,
		InvoiceDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		PartnerName: "Panadería Señor Ñoño",
		Selected:    true,
	}}
	out, err := newWriter(t, "windows-1252").Compras(entries)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Señor", "no debe quedar en UTF-8")

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(out)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), ";Panadería Señor Ñoño;")
}

func TestNewAnexoWriter_CodificacionInvalida(t *testing.T) {
	_, err := hacienda.NewAnexoWriter("latin-9")
	assert.Error(t, err)
}
