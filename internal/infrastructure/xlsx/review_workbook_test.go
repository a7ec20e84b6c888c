package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appl "github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	domainlibro "github.com/jhoicas/libros-fiscales/internal/domain/libro"
	"github.com/jhoicas/libros-fiscales/internal/infrastructure/xlsx"
)

func open(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func raw(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestWorkbook_Compras(t *testing.T) {
	entries := []*entity.PurchaseEntry{
		{
			Sequence:         1,
			InvoiceDate:      time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			DocType:          "03",
			DocNumber:        "CCF-001",
			PartnerName:      "Distribuidora Centroamericana",
			InternasGravadas: decimal.NewFromInt(100),
			CreditoFiscal:    decimal.NewFromInt(13),
			Total:            decimal.NewFromInt(113),
			Selected:         true,
		},
		{
			Sequence:        2,
			InvoiceDate:     time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC),
			DocType:         "03",
			DocNumber:       "CCF-002",
			PartnerName:     "Papelería Central",
			InternasExentas: decimal.RequireFromString("7.5"),
			Total:           decimal.RequireFromString("7.5"),
			Selected:        true,
		},
	}
	data := &appl.LedgerData{
		Company:   &entity.Company{Name: "Comercial Demo"},
		Period:    &entity.Period{Kind: entity.KindPurchases, Year: 2024, Month: 2},
		Purchases: entries,
		Totals:    domainlibro.PurchaseTotals(entries),
	}

	content, err := xlsx.NewReviewWorkbook().Workbook(data)
	require.NoError(t, err)

	f := open(t, content)
	sheet := xlsx.SheetName(entity.KindPurchases)
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 4, "encabezado, dos líneas y totales")
	assert.Equal(t, "No", rows[0][0])
	assert.Equal(t, "Total", rows[0][13])
	assert.Equal(t, "10/02/2024", rows[1][1])
	assert.Equal(t, "Distribuidora Centroamericana", rows[1][9])

	assert.Equal(t, "113", raw(t, f, sheet, "N2"))
	assert.Equal(t, "7.5", raw(t, f, sheet, "K3"))
	assert.Equal(t, "TOTALES", raw(t, f, sheet, "J4"))
	assert.Equal(t, "7.5", raw(t, f, sheet, "K4"))
	assert.Equal(t, "100", raw(t, f, sheet, "L4"))
	assert.Equal(t, "13", raw(t, f, sheet, "M4"))
	assert.Equal(t, "120.5", raw(t, f, sheet, "N4"))
}

func TestWorkbook_Ventas(t *testing.T) {
	entries := []*entity.SaleEntry{{
		Sequence:       1,
		InvoiceDate:    time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		DocNumber:      "DTE-03-0001",
		GenerationCode: "ABCD-1234",
		PartnerName:    "Cliente SA",
		Gravadas:       decimal.NewFromInt(200),
		DebitoFiscal:   decimal.NewFromInt(26),
		Total:          decimal.NewFromInt(226),
		Selected:       true,
	}}
	data := &appl.LedgerData{
		Company: &entity.Company{Name: "Comercial Demo"},
		Period:  &entity.Period{Kind: entity.KindFiscalCredit, Year: 2024, Month: 3},
		Sales:   entries,
		Totals:  domainlibro.SaleTotals(entries),
	}

	content, err := xlsx.NewReviewWorkbook().Workbook(data)
	require.NoError(t, err)

	f := open(t, content)
	sheet := xlsx.SheetName(entity.KindFiscalCredit)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cliente", rows[0][6])
	assert.Equal(t, "ABCD-1234", rows[1][4])
	assert.Equal(t, "TOTALES", raw(t, f, sheet, "G3"))
	assert.Equal(t, "26", raw(t, f, sheet, "J3"))
	assert.Equal(t, "226", raw(t, f, sheet, "K3"))
}
