package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appl "github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	domainlibro "github.com/jhoicas/libros-fiscales/internal/domain/libro"
)

func TestLedgerPDF_Ventas(t *testing.T) {
	sales := []*entity.SaleEntry{{
		Sequence:    1,
		InvoiceDate: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		DocType:     "01",
		DocNumber:   "FAC-0001",
		PartnerName: "Consumidor Final",
		Gravadas:    decimal.NewFromInt(113),
		Total:       decimal.NewFromInt(113),
		Selected:    true,
	}}
	data := &appl.LedgerData{
		Company: &entity.Company{Name: "Comercial Demo, S.A. de C.V.", NIT: "0614-010101-101-1", NRC: "12345-6"},
		Period: &entity.Period{
			Kind:         entity.KindFinalConsumer,
			Year:         2024,
			Month:        3,
			ContadorName: "Lic. Ana Pérez",
			State:        entity.StateDraft,
		},
		Sales:     sales,
		Cancelled: []*entity.SaleEntry{{Sequence: 1, DocNumber: "FAC-0002", Cancelled: true}},
		Totals:    domainlibro.SaleTotals(sales),
	}

	out, err := NewMarotoPDFGenerator().LedgerPDF(data)
	require.NoError(t, err)
	assert.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestLedgerPDF_ComprasSinFecha(t *testing.T) {
	data := &appl.LedgerData{
		Company:   &entity.Company{Name: "Comercial Demo"},
		Period:    &entity.Period{Kind: entity.KindPurchases},
		Purchases: []*entity.PurchaseEntry{{Sequence: 1, DocNumber: "CCF-1"}},
	}
	out, err := NewMarotoPDFGenerator().LedgerPDF(data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"25":         "25.00",
		"1234.5":     "1,234.50",
		"1234567.89": "1,234,567.89",
		"-25000":     "-25,000.00",
		"999.999":    "1,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}
