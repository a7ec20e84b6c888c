package libro_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/libro"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func purchase(id, name, ref string, day int, subtotal string) *entity.Move {
	sub := d(subtotal)
	return &entity.Move{
		ID:          id,
		Name:        name,
		Ref:         ref,
		MoveType:    entity.MoveInInvoice,
		State:       entity.MoveStatePosted,
		InvoiceDate: date(2024, time.February, day),
		Partner:     entity.Partner{ID: "p-" + id, Name: "Proveedor " + id, VAT: "0614-150390-102-3"},
		AmountTotal: sub.Add(sub.Mul(d("0.13")).Round(2)),
		Lines:       []entity.MoveLine{{Subtotal: sub, HasTax: true}},
	}
}

func TestBuildPurchaseEntries_OmiteSujetoExcluido(t *testing.T) {
	moves := []*entity.Move{
		purchase("3", "BILL/0003", "CCF-003", 20, "40"),
		purchase("1", "BILL/0001", "CCF-001", 5, "100"),
		purchase("2", "BILL/0002", "DTE-14-XYZ", 10, "70"),
	}

	res, err := libro.BuildPurchaseEntries("per-1", moves, libro.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, "1", res.Entries[0].MoveID)
	assert.Equal(t, 1, res.Entries[0].Sequence)
	assert.Equal(t, "3", res.Entries[1].MoveID)
	assert.Equal(t, 2, res.Entries[1].Sequence)
	for _, e := range res.Entries {
		assert.True(t, e.Selected)
		assert.Equal(t, "per-1", e.PeriodID)
		assert.Contains(t, []string{"03", "05", "06", "11", "12", "13"}, e.DocType)
		assert.Equal(t, "1", e.DocClass)
	}
	assert.Equal(t, "13.00", res.Entries[0].CreditoFiscal.StringFixed(2))
}

func TestBuildPurchaseEntries_SinValidas(t *testing.T) {
	moves := []*entity.Move{purchase("1", "BILL/0001", "DTE-14-A", 3, "10")}

	_, err := libro.BuildPurchaseEntries("per-1", moves, libro.DefaultRules())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoValidDocuments))
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "Se omitieron 1 documento(s)")
	assert.Contains(t, err.Error(), "03, 05, 06, 11, 12, 13")
}

func TestBuildPurchaseEntries_VacioNoEsError(t *testing.T) {
	res, err := libro.BuildPurchaseEntries("per-1", nil, libro.DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Zero(t, res.Skipped)
}

func TestBuildPurchaseEntries_Idempotente(t *testing.T) {
	moves := []*entity.Move{
		purchase("2", "BILL/0002", "CCF-2", 7, "15.55"),
		purchase("1", "BILL/0001", "NC-1", 7, "9.99"),
		purchase("4", "BILL/0001", "CCF-4", 7, "1"),
	}
	first, err := libro.BuildPurchaseEntries("per-1", moves, libro.DefaultRules())
	require.NoError(t, err)
	second, err := libro.BuildPurchaseEntries("per-1", moves, libro.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// misma fecha: orden por nombre y luego id
	ids := []string{first.Entries[0].MoveID, first.Entries[1].MoveID, first.Entries[2].MoveID}
	assert.Equal(t, []string{"1", "4", "2"}, ids)
	for i, e := range first.Entries {
		assert.Equal(t, i+1, e.Sequence)
	}
}

func sale(id, code string, day int, untaxed, total string, taxed bool) *entity.Move {
	return &entity.Move{
		ID:               id,
		Name:             "INV/" + id,
		MoveType:         entity.MoveOutInvoice,
		State:            entity.MoveStatePosted,
		InvoiceDate:      date(2024, time.March, day),
		DocumentTypeCode: code,
		AmountUntaxed:    d(untaxed),
		AmountTotal:      d(total),
		Lines:            []entity.MoveLine{{Subtotal: d(untaxed), HasTax: taxed}},
	}
}

func TestBuildSaleEntries_CreditoFiscalConAnuladas(t *testing.T) {
	posted := []*entity.Move{
		sale("1", "03", 2, "100", "113", true),
		sale("2", "01", 3, "50", "56.50", true),
		sale("3", "05", 4, "20", "22.60", true),
	}
	cancelled := []*entity.Move{
		sale("9", "03", 5, "10", "11.30", true),
		sale("8", "01", 6, "10", "11.30", true),
	}

	res, err := libro.BuildSaleEntries("per-2", entity.KindFiscalCredit, posted, cancelled, libro.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "1", res.Entries[0].MoveID)
	assert.Equal(t, "3", res.Entries[1].MoveID)
	assert.Equal(t, "13.00", res.Entries[0].DebitoFiscal.StringFixed(2))

	require.Len(t, res.Cancelled, 1)
	assert.Equal(t, "9", res.Cancelled[0].MoveID)
	assert.Equal(t, 1, res.Cancelled[0].Sequence)
	assert.True(t, res.Cancelled[0].Cancelled)
	assert.False(t, res.Cancelled[0].Selected)
}

func TestBuildSaleEntries_SinValidas(t *testing.T) {
	posted := []*entity.Move{sale("1", "03", 2, "100", "113", true)}
	_, err := libro.BuildSaleEntries("per-2", entity.KindFinalConsumer, posted, nil, libro.DefaultRules())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoValidDocuments))
	assert.Contains(t, err.Error(), "01, 02, 10, 11")
}

func TestTotals_ExcluyenAnuladas(t *testing.T) {
	entries := []*entity.SaleEntry{
		{Gravadas: d("100"), DebitoFiscal: d("13"), Total: d("113")},
		{Exentas: d("40"), Total: d("40")},
		{Gravadas: d("999"), DebitoFiscal: d("1"), Total: d("1000"), Cancelled: true},
	}
	tot := libro.SaleTotals(entries)
	assert.Equal(t, 2, tot.Count)
	assert.Equal(t, "100.00", tot.Gravadas.StringFixed(2))
	assert.Equal(t, "40.00", tot.Exentas.StringFixed(2))
	assert.Equal(t, "13.00", tot.Impuesto.StringFixed(2))
	assert.Equal(t, "153.00", tot.Total.StringFixed(2))
}

func TestPurchaseTotals(t *testing.T) {
	entries := []*entity.PurchaseEntry{
		{InternasGravadas: d("100"), CreditoFiscal: d("13"), Total: d("113")},
		{InternasExentas: d("5"), Total: d("5")},
	}
	tot := libro.PurchaseTotals(entries)
	assert.Equal(t, 2, tot.Count)
	assert.Equal(t, "100.00", tot.Gravadas.StringFixed(2))
	assert.Equal(t, "5.00", tot.Exentas.StringFixed(2))
	assert.Equal(t, "13.00", tot.Impuesto.StringFixed(2))
	assert.Equal(t, "118.00", tot.Total.StringFixed(2))
}
