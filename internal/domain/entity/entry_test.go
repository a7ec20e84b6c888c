package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

func str(s string) *string { return &s }

func TestPurchaseEntryApply_Catalogos(t *testing.T) {
	e := &entity.PurchaseEntry{TipoOperacion: "1", Clasificacion: "1", Sector: "4", TipoCostoGasto: "5", Selected: true}

	require.NoError(t, e.Apply(entity.EntryPatch{
		TipoOperacion:  str("9"),
		Clasificacion:  str(" 2 "),
		Sector:         str("2"),
		TipoCostoGasto: str("8"),
	}))
	assert.Equal(t, "9", e.TipoOperacion)
	assert.Equal(t, "2", e.Clasificacion)
	assert.Equal(t, "2", e.Sector)
	assert.Equal(t, "8", e.TipoCostoGasto)

	// Vacío limpia la columna; el CSV usa el valor por defecto.
	require.NoError(t, e.Apply(entity.EntryPatch{Clasificacion: str("")}))
	assert.Equal(t, "", e.Clasificacion)
}

func TestPurchaseEntryApply_CodigoInvalidoNoModifica(t *testing.T) {
	e := &entity.PurchaseEntry{TipoOperacion: "1", Clasificacion: "1", Sector: "4", TipoCostoGasto: "5", Selected: true}
	no := false

	err := e.Apply(entity.EntryPatch{Selected: &no, Sector: str("2"), TipoCostoGasto: str("10")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "tipo de costo/gasto")
	assert.True(t, e.Selected)
	assert.Equal(t, "4", e.Sector)
	assert.Equal(t, "5", e.TipoCostoGasto)

	for _, bad := range []*string{str("5"), str("x")} {
		err = e.Apply(entity.EntryPatch{TipoOperacion: bad})
		assert.True(t, errors.Is(err, domain.ErrValidation), *bad)
	}
	assert.Equal(t, "1", e.TipoOperacion)
}

func TestSaleEntryApply_CatalogosRenta(t *testing.T) {
	e := &entity.SaleEntry{TipoOperacionRenta: "1", TipoIngresoRenta: "3"}

	require.NoError(t, e.Apply(entity.EntryPatch{TipoOperacionRenta: str("13"), TipoIngresoRenta: str("7")}))
	assert.Equal(t, "13", e.TipoOperacionRenta)
	assert.Equal(t, "7", e.TipoIngresoRenta)

	err := e.Apply(entity.EntryPatch{TipoIngresoRenta: str("11")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "7", e.TipoIngresoRenta)

	// Los códigos de compras no aplican a ventas.
	require.NoError(t, e.Apply(entity.EntryPatch{Sector: str("99")}))
}

func TestSaleEntryApply_AnuladaNoSeSelecciona(t *testing.T) {
	e := &entity.SaleEntry{Cancelled: true}
	yes := true
	err := e.Apply(entity.EntryPatch{Selected: &yes, TipoOperacionRenta: str("2")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, e.Selected)
	assert.Equal(t, "", e.TipoOperacionRenta)
}
