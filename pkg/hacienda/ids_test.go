package hacienda_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/libros-fiscales/pkg/hacienda"
)

func TestStripHyphens(t *testing.T) {
	assert.Equal(t, "DTE03M001P000000000000000001", hacienda.StripHyphens("DTE-03-M001P000-000000000000001"))
	assert.Equal(t, "A1B2C3D4E5F6", hacienda.StripHyphens(" A1B2-C3D4-E5F6 "))
	assert.Equal(t, "", hacienda.StripHyphens(""))
}

func TestCleanTaxID(t *testing.T) {
	assert.Equal(t, "06141503901023", hacienda.CleanTaxID("0614-150390-102-3"))
	assert.Equal(t, "1234567", hacienda.CleanTaxID("123456/7"))
}

func TestIsValidDUI(t *testing.T) {
	assert.True(t, hacienda.IsValidDUI("00016297-5"))
	assert.True(t, hacienda.IsValidDUI("000162975"))
	assert.False(t, hacienda.IsValidDUI("00016297-4"), "dígito verificador incorrecto")
	assert.False(t, hacienda.IsValidDUI("1234"), "longitud incorrecta")
}

func TestDocumentTypeName(t *testing.T) {
	assert.Equal(t, "Crédito Fiscal", hacienda.DocumentTypeName("03"))
	assert.Equal(t, "99", hacienda.DocumentTypeName("99"))
}
