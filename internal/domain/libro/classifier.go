// Package libro contiene las reglas de los libros de IVA: clasificación de documentos,
// derivación de columnas y armado de las líneas de cada periodo. Funciones puras, sin I/O.
package libro

import (
	"slices"
	"strings"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/pkg/hacienda"
)

var (
	purchaseDocTypes      = []string{"03", "05", "06", "11", "12", "13"}
	finalConsumerDocTypes = []string{"01", "02", "10", "11"}
	fiscalCreditDocTypes  = []string{"03", "05", "06"}
)

// AllowedDocTypes códigos de tipo de documento que acepta cada libro.
func AllowedDocTypes(kind entity.LedgerKind) []string {
	switch kind {
	case entity.KindFinalConsumer:
		return slices.Clone(finalConsumerDocTypes)
	case entity.KindFiscalCredit:
		return slices.Clone(fiscalCreditDocTypes)
	default:
		return slices.Clone(purchaseDocTypes)
	}
}

// MoveTypes tipos de movimiento que se consultan para cada libro.
// Consumidor final excluye notas de crédito: no son válidas en el Anexo 2.
func MoveTypes(kind entity.LedgerKind) []string {
	switch kind {
	case entity.KindFinalConsumer:
		return []string{entity.MoveOutInvoice}
	case entity.KindFiscalCredit:
		return []string{entity.MoveOutInvoice, entity.MoveOutRefund}
	default:
		return []string{entity.MoveInInvoice, entity.MoveInRefund}
	}
}

// CancelledMoveTypes tipos de movimiento del cubo de anuladas (solo ventas).
func CancelledMoveTypes() []string {
	return []string{entity.MoveOutInvoice, entity.MoveOutRefund}
}

// ClassifyPurchase deduce el tipo de documento de una factura de proveedor a partir de su
// referencia (o nombre). El orden de las reglas es significativo.
func ClassifyPurchase(m *entity.Move) (code string, accepted bool) {
	name := m.Name
	ref := m.Ref
	if ref == "" {
		ref = name
	}

	switch {
	case strings.Contains(ref, "DTE-14") || strings.Contains(name, "DTE-14"):
		code = hacienda.DocSujetoExcluido
	case strings.Contains(ref, "DTE-03") || strings.Contains(ref, "CCF") || strings.Contains(name, "CCF"):
		code = hacienda.DocComprobanteCredito
	case strings.Contains(ref, "DTE-05") || strings.Contains(ref, "NC"):
		code = hacienda.DocNotaCredito
	case strings.Contains(ref, "DTE-06") || strings.Contains(ref, "ND"):
		code = hacienda.DocNotaDebito
	case strings.Contains(ref, "DTE-11"):
		code = hacienda.DocFacturaExportacion
	default:
		code = hacienda.DocComprobanteCredito
	}
	return code, slices.Contains(purchaseDocTypes, code)
}

// ClassifySale toma el tipo de documento de la propia factura y lo valida contra el libro.
func ClassifySale(m *entity.Move, kind entity.LedgerKind) (code string, accepted bool) {
	code = saleDocType(m)
	switch kind {
	case entity.KindFinalConsumer:
		return code, slices.Contains(finalConsumerDocTypes, code)
	case entity.KindFiscalCredit:
		return code, slices.Contains(fiscalCreditDocTypes, code)
	default:
		return code, false
	}
}

// saleDocType código de tipo de documento tal como lo leen clasificación y derivación.
func saleDocType(m *entity.Move) string {
	return strings.TrimSpace(m.DocumentTypeCode)
}

// DocumentClass columna B: 4 para DTE, 1 para documentos impresos.
func DocumentClass(m *entity.Move) string {
	if m.IsElectronic() {
		return hacienda.ClassDTE
	}
	return hacienda.ClassImpreso
}
