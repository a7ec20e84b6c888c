package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento contable que alimentan los libros.
const (
	MoveInInvoice  = "in_invoice"  // Factura de proveedor
	MoveInRefund   = "in_refund"   // Nota de crédito de proveedor
	MoveOutInvoice = "out_invoice" // Factura de cliente
	MoveOutRefund  = "out_refund"  // Nota de crédito a cliente
)

// Estados de la factura en el almacén de facturas.
const (
	MoveStateDraft  = "draft"
	MoveStatePosted = "posted"
	MoveStateCancel = "cancel"
)

// Move es una factura contabilizada leída del almacén de facturas (solo lectura para este servicio).
type Move struct {
	ID            string
	CompanyID     string
	Name          string // Número interno del documento
	Ref           string // Referencia del proveedor (compras)
	MoveType      string
	State         string
	InvoiceDate   time.Time
	Partner       Partner
	AmountUntaxed decimal.Decimal
	AmountTotal   decimal.Decimal

	// DocumentTypeCode tipo de documento Hacienda (CAT-002), solo ventas.
	DocumentTypeCode string

	// Campos DTE; vacíos en documentos impresos.
	ControlNumber  string
	GenerationCode string
	ReceivedSeal   string

	// Resolución y serie de documentos impresos.
	Resolution string
	Series     string

	Lines []MoveLine
}

// MoveLine línea de factura.
type MoveLine struct {
	ID           string
	MoveID       string
	Subtotal     decimal.Decimal // precio sin impuestos
	Total        decimal.Decimal // precio con impuestos
	HasTax       bool
	PriceInclude bool // algún impuesto de la línea está incluido en el precio
}

// HasTaxes indica si alguna línea lleva impuesto.
func (m *Move) HasTaxes() bool {
	for _, l := range m.Lines {
		if l.HasTax {
			return true
		}
	}
	return false
}

// PriceIncluded indica si algún impuesto de la factura está incluido en el precio.
func (m *Move) PriceIncluded() bool {
	for _, l := range m.Lines {
		if l.HasTax && l.PriceInclude {
			return true
		}
	}
	return false
}

// IsElectronic indica si el documento es un DTE (tiene código de generación).
func (m *Move) IsElectronic() bool {
	return m.GenerationCode != ""
}
