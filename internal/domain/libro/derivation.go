package libro

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/pkg/hacienda"
)

// ConsumerTaxedBasis base de las ventas gravadas en el libro de consumidor final.
type ConsumerTaxedBasis string

const (
	// BasisGross ventas gravadas con IVA incluido (precio al consumidor); sin débito separado.
	BasisGross ConsumerTaxedBasis = "gross"
	// BasisNet subtotal sin IVA y débito separado, igual que crédito fiscal.
	BasisNet ConsumerTaxedBasis = "net"
)

// DefaultFiscalRate tasa de IVA (13%).
var DefaultFiscalRate = decimal.RequireFromString("0.13")

// Rules parámetros de derivación de montos.
type Rules struct {
	FiscalRate    decimal.Decimal
	ConsumerBasis ConsumerTaxedBasis
}

// DefaultRules 13% y ventas a consumidor con IVA incluido.
func DefaultRules() Rules {
	return Rules{FiscalRate: DefaultFiscalRate, ConsumerBasis: BasisGross}
}

// NewRules construye las reglas desde configuración textual.
func NewRules(rate, basis string) (Rules, error) {
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return Rules{}, fmt.Errorf("libro: tasa fiscal inválida %q: %w", rate, err)
	}
	if r.IsNegative() || r.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Rules{}, fmt.Errorf("libro: tasa fiscal fuera de rango: %s", rate)
	}
	b := ConsumerTaxedBasis(basis)
	if b != BasisGross && b != BasisNet {
		return Rules{}, fmt.Errorf("libro: base gravada de consumidor inválida %q", basis)
	}
	return Rules{FiscalRate: r, ConsumerBasis: b}, nil
}

// PurchaseAmounts columnas monetarias de una compra.
type PurchaseAmounts struct {
	Exentas       decimal.Decimal
	Gravadas      decimal.Decimal
	CreditoFiscal decimal.Decimal
	Total         decimal.Decimal
}

// DerivePurchase reparte las líneas en exentas/gravadas. Crédito fiscal = round(gravadas × rate, 2).
// Las notas de crédito se reportan en positivo.
func DerivePurchase(m *entity.Move, rate decimal.Decimal) PurchaseAmounts {
	var a PurchaseAmounts
	for _, l := range m.Lines {
		amount := l.Subtotal.Abs()
		if l.HasTax {
			a.Gravadas = a.Gravadas.Add(amount)
		} else {
			a.Exentas = a.Exentas.Add(amount)
		}
	}
	a.CreditoFiscal = a.Gravadas.Mul(rate).Round(2)
	a.Total = m.AmountTotal.Abs()
	return a
}

// SaleAmounts columnas monetarias de una venta.
type SaleAmounts struct {
	Exentas                  decimal.Decimal
	Gravadas                 decimal.Decimal
	GravadasLocales          decimal.Decimal
	DebitoFiscal             decimal.Decimal
	ExportFueraCentroamerica decimal.Decimal
	Total                    decimal.Decimal
}

// DeriveSale calcula las columnas de una venta según el libro.
//
// Crédito fiscal: gravadas = subtotal sin IVA, débito = total - subtotal.
// Consumidor final con BasisGross: gravadas = total con IVA y sin débito.
// Sin impuestos: exentas = subtotal. Exportación (11): todo a exportaciones fuera de CA.
func DeriveSale(m *entity.Move, kind entity.LedgerKind, rules Rules) SaleAmounts {
	a := SaleAmounts{Total: m.AmountTotal}

	if m.HasTaxes() {
		if kind == entity.KindFinalConsumer && rules.ConsumerBasis != BasisNet {
			a.Gravadas = m.AmountTotal
			a.GravadasLocales = m.AmountTotal
		} else {
			a.Gravadas = m.AmountUntaxed
			a.GravadasLocales = m.AmountUntaxed
			a.DebitoFiscal = m.AmountTotal.Sub(m.AmountUntaxed)
		}
	} else {
		a.Exentas = m.AmountUntaxed
	}

	if saleDocType(m) == hacienda.DocFacturaExportacion {
		if m.PriceIncluded() {
			a.ExportFueraCentroamerica = m.AmountTotal
		} else {
			a.ExportFueraCentroamerica = m.AmountUntaxed
		}
		a.Exentas = decimal.Zero
		a.Gravadas = decimal.Zero
		a.GravadasLocales = decimal.Zero
		a.DebitoFiscal = decimal.Zero
	}
	return a
}
