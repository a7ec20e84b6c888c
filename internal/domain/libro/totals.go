package libro

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// Totals totales de un libro, calculados siempre desde las líneas actuales.
// Impuesto es crédito fiscal (compras) o débito fiscal (ventas).
type Totals struct {
	Count    int             `json:"count"`
	Exentas  decimal.Decimal `json:"exentas"`
	Gravadas decimal.Decimal `json:"gravadas"`
	Impuesto decimal.Decimal `json:"impuesto"`
	Total    decimal.Decimal `json:"total"`
}

// PurchaseTotals suma las líneas de compras.
func PurchaseTotals(entries []*entity.PurchaseEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Count++
		t.Exentas = t.Exentas.Add(e.InternasExentas).Add(e.InternacionesExentas).Add(e.ImportacionesExentas)
		t.Gravadas = t.Gravadas.Add(e.InternasGravadas).
			Add(e.InternacionesGravadasBienes).
			Add(e.ImportacionesGravadasBienes).
			Add(e.ImportacionesGravadasServicios)
		t.Impuesto = t.Impuesto.Add(e.CreditoFiscal)
		t.Total = t.Total.Add(e.Total)
	}
	return t
}

// SaleTotals suma las líneas de ventas; las anuladas no cuentan.
func SaleTotals(entries []*entity.SaleEntry) Totals {
	var t Totals
	for _, e := range entries {
		if e.Cancelled {
			continue
		}
		t.Count++
		t.Exentas = t.Exentas.Add(e.Exentas)
		t.Gravadas = t.Gravadas.Add(e.Gravadas)
		t.Impuesto = t.Impuesto.Add(e.DebitoFiscal)
		t.Total = t.Total.Add(e.Total)
	}
	return t
}
