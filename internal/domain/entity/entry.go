package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/pkg/hacienda"
)

// PurchaseEntry línea del Libro de Compras (Anexo 3). Pertenece a un único Period.
type PurchaseEntry struct {
	ID          string
	PeriodID    string
	Sequence    int
	MoveID      string
	PartnerID   string
	PartnerName string
	PartnerNIT  string
	DUI         string // Columna P, solo personas naturales
	InvoiceDate time.Time

	CodigoMH       string
	DocType        string
	DCL            string // solo importaciones
	DocNumber      string
	ControlNumber  string
	GenerationCode string
	ReceivedSeal   string
	DocClass       string

	// Columnas G a O.
	InternasExentas                decimal.Decimal
	InternacionesExentas           decimal.Decimal
	ImportacionesExentas           decimal.Decimal
	InternasGravadas               decimal.Decimal
	InternacionesGravadasBienes    decimal.Decimal
	ImportacionesGravadasBienes    decimal.Decimal
	ImportacionesGravadasServicios decimal.Decimal
	CreditoFiscal                  decimal.Decimal
	Total                          decimal.Decimal

	// Columnas Q a T.
	TipoOperacion  string
	Clasificacion  string
	Sector         string
	TipoCostoGasto string

	Selected bool
}

// SaleEntry línea del Libro de Ventas (Anexos 1 y 2). Cancelled marca las facturas anuladas,
// que se guardan aparte y no entran en totales ni exportaciones.
type SaleEntry struct {
	ID          string
	PeriodID    string
	Sequence    int
	MoveID      string
	PartnerID   string
	PartnerName string
	PartnerNIT  string
	DUI         string
	InvoiceDate time.Time

	DocNumber      string
	ControlNumber  string
	GenerationCode string
	ReceivedSeal   string
	DocType        string
	Resolution     string
	Series         string

	Exentas                  decimal.Decimal
	ExentasNoSujetas         decimal.Decimal
	NoSujetas                decimal.Decimal
	GravadasLocales          decimal.Decimal
	ExportCentroamerica      decimal.Decimal
	ExportFueraCentroamerica decimal.Decimal
	ExportServicios          decimal.Decimal
	ZonasFrancas             decimal.Decimal
	CuentaTerceros           decimal.Decimal
	DebitoTerceros           decimal.Decimal
	Gravadas                 decimal.Decimal
	DebitoFiscal             decimal.Decimal
	Total                    decimal.Decimal

	TipoOperacionRenta string
	TipoIngresoRenta   string

	Selected  bool
	Cancelled bool
}

// SubColumnsTotal suma de las columnas K a S del Anexo 2.
func (e *SaleEntry) SubColumnsTotal() decimal.Decimal {
	return decimal.Sum(e.Exentas,
		e.ExentasNoSujetas,
		e.NoSujetas,
		e.GravadasLocales,
		e.ExportCentroamerica,
		e.ExportFueraCentroamerica,
		e.ExportServicios,
		e.ZonasFrancas,
		e.CuentaTerceros,
	)
}

// EntryPatch cambios de usuario sobre una línea; nil = sin cambio.
// Los códigos de clasificación aplican a compras (Q-T) o ventas (renta) según el libro.
type EntryPatch struct {
	Selected           *bool
	DUI                *string
	TipoOperacion      *string
	Clasificacion      *string
	Sector             *string
	TipoCostoGasto     *string
	TipoOperacionRenta *string
	TipoIngresoRenta   *string
}

func cleanDUI(dui *string) (string, error) {
	v := strings.TrimSpace(*dui)
	if v != "" && !hacienda.IsValidDUI(v) {
		return "", domain.NewValidationError(domain.ErrInvalidInput, "DUI inválido: %s", v)
	}
	return v, nil
}

// catalogCode valida un código contra su catálogo de Hacienda y lo escribe en dst.
// El código vacío limpia la columna.
func catalogCode(dst *string, v *string, field string, catalogue map[string]string) error {
	if v == nil {
		return nil
	}
	code := strings.TrimSpace(*v)
	if _, ok := catalogue[code]; code != "" && !ok {
		return domain.NewValidationError(domain.ErrInvalidInput, "%s fuera de catálogo: %q", field, code)
	}
	*dst = code
	return nil
}

// Apply aplica los cambios de usuario; ignora los códigos de renta.
// Si un código no está en catálogo la línea queda sin cambios.
func (e *PurchaseEntry) Apply(patch EntryPatch) error {
	next := *e
	if patch.DUI != nil {
		dui, err := cleanDUI(patch.DUI)
		if err != nil {
			return err
		}
		next.DUI = dui
	}
	if patch.Selected != nil {
		next.Selected = *patch.Selected
	}
	for _, c := range []struct {
		dst       *string
		v         *string
		field     string
		catalogue map[string]string
	}{
		{&next.TipoOperacion, patch.TipoOperacion, "tipo de operación", hacienda.PurchaseOperationTypes},
		{&next.Clasificacion, patch.Clasificacion, "clasificación", hacienda.PurchaseClassifications},
		{&next.Sector, patch.Sector, "sector", hacienda.PurchaseSectors},
		{&next.TipoCostoGasto, patch.TipoCostoGasto, "tipo de costo/gasto", hacienda.PurchaseCostTypes},
	} {
		if err := catalogCode(c.dst, c.v, c.field, c.catalogue); err != nil {
			return err
		}
	}
	*e = next
	return nil
}

// Apply aplica los cambios de usuario; ignora las columnas Q-T de compras.
// Las anuladas no se pueden seleccionar.
func (e *SaleEntry) Apply(patch EntryPatch) error {
	next := *e
	if patch.DUI != nil {
		dui, err := cleanDUI(patch.DUI)
		if err != nil {
			return err
		}
		next.DUI = dui
	}
	if patch.Selected != nil {
		if e.Cancelled && *patch.Selected {
			return domain.NewValidationError(domain.ErrInvalidInput, "Las facturas anuladas no se exportan.")
		}
		next.Selected = *patch.Selected
	}
	if err := catalogCode(&next.TipoOperacionRenta, patch.TipoOperacionRenta, "tipo de operación (renta)", hacienda.RentaOperationTypes); err != nil {
		return err
	}
	if err := catalogCode(&next.TipoIngresoRenta, patch.TipoIngresoRenta, "tipo de ingreso (renta)", hacienda.RentaIncomeTypes); err != nil {
		return err
	}
	*e = next
	return nil
}

// Note nota de auditoría asociada a un registro (p. ej. rectificación de un libro).
type Note struct {
	ID        string
	ResModel  string
	ResID     string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}
