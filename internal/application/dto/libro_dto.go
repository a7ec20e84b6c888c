package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePeriodRequest entrada para crear un libro. Date en formato YYYY-MM-DD; vacío = hoy.
type CreatePeriodRequest struct {
	Kind              string `json:"kind" validate:"required,oneof=compras consumidor credito"`
	Year              int    `json:"year" validate:"required,min=2000,max=2100"`
	Month             int    `json:"month" validate:"required,min=1,max=12"`
	ContadorName      string `json:"contador_name" validate:"required,max=200"`
	Date              string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IncluirSucursales bool   `json:"incluir_sucursales"`
	Comentarios       string `json:"comentarios" validate:"omitempty,max=2000"`
}

// UpdatePeriodRequest cambios parciales; campos nil no se modifican.
type UpdatePeriodRequest struct {
	ContadorName      *string `json:"contador_name" validate:"omitempty,max=200"`
	Date              *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IncluirSucursales *bool   `json:"incluir_sucursales"`
	Comentarios       *string `json:"comentarios" validate:"omitempty,max=2000"`
	State             *string `json:"state" validate:"omitempty,oneof=draft validated"`
}

// LoadPeriodRequest acota opcionalmente el rango de fechas dentro del mes (YYYY-MM-DD).
type LoadPeriodRequest struct {
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
}

// RectifyRequest motivo de la rectificación.
type RectifyRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

// ListPeriodsRequest filtros del listado.
type ListPeriodsRequest struct {
	Kind string `query:"kind" validate:"omitempty,oneof=compras consumidor credito"`
	Year int    `query:"year" validate:"omitempty,min=2000,max=2100"`
	PageRequest
}

// UpdateEntryRequest cambios de usuario sobre una línea.
type UpdateEntryRequest struct {
	Selected           *bool   `json:"selected"`
	DUI                *string `json:"dui" validate:"omitempty,max=10"`
	TipoOperacion      *string `json:"tipo_operacion" validate:"omitempty,max=2"`
	Clasificacion      *string `json:"clasificacion" validate:"omitempty,max=2"`
	Sector             *string `json:"sector" validate:"omitempty,max=2"`
	TipoCostoGasto     *string `json:"tipo_costo_gasto" validate:"omitempty,max=2"`
	TipoOperacionRenta *string `json:"tipo_operacion_renta" validate:"omitempty,max=2"`
	TipoIngresoRenta   *string `json:"tipo_ingreso_renta" validate:"omitempty,max=2"`
}

// PeriodResponse salida de un libro.
type PeriodResponse struct {
	ID                string    `json:"id"`
	CompanyID         string    `json:"company_id"`
	Kind              string    `json:"kind"`
	Title             string    `json:"title"`
	Periodo           string    `json:"periodo"`
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	AssistantID       string    `json:"assistant_id"`
	ContadorName      string    `json:"contador_name"`
	Date              time.Time `json:"date"`
	IncluirSucursales bool      `json:"incluir_sucursales"`
	State             string    `json:"state"`
	Comentarios       string    `json:"comentarios,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PeriodListResponse listado paginado.
type PeriodListResponse struct {
	Items []PeriodResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// LoadResult resumen de la carga de facturas.
type LoadResult struct {
	Loaded    int `json:"loaded"`
	Skipped   int `json:"skipped"`
	Cancelled int `json:"cancelled"`
}

// TotalsResponse totales del libro.
type TotalsResponse struct {
	Count    int             `json:"count"`
	Exentas  decimal.Decimal `json:"exentas"`
	Gravadas decimal.Decimal `json:"gravadas"`
	Impuesto decimal.Decimal `json:"impuesto"`
	Total    decimal.Decimal `json:"total"`
}

// PurchaseEntryResponse línea de compras.
type PurchaseEntryResponse struct {
	ID               string          `json:"id"`
	Sequence         int             `json:"sequence"`
	MoveID           string          `json:"move_id"`
	PartnerName      string          `json:"partner_name"`
	PartnerNIT       string          `json:"partner_nit"`
	DUI              string          `json:"dui,omitempty"`
	InvoiceDate      time.Time       `json:"invoice_date"`
	DocType          string          `json:"doc_type"`
	DocClass         string          `json:"doc_class"`
	DocNumber        string          `json:"doc_number"`
	ControlNumber    string          `json:"control_number,omitempty"`
	GenerationCode   string          `json:"generation_code,omitempty"`
	ReceivedSeal     string          `json:"received_seal,omitempty"`
	InternasExentas  decimal.Decimal `json:"internas_exentas"`
	InternasGravadas decimal.Decimal `json:"internas_gravadas"`
	CreditoFiscal    decimal.Decimal `json:"credito_fiscal"`
	Total            decimal.Decimal `json:"total"`
	TipoOperacion    string          `json:"tipo_operacion"`
	Clasificacion    string          `json:"clasificacion"`
	Sector           string          `json:"sector"`
	TipoCostoGasto   string          `json:"tipo_costo_gasto"`
	Selected         bool            `json:"selected"`
}

// SaleEntryResponse línea de ventas.
type SaleEntryResponse struct {
	ID                       string          `json:"id"`
	Sequence                 int             `json:"sequence"`
	MoveID                   string          `json:"move_id"`
	PartnerName              string          `json:"partner_name"`
	PartnerNIT               string          `json:"partner_nit"`
	DUI                      string          `json:"dui,omitempty"`
	InvoiceDate              time.Time       `json:"invoice_date"`
	DocType                  string          `json:"doc_type"`
	DocNumber                string          `json:"doc_number"`
	ControlNumber            string          `json:"control_number,omitempty"`
	GenerationCode           string          `json:"generation_code,omitempty"`
	ReceivedSeal             string          `json:"received_seal,omitempty"`
	Exentas                  decimal.Decimal `json:"exentas"`
	GravadasLocales          decimal.Decimal `json:"gravadas_locales"`
	ExportFueraCentroamerica decimal.Decimal `json:"exportaciones_fuera_ca"`
	Gravadas                 decimal.Decimal `json:"gravadas"`
	DebitoFiscal             decimal.Decimal `json:"debito_fiscal"`
	Total                    decimal.Decimal `json:"total"`
	TipoOperacionRenta       string          `json:"tipo_operacion_renta"`
	TipoIngresoRenta         string          `json:"tipo_ingreso_renta"`
	Selected                 bool            `json:"selected"`
	Cancelled                bool            `json:"cancelled"`
}

// PeriodDetailResponse libro con sus líneas y totales.
type PeriodDetailResponse struct {
	Period    PeriodResponse          `json:"period"`
	Totals    TotalsResponse          `json:"totals"`
	Purchases []PurchaseEntryResponse `json:"purchases,omitempty"`
	Sales     []SaleEntryResponse     `json:"sales,omitempty"`
	Cancelled []SaleEntryResponse     `json:"cancelled,omitempty"`
}

// FileResponse archivo generado para descarga.
type FileResponse struct {
	Filename    string
	ContentType string
	Content     []byte
}
