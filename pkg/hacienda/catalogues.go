// Package hacienda contiene los catálogos del Ministerio de Hacienda de El Salvador
// usados en los libros de IVA (Anexos 1, 2 y 3 del F-07) y en los DTE.
package hacienda

// =============================================================================
// CAT-002 Tipo de Documento
// =============================================================================

const (
	DocFactura               = "01" // Factura (consumidor final)
	DocFacturaVentaSimplif   = "02" // Factura de venta simplificada
	DocComprobanteCredito    = "03" // Comprobante de Crédito Fiscal (CCF)
	DocNotaRemision          = "04"
	DocNotaCredito           = "05"
	DocNotaDebito            = "06"
	DocComprobanteRetencion  = "07"
	DocTiquete               = "10" // Tiquetes de máquina registradora
	DocFacturaExportacion    = "11"
	DocDeclaracionMercancias = "12" // Declaración de mercancías (importaciones)
	DocMandamientoIngreso    = "13"
	DocSujetoExcluido        = "14"
)

// DocumentTypeNames nombres legibles por código, usados en reportes de revisión.
var DocumentTypeNames = map[string]string{
	DocFactura:               "Consumidor Final",
	DocFacturaVentaSimplif:   "Factura de Venta Simplificada",
	DocComprobanteCredito:    "Crédito Fiscal",
	DocNotaRemision:          "Nota de Remisión",
	DocNotaCredito:           "Nota de Crédito",
	DocNotaDebito:            "Nota de Débito",
	DocComprobanteRetencion:  "Comprobante de Retención",
	DocTiquete:               "Tiquete",
	DocFacturaExportacion:    "Factura de Exportación",
	DocDeclaracionMercancias: "Declaración de Mercancías",
	DocMandamientoIngreso:    "Mandamiento de Ingreso",
	DocSujetoExcluido:        "Sujeto Excluido",
}

// DocumentTypeName devuelve el nombre del tipo o el código si no está catalogado.
func DocumentTypeName(code string) string {
	if n, ok := DocumentTypeNames[code]; ok {
		return n
	}
	return code
}

// =============================================================================
// Columna B - Clase de Documento
// =============================================================================

const (
	ClassImpreso = "1" // Impreso por imprenta o tiquetes
	ClassDTE     = "4" // Documento Tributario Electrónico
)

// =============================================================================
// Anexo 3 (compras) - columnas Q a T
// =============================================================================

const (
	PurchaseOperationGravada = "1" // Q. Tipo de operación
	PurchaseClassCosto       = "1" // R. Clasificación (valor por defecto de la línea)
	PurchaseClassGasto       = "2" // R. Valor usado en el CSV si la línea no tiene clasificación
	PurchaseSectorServicios  = "4" // S. Servicios, profesiones, artes y oficios
	PurchaseCostInterno      = "5" // T. Costo artículos producidos/comprados interno
)

// PurchaseOperationTypes Q. Tipo de operación.
var PurchaseOperationTypes = map[string]string{
	"1": "Gravada",
	"2": "No Gravada",
	"3": "Excluido o no Constituye Renta",
	"4": "Mixta",
	"9": "Instituciones Públicas",
}

// PurchaseClassifications R. Clasificación.
var PurchaseClassifications = map[string]string{
	"1": "Costo",
	"2": "Gasto",
	"9": "Instituciones Públicas",
}

// PurchaseSectors S. Sector.
var PurchaseSectors = map[string]string{
	"1": "Industria",
	"2": "Comercio",
	"3": "Agropecuaria",
	"4": "Servicios, Profesiones, Artes y Oficios",
	"9": "Instituciones Públicas",
}

// PurchaseCostTypes T. Tipo de costo/gasto.
var PurchaseCostTypes = map[string]string{
	"1": "Gastos de Venta sin Donación",
	"2": "Gastos de Administración sin Donación",
	"3": "Gastos Financieros sin Donación",
	"4": "Costo Artículos Producidos/Comprados Importaciones/Internaciones",
	"5": "Costo Artículos Producidos/Comprados Interno",
	"6": "Costos Indirectos de Fabricación",
	"7": "Mano de obra",
	"8": "Operaciones informadas en más de 1 anexo",
	"9": "Instituciones Públicas",
}

// =============================================================================
// Anexos 1 y 2 (ventas) - clasificación de renta (vigente desde enero 2025)
// =============================================================================

const (
	RentaOperationGravada  = "1"
	RentaIncomeComerciales = "3"
)

// RentaOperationTypes tipo de operación (renta).
var RentaOperationTypes = map[string]string{
	"1":  "Gravada",
	"2":  "No Gravada o Exento",
	"3":  "Excluido o no Constituye Renta",
	"4":  "Mixta",
	"12": "Ingresos sujetos de retención",
	"13": "Sujetos pasivos excluidos",
}

// RentaIncomeTypes tipo de ingreso (renta).
var RentaIncomeTypes = map[string]string{
	"1":  "Profesiones, Artes y Oficios",
	"2":  "Actividades de Servicios",
	"3":  "Actividades Comerciales",
	"4":  "Actividades Industriales",
	"5":  "Actividades Agropecuarias",
	"6":  "Utilidades y Dividendos",
	"7":  "Exportaciones de bienes",
	"8":  "Servicios en el Exterior",
	"9":  "Exportaciones de servicios",
	"10": "Otras Rentas Gravables",
	"12": "Ingresos sujetos de retención",
	"13": "Sujetos pasivos excluidos",
}

// Números de anexo (última columna de cada CSV).
const (
	AnexoVentasContribuyentes = "1"
	AnexoVentasConsumidor     = "2"
	AnexoCompras              = "3"
)
