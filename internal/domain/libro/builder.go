package libro

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/pkg/hacienda"
)

// SortMoves devuelve una copia ordenada por fecha, nombre e id.
func SortMoves(moves []*entity.Move) []*entity.Move {
	out := slices.Clone(moves)
	slices.SortStableFunc(out, func(a, b *entity.Move) int {
		if c := a.InvoiceDate.Compare(b.InvoiceDate); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// PurchaseBuild resultado de armar las líneas de compras.
type PurchaseBuild struct {
	Entries []*entity.PurchaseEntry
	Skipped int
}

// BuildPurchaseEntries clasifica y deriva cada factura de proveedor. Las rechazadas se cuentan
// en Skipped. Si ninguna es válida y hubo rechazos devuelve ErrNoValidDocuments.
func BuildPurchaseEntries(periodID string, moves []*entity.Move, rules Rules) (PurchaseBuild, error) {
	var res PurchaseBuild
	for _, mv := range SortMoves(moves) {
		code, ok := ClassifyPurchase(mv)
		if !ok {
			res.Skipped++
			continue
		}
		a := DerivePurchase(mv, rules.FiscalRate)
		res.Entries = append(res.Entries, &entity.PurchaseEntry{
			PeriodID:         periodID,
			Sequence:         len(res.Entries) + 1,
			MoveID:           mv.ID,
			PartnerID:        mv.Partner.ID,
			PartnerName:      mv.Partner.Name,
			PartnerNIT:       mv.Partner.VAT,
			DUI:              mv.Partner.DUI,
			InvoiceDate:      mv.InvoiceDate,
			DocType:          code,
			DocNumber:        mv.Name,
			ControlNumber:    mv.ControlNumber,
			GenerationCode:   mv.GenerationCode,
			ReceivedSeal:     mv.ReceivedSeal,
			DocClass:         DocumentClass(mv),
			InternasExentas:  a.Exentas,
			InternasGravadas: a.Gravadas,
			CreditoFiscal:    a.CreditoFiscal,
			Total:            a.Total,
			TipoOperacion:    hacienda.PurchaseOperationGravada,
			Clasificacion:    hacienda.PurchaseClassCosto,
			Sector:           hacienda.PurchaseSectorServicios,
			TipoCostoGasto:   hacienda.PurchaseCostInterno,
			Selected:         true,
		})
	}
	if len(res.Entries) == 0 && res.Skipped > 0 {
		return res, noValidDocuments(entity.KindPurchases, res.Skipped)
	}
	return res, nil
}

// SaleBuild resultado de armar las líneas de ventas.
type SaleBuild struct {
	Entries   []*entity.SaleEntry
	Cancelled []*entity.SaleEntry
	Skipped   int
}

// BuildSaleEntries arma las líneas de ventas válidas y el cubo de anuladas, cada uno con su
// propia numeración. Las anuladas fuera de la lista de tipos se descartan sin contarse.
func BuildSaleEntries(periodID string, kind entity.LedgerKind, posted, cancelled []*entity.Move, rules Rules) (SaleBuild, error) {
	var res SaleBuild
	for _, mv := range SortMoves(posted) {
		e, ok := buildSale(periodID, kind, mv, rules)
		if !ok {
			res.Skipped++
			continue
		}
		e.Sequence = len(res.Entries) + 1
		e.Selected = true
		res.Entries = append(res.Entries, e)
	}
	if len(res.Entries) == 0 && res.Skipped > 0 {
		return res, noValidDocuments(kind, res.Skipped)
	}

	for _, mv := range SortMoves(cancelled) {
		e, ok := buildSale(periodID, kind, mv, rules)
		if !ok {
			continue
		}
		e.Sequence = len(res.Cancelled) + 1
		e.Cancelled = true
		res.Cancelled = append(res.Cancelled, e)
	}
	return res, nil
}

func buildSale(periodID string, kind entity.LedgerKind, mv *entity.Move, rules Rules) (*entity.SaleEntry, bool) {
	code, ok := ClassifySale(mv, kind)
	if !ok {
		return nil, false
	}
	a := DeriveSale(mv, kind, rules)
	return &entity.SaleEntry{
		PeriodID:                 periodID,
		MoveID:                   mv.ID,
		PartnerID:                mv.Partner.ID,
		PartnerName:              mv.Partner.Name,
		PartnerNIT:               mv.Partner.VAT,
		DUI:                      mv.Partner.DUI,
		InvoiceDate:              mv.InvoiceDate,
		DocNumber:                mv.Name,
		ControlNumber:            mv.ControlNumber,
		GenerationCode:           mv.GenerationCode,
		ReceivedSeal:             mv.ReceivedSeal,
		DocType:                  code,
		Resolution:               mv.Resolution,
		Series:                   mv.Series,
		Exentas:                  a.Exentas,
		GravadasLocales:          a.GravadasLocales,
		ExportFueraCentroamerica: a.ExportFueraCentroamerica,
		Gravadas:                 a.Gravadas,
		DebitoFiscal:             a.DebitoFiscal,
		Total:                    a.Total,
		TipoOperacionRenta:       hacienda.RentaOperationGravada,
		TipoIngresoRenta:         hacienda.RentaIncomeComerciales,
	}, true
}

func noValidDocuments(kind entity.LedgerKind, skipped int) error {
	return domain.NewValidationError(domain.ErrNoValidDocuments,
		"No se encontraron facturas válidas para el %s.\nSe omitieron %d documento(s) con tipo inválido.\nTipos válidos: %s",
		kind.Title(), skipped, strings.Join(AllowedDocTypes(kind), ", "))
}
