package libro

import (
	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	domainlibro "github.com/jhoicas/libros-fiscales/internal/domain/libro"
)

func toPeriodResponse(p *entity.Period) *dto.PeriodResponse {
	if p == nil {
		return nil
	}
	return &dto.PeriodResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		Kind:              string(p.Kind),
		Title:             p.Kind.Title(),
		Periodo:           p.Label(),
		Year:              p.Year,
		Month:             p.Month,
		AssistantID:       p.AssistantID,
		ContadorName:      p.ContadorName,
		Date:              p.Date,
		IncluirSucursales: p.IncluirSucursales,
		State:             string(p.State),
		Comentarios:       p.Comentarios,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toTotalsResponse(t domainlibro.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Count:    t.Count,
		Exentas:  t.Exentas,
		Gravadas: t.Gravadas,
		Impuesto: t.Impuesto,
		Total:    t.Total,
	}
}

func toPurchaseEntryResponse(e *entity.PurchaseEntry) dto.PurchaseEntryResponse {
	return dto.PurchaseEntryResponse{
		ID:               e.ID,
		Sequence:         e.Sequence,
		MoveID:           e.MoveID,
		PartnerName:      e.PartnerName,
		PartnerNIT:       e.PartnerNIT,
		DUI:              e.DUI,
		InvoiceDate:      e.InvoiceDate,
		DocType:          e.DocType,
		DocClass:         e.DocClass,
		DocNumber:        e.DocNumber,
		ControlNumber:    e.ControlNumber,
		GenerationCode:   e.GenerationCode,
		ReceivedSeal:     e.ReceivedSeal,
		InternasExentas:  e.InternasExentas,
		InternasGravadas: e.InternasGravadas,
		CreditoFiscal:    e.CreditoFiscal,
		Total:            e.Total,
		TipoOperacion:    e.TipoOperacion,
		Clasificacion:    e.Clasificacion,
		Sector:           e.Sector,
		TipoCostoGasto:   e.TipoCostoGasto,
		Selected:         e.Selected,
	}
}

func toSaleEntryResponse(e *entity.SaleEntry) dto.SaleEntryResponse {
	return dto.SaleEntryResponse{
		ID:                       e.ID,
		Sequence:                 e.Sequence,
		MoveID:                   e.MoveID,
		PartnerName:              e.PartnerName,
		PartnerNIT:               e.PartnerNIT,
		DUI:                      e.DUI,
		InvoiceDate:              e.InvoiceDate,
		DocType:                  e.DocType,
		DocNumber:                e.DocNumber,
		ControlNumber:            e.ControlNumber,
		GenerationCode:           e.GenerationCode,
		ReceivedSeal:             e.ReceivedSeal,
		Exentas:                  e.Exentas,
		GravadasLocales:          e.GravadasLocales,
		ExportFueraCentroamerica: e.ExportFueraCentroamerica,
		Gravadas:                 e.Gravadas,
		DebitoFiscal:             e.DebitoFiscal,
		Total:                    e.Total,
		TipoOperacionRenta:       e.TipoOperacionRenta,
		TipoIngresoRenta:         e.TipoIngresoRenta,
		Selected:                 e.Selected,
		Cancelled:                e.Cancelled,
	}
}
