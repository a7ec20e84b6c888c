package libro

import (
	"context"
	"fmt"

	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	domainlibro "github.com/jhoicas/libros-fiscales/internal/domain/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

// Tipos MIME de los archivos generados.
const (
	MimeCSV  = "text/csv"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePDF  = "application/pdf"
)

// ExportUseCase genera los archivos de un libro: CSV de Hacienda, hoja de revisión y PDF.
type ExportUseCase struct {
	periods   repository.PeriodRepository
	purchases repository.PurchaseEntryRepository
	sales     repository.SaleEntryRepository
	companies repository.CompanyRepository
	anexos    AnexoWriter
	workbook  WorkbookGenerator
	pdf       LedgerPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	periods repository.PeriodRepository,
	purchases repository.PurchaseEntryRepository,
	sales repository.SaleEntryRepository,
	companies repository.CompanyRepository,
	anexos AnexoWriter,
	workbook WorkbookGenerator,
	pdf LedgerPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{
		periods:   periods,
		purchases: purchases,
		sales:     sales,
		companies: companies,
		anexos:    anexos,
		workbook:  workbook,
		pdf:       pdf,
	}
}

// ExportCSV genera el anexo de Hacienda del libro.
// Compras y crédito fiscal exportan las líneas seleccionadas; consumidor final todas las no anuladas.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, companyID, id string) (*dto.FileResponse, error) {
	data, err := uc.ledger(ctx, companyID, id, false)
	if err != nil {
		return nil, err
	}
	var content []byte
	switch data.Period.Kind {
	case entity.KindPurchases:
		content, err = uc.anexos.Compras(data.Purchases)
	case entity.KindFiscalCredit:
		content, err = uc.anexos.VentasContribuyentes(data.Sales)
	case entity.KindFinalConsumer:
		content, err = uc.anexos.VentasConsumidor(data.Sales)
	default:
		err = fmt.Errorf("%w: tipo de libro %q", domain.ErrInvalidInput, data.Period.Kind)
	}
	if err != nil {
		return nil, err
	}
	return &dto.FileResponse{Filename: data.Period.FileName("csv"), ContentType: MimeCSV, Content: content}, nil
}

// ExportXLSX genera la hoja de revisión con las líneas seleccionadas.
func (uc *ExportUseCase) ExportXLSX(ctx context.Context, companyID, id string) (*dto.FileResponse, error) {
	data, err := uc.ledger(ctx, companyID, id, false)
	if err != nil {
		return nil, err
	}
	data.Purchases = selectedPurchases(data.Purchases)
	data.Sales = selectedSales(data.Sales)
	if len(data.Purchases) == 0 && len(data.Sales) == 0 {
		return nil, domain.NewValidationError(domain.ErrNothingToExport, "Debe seleccionar al menos una factura.")
	}
	data.Totals = totalsOf(data)
	content, err := uc.workbook.Workbook(data)
	if err != nil {
		return nil, fmt.Errorf("libro: generar xlsx: %w", err)
	}
	return &dto.FileResponse{Filename: data.Period.FileName("xlsx"), ContentType: MimeXLSX, Content: content}, nil
}

// ExportPDF genera el libro imprimible con todas las líneas y las anuladas aparte.
func (uc *ExportUseCase) ExportPDF(ctx context.Context, companyID, id string) (*dto.FileResponse, error) {
	data, err := uc.ledger(ctx, companyID, id, true)
	if err != nil {
		return nil, err
	}
	if len(data.Purchases) == 0 && len(data.Sales) == 0 {
		return nil, domain.NewValidationError(domain.ErrNothingToExport, "No hay facturas para exportar. Genere el detalle primero.")
	}
	content, err := uc.pdf.LedgerPDF(data)
	if err != nil {
		return nil, fmt.Errorf("libro: generar pdf: %w", err)
	}
	return &dto.FileResponse{Filename: data.Period.FileName("pdf"), ContentType: MimePDF, Content: content}, nil
}

func (uc *ExportUseCase) ledger(ctx context.Context, companyID, id string, withCancelled bool) (*LedgerData, error) {
	p, err := uc.periods.GetByID(ctx, id)
	p, err = checkOwner(p, err, companyID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, p.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("libro: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	data := &LedgerData{Company: company, Period: p}
	if p.Kind.IsSales() {
		all, err := uc.sales.ListByPeriod(ctx, p.ID, withCancelled)
		if err != nil {
			return nil, err
		}
		for _, e := range all {
			if e.Cancelled {
				data.Cancelled = append(data.Cancelled, e)
			} else {
				data.Sales = append(data.Sales, e)
			}
		}
	} else {
		data.Purchases, err = uc.purchases.ListByPeriod(ctx, p.ID)
		if err != nil {
			return nil, err
		}
	}
	data.Totals = totalsOf(data)
	return data, nil
}

func totalsOf(data *LedgerData) domainlibro.Totals {
	if data.Period.Kind.IsSales() {
		return domainlibro.SaleTotals(data.Sales)
	}
	return domainlibro.PurchaseTotals(data.Purchases)
}

func selectedPurchases(in []*entity.PurchaseEntry) []*entity.PurchaseEntry {
	var out []*entity.PurchaseEntry
	for _, e := range in {
		if e.Selected {
			out = append(out, e)
		}
	}
	return out
}

func selectedSales(in []*entity.SaleEntry) []*entity.SaleEntry {
	var out []*entity.SaleEntry
	for _, e := range in {
		if e.Selected && !e.Cancelled {
			out = append(out, e)
		}
	}
	return out
}
