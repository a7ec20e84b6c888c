package libro

import (
	"context"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	domainlibro "github.com/jhoicas/libros-fiscales/internal/domain/libro"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

// LibroTxRunner ejecuta fn dentro de una transacción con los repos del libro atados a ella.
// Si fn devuelve error no se confirma nada.
type LibroTxRunner interface {
	RunLibro(ctx context.Context, fn func(
		periods repository.PeriodRepository,
		purchases repository.PurchaseEntryRepository,
		sales repository.SaleEntryRepository,
		notes repository.NoteRepository,
	) error) error
}

// AnexoWriter serializa las líneas al formato CSV de Hacienda.
// Cada método aplica su propia regla de qué líneas entran y devuelve
// domain.ErrNothingToExport si no queda ninguna.
type AnexoWriter interface {
	Compras(entries []*entity.PurchaseEntry) ([]byte, error)
	VentasContribuyentes(entries []*entity.SaleEntry) ([]byte, error)
	VentasConsumidor(entries []*entity.SaleEntry) ([]byte, error)
}

// LedgerData todo lo necesario para representar un libro (hoja de revisión o PDF).
type LedgerData struct {
	Company   *entity.Company
	Period    *entity.Period
	Purchases []*entity.PurchaseEntry
	Sales     []*entity.SaleEntry
	Cancelled []*entity.SaleEntry
	Totals    domainlibro.Totals
}

// WorkbookGenerator genera la hoja de cálculo de revisión (.xlsx).
type WorkbookGenerator interface {
	Workbook(data *LedgerData) ([]byte, error)
}

// LedgerPDFGenerator genera el libro imprimible.
type LedgerPDFGenerator interface {
	LedgerPDF(data *LedgerData) ([]byte, error)
}
