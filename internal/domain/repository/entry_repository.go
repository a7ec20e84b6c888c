package repository

import (
	"context"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// PurchaseEntryRepository líneas del libro de compras.
type PurchaseEntryRepository interface {
	// ReplaceForPeriod borra las líneas del libro e inserta las nuevas.
	ReplaceForPeriod(ctx context.Context, periodID string, entries []*entity.PurchaseEntry) error
	ListByPeriod(ctx context.Context, periodID string) ([]*entity.PurchaseEntry, error)
	GetByID(ctx context.Context, id string) (*entity.PurchaseEntry, error)
	Update(ctx context.Context, e *entity.PurchaseEntry) error
	SetSelectedAll(ctx context.Context, periodID string, selected bool) error
}

// SaleEntryRepository líneas del libro de ventas, incluidas las anuladas.
type SaleEntryRepository interface {
	// ReplaceForPeriod borra todas las líneas del libro (válidas y anuladas) e inserta las nuevas.
	ReplaceForPeriod(ctx context.Context, periodID string, entries, cancelled []*entity.SaleEntry) error
	// ListByPeriod devuelve las líneas; includeCancelled agrega las anuladas al final.
	ListByPeriod(ctx context.Context, periodID string, includeCancelled bool) ([]*entity.SaleEntry, error)
	GetByID(ctx context.Context, id string) (*entity.SaleEntry, error)
	Update(ctx context.Context, e *entity.SaleEntry) error
	// SetSelectedAll afecta solo las líneas no anuladas.
	SetSelectedAll(ctx context.Context, periodID string, selected bool) error
}

// NoteRepository notas de auditoría.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	ListFor(ctx context.Context, resModel, resID string) ([]*entity.Note, error)
}
