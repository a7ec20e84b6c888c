package repository

import (
	"context"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// PeriodFilter filtros del listado de libros.
type PeriodFilter struct {
	CompanyID string
	Kind      entity.LedgerKind // vacío = todos
	Year      int               // 0 = todos
	Limit     int
	Offset    int
}

// PeriodRepository persistencia de libros. Delete elimina también sus líneas.
type PeriodRepository interface {
	Create(ctx context.Context, p *entity.Period) error
	GetByID(ctx context.Context, id string) (*entity.Period, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Period, error)
	List(ctx context.Context, f PeriodFilter) ([]*entity.Period, int, error)
	Update(ctx context.Context, p *entity.Period) error
	Delete(ctx context.Context, id string) error
}
