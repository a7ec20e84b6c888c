package repository

import (
	"context"
	"time"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// MoveFilter criterios de búsqueda de facturas. From y To son inclusivos.
type MoveFilter struct {
	CompanyIDs []string
	MoveTypes  []string
	State      string
	From       time.Time
	To         time.Time
}

// MoveRepository acceso de solo lectura al almacén de facturas.
type MoveRepository interface {
	// Search devuelve las facturas con sus líneas y partner, ordenadas por fecha, nombre e id.
	Search(ctx context.Context, f MoveFilter) ([]*entity.Move, error)
}
