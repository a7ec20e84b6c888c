package repository

import (
	"context"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// ListBranchIDs ids de las sucursales (compañías hijas) de una compañía.
	ListBranchIDs(ctx context.Context, parentID string) ([]string, error)
}
