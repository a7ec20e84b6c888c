package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, parent_id, name, nit, nrc, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		company.ID, nullIfEmpty(company.ParentID), company.Name, company.NIT, company.NRC,
		company.Status, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id::text, parent_id::text, name, nit, nrc, status, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	var parent *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &parent, &c.Name, &c.NIT, &c.NRC, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	c.ParentID = deref(parent)
	return &c, nil
}

// ListBranchIDs ids de las sucursales activas de la empresa.
func (r *CompanyRepo) ListBranchIDs(ctx context.Context, parentID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id::text FROM companies WHERE parent_id = $1 AND status = 'active' ORDER BY id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
