package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/domain/repository"
	"github.com/jhoicas/libros-fiscales/pkg/hacienda"
)

// CompanyUseCase alta de empresas (casa matriz) y sus sucursales.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una casa matriz. El NIT se guarda sin guiones.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := newCompany(in, "")
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	log.Info().Str("company_id", company.ID).Str("nit", company.NIT).Msg("empresa creada")
	return entityToCompanyResponse(company), nil
}

// CreateBranch crea una sucursal de parentID. Una sucursal no puede tener sucursales.
func (uc *CompanyUseCase) CreateBranch(ctx context.Context, parentID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	parent, err := uc.repo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	if parent.ParentID != "" {
		return nil, domain.NewValidationError(domain.ErrInvalidInput, "Una sucursal no puede tener sucursales.")
	}
	branch, err := newCompany(in, parent.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	log.Info().Str("company_id", branch.ID).Str("parent_id", parent.ID).Msg("sucursal creada")
	return entityToCompanyResponse(branch), nil
}

// Get devuelve la empresa con sus sucursales activas.
func (uc *CompanyUseCase) Get(ctx context.Context, id string) (*dto.CompanyDetailResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	ids, err := uc.repo.ListBranchIDs(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyDetailResponse{
		CompanyResponse: *entityToCompanyResponse(company),
		Branches:        make([]dto.CompanyResponse, 0, len(ids)),
	}
	for _, branchID := range ids {
		b, err := uc.repo.GetByID(ctx, branchID)
		if err != nil {
			return nil, err
		}
		if b != nil {
			out.Branches = append(out.Branches, *entityToCompanyResponse(b))
		}
	}
	return out, nil
}

func newCompany(in dto.CreateCompanyRequest, parentID string) (*entity.Company, error) {
	nit := hacienda.CleanTaxID(in.NIT)
	if !isDigits(nit) || (len(nit) != 14 && len(nit) != 9) {
		return nil, domain.NewValidationError(domain.ErrInvalidInput, "NIT inválido: %s", in.NIT)
	}
	now := time.Now()
	return &entity.Company{
		ID:        uuid.New().String(),
		ParentID:  parentID,
		Name:      strings.TrimSpace(in.Name),
		NIT:       nit,
		NRC:       hacienda.CleanTaxID(in.NRC),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		NIT:       c.NIT,
		NRC:       c.NRC,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
