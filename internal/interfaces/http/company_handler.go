package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/domain"
)

// CompanyService consulta de la empresa del usuario y alta de sucursales.
type CompanyService interface {
	Get(ctx context.Context, id string) (*dto.CompanyDetailResponse, error)
	CreateBranch(ctx context.Context, parentID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
}

// CompanyHandler maneja las peticiones HTTP para la empresa del token.
type CompanyHandler struct {
	uc CompanyService
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc CompanyService) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Current godoc
// @Summary      Empresa del usuario
// @Description  Empresa del token con sus sucursales activas (las que suma "incluir sucursales").
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanyDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/me [get]
func (h *CompanyHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return companyError(c, err)
	}
	return c.JSON(out)
}

// CreateBranch godoc
// @Summary      Crear sucursal
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateCompanyRequest  true  "nombre, NIT, NRC"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies/me/branches [post]
func (h *CompanyHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateBranch(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return companyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func companyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	log.Error().Err(err).Str("company_id", GetCompanyID(c)).Msg("empresas")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
