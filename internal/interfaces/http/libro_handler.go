package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/domain"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// PeriodService operaciones sobre libros y sus líneas.
type PeriodService interface {
	Create(ctx context.Context, companyID, userID string, in dto.CreatePeriodRequest) (*dto.PeriodResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.PeriodDetailResponse, error)
	List(ctx context.Context, companyID string, in dto.ListPeriodsRequest) (*dto.PeriodListResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdatePeriodRequest) (*dto.PeriodResponse, error)
	MarkValidated(ctx context.Context, companyID, id string) (*dto.PeriodResponse, error)
	ResetToDraft(ctx context.Context, companyID, id string) (*dto.PeriodResponse, error)
	Rectify(ctx context.Context, companyID, userID, id, reason string) (*dto.PeriodResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Load(ctx context.Context, companyID, id string, in dto.LoadPeriodRequest) (*dto.LoadResult, error)
	SelectAll(ctx context.Context, companyID, id string) error
	UnselectAll(ctx context.Context, companyID, id string) error
	UpdateEntry(ctx context.Context, companyID, periodID, entryID string, in dto.UpdateEntryRequest) error
	Totals(ctx context.Context, companyID, id string) (*dto.TotalsResponse, error)
}

// ExportService descargas del libro: anexo CSV, hoja de revisión y PDF.
type ExportService interface {
	ExportCSV(ctx context.Context, companyID, id string) (*dto.FileResponse, error)
	ExportXLSX(ctx context.Context, companyID, id string) (*dto.FileResponse, error)
	ExportPDF(ctx context.Context, companyID, id string) (*dto.FileResponse, error)
}

// LibroHandler maneja los libros de compras y ventas.
type LibroHandler struct {
	periods PeriodService
	exports ExportService
}

// NewLibroHandler construye el handler.
func NewLibroHandler(periods PeriodService, exports ExportService) *LibroHandler {
	return &LibroHandler{periods: periods, exports: exports}
}

// Create godoc
// @Summary      Crear libro
// @Description  Crea un libro de compras o ventas en borrador para el mes indicado.
// @Tags         libros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreatePeriodRequest  true  "tipo, año, mes, contador"
// @Success      201   {object}  dto.PeriodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/libros [post]
func (h *LibroHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePeriodRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.periods.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return libroError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar libros
// @Tags         libros
// @Produce      json
// @Security     BearerAuth
// @Param        kind    query  string  false  "compras | consumidor | credito"
// @Param        year    query  int     false  "año"
// @Param        limit   query  int     false  "máximo de resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PeriodListResponse
// @Router       /api/libros [get]
func (h *LibroHandler) List(c *fiber.Ctx) error {
	var in dto.ListPeriodsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.DefaultPage()
	if ok, err := validateRequest(c, &in); !ok {
		return err
	}
	out, err := h.periods.List(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle del libro
// @Description  Cabecera, líneas y totales. En ventas incluye las facturas anuladas por separado.
// @Tags         libros
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del libro"
// @Success      200  {object}  dto.PeriodDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/libros/{id} [get]
func (h *LibroHandler) Get(c *fiber.Ctx) error {
	out, err := h.periods.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera del libro
// @Description  Solo en borrador. Cambiar el estado requiere rol contador o admin.
// @Tags         libros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "ID del libro"
// @Param        body  body      dto.UpdatePeriodRequest  true  "campos a modificar"
// @Success      200   {object}  dto.PeriodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/libros/{id} [put]
func (h *LibroHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePeriodRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if in.State != nil && !canValidate(GetRole(c)) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el contador puede cambiar el estado del libro"})
	}
	out, err := h.periods.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar libro
// @Tags         libros
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del libro"
// @Success      200  {object}  dto.PeriodResponse
// @Router       /api/libros/{id}/validate [post]
func (h *LibroHandler) Validate(c *fiber.Ctx) error {
	out, err := h.periods.MarkValidated(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Volver a borrador
// @Tags         libros
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del libro"
// @Success      200  {object}  dto.PeriodResponse
// @Router       /api/libros/{id}/draft [post]
func (h *LibroHandler) Reset(c *fiber.Ctx) error {
	out, err := h.periods.ResetToDraft(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// Rectify godoc
// @Summary      Rectificar libro validado
// @Description  Vuelve el libro a borrador y deja una nota con el motivo.
// @Tags         libros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "ID del libro"
// @Param        body  body      dto.RectifyRequest  true  "motivo"
// @Success      200   {object}  dto.PeriodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/libros/{id}/rectify [post]
func (h *LibroHandler) Rectify(c *fiber.Ctx) error {
	var in dto.RectifyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.periods.Rectify(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in.Reason)
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar libro
// @Tags         libros
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del libro"
// @Success      204
// @Router       /api/libros/{id} [delete]
func (h *LibroHandler) Delete(c *fiber.Ctx) error {
	if err := h.periods.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return libroError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Load godoc
// @Summary      Cargar facturas del periodo
// @Description  Reemplaza las líneas del libro con las facturas contabilizadas del mes. Body opcional.
// @Tags         libros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true   "ID del libro"
// @Param        body  body      dto.LoadPeriodRequest  false  "rango de fechas dentro del mes"
// @Success      200   {object}  dto.LoadResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/libros/{id}/load [post]
func (h *LibroHandler) Load(c *fiber.Ctx) error {
	var in dto.LoadPeriodRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.periods.Load(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// SelectAll godoc
// @Summary      Seleccionar todas las líneas
// @Tags         libros
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del libro"
// @Success      204
// @Router       /api/libros/{id}/select-all [post]
func (h *LibroHandler) SelectAll(c *fiber.Ctx) error {
	if err := h.periods.SelectAll(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return libroError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnselectAll godoc
// @Summary      Quitar selección de todas las líneas
// @Tags         libros
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del libro"
// @Success      204
// @Router       /api/libros/{id}/unselect-all [post]
func (h *LibroHandler) UnselectAll(c *fiber.Ctx) error {
	if err := h.periods.UnselectAll(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return libroError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateEntry godoc
// @Summary      Editar línea del libro
// @Tags         libros
// @Accept       json
// @Security     BearerAuth
// @Param        id        path  string                  true  "ID del libro"
// @Param        entry_id  path  string                  true  "ID de la línea"
// @Param        body      body  dto.UpdateEntryRequest  true  "selección y clasificaciones"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/libros/{id}/lines/{entry_id} [patch]
func (h *LibroHandler) UpdateEntry(c *fiber.Ctx) error {
	var in dto.UpdateEntryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.periods.UpdateEntry(c.UserContext(), GetCompanyID(c), c.Params("id"), c.Params("entry_id"), in); err != nil {
		return libroError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Totals godoc
// @Summary      Totales del libro
// @Tags         libros
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del libro"
// @Success      200  {object}  dto.TotalsResponse
// @Router       /api/libros/{id}/totals [get]
func (h *LibroHandler) Totals(c *fiber.Ctx) error {
	out, err := h.periods.Totals(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return libroError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Descargar anexo CSV para Hacienda
// @Description  Anexo 3 (compras), Anexo 2 (consumidor final) o Anexo 1 (crédito fiscal).
// @Tags         libros
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/libros/{id}/export/csv [get]
func (h *LibroHandler) ExportCSV(c *fiber.Ctx) error {
	return h.download(c, h.exports.ExportCSV)
}

// ExportXLSX godoc
// @Summary      Descargar hoja de revisión Excel
// @Tags         libros
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {file}  file
// @Router       /api/libros/{id}/export/xlsx [get]
func (h *LibroHandler) ExportXLSX(c *fiber.Ctx) error {
	return h.download(c, h.exports.ExportXLSX)
}

// ExportPDF godoc
// @Summary      Descargar libro impreso en PDF
// @Tags         libros
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del libro"
// @Success      200  {file}  file
// @Router       /api/libros/{id}/export/pdf [get]
func (h *LibroHandler) ExportPDF(c *fiber.Ctx) error {
	return h.download(c, h.exports.ExportPDF)
}

func (h *LibroHandler) download(c *fiber.Ctx, export func(ctx context.Context, companyID, id string) (*dto.FileResponse, error)) error {
	file, err := export(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return libroError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}

func canValidate(role string) bool {
	return role == entity.RoleContador || role == entity.RoleAdmin
}

// libroError traduce los errores de dominio a respuestas HTTP.
func libroError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "libro o línea no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el libro pertenece a otra empresa"})
	case errors.Is(err, domain.ErrPeriodNotDraft):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_DRAFT", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrNothingToExport):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOTHING_TO_EXPORT", Message: err.Error()})
	case errors.Is(err, domain.ErrNoValidDocuments):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_DOCUMENTS", Message: err.Error()})
	case errors.Is(err, domain.ErrInputIncomplete):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INCOMPLETE", Message: err.Error()})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Str("company_id", GetCompanyID(c)).Msg("libros: error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
