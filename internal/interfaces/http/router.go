package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    AuthService
	CompanyUC CompanyService
	PeriodUC  PeriodService
	ExportUC  ExportService
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Empresa del token y sus sucursales (protegido; alta de sucursales solo admin)
	companies := api.Group("/companies", AuthMiddleware(deps.JWTSecret))
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/me", companyHandler.Current)
	companies.Post("/me/branches", RequireRole(entity.RoleAdmin), companyHandler.CreateBranch)

	// Libros (protegido; validar y rectificar solo contador o admin)
	libros := api.Group("/libros", AuthMiddleware(deps.JWTSecret))
	h := NewLibroHandler(deps.PeriodUC, deps.ExportUC)
	onlyContador := RequireRole(entity.RoleContador, entity.RoleAdmin)

	libros.Post("/", h.Create)
	libros.Get("/", h.List)
	libros.Get("/:id", h.Get)
	libros.Put("/:id", h.Update)
	libros.Delete("/:id", h.Delete)
	libros.Post("/:id/validate", onlyContador, h.Validate)
	libros.Post("/:id/draft", h.Reset)
	libros.Post("/:id/rectify", onlyContador, h.Rectify)
	libros.Post("/:id/load", h.Load)
	libros.Post("/:id/select-all", h.SelectAll)
	libros.Post("/:id/unselect-all", h.UnselectAll)
	libros.Patch("/:id/lines/:entry_id", h.UpdateEntry)
	libros.Get("/:id/totals", h.Totals)
	libros.Get("/:id/export/csv", h.ExportCSV)
	libros.Get("/:id/export/xlsx", h.ExportXLSX)
	libros.Get("/:id/export/pdf", h.ExportPDF)
}
