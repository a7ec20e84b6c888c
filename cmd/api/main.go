package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/libros-fiscales/internal/application/auth"
	applibro "github.com/jhoicas/libros-fiscales/internal/application/libro"
	"github.com/jhoicas/libros-fiscales/internal/application/usecase"
	domainlibro "github.com/jhoicas/libros-fiscales/internal/domain/libro"
	"github.com/jhoicas/libros-fiscales/internal/infrastructure/hacienda"
	infrapdf "github.com/jhoicas/libros-fiscales/internal/infrastructure/pdf"
	"github.com/jhoicas/libros-fiscales/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/libros-fiscales/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/libros-fiscales/internal/interfaces/http"
	"github.com/jhoicas/libros-fiscales/pkg/config"
	"github.com/jhoicas/libros-fiscales/pkg/logger"
)

// @title                       Libros Fiscales API
// @version                     1.0
// @description                 Libros de compras y ventas de El Salvador con exportación de anexos para Hacienda.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("fiscal_rate", cfg.Libros.FiscalRate).
		Str("consumer_basis", cfg.Libros.ConsumerTaxedBasis).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	rules, err := domainlibro.NewRules(cfg.Libros.FiscalRate, cfg.Libros.ConsumerTaxedBasis)
	if err != nil {
		log.Fatal().Err(err).Msg("reglas de libros")
	}
	anexoWriter, err := hacienda.NewAnexoWriter(cfg.Libros.CSVEncoding)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación de anexos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	moveRepo := postgres.NewMoveRepository(pool)
	periodRepo := postgres.NewPeriodRepository(pool)
	purchaseRepo := postgres.NewPurchaseEntryRepository(pool)
	saleRepo := postgres.NewSaleEntryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	periodUC := applibro.NewPeriodUseCase(txRunner, periodRepo, purchaseRepo, saleRepo, moveRepo, companyRepo, rules)

	// Exportaciones: anexo CSV para Hacienda, hoja de revisión Excel y libro impreso en PDF
	exportUC := applibro.NewExportUseCase(
		periodRepo, purchaseRepo, saleRepo, companyRepo,
		anexoWriter, infraxlsx.NewReviewWorkbook(), infrapdf.NewMarotoPDFGenerator(),
	)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Libros Fiscales API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CompanyUC: companyUC,
		PeriodUC:  periodUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
