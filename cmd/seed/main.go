// seed prepara una base de datos nueva: aplica los scripts de migrations/ y crea
// la casa matriz con su usuario administrador.
//
// Uso:
//
//	go run ./cmd/seed migrate
//	go run ./cmd/seed -name "Comercial Demo" -nit 0614-150390-102-3 -email admin@demo.sv -password ... bootstrap
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/libros-fiscales/internal/application/auth"
	"github.com/jhoicas/libros-fiscales/internal/application/dto"
	"github.com/jhoicas/libros-fiscales/internal/application/usecase"
	"github.com/jhoicas/libros-fiscales/internal/domain/entity"
	"github.com/jhoicas/libros-fiscales/internal/infrastructure/postgres"
	"github.com/jhoicas/libros-fiscales/pkg/config"
	"github.com/jhoicas/libros-fiscales/pkg/logger"
)

func main() {
	var (
		migrationsPath string
		name, nit, nrc string
		email, pass    string
	)
	flag.StringVar(&migrationsPath, "path", "", "directorio de scripts SQL (por defecto <módulo>/migrations)")
	flag.StringVar(&name, "name", "", "nombre de la empresa")
	flag.StringVar(&nit, "nit", "", "NIT de la empresa")
	flag.StringVar(&nrc, "nrc", "", "NRC de la empresa")
	flag.StringVar(&email, "email", "", "email del administrador")
	flag.StringVar(&pass, "password", "", "password del administrador (mínimo 8 caracteres)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "uso: seed [flags] migrate | bootstrap")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: "info", App: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	switch cmd := flag.Arg(0); cmd {
	case "migrate":
		if migrationsPath == "" {
			migrationsPath = filepath.Join(findModuleRoot(), "migrations")
		}
		n, err := applyMigrations(ctx, pool, migrationsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Int("scripts", n).Str("path", migrationsPath).Msg("migraciones aplicadas")
	case "bootstrap":
		if name == "" || email == "" || len(pass) < 8 {
			log.Fatal().Msg("bootstrap requiere -name, -email y -password de al menos 8 caracteres")
		}
		companyUC := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(pool))
		company, err := companyUC.Create(ctx, dto.CreateCompanyRequest{Name: name, NIT: nit, NRC: nrc})
		if err != nil {
			log.Fatal().Err(err).Msg("crear empresa")
		}
		authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewCompanyRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		user, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
			Email:     email,
			Password:  pass,
			CompanyID: company.ID,
			Name:      "Administrador",
			Role:      entity.RoleAdmin,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador")
		}
		fmt.Printf("Empresa %s (%s)\nAdministrador %s\n", company.Name, company.ID, user.Email)
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido")
	}
}

// applyMigrations ejecuta los *.sql en orden alfabético. Los scripts son idempotentes (IF NOT EXISTS).
func applyMigrations(ctx context.Context, pool *pgxpool.Pool, dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return 0, fmt.Errorf("leer %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return 0, fmt.Errorf("ejecutar %s: %w", filepath.Base(f), err)
		}
	}
	return len(files), nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
