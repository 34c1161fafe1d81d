package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/domain/repository"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/badgerstore"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/export"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/memory"
	infranfe "github.com/jhoicas/BateCarga-api/internal/infrastructure/nfe"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/postgres"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/BateCarga-api/internal/interfaces/http"
	"github.com/jhoicas/BateCarga-api/pkg/config"
	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de sesiones")
	}
	defer closeStore()

	services := batecarga.NewServices(
		repo,
		infranfe.NewExtractor(),
		spreadsheet.NewReader(),
		batecarga.Options{
			Workers:   cfg.Ingest.Workers,
			NoteLabel: cfg.Export.NoteLabel,
			Logger:    log,
		},
		export.NewCSVExporter(), export.NewXLSXExporter(), export.NewPDFExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Bate Carga API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger.json no encontrado, /docs desactivado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:   services.Sessions,
		IngestUC:    services.Ingest,
		PlateUC:     services.Plates,
		ReconcileUC: services.Reconcile,
		ExportUC:    services.Export,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log.Named("http"),
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

// openStore abre el repositorio de sesiones según SESSION_STORE.
func openStore(ctx context.Context, cfg *config.Config) (repository.SessionRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migraciones: %w", err)
		}
		return postgres.NewSessionRepository(pool), pool.Close, nil
	case config.StoreBadger:
		db, err := badgerstore.Open(cfg.Store.BadgerPath)
		if err != nil {
			return nil, nil, fmt.Errorf("abrir badger en %s: %w", cfg.Store.BadgerPath, err)
		}
		return badgerstore.NewSessionRepository(db), func() { _ = db.Close() }, nil
	default:
		return memory.NewSessionRepository(), func() {}, nil
	}
}
