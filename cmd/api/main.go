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
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

const (
	version     = "1.0.0"
	swaggerFile = "./docs/swagger.json"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")
	zl := log.Zerolog()

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, version, zl)
	if err != nil {
		log.Warn().Err(err).Msg("telemetría no disponible, se continúa sin exportar")
	}

	settings := inventory.Settings{
		Location:          cfg.Ledger.Location(),
		ExpiryHorizonDays: cfg.Ledger.ExpiryHorizonDays,
		Logger:            zl,
	}

	var (
		txRunner inventory.TxRunner
		repos    inventory.Repos
		ready    func(context.Context) error
	)
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		txRunner, repos = store, store.Repos()
		ready = func(context.Context) error { return nil }
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar esquema")
			}
			log.Info().Msg("esquema verificado")
		}
		txRunner = postgres.NewTxRunner(pool, cfg.DB.TxMaxRetries, zl)
		repos = postgres.Repos(pool)
		ready = pool.Ping
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Estoque API",
		}))
	} else {
		log.Debug().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		checkCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := ready(checkCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Supplies:  inventory.NewSupplyUseCase(txRunner, repos.Supplies, settings),
		Ledger:    inventory.NewRegisterMovementUseCase(txRunner, settings),
		Queries:   inventory.NewStockQueryUseCase(repos.Movements, repos.TruckStock, settings),
		Alerts:    inventory.NewAlertUseCase(repos.Supplies, settings),
		Reconcile: inventory.NewReconcileUseCase(repos.Supplies, repos.Movements, repos.TruckStock, settings),
		Vehicles:  inventory.NewVehicleUseCase(repos.Vehicles, settings),
		JWTSecret: cfg.JWT.Secret,
		Logger:    zl,
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
	flushTelemetry(shutdownCtx, shutdownTelemetry, zl)

	log.Info().Msg("aplicación detenida")
}

func flushTelemetry(ctx context.Context, shutdown telemetry.ShutdownFunc, log zerolog.Logger) {
	if shutdown == nil {
		return
	}
	if err := shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("cierre de telemetría")
	}
}
