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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Reembolsos-api/internal/application/auth"
	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
	infrapdf "github.com/jhoicas/Reembolsos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Reembolsos-api/internal/infrastructure/postgres"
	infralock "github.com/jhoicas/Reembolsos-api/internal/infrastructure/redislock"
	"github.com/jhoicas/Reembolsos-api/internal/infrastructure/reports"
	httpRouter "github.com/jhoicas/Reembolsos-api/internal/interfaces/http"
	"github.com/jhoicas/Reembolsos-api/pkg/config"
	"github.com/jhoicas/Reembolsos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	// Adaptadores
	userRepo := postgres.NewUserRepository(pool)
	ledgerRepo := postgres.NewLedgerSnapshotRepository(pool)
	feeRepo := postgres.NewFeeSnapshotRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	reimbRepo := postgres.NewReimbursementRepository(pool)
	lostRepo := postgres.NewLostInventoryRepository(pool)
	locker := infralock.New(rdb, log)
	ledgerParser := reports.NewLedgerTSVParser()
	letterGen := infrapdf.NewMarotoClaimLetterGenerator()

	// Casos de uso
	mergeUC := recovery.NewMergeClaimsUseCase(reimbRepo, locker, log)
	reconcileUC := recovery.NewReconcileUseCase(ledgerRepo, feeRepo, reimbRepo, lostRepo, locker, cfg.Claims, log)
	detectUC := recovery.NewDetectShipmentsUseCase(shipmentRepo, productRepo, feeRepo, mergeUC, cfg.Claims, log)
	queryUC := recovery.NewClaimQueryUseCase(reimbRepo, locker, letterGen, log)
	ingestUC := recovery.NewIngestUseCase(ledgerRepo, feeRepo, shipmentRepo, productRepo, mergeUC, ledgerParser, cfg.Claims, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la carta PDF puede tardar más que un JSON
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Reembolsos FBA API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		IngestUC:    ingestUC,
		ReconcileUC: reconcileUC,
		DetectUC:    detectUC,
		QueryUC:     queryUC,
		JWTSecret:   cfg.JWT.Secret,
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
