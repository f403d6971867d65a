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

	"github.com/yorbis/ferreteria-api/internal/application/inventory"
	"github.com/yorbis/ferreteria-api/internal/application/purchasing"
	"github.com/yorbis/ferreteria-api/internal/application/sales"
	"github.com/yorbis/ferreteria-api/internal/application/settlement"
	infrapdf "github.com/yorbis/ferreteria-api/internal/infrastructure/pdf"
	"github.com/yorbis/ferreteria-api/internal/infrastructure/postgres"
	httpRouter "github.com/yorbis/ferreteria-api/internal/interfaces/http"
	"github.com/yorbis/ferreteria-api/pkg/config"
	"github.com/yorbis/ferreteria-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invRepo := postgres.NewInventoryRecordRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	aggregator := settlement.NewAggregator(settlementRepo, log)
	inventoryUC := inventory.NewUseCase(invRepo)
	recordSaleUC := sales.NewRecordSaleUseCase(txRunner, saleRepo, aggregator)
	receiveUC := purchasing.NewReceivePurchaseUseCase(txRunner, purchaseRepo, invRepo)
	settlementUC := settlement.NewQueryUseCase(settlementRepo, infrapdf.NewMarotoSettlementReport())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ferretería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:  inventoryUC,
		RecordSale:   recordSaleUC,
		ReceiveUC:    receiveUC,
		SettlementUC: settlementUC,
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
