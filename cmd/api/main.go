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

	"github.com/jhoicas/Traslados-api/internal/application/ports"
	"github.com/jhoicas/Traslados-api/internal/application/purchase"
	"github.com/jhoicas/Traslados-api/internal/application/stock"
	"github.com/jhoicas/Traslados-api/internal/application/transfer"
	infrapdf "github.com/jhoicas/Traslados-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Traslados-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Traslados-api/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/Traslados-api/internal/interfaces/http"
	"github.com/jhoicas/Traslados-api/pkg/config"
	"github.com/jhoicas/Traslados-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adjustStockUC := stock.NewAdjustStockUseCase(txRunner, productRepo, stockRepo, adjustmentRepo)
	createTransferUC := transfer.NewCreateTransferUseCase(txRunner, productRepo, storeRepo)
	cancelTransferUC := transfer.NewCancelTransferUseCase(txRunner)
	confirmReceiptUC := transfer.NewConfirmReceiptUseCase(txRunner)
	transferQueriesUC := transfer.NewQueryUseCase(transferRepo)

	guideGenerator := infrapdf.NewMarotoGuideGenerator()
	transferGuideUC := transfer.NewGuideUseCase(transferRepo, storeRepo, guideGenerator, cfg.App.CompanyName)

	createOrderUC := purchase.NewCreateOrderUseCase(txRunner, productRepo)
	receiveOrderUC := purchase.NewReceiveOrderUseCase(txRunner)
	cancelOrderUC := purchase.NewCancelOrderUseCase(txRunner)
	orderQueriesUC := purchase.NewQueryUseCase(orderRepo)

	// Idempotencia de recepciones: opcional, solo con Redis configurado. Sin
	// Redis la barrera de estado terminal dentro de la tx sigue vigente.
	var idemStore ports.IdempotencyStore
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		idemStore = redisstore.NewIdempotencyStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotencia habilitada")
	}
	idemGuard := httpRouter.NewIdempotencyGuard(idemStore, 24*time.Hour)

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
		Title:    "Traslados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AdjustStock:     adjustStockUC,
		CreateTransfer:  createTransferUC,
		CancelTransfer:  cancelTransferUC,
		ConfirmReceipt:  confirmReceiptUC,
		TransferQueries: transferQueriesUC,
		TransferGuide:   transferGuideUC,
		CreateOrder:     createOrderUC,
		ReceiveOrder:    receiveOrderUC,
		CancelOrder:     cancelOrderUC,
		OrderQueries:    orderQueriesUC,
		Idempotency:     idemGuard,
		JWTSecret:       cfg.JWT.Secret,
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
