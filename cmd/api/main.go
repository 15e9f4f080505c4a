package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rizosfelices/pedidos-api/internal/application/analytics"
	"github.com/rizosfelices/pedidos-api/internal/application/auth"
	"github.com/rizosfelices/pedidos-api/internal/application/orders"
	"github.com/rizosfelices/pedidos-api/internal/application/usecase"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/infrastructure/cache"
	"github.com/rizosfelices/pedidos-api/internal/infrastructure/mailer"
	"github.com/rizosfelices/pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/rizosfelices/pedidos-api/internal/interfaces/http"
	"github.com/rizosfelices/pedidos-api/pkg/config"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sembrar el catálogo de bodegas desde configuración.
	seed := []entity.Warehouse{
		{Key: cfg.Warehouses.Domestic, Nombre: cfg.Warehouses.Domestic, Email: cfg.Warehouses.DomesticEmail},
		{Key: cfg.Warehouses.Export, Nombre: cfg.Warehouses.Export, Email: cfg.Warehouses.ExportEmail},
	}
	for i := range seed {
		if err := warehouseRepo.Upsert(ctx, &seed[i]); err != nil {
			log.Fatal().Err(err).Str("bodega", seed[i].Key).Msg("sembrar bodegas")
		}
	}

	// Correos: si no hay credenciales SMTP los envíos se descartan en silencio.
	var notifier orders.Notifier = mailer.NoopNotifier{}
	if cfg.SMTP.Enabled() {
		smtpNotifier, err := mailer.NewSMTPNotifier(cfg.SMTP, cfg.Warehouses, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente SMTP")
		}
		notifier = smtpNotifier
		log.Info().Str("host", cfg.SMTP.Host).Msg("correos transaccionales habilitados")
	} else {
		log.Warn().Msg("sin credenciales SMTP, correos transaccionales deshabilitados")
	}

	// Caché del dashboard: Redis si está configurado, si no los KPIs se
	// recalculan en cada petición.
	var statsCache analytics.StatsCache = cache.NoopStatsCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisStatsCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, dashboard sin caché")
		} else {
			statsCache = redisCache
			defer redisCache.Close()
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	productUC := usecase.NewProductUseCase(productRepo, stockRepo, cfg.Warehouses, log)
	orderSvc := orders.NewService(txRunner, orderRepo, userRepo, notifier, cfg.Warehouses, log)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, statsCache, cfg.Warehouses, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		ProductUC:     productUC,
		Orders:        orderSvc,
		DashboardUC:   dashboardUC,
		UserRepo:      userRepo,
		WarehouseRepo: warehouseRepo,
		JWTSecret:     cfg.JWT.Secret,
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
