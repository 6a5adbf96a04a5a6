package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	catalogapp "github.com/jasmey/backend/internal/application/catalog"
	checkoutapp "github.com/jasmey/backend/internal/application/checkout"
	inventoryapp "github.com/jasmey/backend/internal/application/inventory"
	notificationapp "github.com/jasmey/backend/internal/application/notification"
	orderingapp "github.com/jasmey/backend/internal/application/ordering"
	"github.com/jasmey/backend/internal/domain/pricing"
	"github.com/jasmey/backend/internal/infrastructure/auth"
	"github.com/jasmey/backend/internal/infrastructure/cache"
	"github.com/jasmey/backend/internal/infrastructure/config"
	"github.com/jasmey/backend/internal/infrastructure/event"
	"github.com/jasmey/backend/internal/infrastructure/logger"
	"github.com/jasmey/backend/internal/infrastructure/notification"
	"github.com/jasmey/backend/internal/infrastructure/persistence"
	"github.com/jasmey/backend/internal/infrastructure/storage"
	"github.com/jasmey/backend/internal/infrastructure/telemetry"
	"github.com/jasmey/backend/internal/interfaces/http/handler"
	"github.com/jasmey/backend/internal/interfaces/http/middleware"
	"github.com/jasmey/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing. A disabled config yields a no-op provider so the otelgin and
	// otelgorm instrumentation below costs nothing.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, 200*time.Millisecond)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable gorm tracing", zap.Error(err))
		}
	}

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to run schema migration", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockItemRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	checkoutScope := persistence.NewGormCheckoutTransactionScope(db.DB)
	orderingScope := persistence.NewGormOrderingTransactionScope(db.DB)

	// Event bus and notification handlers. Delivery is best-effort: a failed
	// notification is logged, never surfaced to the request that caused it.
	eventBus := event.NewInMemoryEventBus(log)
	notifier := notification.NewLogNotifier(log)
	eventBus.Subscribe(notificationapp.NewOrderEventsHandler(log, notifier))
	eventBus.Subscribe(notificationapp.NewStockAlertHandler(log, notifier, cfg.Store.AdminEmail))

	// Application services
	settings := checkoutapp.Settings{
		Pricing: pricing.Config{
			TaxRatePercent:        cfg.Store.TaxRatePercent,
			DeliveryCharge:        cfg.Store.DeliveryCharge,
			FreeDeliveryThreshold: cfg.Store.FreeDeliveryThreshold,
		},
		MinOrderAmount:        cfg.Store.MinOrderAmount,
		OrderPrefix:           cfg.Store.OrderPrefix,
		InvoicePrefix:         cfg.Store.InvoicePrefix,
		EstimatedDeliveryDays: cfg.Store.EstimatedDeliveryDays,
	}
	checkoutService := checkoutapp.NewService(checkoutScope, productRepo, settings)
	checkoutService.SetEventPublisher(eventBus)

	orderingService := orderingapp.NewService(orderingScope, orderRepo)
	orderingService.SetEventPublisher(eventBus)

	inventoryService := inventoryapp.NewService(stockRepo, movementRepo)
	inventoryService.SetEventPublisher(eventBus)

	productService := catalogapp.NewProductService(productRepo, stockRepo)

	// Product list caching is best-effort: if Redis is unreachable the
	// catalog serves straight from the database.
	productCache, err := cache.NewRedisProductCache(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, product list caching disabled", zap.Error(err))
	} else {
		productService.SetCache(productCache)
		defer func() {
			if err := productCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Info("Object storage disabled, using stub")
	}
	imageService := catalogapp.NewImageService(objectStorage)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	handlers := router.Handlers{
		Product:   handler.NewProductHandler(productService, imageService),
		Checkout:  handler.NewCheckoutHandler(checkoutService),
		Order:     handler.NewOrderHandler(orderingService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Settings:  handler.NewSettingsHandler(cfg.Store),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodySizeLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	router.New(engine, handlers, jwtService).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
