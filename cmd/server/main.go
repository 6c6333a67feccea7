package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/finance"
	inventoryapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/inventory"
	menuapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	planningapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/cache"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/config"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/event"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/logger"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/notify"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/persistence"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/storage"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/strategy"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/telemetry"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/handler"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/middleware"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	// Telemetry: traces, metrics, logs and continuous profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer shutdown(log, "logger provider", loggerProvider.Shutdown)
	log = loggerProvider.Bridge(log, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Telemetry.LogsLevel))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		Memory:          cfg.Telemetry.ProfilingMemory,
		Goroutines:      cfg.Telemetry.ProfilingGoroutines,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting catering engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if db.Driver() == "sqlite" {
		// Postgres is migrated by cmd/migrate; sqlite has no SQL migrations
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        db.Driver(),
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", db.Driver()))

	// Caches: idempotency keys and dish cost breakdowns
	caches, err := cache.New(ctx, cfg.Redis, cfg.Costing.CostCacheTTL, cfg.App.Env == "production" && cfg.Redis.Enabled, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := caches.Close(); err != nil {
			log.Error("Error closing caches", zap.Error(err))
		}
	}()

	// Repositories
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	transactionRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	dishRepo := persistence.NewGormDishRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	planRepo := persistence.NewGormPlanRecordRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Domain services
	table := valueobject.DefaultConversionTable()
	calculator, err := menu.NewCostCalculator(table, cfg.Costing.Overhead())
	if err != nil {
		log.Fatal("Invalid costing configuration", zap.Error(err))
	}
	strategies, err := strategy.NewRegistryWithDefaults()
	if err != nil {
		log.Fatal("Failed to register pricing strategies", zap.Error(err))
	}
	pricing, err := strategies.GetUnitPriceStrategy(cfg.Costing.PricingStrategy)
	if err != nil {
		log.Fatal("Unknown pricing strategy", zap.String("strategy", cfg.Costing.PricingStrategy), zap.Error(err))
	}

	// Engine metrics, including the periodic low stock and deficit gauges
	engineMetrics, err := telemetry.NewEngineMetrics(telemetry.EngineMetricsConfig{
		Meter:           meterProvider.Meter(cfg.Telemetry.ServiceName),
		Logger:          log,
		StockProvider:   telemetry.NewGormStockMetricsProvider(db.DB),
		CollectInterval: cfg.Inventory.StockMetricsInterval,
	})
	if err != nil {
		log.Fatal("Failed to create engine metrics", zap.Error(err))
	}
	metricsCtx, stopMetrics := context.WithCancel(ctx)
	defer stopMetrics()
	engineMetrics.StartPeriodicCollection(metricsCtx)
	defer engineMetrics.Stop()

	// Plan archive: S3 when configured, otherwise in memory and served by the API
	var (
		archive       planningapp.PlanArchiveStorage
		archiveReader handler.ArchiveReader
	)
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3PlanArchive(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to create plan archive", zap.Error(err))
		}
		if err := s3Archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Plan archive bucket unavailable", zap.String("bucket", s3Archive.Bucket()), zap.Error(err))
		}
		archive, archiveReader = s3Archive, s3Archive
	} else {
		memArchive := storage.NewMemoryPlanArchive("http://localhost:" + cfg.App.Port + "/api/v1/planning/archive")
		archive, archiveReader = memArchive, memArchive
		log.Warn("Object storage disabled, archived plans are kept in memory")
	}

	// Application services
	stockService := inventoryapp.NewStockService(itemRepo, transactionRepo, dishRepo, txScope, table)
	stockService.SetPricingStrategy(pricing)
	stockService.SetIdempotencyStore(caches.Idempotency, cfg.Inventory.IdempotencyTTL)
	stockService.SetEngineMetrics(engineMetrics)
	stockService.SetLogger(log)

	costingService := menuapp.NewCostingService(dishRepo, itemRepo, calculator)
	costingService.SetCostCache(caches.DishCosts)
	costingService.SetEngineMetrics(engineMetrics)
	costingService.SetLogger(log)

	planService := planningapp.NewPlanService(dishRepo, itemRepo, planRepo, archive, table)
	planService.SetDownloadExpiry(cfg.Storage.PresignExpiration)
	planService.SetEngineMetrics(engineMetrics)
	planService.SetLogger(log)

	expenseService := financeapp.NewExpenseService(expenseRepo)

	// Event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)
	idempotency := shared.IdempotencyConfig{TTL: cfg.Inventory.IdempotencyTTL, Enabled: true}

	// Purchase recorded -> ingredient expense
	expenseRecorder := event.NewIdempotentHandler(financeapp.NewExpenseRecorder(expenseRepo, log), caches.Idempotency, idempotency, log)
	eventBus.Subscribe(expenseRecorder)

	// Unit price changed -> dish cost caches refreshed
	priceChanged := menuapp.NewUnitPriceChangedHandler(costingService, log)
	eventBus.Subscribe(priceChanged)

	// Below threshold or deficit -> operator alert
	var notifier inventoryapp.StockAlertNotifier = inventoryapp.NewLoggingStockAlertNotifier(log)
	if cfg.Mail.Enabled {
		mailNotifier, err := notify.NewMailStockAlertNotifier(cfg.Mail, log)
		if err != nil {
			log.Fatal("Failed to configure stock alert mail", zap.Error(err))
		}
		notifier = mailNotifier
	}
	stockAlerts := inventoryapp.NewStockAlertHandler(log).
		WithNotifier(notifier).
		WithMinInterval(time.Hour)
	eventBus.Subscribe(stockAlerts)

	log.Info("Event handlers registered",
		zap.Strings("expense_recorder_events", expenseRecorder.EventTypes()),
		zap.Strings("price_changed_events", priceChanged.EventTypes()),
		zap.Strings("stock_alert_events", stockAlerts.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	stockService.SetEventPublisher(eventBus)

	// HTTP handlers
	handlers := router.Handlers{
		Inventory: handler.NewInventoryHandler(stockService),
		Menu:      handler.NewMenuHandler(costingService, decimal.NewFromFloat(cfg.Costing.DefaultTargetMargin)),
		Planning:  handler.NewPlanningHandler(planService, archiveReader),
		Finance:   handler.NewFinanceHandler(expenseService),
		System: handler.NewSystemHandler(cfg.App.Name, version, table, map[string]handler.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"cache": caches.Ping,
		}),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.NewEngine(handlers, router.Options{
		Logger: log,
		HTTP:   cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		Profiling: middleware.ProfilingConfig{
			Enabled:   profiler.IsEnabled(),
			SkipPaths: []string{"/health"},
		},
		Meter: meterProvider.Meter(cfg.Telemetry.ServiceName + "/http"),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	if err := fn(context.Background()); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
