package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	inventoryapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/inventory"
	menuapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/menu"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared/valueobject"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/config"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/logger"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/persistence"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/infrastructure/seed"
	"go.uber.org/zap"
)

func main() {
	var (
		catalogPath string
		itemsCSV    string
		logLevel    string
		timeout     time.Duration
	)
	flag.StringVar(&catalogPath, "catalog", "config/catalog.yaml", "Path to the YAML catalog of ingredients and dishes")
	flag.StringVar(&itemsCSV, "items-csv", "", "Optional CSV price list; rows override catalog items with the same name")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Abort the seed after this long")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	catalog, err := seed.LoadCatalogFile(catalogPath)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.String("path", catalogPath), zap.Error(err))
	}
	if itemsCSV != "" {
		items, err := seed.LoadItemsCSVFile(itemsCSV)
		if err != nil {
			log.Fatal("Failed to load items csv", zap.String("path", itemsCSV), zap.Error(err))
		}
		if err := catalog.MergeItems(items); err != nil {
			log.Fatal("Items csv conflicts with catalog", zap.Error(err))
		}
		log.Info("Merged price list", zap.Int("rows", len(items)))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel("warn"), cfg.Telemetry.DBSlowQueryThresh))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()
	if db.Driver() == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	table := valueobject.DefaultConversionTable()
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	dishRepo := persistence.NewGormDishRepository(db.DB)

	stock := inventoryapp.NewStockService(
		itemRepo,
		persistence.NewGormInventoryTransactionRepository(db.DB),
		dishRepo,
		persistence.NewGormTransactionScope(db.DB),
		table,
	)
	stock.SetLogger(log)

	calculator, err := menu.NewCostCalculator(table, cfg.Costing.Overhead())
	if err != nil {
		log.Fatal("Invalid costing configuration", zap.Error(err))
	}
	costing := menuapp.NewCostingService(dishRepo, itemRepo, calculator)
	costing.SetLogger(log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := seed.NewSeeder(stock, costing, log).Run(ctx, catalog)
	if err != nil {
		log.Fatal("Seed failed", zap.Error(err),
			zap.Int("items_created", res.ItemsCreated),
			zap.Int("dishes_created", res.DishesCreated),
		)
	}

	log.Info("Seed complete",
		zap.Int("items_created", res.ItemsCreated),
		zap.Int("items_existing", res.ItemsExisting),
		zap.Int("dishes_created", res.DishesCreated),
		zap.Int("dishes_skipped", res.DishesSkipped),
	)
}
