package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currencyconv/internal/adapters"
	"currencyconv/internal/adapters/badgerdb"
	"currencyconv/internal/adapters/cache"
	"currencyconv/internal/adapters/postgres"
	"currencyconv/internal/api"
	"currencyconv/internal/config"
	"currencyconv/internal/currency"
	"currencyconv/internal/currency/handler"
	"currencyconv/internal/platform/db"
	httpserver "currencyconv/internal/platform/http"
	"currencyconv/internal/platform/logging"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and cache warmer
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	logger := logging.New(appCfg.Logging, os.Stdout)
	logger.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (migrations, DB connect)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store, closeStore, err := openStore(startupCtx, appCfg, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to open currency store")
		return err
	}
	defer closeStore()

	lookupCache, err := cache.NewCurrencyCache(appCfg.Cache.MaxItems, time.Duration(appCfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		logger.WithError(err).Error("Failed to create currency cache")
		return err
	}
	defer lookupCache.Close()

	// Services
	service := currency.NewService(store, lookupCache, logger, appCfg.API.EmptyListNotFound)
	converter := currency.NewConverter(store, lookupCache, logger)
	warmer := currency.NewCacheWarmer(store, lookupCache, logger,
		time.Duration(appCfg.Cache.WarmIntervalSeconds)*time.Second)
	// Ensure warmer stops before the store closes
	defer func() {
		if shutDownErr := warmer.Shutdown(); shutDownErr != nil {
			logger.Errorf("Cache warmer shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := warmer.Start(ctx); startErr != nil {
		logger.WithError(startErr).Error("Failed to start cache warmer")
		return startErr
	}
	logger.Info("✅ Cache warmer activation successful")

	// Handlers and router
	currencyHandler := handler.NewCurrencyHandler(service, converter, logger, appCfg.HTTPServer.MaxBodyBytes)
	router := api.NewRouter(currencyHandler, logger)

	logger.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router, logger); serverErr != nil {
		stop()
		logger.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// openStore builds the configured currency store and returns its release func.
func openStore(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (adapters.CurrencyStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverBadger:
		bdb, err := badgerdb.Open(cfg.Storage.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		repo, err := badgerdb.NewCurrencyRepository(bdb)
		if err != nil {
			_ = bdb.Close()
			return nil, nil, err
		}
		log.WithField("dir", cfg.Storage.BadgerDir).Info("✅ Badger store opened")
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.WithError(err).Error("Failed to release currency id sequence")
			}
			if err := bdb.Close(); err != nil {
				log.WithError(err).Error("Failed to close badger")
			}
		}, nil

	case config.StorageDriverPostgres:
		if cfg.Storage.MigrateOnStart {
			if err := db.Migrate(ctx, cfg.DbServer.GetConnectionStr()); err != nil {
				return nil, nil, err
			}
			log.Info("✅ Migrations applied")
		}
		pool, err := db.CreatePoolAndPing(ctx, cfg.DbServer)
		if err != nil {
			return nil, nil, err
		}
		log.Info("✅ Postgres connection successful")
		return postgres.NewCurrencyRepository(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
