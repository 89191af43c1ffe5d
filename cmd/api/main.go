package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivangsquared/poc-address-finder/internal/config"
	httpDelivery "github.com/ivangsquared/poc-address-finder/internal/delivery/http"
	"github.com/ivangsquared/poc-address-finder/internal/delivery/http/handler"
	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
	"github.com/ivangsquared/poc-address-finder/internal/infrastructure/ipapi"
	"github.com/ivangsquared/poc-address-finder/internal/infrastructure/nominatim"
	"github.com/ivangsquared/poc-address-finder/internal/pkg/logger"
	"github.com/ivangsquared/poc-address-finder/internal/repository/cache"
	"github.com/ivangsquared/poc-address-finder/internal/repository/memory"
	"github.com/ivangsquared/poc-address-finder/internal/repository/postgres"
	"github.com/ivangsquared/poc-address-finder/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting POC Address Finder")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Load directories. The database is a startup-only source; without it
	// the built-in seed dataset is used. Either way the directories are
	// immutable for the life of the process.
	nmiRecords, addressRecords := loadDirectories(cfg, log)

	nmiDir := memory.NewNMIDirectory(nmiRecords)
	addrDir := memory.NewAddressDirectory(addressRecords)
	log.Info("Directories loaded", zap.Int("nmi_records", nmiDir.Len()))

	// 4. Optional redis cache for reverse-geocode results
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.CacheConfigured() {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
	} else {
		log.Info("Geocode cache disabled (no Redis configured)")
	}

	// 5. External collaborators
	geocoder := nominatim.NewClient(&cfg.Geocoder, log)

	var locator repository.Locator
	if cfg.LocatorConfigured() {
		locator = ipapi.NewClient(&cfg.Locator, log)
	} else {
		log.Info("Geolocation capability unavailable (no locator configured)")
	}

	// 6. Session store
	sessionStore := memory.NewSessionStore(cfg.Session.IdleTTL, log)
	defer sessionStore.Close()

	// 7. Use cases
	resolverUC := usecase.NewResolverUseCase(nmiDir)
	lookupUC := usecase.NewLookupUseCase(nmiDir, addrDir, log)
	selectionUC := usecase.NewSelectionUseCase(
		sessionStore,
		resolverUC,
		geocoder,
		locator,
		cacheRepo,
		cfg.Cache.GeocodeCacheTTL,
		cfg.Locator.FixTimeout,
		log,
	)

	log.Info("Use cases initialized")

	// 8. HTTP handlers and server
	lookupHandler := handler.NewLookupHandler(lookupUC, log)
	selectionHandler := handler.NewSelectionHandler(selectionUC, log)

	server := httpDelivery.NewServer(cfg, log, lookupHandler, selectionHandler)

	// 9. Start server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

// loadDirectories reads the NMI and address directories from Postgres when a
// database is configured, falling back to the seed dataset otherwise. The
// connection is closed as soon as the rows are in memory.
func loadDirectories(cfg *config.Config, log *zap.Logger) ([]domain.NMIRecord, []domain.AddressRecord) {
	if !cfg.DirectorySourceConfigured() {
		log.Info("Using built-in seed directories")
		return memory.SeedNMIRecords(), memory.SeedAddressRecords()
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to directory database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close directory database", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	directoryRepo := postgres.NewDirectoryRepository(db)

	nmiRecords, err := directoryRepo.LoadNMIRecords(ctx)
	if err != nil {
		log.Fatal("Failed to load NMI directory", zap.Error(err))
	}

	addressRecords, err := directoryRepo.LoadAddressRecords(ctx)
	if err != nil {
		log.Fatal("Failed to load address directory", zap.Error(err))
	}

	log.Info("Directories loaded from database",
		zap.Int("nmi_records", len(nmiRecords)),
		zap.Int("address_records", len(addressRecords)),
	)

	return nmiRecords, addressRecords
}
