package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio-tracker/internal/adapter/api"
	"github.com/portfolio-tracker/internal/adapter/repository/postgres"
	"github.com/portfolio-tracker/internal/config"
	"github.com/portfolio-tracker/internal/domain"
	"github.com/portfolio-tracker/internal/usecase/catalog"
	"github.com/portfolio-tracker/internal/usecase/holdings"
	"github.com/portfolio-tracker/internal/usecase/ledger"
	"github.com/portfolio-tracker/internal/usecase/pricefeed"
	"github.com/portfolio-tracker/internal/usecase/seeder"
	"github.com/portfolio-tracker/internal/usecase/snapshot"
	"github.com/portfolio-tracker/internal/usecase/watchlist"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 1. Setup Database
	db, err := postgres.NewDB(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxConnections)

	if err := postgres.RunMigrations(cfg.Database.URL(), cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	// 2. Initialize Repositories (Postgres)
	assetRepo := postgres.NewAssetRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	holdingRepo := postgres.NewHoldingRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	priceHistoryRepo := postgres.NewPriceHistoryRepository(db)
	watchlistRepo := postgres.NewWatchlistRepository(db)
	configRepo := postgres.NewConfigRepository(db)

	// 3. Initialize Services (Use Cases)
	catalogService := catalog.NewCatalogService(assetRepo)
	ledgerService := ledger.NewLedgerService(assetRepo, transactionRepo)
	holdingsService := holdings.NewHoldingsService(assetRepo, transactionRepo, holdingRepo)
	snapshotService := snapshot.NewSnapshotService(holdingRepo, snapshotRepo)
	priceFeedService := pricefeed.NewPriceFeedService(assetRepo, priceHistoryRepo)
	watchlistService := watchlist.NewWatchlistService(assetRepo, watchlistRepo)

	ctx := context.Background()

	if cfg.Seed.Enabled {
		if err := seeder.NewSeeder(assetRepo, configRepo).Seed(ctx); err != nil {
			log.Fatalf("Failed to seed default catalog: %v", err)
		}
		log.Println("Default catalog and config seeded")
	}

	// The API password lives in the config table so it survives restarts
	// and can be rotated without redeploying
	passwordEntry, err := configRepo.Get(ctx, domain.ConfigKeyPassword)
	if err != nil {
		log.Fatalf("Failed to read %s from config store: %v", domain.ConfigKeyPassword, err)
	}

	// 4. Start HTTP Server
	server := api.NewServer(
		&api.ServerConfig{
			Host:      cfg.Server.Host,
			Port:      cfg.Server.Port,
			AuthToken: passwordEntry.Value,
		},
		catalogService,
		ledgerService,
		holdingsService,
		snapshotService,
		priceFeedService,
		watchlistService,
	)

	go func() {
		log.Printf("HTTP server listening on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *api.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}
