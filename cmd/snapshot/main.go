// Command snapshot records the daily end-of-day snapshot of every holding.
// It is meant to be run once per day by an external scheduler (cron).
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/portfolio-tracker/internal/adapter/repository/postgres"
	"github.com/portfolio-tracker/internal/config"
	"github.com/portfolio-tracker/internal/usecase/snapshot"
)

func main() {
	dateFlag := flag.String("date", "", "Snapshot date as YYYY-MM-DD (defaults to today)")
	flag.Parse()

	date := time.Now()
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			log.Fatalf("Invalid -date value %q: %v", *dateFlag, err)
		}
		date = parsed
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.NewDB(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	holdingRepo := postgres.NewHoldingRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	snapshotService := snapshot.NewSnapshotService(holdingRepo, snapshotRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	written, err := snapshotService.RecordDaily(ctx, date)
	if err != nil {
		log.Fatalf("Failed to record daily snapshots: %v", err)
	}

	log.Printf("Recorded %d snapshot(s) for %s", len(written), date.UTC().Format("2006-01-02"))
}
