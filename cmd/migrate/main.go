package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/portfolio-tracker/internal/adapter/repository/postgres"
	"github.com/portfolio-tracker/internal/config"
)

func main() {
	var (
		up      = flag.Bool("up", false, "Apply all pending migrations")
		down    = flag.Bool("down", false, "Rollback the last migration")
		version = flag.Bool("version", false, "Print the current migration version")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	databaseURL := cfg.Database.URL()
	migrationsPath := cfg.Database.MigrationsPath

	switch {
	case *up:
		if err := postgres.RunMigrations(databaseURL, migrationsPath); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case *down:
		if err := postgres.RollbackMigrations(databaseURL, migrationsPath); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("Last migration rolled back")
	case *version:
		v, dirty, err := postgres.MigrationVersion(databaseURL, migrationsPath)
		if err != nil {
			log.Fatalf("Failed to read migration version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	default:
		flag.Usage()
		os.Exit(1)
	}
}
