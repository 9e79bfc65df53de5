package main

import (
	"flag"
	"log"

	"pokesoul/internal/config"
	"pokesoul/internal/database"
	"pokesoul/internal/logger"
)

func main() {
	migrationsDir := flag.String("dir", "database/migrations", "path to migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := database.RunMigrations(cfg.GetDSN(), *migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}
