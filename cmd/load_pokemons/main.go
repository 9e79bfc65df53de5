package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"pokesoul/internal/adapter/pokeapi"
	"pokesoul/internal/config"
	"pokesoul/internal/database"
	"pokesoul/internal/logger"
	"pokesoul/internal/repository"
	"pokesoul/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// concurrentFetches bounds the number of in-flight requests against the
// external data source.
const concurrentFetches = 5

func main() {
	count := flag.Int("count", 0, "number of pokemons to load (overrides config)")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	loadCount := cfg.PokeAPI.LoadCount
	if *count > 0 {
		loadCount = *count
	}

	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	catalog := service.NewCatalogService(
		repository.NewPokemonDatabaseAdapter(db),
		pokeapi.NewClient(cfg.PokeAPI),
	)

	appLogger.Info("Loading pokemons into catalog", zap.Int("count", loadCount))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrentFetches)
	for id := 1; id <= loadCount; id++ {
		id := id
		group.Go(func() error {
			name, err := catalog.ImportPokemon(groupCtx, strconv.Itoa(id))
			if err != nil {
				appLogger.Error("Failed to import pokemon",
					zap.Int("id", id), zap.Error(err))
				return err
			}
			appLogger.Info("Imported pokemon", zap.Int("id", id), zap.String("name", name))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		appLogger.Fatal("Catalog load failed", zap.Error(err))
	}
	appLogger.Info("Catalog load completed", zap.Int("count", loadCount))
}
