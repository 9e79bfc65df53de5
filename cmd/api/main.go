package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pokesoul/internal/adapter"
	"pokesoul/internal/adapter/pokeapi"
	"pokesoul/internal/cache"
	"pokesoul/internal/config"
	"pokesoul/internal/database"
	"pokesoul/internal/domain"
	"pokesoul/internal/handler"
	"pokesoul/internal/logger"
	"pokesoul/internal/middleware"
	"pokesoul/internal/repository"
	"pokesoul/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	pokemonRepository := repository.NewPokemonDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	userProfileRepository := repository.NewUserProfileDatabaseAdapter(db)
	matchResultRepository := repository.NewMatchResultDatabaseAdapter(db)

	// Initialize Redis. An unreachable cache degrades matching to
	// uncached operation instead of blocking startup.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Failed to connect to Redis, match caching disabled", zap.Error(err))
	} else {
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}
	matchCacheService := service.NewMatchCacheService(cacheAdapter, cfg.Matcher.CacheTTL)

	// Initialize services
	extractor := service.NewPreferenceExtractor(questionRepository)
	matchService := service.NewMatchService(
		pokemonRepository,
		userProfileRepository,
		matchResultRepository,
		extractor,
		matchCacheService,
	)
	quizService := service.NewQuizService(questionRepository, userProfileRepository)
	catalogService := service.NewCatalogService(pokemonRepository, pokeapi.NewClient(cfg.PokeAPI))

	// Initialize handlers
	matchHandler := handler.NewMatchHandler(matchService)
	quizHandler := handler.NewQuizHandler(quizService)
	pokemonHandler := handler.NewPokemonHandler(catalogService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Get("/questions", quizHandler.GetQuestionnaire)
	apiGroup.Post("/profiles", quizHandler.SubmitAnswers)
	apiGroup.Post("/match", matchHandler.FindMatch)
	apiGroup.Get("/profiles/:id/results", matchHandler.GetMatchHistory)
	apiGroup.Get("/pokemons/:name", pokemonHandler.GetPokemonByName)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Start the server; shut down gracefully on SIGINT/SIGTERM.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Fatal("Server stopped", zap.Error(err))
		}
	}()
	appLogger.Info("Server started", zap.Int("port", cfg.Server.Port))

	<-shutdown
	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
}
