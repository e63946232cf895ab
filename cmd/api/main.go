package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"rse-quest/internal/adapter"
	"rse-quest/internal/cache"
	"rse-quest/internal/catalog"
	"rse-quest/internal/config"
	"rse-quest/internal/database"
	"rse-quest/internal/domain"
	"rse-quest/internal/handler"
	"rse-quest/internal/logger"
	"rse-quest/internal/middleware"
	"rse-quest/internal/repository"
	"rse-quest/internal/service"

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

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
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
	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to the progression database
	db, err := database.NewSQLXSQLiteDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Progression database ready", zap.String("path", cfg.Storage.Path))

	// Initialize the level catalog source
	var levelSource domain.LevelCatalog
	switch cfg.Catalog.Source {
	case "file":
		appLogger.Info("Using file level catalog", zap.String("path", cfg.Catalog.Path))
		levelSource = catalog.NewFileSource(cfg.Catalog.Path)
	case "http":
		appLogger.Info("Using HTTP level catalog", zap.String("base_url", cfg.Catalog.BaseURL))
		levelSource = catalog.NewHTTPSource(cfg.Catalog.BaseURL, nil)
	default:
		appLogger.Fatal("Unsupported catalog source", zap.String("source", cfg.Catalog.Source))
	}

	// Initialize the optional Redis level cache
	var cacheAdapter domain.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Info("Redis disabled, serving levels straight from the source")
	}
	levelCatalog := service.NewCachedLevelCatalog(levelSource, cacheAdapter, cfg.Catalog.CacheTTL)

	// Initialize repositories
	progressionRepository := repository.NewProgressionDatabaseAdapter(db)

	// Initialize services
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	levelService := service.NewLevelService(levelCatalog, progressionRepository, rng)
	sessionService := service.NewSessionService(levelCatalog, progressionRepository,
		cfg.Game.MaxLives, cfg.Game.SessionTTL, rand.New(rand.NewSource(time.Now().UnixNano())))
	progressService := service.NewProgressService(progressionRepository)

	// Initialize handlers
	levelHandler := handler.NewLevelHandler(levelService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	progressHandler := handler.NewProgressHandler(progressService)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Level routes
	apiGroup.Get("/levels", levelHandler.ListLevels)
	apiGroup.Get("/levels/:id", validationMiddleware.ValidateLevelID(), levelHandler.GetLevel)

	// Session routes
	sessionGroup := apiGroup.Group("/sessions")
	sessionGroup.Post("/", sessionHandler.StartSession)
	sessionGroup.Get("/:id", validationMiddleware.ValidateSessionID(), sessionHandler.GetSession)
	sessionGroup.Post("/:id/answer", validationMiddleware.ValidateSessionID(), sessionHandler.SubmitAnswer)
	sessionGroup.Post("/:id/advance", validationMiddleware.ValidateSessionID(), sessionHandler.Advance)
	sessionGroup.Delete("/:id", validationMiddleware.ValidateSessionID(), sessionHandler.AbandonSession)

	// Progress routes
	apiGroup.Get("/progress", progressHandler.GetProgress)
	apiGroup.Post("/progress/reset", progressHandler.ResetProgress)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
