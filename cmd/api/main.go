package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/ai-bridge/backend/internal/api/handlers"
	"github.com/ai-bridge/backend/internal/cache/redis"
	"github.com/ai-bridge/backend/internal/engine"
	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/engine/estimate"
	"github.com/ai-bridge/backend/internal/engine/spec"
	"github.com/ai-bridge/backend/internal/metrics"
	"github.com/ai-bridge/backend/internal/middleware/ratelimit"
	"github.com/ai-bridge/backend/internal/middleware/security"
	"github.com/ai-bridge/backend/internal/middleware/validation"
	"github.com/ai-bridge/backend/internal/session"
	"github.com/ai-bridge/backend/internal/storage/sqlite"
	"github.com/ai-bridge/backend/pkg/config"
	appLogger "github.com/ai-bridge/backend/pkg/logger"
	"github.com/ai-bridge/backend/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting AI Bridge API Server")

	metrics.Init()

	catalogClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create catalog client", zap.Error(err))
	}
	defer catalogClient.Close()

	err = catalogClient.InitSchema()
	if err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	err = catalogClient.SeedVendors(context.Background(), sqlite.SeedCatalog())
	if err != nil {
		appLogger.Fatal("Failed to seed vendor catalog", zap.Error(err))
	}

	if count, err := catalogClient.CountVendors(context.Background()); err == nil {
		metrics.VendorsInCatalog.Set(float64(count))
	}

	rateTable := estimate.DefaultTable()
	if cfg.Engine.RateTablePath != "" {
		rateTable, err = estimate.LoadTable(cfg.Engine.RateTablePath)
		if err != nil {
			appLogger.Fatal("Failed to load rate table", zap.Error(err))
		}
		appLogger.Info("Rate table loaded", zap.String("path", cfg.Engine.RateTablePath))
	}

	var store session.Store
	if cfg.Redis.Enabled {
		var redisStore *redis.Store
		ttl := time.Duration(cfg.Engine.SessionTTLMin) * time.Minute
		err = retry.Do(context.Background(), retry.Config{
			MaxAttempts:  5,
			InitialDelay: 500 * time.Millisecond,
			Logger:       appLogger.Log,
		}, func() error {
			var err error
			redisStore, err = redis.NewStore(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, ttl)
			return err
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		appLogger.Info("Redis disabled, using in-memory session store")
		store = session.NewMemoryStore()
	}

	eng := engine.NewEngine(rateTable, spec.DefaultSections(), catalogClient)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.MaxRequestsPerMinute,
		Logger:               appLogger.Log,
	})
	defer limiter.Stop()

	sessionHandler := handlers.NewSessionHandler(store, eng, cfg.Engine.MaxMatches)
	vendorHandler := handlers.NewVendorHandler(catalogClient)
	wsHandler := handlers.NewWebSocketHandler(store, eng, cfg.Engine.MaxMatches)

	api := app.Group("/api/v1")
	api.Use(limiter.Middleware())

	api.Post("/sessions", sessionHandler.CreateSession)

	sessions := api.Group("/sessions/:id", validation.Middleware(validation.Config{
		Logger: appLogger.Log,
	}))
	sessions.Get("/", sessionHandler.GetSnapshot)
	sessions.Put("/answers", sessionHandler.PutAnswer)
	sessions.Delete("/answers/:questionId", sessionHandler.DeleteAnswer)
	sessions.Get("/estimate", sessionHandler.GetEstimate)
	sessions.Get("/matches", sessionHandler.GetMatches)
	sessions.Get("/spec", sessionHandler.GetSpec)
	sessions.Get("/export", sessionHandler.ExportDocument)

	api.Get("/vendors", vendorHandler.ListVendors)
	api.Get("/vendors/:id", vendorHandler.GetVendor)

	api.Get("/questions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"questions": answers.Registry(),
			"sections":  eng.Sections(),
		})
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		if _, err := catalogClient.CountVendors(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	app.Use("/ws/sessions/:id", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/sessions/:id", websocket.New(wsHandler.HandleConnection))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
