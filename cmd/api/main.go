package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripmate/internal/config"
	"tripmate/internal/handler"
	"tripmate/internal/hub"
	"tripmate/internal/middleware"
	"tripmate/internal/repository"
	"tripmate/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	zlog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if envErr != nil {
		zlog.Info("no .env file found, using environment variables")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var rdb *redis.Client
	if client, err := config.NewRedisClient(cfg); err != nil {
		zlog.Warn("redis unavailable, trip cache and cross-instance delivery disabled", zap.Error(err))
	} else {
		rdb = client
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pubsub *redis.Client
	if cfg.RedisPubSub {
		pubsub = rdb
	}
	h := hub.New(zlog.Named("hub"), pubsub)
	go h.Run(ctx)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, h, cfg, zlog)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.NewErrorHandler(zlog),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/ws"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	handler.SetupRoutes(app, handlers, services.Auth, h.Handler())

	go func() {
		<-ctx.Done()
		zlog.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			zlog.Warn("shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
