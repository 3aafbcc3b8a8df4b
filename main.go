// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"planetarium-booking/cmd"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/wire"
	"planetarium-booking/pkg/database"
	"planetarium-booking/pkg/storage"
	"planetarium-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Optional catalog cache
	var rdb redis.Cmdable
	if config.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			rdb = client
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)
	images := storage.NewImageStorage(config.App.MediaRoot, logger)

	// Wire all dependencies
	app := wire.Wiring(db, repos, images, rdb, config, logger)

	if config.Admin.Email != "" {
		if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin.Email, config.Admin.Password); err != nil {
			logger.Fatal("Failed to ensure admin account", zap.Error(err))
		}
	}

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownAfter, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
