package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"picky-feed/cmd"
	"picky-feed/internal/data/repository"
	"picky-feed/internal/notify"
	"picky-feed/internal/wire"
	"picky-feed/pkg/database"
	"picky-feed/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	notifier := newNotifier(config.Redis, logger)
	defer notifier.Close()

	repos := repository.NewRepository(db, logger)
	app := wire.Wiring(repos, notifier, config, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

// newNotifier falls back to logging notifications when Redis is not configured or unreachable.
func newNotifier(cfg utils.RedisConfig, logger *zap.Logger) notify.Notifier {
	if cfg.URL == "" {
		logger.Info("REDIS_URL not set, notifications are only logged")
		return notify.NewLogNotifier(logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	notifier, err := notify.NewRedisNotifier(ctx, cfg.URL, cfg.StreamMaxLen, logger)
	if err != nil {
		logger.Warn("Redis unavailable, notifications are only logged", zap.Error(err))
		return notify.NewLogNotifier(logger)
	}
	return notifier
}
