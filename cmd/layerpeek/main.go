// Command layerpeek runs the container image inspection service.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/layerpeek/layerpeek/internal/bootstrap"
	"github.com/layerpeek/layerpeek/internal/data"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting layerpeek service",
		"http_addr", cfg.HTTP.Addr,
		"workers", cfg.Inspector.Workers,
		"queue_size", cfg.Inspector.QueueSize,
		"result_ttl", cfg.Inspector.ResultTTL)

	db, err := bootstrap.ConnectDB(cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
		if cfg.Postgres.RunMigrationsOnStart {
			if err = data.RunMigrations(ctx, db); err != nil {
				return err
			}
		}
	}

	redisClient, err := bootstrap.ConnectRedis(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close services failed", "error", cerr)
		}
	}()

	return bootstrap.RunHTTPServer(&cfg, services, logger)
}
