package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/adapter/postgres"
	redis_adapter "github.com/jas0nkim/pricewatch/internal/adapter/redis"
	"github.com/jas0nkim/pricewatch/internal/extractor"
	"github.com/jas0nkim/pricewatch/internal/usecase"
	"github.com/jas0nkim/pricewatch/pkg/config"
	"github.com/jas0nkim/pricewatch/pkg/logger"
	"github.com/jas0nkim/pricewatch/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger.Init(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL())
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	normalizer := usecase.NewNormalizer(
		extractor.NewRegistry(),
		postgres.NewRawDataRepo(dbpool),
		postgres.NewItemRepo(dbpool),
		postgres.NewItemPriceRepo(dbpool),
		redis_adapter.NewRawDataQueue(rdb),
		cfg.NormalizerWorkers,
	)

	if err := normalizer.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("Normalizer exited", "error", err)
		os.Exit(1)
	}
}
