package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/adapter/postgres"
	redis_adapter "github.com/jas0nkim/pricewatch/internal/adapter/redis"
	"github.com/jas0nkim/pricewatch/internal/usecase"
	"github.com/jas0nkim/pricewatch/pkg/config"
	"github.com/jas0nkim/pricewatch/pkg/logger"
	"github.com/jas0nkim/pricewatch/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// newScheduler wires a scheduler use case against the configured stores. The
// returned scheduler owns the connections; callers defer Close.
func newScheduler(ctx context.Context) (usecase.Scheduler, error) {
	cfg := config.Load()
	logger.Init(os.Stderr, logger.ParseLevel(cfg.LogLevel))
	metrics.Init()

	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return usecase.NewScheduler(
		postgres.NewVersionRepo(dbpool),
		postgres.NewJobRepo(dbpool),
		redis_adapter.NewDispatchQueue(rdb),
		poolCloser{dbpool},
		rdb,
	), nil
}

// poolCloser adapts pgxpool.Pool's void Close to io.Closer.
type poolCloser struct {
	pool *pgxpool.Pool
}

func (c poolCloser) Close() error {
	c.pool.Close()
	return nil
}

// deployIfRequested adds a new version when -d/--deploy was given, mirroring
// the deploy-then-schedule flow.
func deployIfRequested(ctx context.Context, scheduler usecase.Scheduler, project string) error {
	if !flagDeploy {
		return nil
	}
	version, err := scheduler.AddVersion(ctx, project)
	if err != nil {
		return err
	}
	slog.Info("Deployed new version", "project", project, "version", version)
	return nil
}
