package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/adapter/postgres"
	redis_adapter "github.com/jas0nkim/pricewatch/internal/adapter/redis"
	"github.com/jas0nkim/pricewatch/internal/delivery/http/handler"
	"github.com/jas0nkim/pricewatch/internal/delivery/http/router"
	"github.com/jas0nkim/pricewatch/internal/usecase"
	"github.com/jas0nkim/pricewatch/pkg/config"
	"github.com/jas0nkim/pricewatch/pkg/logger"
	"github.com/jas0nkim/pricewatch/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logger.Init(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	slog.Info("Logger initialized", "level", cfg.LogLevel)

	// --- Metrics ---
	metrics.Init()

	// --- Database Connections ---
	ctx := context.Background()

	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL())
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

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
	slog.Info("Redis connection established")

	// --- Repositories ---
	versionRepo := postgres.NewVersionRepo(dbpool)
	jobRepo := postgres.NewJobRepo(dbpool)
	dispatchQueue := redis_adapter.NewDispatchQueue(rdb)

	// --- Use Cases ---
	scheduler := usecase.NewScheduler(versionRepo, jobRepo, dispatchQueue)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(scheduler)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
