package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/focusclub/leaderboard-api/internal/config"
	"github.com/focusclub/leaderboard-api/internal/handlers"
	"github.com/focusclub/leaderboard-api/internal/logic"
	"github.com/focusclub/leaderboard-api/internal/store"
	"github.com/focusclub/leaderboard-api/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to parse Postgres URL", "error", err)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		sugar.Fatalw("Failed to create Postgres pool", "error", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to ping Postgres", "error", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Failed to parse Redis URL", "error", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("Failed to ping Redis", "error", err)
	}

	sugar.Infow("Connected to Postgres and Redis", "env", cfg.Env)

	// The cycle and the API share the one cached store, so every rollover
	// write evicts the redis keys the API reads through.
	pgStore := store.NewPostgresStatStore(pool)
	cachedStore := store.NewCachedStatStore(pgStore, store.NewRedisKV(redisClient), cfg.CacheTTL, sugar)

	dates := logic.NewLocalDateSource(cfg.Timezone)
	cycleService := logic.NewCycleService(cachedStore, dates, sugar)

	cycleWorker := worker.NewCycleWorker(worker.CycleConfig{
		Cycle:    cycleService,
		Locker:   worker.NewRedisLocker(redisClient),
		Logger:   logger,
		Interval: cfg.CycleInterval,
		LockTTL:  cfg.CycleLockTTL,
	})

	h := handlers.New(handlers.Config{
		Postgres:           pool,
		Redis:              redisClient,
		Logger:             logger,
		Stats:              cachedStore,
		Cycle:              cycleWorker,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(h.RateLimitMiddleware)

	r.Get("/api/health", h.Health)
	r.Get("/api/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/stats/{ownerID}", h.GetUserStats)

		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)
			r.Post("/stats", h.CreateUserStats)
			r.Post("/stats/{ownerID}/time", h.AddTime)
			r.Post("/cycle/run", h.RunCycle)
			r.Get("/cycle/last", h.LastCycleReport)
		})
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cycleWorker.Start(runCtx)
	defer cycleWorker.Stop()
	h.StartLimiterCleanup(runCtx.Done())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-runCtx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
}
