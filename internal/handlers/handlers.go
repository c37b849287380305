package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/focusclub/leaderboard-api/internal/models"
	"github.com/focusclub/leaderboard-api/internal/store"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// CycleRunner is the surface of the cycle worker the API needs.
type CycleRunner interface {
	TriggerCycle(ctx context.Context) (*models.CycleReport, error)
	LastReport() *models.CycleReport
}

type Config struct {
	Postgres *pgxpool.Pool
	Redis    *redis.Client
	Logger   *zap.Logger
	// Services
	Stats store.StatStore
	Cycle CycleRunner

	RateLimitPerSecond int
	RateLimitBurst     int
}

type Handler struct {
	pg        *pgxpool.Pool
	redis     *redis.Client
	logger    *zap.SugaredLogger
	validator *validator.Validate
	stats     store.StatStore
	cycle     CycleRunner
	limits    *ipLimiters
}

func New(cfg Config) *Handler {
	return &Handler{
		pg:        cfg.Postgres,
		redis:     cfg.Redis,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
		stats:     cfg.Stats,
		cycle:     cfg.Cycle,
		limits:    newIPLimiters(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	}
}
