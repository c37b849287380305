// Package worker schedules the recurring leaderboard cycle. A redis lock
// keeps at most one cycle running at a time, including manual triggers, so
// the cycle service itself never has to handle concurrent invocations.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/focusclub/leaderboard-api/internal/logic"
	"github.com/focusclub/leaderboard-api/internal/models"
)

const cycleLockKey = "leaderboard:cycle:lock"

// ErrCycleRunning is returned when a trigger loses the lock race.
var ErrCycleRunning = errors.New("a leaderboard cycle is already running")

// Prometheus metrics
var (
	cyclesRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "focusclub_cycles_run_total",
		Help: "Total number of leaderboard cycles completed",
	})

	cyclesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "focusclub_cycles_failed_total",
		Help: "Total number of leaderboard cycles that aborted",
	})

	cycleUsersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "focusclub_cycle_users_failed_total",
		Help: "Total number of per-user persistence failures across cycles",
	})

	cycleUsersSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "focusclub_cycle_users_skipped_total",
		Help: "Total number of malformed records skipped across cycles",
	})

	cycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "focusclub_cycle_duration_seconds",
		Help:    "Duration of leaderboard cycles",
		Buckets: prometheus.DefBuckets,
	})
)

// Locker serializes cycles across service instances. Acquire returns a
// release token; Release must only drop the lock while that token still
// owns it.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// RedisLocker implements Locker using Redis SET NX
type RedisLocker struct {
	client *redis.Client
}

// unlockScript deletes the lock only while the caller's token still holds
// it. A cycle that outlives the TTL must not drop a lock acquired by
// another instance in the meantime.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (l *RedisLocker) Release(ctx context.Context, key, token string) error {
	return unlockScript.Run(ctx, l.client, []string{key}, token).Err()
}

// CycleConfig configures the cycle worker
type CycleConfig struct {
	Cycle    logic.CycleService
	Locker   Locker
	Logger   *zap.Logger
	Interval time.Duration
	LockTTL  time.Duration
}

// CycleWorker runs the leaderboard cycle on an interval and serves the last
// report to the API.
type CycleWorker struct {
	cycle    logic.CycleService
	locker   Locker
	logger   *zap.SugaredLogger
	interval time.Duration
	lockTTL  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.RWMutex
	lastReport *models.CycleReport
}

// NewCycleWorker creates a new cycle worker
func NewCycleWorker(cfg CycleConfig) *CycleWorker {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	return &CycleWorker{
		cycle:    cfg.Cycle,
		locker:   cfg.Locker,
		logger:   cfg.Logger.Sugar(),
		interval: cfg.Interval,
		lockTTL:  cfg.LockTTL,
	}
}

// Start launches the scheduler goroutine
func (w *CycleWorker) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run()

	w.logger.Infow("Cycle worker started",
		"interval", w.interval,
		"lockTTL", w.lockTTL,
	)
}

// Stop gracefully stops the worker
func (w *CycleWorker) Stop() {
	w.logger.Info("Stopping cycle worker...")
	w.cancel()
	w.wg.Wait()
	w.logger.Info("Cycle worker stopped")
}

func (w *CycleWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// one pass at startup so a restart doesn't wait a full interval
	w.runOnce(w.ctx)

	for {
		select {
		case <-ticker.C:
			w.runOnce(w.ctx)
		case <-w.ctx.Done():
			return
		}
	}
}

// TriggerCycle runs one cycle on demand, sharing the scheduler's lock.
func (w *CycleWorker) TriggerCycle(ctx context.Context) (*models.CycleReport, error) {
	return w.runOnce(ctx)
}

// LastReport returns the most recent cycle report, or nil before the first
// completed cycle.
func (w *CycleWorker) LastReport() *models.CycleReport {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastReport
}

func (w *CycleWorker) runOnce(ctx context.Context) (*models.CycleReport, error) {
	token, ok, err := w.locker.Acquire(ctx, cycleLockKey, w.lockTTL)
	if err != nil {
		w.logger.Errorw("Failed to acquire cycle lock", "error", err)
		return nil, err
	}
	if !ok {
		w.logger.Infow("Skipping cycle, lock held elsewhere")
		return nil, ErrCycleRunning
	}
	defer func() {
		if rerr := w.locker.Release(ctx, cycleLockKey, token); rerr != nil {
			w.logger.Warnw("Failed to release cycle lock", "error", rerr)
		}
	}()

	start := time.Now()
	report, err := w.cycle.RunCycle(ctx)
	cycleDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		cyclesFailed.Inc()
		w.logger.Errorw("Leaderboard cycle aborted", "error", err)
		return nil, err
	}

	cyclesRun.Inc()
	cycleUsersFailed.Add(float64(len(report.Failed)))
	cycleUsersSkipped.Add(float64(len(report.Skipped)))

	w.mu.Lock()
	w.lastReport = report
	w.mu.Unlock()
	return report, nil
}
