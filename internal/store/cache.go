package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/focusclub/leaderboard-api/internal/logic"
	"github.com/focusclub/leaderboard-api/internal/models"
)

const (
	allStatsKey    = "user_stats:all"
	ownerKeyPrefix = "user_stats:owner:"
)

// KV abstracts the redis commands the cache layer needs
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisKV implements KV using Redis
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *RedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *RedisKV) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// StatStore is the store surface the cache wraps and exposes: the logic
// port plus the atomic time increment used by the API.
type StatStore interface {
	logic.StatStore
	AddTime(ctx context.Context, ownerID string, minutes float64) (*models.UserStat, error)
}

// CachedStatStore is a read-through cache around a StatStore. Cache problems
// degrade to the inner store and never fail a request; writes invalidate the
// affected keys. All writers must share one CachedStatStore, otherwise a
// write through the inner store leaves stale entries behind for the TTL.
type CachedStatStore struct {
	inner  StatStore
	kv     KV
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewCachedStatStore(inner StatStore, kv KV, ttl time.Duration, logger *zap.SugaredLogger) *CachedStatStore {
	return &CachedStatStore{inner: inner, kv: kv, ttl: ttl, logger: logger}
}

func (c *CachedStatStore) FindAll(ctx context.Context) ([]models.UserStat, error) {
	if cached, err := c.kv.Get(ctx, allStatsKey); err == nil {
		var stats []models.UserStat
		if jerr := json.Unmarshal([]byte(cached), &stats); jerr == nil {
			return stats, nil
		}
		c.logger.Warnw("Dropping undecodable cache entry", "key", allStatsKey)
		_ = c.kv.Del(ctx, allStatsKey)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warnw("Cache read failed", "key", allStatsKey, "error", err)
	}

	stats, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, allStatsKey, stats)
	return stats, nil
}

func (c *CachedStatStore) FindOne(ctx context.Context, ownerID string) (*models.UserStat, error) {
	key := ownerKeyPrefix + ownerID
	if cached, err := c.kv.Get(ctx, key); err == nil {
		var stat models.UserStat
		if jerr := json.Unmarshal([]byte(cached), &stat); jerr == nil {
			return &stat, nil
		}
		c.logger.Warnw("Dropping undecodable cache entry", "key", key)
		_ = c.kv.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warnw("Cache read failed", "key", key, "error", err)
	}

	stat, err := c.inner.FindOne(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, stat)
	return stat, nil
}

func (c *CachedStatStore) Create(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	created, err := c.inner.Create(ctx, stat)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, allStatsKey)
	return created, nil
}

func (c *CachedStatStore) Update(ctx context.Context, stat *models.UserStat) (*models.UserStat, error) {
	updated, err := c.inner.Update(ctx, stat)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, allStatsKey, ownerKeyPrefix+stat.OwnerID)
	return updated, nil
}

func (c *CachedStatStore) AddTime(ctx context.Context, ownerID string, minutes float64) (*models.UserStat, error) {
	updated, err := c.inner.AddTime(ctx, ownerID, minutes)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, allStatsKey, ownerKeyPrefix+ownerID)
	return updated, nil
}

func (c *CachedStatStore) set(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, key, payload, c.ttl); err != nil {
		c.logger.Warnw("Cache write failed", "key", key, "error", err)
	}
}

func (c *CachedStatStore) invalidate(ctx context.Context, keys ...string) {
	if err := c.kv.Del(ctx, keys...); err != nil {
		c.logger.Warnw("Cache invalidation failed", "keys", keys, "error", err)
	}
}
