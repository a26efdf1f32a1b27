package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ecotrace/ecotrace-backend/internal/insights"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
)

// redisCache keeps cached payloads in Redis with a TTL matching the
// freshness window. Selected when REDIS_ADDR is configured; otherwise the
// DB-backed cache is used.
type redisCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRedisCache(addr string, log *logger.Logger) (InsightCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisCache{
		log: log.With("cache", "RedisInsightCache"),
		rdb: rdb,
	}, nil
}

func insightKey(userID uuid.UUID) string {
	return "insight:" + userID.String()
}

func (c *redisCache) Get(ctx context.Context, userID uuid.UUID, maxAge time.Duration) (*insights.Payload, error) {
	raw, err := c.rdb.Get(ctx, insightKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached insight: %w", err)
	}

	var payload insights.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.log.Warn("Cached insight payload is corrupt, treating as miss", "user_id", userID, "error", err)
		return nil, nil
	}
	if !payload.WellFormed() || time.Since(payload.GeneratedAt) > maxAge {
		return nil, nil
	}
	return &payload, nil
}

func (c *redisCache) Put(ctx context.Context, userID uuid.UUID, payload *insights.Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode insight payload: %w", err)
	}
	if err := c.rdb.Set(ctx, insightKey(userID), raw, DefaultFreshness).Err(); err != nil {
		return fmt.Errorf("store cached insight: %w", err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, insightKey(userID)).Err()
}
