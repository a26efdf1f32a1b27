package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-backend/internal/insights"
	"github.com/ecotrace/ecotrace-backend/internal/logger"
	"github.com/ecotrace/ecotrace-backend/internal/types"
)

// gormCache persists cached payloads in the cached_insight table. Put is a
// delete-then-insert, not an atomic upsert; a concurrent reader can observe
// a momentary gap, which is acceptable for a best-effort cache.
type gormCache struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormCache(db *gorm.DB, log *logger.Logger) InsightCache {
	return &gormCache{db: db, log: log.With("cache", "GormInsightCache")}
}

func (c *gormCache) Get(ctx context.Context, userID uuid.UUID, maxAge time.Duration) (*insights.Payload, error) {
	var row types.CachedInsight
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND generated_at > ?", userID, time.Now().Add(-maxAge)).
		Order("generated_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached insight: %w", err)
	}

	var payload insights.Payload
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		c.log.Warn("Cached insight payload is corrupt, treating as miss", "user_id", userID, "error", err)
		return nil, nil
	}
	if !payload.WellFormed() {
		c.log.Warn("Cached insight payload is malformed, treating as miss", "user_id", userID)
		return nil, nil
	}
	return &payload, nil
}

func (c *gormCache) Put(ctx context.Context, userID uuid.UUID, payload *insights.Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode insight payload: %w", err)
	}

	if err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.CachedInsight{}).Error; err != nil {
		return fmt.Errorf("clear cached insight: %w", err)
	}
	row := types.CachedInsight{
		ID:          uuid.New(),
		UserID:      userID,
		Source:      payload.Source,
		Model:       payload.Model,
		Payload:     raw,
		GeneratedAt: payload.GeneratedAt,
		CreatedAt:   time.Now(),
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("store cached insight: %w", err)
	}
	return nil
}

func (c *gormCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.CachedInsight{}).Error
}
