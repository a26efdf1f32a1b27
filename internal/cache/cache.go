package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrace/ecotrace-backend/internal/insights"
)

// DefaultFreshness is how long an AI-generated payload is served from cache.
const DefaultFreshness = 6 * time.Hour

// InsightCache stores the last AI-sourced payload per user. Get returns
// (nil, nil) on a miss, including corrupt or stale entries, which are
// treated as misses rather than errors.
//
// Known race, kept deliberately: two concurrent requests for the same user
// may both generate and both Put; the writes are not serialized and the
// last one wins. Closing this would need a per-user lock or compare-and-
// swap inside an implementation, which this interface leaves room for.
type InsightCache interface {
	Get(ctx context.Context, userID uuid.UUID, maxAge time.Duration) (*insights.Payload, error)
	Put(ctx context.Context, userID uuid.UUID, payload *insights.Payload) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
