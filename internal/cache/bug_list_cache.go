package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/bountyboard/bounty-service/internal/domain"
	"github.com/bountyboard/bounty-service/internal/persistence"
)

const bugListKey = "bugs:list"

// BugListCache keeps the public bug listing in Redis for a short TTL.
// Any bug write invalidates it. All failures degrade to a cache miss.
type BugListCache struct {
	redis  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewBugListCache builds the cache. A zero TTL disables caching.
func NewBugListCache(redis *persistence.Redis, ttl time.Duration, logger *zap.Logger) *BugListCache {
	return &BugListCache{redis: redis, ttl: ttl, logger: logger}
}

func (c *BugListCache) enabled() bool {
	return c != nil && c.redis != nil && c.redis.Client != nil && c.ttl > 0
}

// Get returns the cached listing, if present.
func (c *BugListCache) Get(ctx context.Context) ([]domain.BugWithPoster, bool) {
	if !c.enabled() {
		return nil, false
	}
	payload, err := c.redis.Client.Get(ctx, bugListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var items []domain.BugWithPoster
	if err := json.Unmarshal(payload, &items); err != nil {
		c.logger.Warn("bug list cache corrupt; dropping", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	return items, true
}

// Set stores the listing.
func (c *BugListCache) Set(ctx context.Context, items []domain.BugWithPoster) {
	if !c.enabled() {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, bugListKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("bug list cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing.
func (c *BugListCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.redis.Client.Del(ctx, bugListKey).Err(); err != nil {
		c.logger.Warn("bug list cache invalidation failed", zap.Error(err))
	}
}
