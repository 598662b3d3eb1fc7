package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bountyboard/bounty-service/internal/domain"
)

func TestCacheDisabledWithoutRedis(t *testing.T) {
	ctx := context.Background()
	c := NewBugListCache(nil, 15*time.Second, zap.NewNop())

	items, ok := c.Get(ctx)
	require.False(t, ok)
	require.Nil(t, items)

	// must be safe no-ops
	c.Set(ctx, []domain.BugWithPoster{{}})
	c.Invalidate(ctx)
}

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	c := NewBugListCache(nil, 0, zap.NewNop())
	require.False(t, c.enabled())
}
