package subscription

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached wraps a Service with a short TTL cache, keeping the per-action
// premium check cheap without letting an expired plan linger for long.
type Cached struct {
	inner Service
	cache *gocache.Cache
}

func NewCached(inner Service, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cached) IsPremium(ctx context.Context, userID int64) (bool, error) {
	key := strconv.FormatInt(userID, 10)
	if v, ok := c.cache.Get(key); ok {
		return v.(bool), nil
	}

	premium, err := c.inner.IsPremium(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("premium lookup: %w", err)
	}
	c.cache.SetDefault(key, premium)
	return premium, nil
}

func (c *Cached) SizeLimit(ctx context.Context, userID int64) (int64, error) {
	premium, err := c.IsPremium(ctx, userID)
	if err != nil {
		return 0, err
	}
	return SizeLimitFor(premium), nil
}

// Invalidate drops a user's cached status, used right after a grant so the
// new plan is visible immediately.
func (c *Cached) Invalidate(userID int64) {
	c.cache.Delete(strconv.FormatInt(userID, 10))
}
