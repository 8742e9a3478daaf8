package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAllowlist(t *testing.T) {
	s := NewStatic([]int64{11, 22})
	ctx := context.Background()

	premium, err := s.IsPremium(ctx, 11)
	require.NoError(t, err)
	assert.True(t, premium)

	premium, err = s.IsPremium(ctx, 33)
	require.NoError(t, err)
	assert.False(t, premium)
}

func TestStaticSizeLimits(t *testing.T) {
	s := NewStatic([]int64{11})
	ctx := context.Background()

	limit, err := s.SizeLimit(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(ProSizeLimit), limit)

	limit, err = s.SizeLimit(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(FreeSizeLimit), limit)
}

type countingService struct {
	premium bool
	err     error
	calls   int
}

func (c *countingService) IsPremium(context.Context, int64) (bool, error) {
	c.calls++
	return c.premium, c.err
}

func (c *countingService) SizeLimit(ctx context.Context, userID int64) (int64, error) {
	premium, err := c.IsPremium(ctx, userID)
	if err != nil {
		return 0, err
	}
	return SizeLimitFor(premium), nil
}

func TestCachedReusesLookup(t *testing.T) {
	inner := &countingService{premium: true}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		premium, err := c.IsPremium(ctx, 7)
		require.NoError(t, err)
		assert.True(t, premium)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	inner := &countingService{err: errors.New("db down")}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	_, err := c.IsPremium(ctx, 7)
	require.Error(t, err)
	_, err = c.IsPremium(ctx, 7)
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedInvalidate(t *testing.T) {
	inner := &countingService{premium: false}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	premium, err := c.IsPremium(ctx, 7)
	require.NoError(t, err)
	assert.False(t, premium)

	inner.premium = true
	c.Invalidate(7)

	premium, err = c.IsPremium(ctx, 7)
	require.NoError(t, err)
	assert.True(t, premium)
	assert.Equal(t, 2, inner.calls)
}
