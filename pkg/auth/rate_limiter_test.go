package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketLimiter(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("allows up to the budget then refuses", func(t *testing.T) {
		clock := base
		l := NewTokenBucketLimiterWithClock(3, time.Minute, func() time.Time { return clock })

		for i := 0; i < 3; i++ {
			ok, err := l.Allow(ctx, "203.0.113.7")
			require.NoError(t, err)
			assert.True(t, ok, "attempt %d", i)
		}

		ok, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := NewTokenBucketLimiter(1, time.Minute)

		ok, _ := l.Allow(ctx, "a")
		assert.True(t, ok)
		ok, _ = l.Allow(ctx, "a")
		assert.False(t, ok)

		ok, _ = l.Allow(ctx, "b")
		assert.True(t, ok)
	})

	t.Run("refills one token per interval", func(t *testing.T) {
		clock := base
		l := NewTokenBucketLimiterWithClock(2, time.Minute, func() time.Time { return clock })

		l.Allow(ctx, "ip")
		l.Allow(ctx, "ip")
		ok, _ := l.Allow(ctx, "ip")
		require.False(t, ok)

		clock = clock.Add(time.Minute)
		ok, _ = l.Allow(ctx, "ip")
		assert.True(t, ok)

		ok, _ = l.Allow(ctx, "ip")
		assert.False(t, ok)
	})

	t.Run("refill never exceeds the budget", func(t *testing.T) {
		clock := base
		l := NewTokenBucketLimiterWithClock(2, time.Minute, func() time.Time { return clock })

		l.Allow(ctx, "ip")

		clock = clock.Add(time.Hour)
		for i := 0; i < 2; i++ {
			ok, _ := l.Allow(ctx, "ip")
			assert.True(t, ok)
		}
		ok, _ := l.Allow(ctx, "ip")
		assert.False(t, ok)
	})

	t.Run("reset restores the budget", func(t *testing.T) {
		l := NewTokenBucketLimiter(1, time.Minute)

		l.Allow(ctx, "ip")
		ok, _ := l.Allow(ctx, "ip")
		require.False(t, ok)

		require.NoError(t, l.Reset(ctx, "ip"))
		ok, _ = l.Allow(ctx, "ip")
		assert.True(t, ok)
	})
}
