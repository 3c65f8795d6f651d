package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "ip-1")
		require.NoError(t, err)
		require.True(t, res.Allowed, "hit %d", i)
	}

	res, err := l.Allow(ctx, "ip-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Zero(t, res.Remaining)
	require.Greater(t, res.RetryAfter, time.Duration(0))

	// Otra key no comparte el contador
	res, err = l.Allow(ctx, "ip-2")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestMemoryLimiterIsolatedKeys(t *testing.T) {
	l := NewMemoryLimiter(1, time.Hour)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		res, err := l.Allow(ctx, key)
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}
}
