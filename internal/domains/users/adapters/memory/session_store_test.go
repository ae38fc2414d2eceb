package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStore_ExpiryAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.WithClock(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, "u-1", "tok-a", now.Add(time.Hour)))
	require.NoError(t, store.Save(ctx, "u-1", "tok-b", now.Add(-time.Minute)))
	require.NoError(t, store.Save(ctx, "u-2", "tok-c", now.Add(time.Hour)))

	active, err := store.Active(ctx, "tok-a")
	require.NoError(t, err)
	require.True(t, active)

	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	require.NoError(t, store.Delete(ctx, "u-1"))
	active, err = store.Active(ctx, "tok-a")
	require.NoError(t, err)
	require.False(t, active)

	active, err = store.Active(ctx, "tok-c")
	require.NoError(t, err)
	require.True(t, active)
}
