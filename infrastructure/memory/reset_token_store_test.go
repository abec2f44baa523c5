package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("token resolves once", func(t *testing.T) {
		store := NewResetTokenStore()
		require.NoError(t, store.Store(ctx, "tok", "user-1", time.Hour))

		userID, err := store.Consume(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)

		userID, err = store.Consume(ctx, "tok")
		require.NoError(t, err)
		assert.Empty(t, userID)
	})

	t.Run("unknown token resolves to nothing", func(t *testing.T) {
		store := NewResetTokenStore()
		userID, err := store.Consume(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, userID)
	})

	t.Run("expired token resolves to nothing", func(t *testing.T) {
		store := NewResetTokenStore()
		require.NoError(t, store.Store(ctx, "tok", "user-1", -time.Second))

		userID, err := store.Consume(ctx, "tok")
		require.NoError(t, err)
		assert.Empty(t, userID)
	})
}
