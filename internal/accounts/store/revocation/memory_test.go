package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sangamsetu/pkg/platform/sentinel"
)

func TestMemoryTRL(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked jti is reported revoked", func(t *testing.T) {
		trl := NewMemoryTRL()
		require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Hour))

		revoked, err := trl.IsTokenRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		trl := NewMemoryTRL()
		revoked, err := trl.IsTokenRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entries lapse with the token expiry", func(t *testing.T) {
		trl := NewMemoryTRL()
		require.NoError(t, trl.RevokeToken(ctx, "jti-2", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		revoked, err := trl.IsTokenRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl is invalid", func(t *testing.T) {
		trl := NewMemoryTRL()
		err := trl.RevokeToken(ctx, "jti-3", 0)
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	t.Run("empty jti is a no-op", func(t *testing.T) {
		trl := NewMemoryTRL()
		require.NoError(t, trl.RevokeToken(ctx, "", time.Hour))
		revoked, err := trl.IsTokenRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
