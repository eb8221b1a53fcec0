//go:build integration

package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sangamsetu/pkg/testutil/containers"
)

func TestRedisTRL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	trl := NewRedisTRL(rc.Client)

	t.Run("revoked jti is reported revoked", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Minute))

		revoked, err := trl.IsTokenRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		revoked, err := trl.IsTokenRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entry lapses with the redis ttl", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, trl.RevokeToken(ctx, "jti-2", 50*time.Millisecond))
		time.Sleep(150 * time.Millisecond)

		revoked, err := trl.IsTokenRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
