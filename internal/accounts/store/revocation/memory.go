// Package revocation tracks revoked token IDs (jtis) until their natural
// expiry. Logout adds a jti; the auth middleware checks membership on every
// authenticated request.
package revocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sangamsetu/pkg/platform/sentinel"
)

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}

// MemoryTRL is an in-memory token revocation list for single-instance
// deployments and tests. Entries expire lazily on read.
type MemoryTRL struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> expiry
}

func NewMemoryTRL() *MemoryTRL {
	return &MemoryTRL{revoked: make(map[string]time.Time)}
}

// RevokeToken adds a token to the revocation list until its expiry.
func (t *MemoryTRL) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsTokenRevoked checks membership, dropping entries whose token has expired
// anyway.
func (t *MemoryTRL) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	expiry, ok := t.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(t.revoked, jti)
		return false, nil
	}
	return true, nil
}
