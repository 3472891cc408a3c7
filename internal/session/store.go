package session

import (
	"context"
	"time"

	"tasktrack/internal/cache"
)

const revokedKeyPrefix = "revoked_session:"

// RevocationStoreInterface defines the interface for session revocation.
type RevocationStoreInterface interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// RevocationStore tracks logged-out session ids in Redis until the token
// would have expired anyway.
type RevocationStore struct {
	cache *cache.Client
}

// Ensure RevocationStore implements RevocationStoreInterface
var _ RevocationStoreInterface = (*RevocationStore)(nil)

// NewRevocationStore creates a new revocation store.
func NewRevocationStore(cache *cache.Client) *RevocationStore {
	return &RevocationStore{cache: cache}
}

// Revoke marks a session id as logged out.
func (s *RevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	key := revokedKeyPrefix + sessionID
	// Store a simple marker
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsRevoked checks whether a session id has been revoked. Redis being
// unreachable reads as not revoked (fail safe).
func (s *RevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	key := revokedKeyPrefix + sessionID
	return s.cache.Exists(ctx, key)
}
