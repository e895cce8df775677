// Package session tracks revoked access tokens in Valkey. A logged-out
// token's ID is stored with a TTL matching the token's remaining lifetime,
// so the list cleans itself up as tokens expire.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces revocation keys in Valkey to avoid collisions.
	keyPrefix = "revoked:"

	// minTTL keeps a revocation around briefly even for tokens about to
	// expire, covering clock skew between instances.
	minTTL = time.Second
)

// Store manages revoked token IDs in Valkey. A nil *Store (Valkey not
// configured) accepts every call and never reports a token as revoked.
type Store struct {
	client *redis.Client
}

// NewStore creates a revocation store backed by the given Valkey client.
// Returns nil when client is nil.
func NewStore(client *redis.Client) *Store {
	if client == nil {
		return nil
	}
	return &Store{client: client}
}

// Revoke marks the token ID as revoked until ttl elapses.
func (s *Store) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s == nil || jti == "" {
		return nil
	}
	if ttl < minTTL {
		ttl = minTTL
	}
	if err := s.client.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token ID has been revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s == nil || jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("session lookup: %w", err)
	}
	return n > 0, nil
}
