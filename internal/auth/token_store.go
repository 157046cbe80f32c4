package auth

import (
	"context"
	"time"
)

const revokedTokenKeyPrefix = "revoked_token:"

// KeyValueStore is the subset of the cache client the token store needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TokenStoreInterface defines revocation operations for issued tokens.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps a denylist of signed-out token ids until they would have expired anyway.
type TokenStore struct {
	store KeyValueStore
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(store KeyValueStore) *TokenStore {
	return &TokenStore{store: store}
}

// Revoke marks a token id as revoked for ttl. Already-expired tokens need no entry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.store.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks if a token id was revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.store.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil // Not revoked if the store is unavailable (fail safe)
	}
	return data != nil, nil
}
