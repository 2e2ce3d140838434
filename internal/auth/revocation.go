package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "helpdesk:revoked:"

// RevocationList tracks revoked token ids until their natural expiry.
// Tokens are otherwise stateless, so logout without this list would be
// a pure client-side discard.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList builds the list on a redis client. A nil client
// disables revocation (every token stays valid until expiry).
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks a token id as revoked, keeping the entry only until the
// token would have expired anyway.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if l == nil || l.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revocationKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked. Redis
// unavailability fails open so that an outage does not lock everyone
// out of a stateless-token system.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) bool {
	if l == nil || l.client == nil || tokenID == "" {
		return false
	}
	n, err := l.client.Exists(ctx, revocationKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
