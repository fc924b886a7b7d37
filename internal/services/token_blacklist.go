package services

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const tokenBlacklistPrefix = "nyumbani:revoked:"

// TokenBlacklist stores revoked JWTs in redis until they would have expired
// anyway. Used by logout; the auth middleware consults it on every request.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Revoke marks a token as unusable for the remainder of its lifetime
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to store
	}
	return b.client.Set(ctx, tokenBlacklistPrefix+token, 1, ttl).Err()
}

// IsRevoked reports whether the token has been blacklisted
func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, tokenBlacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
