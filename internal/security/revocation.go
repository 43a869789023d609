package security

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "blacklist:"

// RevokedKey is the Redis key marking jti as revoked.
func RevokedKey(jti string) string {
	return revokedKeyPrefix + jti
}

// Revoke marks the token as revoked until it would have expired anyway.
// Tokens that are already expired or carry no jti need no entry.
func Revoke(ctx context.Context, rdb *redis.Client, claims *Claims) error {
	if rdb == nil || claims == nil || claims.JTI == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, RevokedKey(claims.JTI), "1", ttl).Err()
}

// IsRevoked reports whether jti has been revoked. Without Redis nothing is
// ever revoked.
func IsRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	if rdb == nil || jti == "" {
		return false, nil
	}
	n, err := rdb.Exists(ctx, RevokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
