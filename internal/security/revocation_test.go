package security

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevoke(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	claims := &Claims{UserID: 1, JTI: "123-abcdef12", ExpiresAt: time.Now().Add(time.Hour)}

	revoked, err := IsRevoked(ctx, rdb, claims.JTI)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, Revoke(ctx, rdb, claims))

	revoked, err = IsRevoked(ctx, rdb, claims.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL(RevokedKey(claims.JTI))
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "ttl %s", ttl)
}

func TestRevoke_SkipsExpiredAndNil(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	expired := &Claims{JTI: "old", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, Revoke(ctx, rdb, expired))
	assert.False(t, mr.Exists(RevokedKey("old")))

	assert.NoError(t, Revoke(ctx, nil, expired))

	revoked, err := IsRevoked(ctx, nil, "anything")
	require.NoError(t, err)
	assert.False(t, revoked)
}
