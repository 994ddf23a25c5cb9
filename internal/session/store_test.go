package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisStore_Lifecycle(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client, time.Minute)

	id, err := store.Create(ctx)
	require.NoError(t, err)
	defer client.Del(ctx, key(id))

	ttl, err := client.TTL(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	ok, err := store.Touch(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	fields, err := client.HGetAll(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.NotEmpty(t, fields["created_at"])
	assert.GreaterOrEqual(t, fields["last_seen"], fields["created_at"])

	require.NoError(t, store.Delete(ctx, id))

	ok, err = store.Touch(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := client.Exists(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestRedisStore_TouchRejectsMalformedID(t *testing.T) {
	// Malformed ids never reach Redis.
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), 0)

	ok, err := store.Touch(context.Background(), "not-a-uuid")
	assert.NoError(t, err)
	assert.False(t, ok)
}
