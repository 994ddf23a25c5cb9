package session

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	CookieName = "sc_sid"
	DefaultTTL = 7 * 24 * time.Hour

	keyPrefix = "session:"
)

// Store keeps anonymous session ids alive. Every successful Touch extends
// the TTL.
type Store interface {
	Create(ctx context.Context) (string, error)
	Touch(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key(id), "created_at", now, "last_seen", now)
		pipe.Expire(ctx, key(id), s.ttl)
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "create session")
	}
	return id, nil
}

// Touch reports whether id is a live session and, if so, refreshes it.
func (s *RedisStore) Touch(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	ok, err := s.client.Expire(ctx, key(id), s.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "refresh session")
	}
	if !ok {
		return false, nil
	}

	if err := s.client.HSet(ctx, key(id), "last_seen", time.Now().UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		return true, errors.Wrap(err, "record last seen")
	}
	return true, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}
