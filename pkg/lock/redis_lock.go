package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * time.Second

// Locker hands out short-lived exclusive locks keyed by name.
type Locker interface {
	Obtain(ctx context.Context, key string) (Handle, bool, error)
}

// Handle releases a lock obtained from a Locker.
type Handle interface {
	Release(ctx context.Context) error
}

type store interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisLocker implements Locker with SET NX + TTL and an owner token.
type RedisLocker struct {
	client store
	ttl    time.Duration
}

func NewRedisLocker(client store, ttl time.Duration) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client required for lock")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{client: client, ttl: ttl}, nil
}

// Obtain returns ok=false when another owner currently holds key.
func (l *RedisLocker) Obtain(ctx context.Context, key string) (Handle, bool, error) {
	if key == "" {
		return nil, false, errors.New("lock key is required")
	}
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, owner, l.ttl)
	if err != nil {
		return nil, false, fmt.Errorf("setnx %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &redisHandle{client: l.client, key: key, owner: owner}, true, nil
}

type redisHandle struct {
	client store
	key    string
	owner  string
}

// Release deletes the key only while it still holds this owner token.
func (h *redisHandle) Release(ctx context.Context) error {
	if h.owner == "" {
		return nil
	}
	value, err := h.client.Get(ctx, h.key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			h.owner = ""
			return nil
		}
		return fmt.Errorf("read lock owner: %w", err)
	}
	if value != h.owner {
		h.owner = ""
		return nil
	}
	if err := h.client.Del(ctx, h.key); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}
	h.owner = ""
	return nil
}
