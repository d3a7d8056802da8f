// Package inflight provides a best-effort per-notebook mutex backed by
// Redis, used to serialize upload batches against the same notebook.
package inflight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker acquires and releases short-lived named locks.
type Locker interface {
	Acquire(ctx context.Context, notebookId uuid.UUID) (bool, error)
	Release(ctx context.Context, notebookId uuid.UUID) error
}

// RedisLocker implements Locker with SET NX and a TTL so a crashed
// uploader can never wedge a notebook permanently.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func lockKey(notebookId uuid.UUID) string {
	return fmt.Sprintf("upload:inflight:%s", notebookId)
}

func (l *RedisLocker) Acquire(ctx context.Context, notebookId uuid.UUID) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey(notebookId), "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire upload lock: %w", err)
	}
	return ok, nil
}

func (l *RedisLocker) Release(ctx context.Context, notebookId uuid.UUID) error {
	if err := l.client.Del(ctx, lockKey(notebookId)).Err(); err != nil {
		return fmt.Errorf("release upload lock: %w", err)
	}
	return nil
}

// NoopLocker always grants the lock. Used when Redis is not configured,
// e.g. local development.
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, uuid.UUID) (bool, error) { return true, nil }
func (NoopLocker) Release(context.Context, uuid.UUID) error         { return nil }
