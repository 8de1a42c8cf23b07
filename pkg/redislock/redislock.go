package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLockNotAcquired блокировку не удалось взять за отведенное время
	ErrLockNotAcquired = errors.New("redislock: lock not acquired")

	// ErrLockUnavailable Redis не ответил при захвате; fn не вызывалась
	ErrLockUnavailable = errors.New("redislock: lock backend unavailable")
)

const pollInterval = 25 * time.Millisecond

// Locker выполняет критическую секцию под именованной блокировкой
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// RedisLocker блокировка на SET NX с токеном владельца.
// ttl ограничивает время жизни ключа, wait - время ожидания захвата.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisLocker создает блокировку поверх клиента Redis
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait}
}

// WithLock берет блокировку key, выполняет fn и освобождает блокировку.
// Контекст fn ограничен ttl.
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	key = "lock:" + key
	token := uuid.NewString()

	if err := l.acquire(ctx, key, token); err != nil {
		return err
	}

	defer func() {
		// Освобождаем даже если ctx уже отменен
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.release(releaseCtx, key, token)
	}()

	lockedCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockedCtx)
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("%w: acquire %s: %w", ErrLockUnavailable, key, err)
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redislock: release %s: %w", key, err)
	}
	return nil
}

// NopLocker выполняет fn без блокировки (Redis отключен)
type NopLocker struct{}

// WithLock вызывает fn напрямую
func (NopLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
