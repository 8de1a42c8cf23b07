package redislock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, 5*time.Second, wait), mr
}

func TestWithLock_ReleasesKey(t *testing.T) {
	locker, mr := newLocker(t, 100*time.Millisecond)

	err := locker.WithLock(context.Background(), "stylist:1:2025-03-14", func(ctx context.Context) error {
		assert.True(t, mr.Exists("lock:stylist:1:2025-03-14"))
		return nil
	})

	require.NoError(t, err)
	assert.False(t, mr.Exists("lock:stylist:1:2025-03-14"))
}

func TestWithLock_PropagatesError(t *testing.T) {
	locker, mr := newLocker(t, 100*time.Millisecond)
	want := errors.New("capacity exceeded")

	err := locker.WithLock(context.Background(), "k", func(ctx context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.False(t, mr.Exists("lock:k"))
}

func TestWithLock_NotAcquiredWhileHeld(t *testing.T) {
	locker, mr := newLocker(t, 50*time.Millisecond)
	require.NoError(t, mr.Set("lock:busy", "someone-else"))

	called := false
	err := locker.WithLock(context.Background(), "busy", func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, called)

	got, err := mr.Get("lock:busy")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestWithLock_SerializesConcurrentCallers(t *testing.T) {
	locker, _ := newLocker(t, 2*time.Second)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithLock(context.Background(), "shared", func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
}

func TestNopLocker(t *testing.T) {
	called := false
	err := NopLocker{}.WithLock(context.Background(), "any", func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestWithLock_BackendUnavailable(t *testing.T) {
	locker, mr := newLocker(t, 50*time.Millisecond)
	mr.Close()

	called := false
	err := locker.WithLock(context.Background(), "k", func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrLockUnavailable)
	assert.NotErrorIs(t, err, ErrLockNotAcquired)
	assert.False(t, called)
}
