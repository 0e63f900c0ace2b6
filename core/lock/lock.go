package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"barpos.GO/config"
)

// Locker provides mutual exclusion scoped to a string key. Reservations lock
// per product, order workflows lock per table; different keys never contend.
type Locker interface {
	// Acquire blocks until the key lock is held and returns its release func.
	Acquire(ctx context.Context, key string) (func(), error)
}

var (
	once     sync.Once
	instance Locker
)

// Get returns the process-wide locker: Redis-backed when a Redis client is
// configured (shared store, multiple POS instances), in-process otherwise.
func Get() Locker {
	once.Do(func() {
		if config.RedisClient != nil {
			instance = NewRedisLocker(config.RedisClient)
		} else {
			instance = NewMutexLocker()
		}
	})
	return instance
}

// MutexLocker serializes per key with plain mutexes. Sufficient for a single
// server process owning the database file.
type MutexLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMutexLocker() *MutexLocker {
	return &MutexLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *MutexLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

const (
	redisLockTTL   = 10 * time.Second
	redisLockRetry = 50 * time.Millisecond
)

// RedisLocker serializes per key across processes via redislock.
type RedisLocker struct {
	client *redislock.Client
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lk, err := l.client.Obtain(ctx, "lock:"+key, redisLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(redisLockRetry), 100),
	})
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func() { _ = lk.Release(context.Background()) }, nil
}
