package redislock

import (
	"context"
	"sync"
)

// localLocker is the single-process fallback used when no Redis address is
// configured, and by tests. TryLock keeps the fail-fast semantics of the
// Redis SetNX path; the database-level unique index still backs both.
type localLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocal() Locker {
	return &localLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *localLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	if !m.TryLock() {
		return ErrNotAcquired
	}
	defer m.Unlock()

	return fn(ctx)
}
