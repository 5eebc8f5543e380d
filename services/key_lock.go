package services

import (
	"context"
	"sync"

	"primetime-picks/models"
)

// keyLock serializes writers per stats key. Entries are reference counted and
// dropped once no goroutine holds or waits for them.
type keyLock struct {
	mu    sync.Mutex
	locks map[models.StatsKey]*keyEntry
}

type keyEntry struct {
	ch   chan struct{}
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[models.StatsKey]*keyEntry)}
}

func (l *keyLock) acquire(key models.StatsKey) *keyEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		e = &keyEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *keyLock) release(key models.StatsKey, e *keyEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// withLock runs fn while holding key, giving up if ctx ends while waiting.
func (l *keyLock) withLock(ctx context.Context, key models.StatsKey, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := l.acquire(key)
	defer l.release(key, e)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-e.ch }()

	return fn()
}

// held reports how many keys currently have holders or waiters.
func (l *keyLock) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
