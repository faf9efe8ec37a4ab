package commands

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderLocker serializes actions on the same order inside this process.
// Actions on different orders do not wait for each other.
type OrderLocker struct {
	mu    sync.Mutex
	locks map[string]*orderLock
}

type orderLock struct {
	slot chan struct{}
	refs int
}

func NewOrderLocker() *OrderLocker {
	return &OrderLocker{locks: make(map[string]*orderLock)}
}

// Lock waits until the order is free or ctx is done. The returned function
// releases the lock and must be called exactly once.
func (l *OrderLocker) Lock(ctx context.Context, id kernel.OrderID) (func(), error) {
	key := id.String()

	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &orderLock{slot: make(chan struct{}, 1)}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.slot <- struct{}{}:
		return func() {
			<-lock.slot
			l.release(key, lock)
		}, nil
	case <-ctx.Done():
		l.release(key, lock)
		return nil, ctx.Err()
	}
}

func (l *OrderLocker) release(key string, lock *orderLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}

// Len is the number of orders currently locked or waited for.
func (l *OrderLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
