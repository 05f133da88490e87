package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. The alert engine takes one per
// farm so concurrent sweeps of the same farm serialize instead of
// double-raising alerts.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates an empty LockManager.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use. Locks
// are never evicted; the key space here is the set of farm IDs, which
// stays small.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
