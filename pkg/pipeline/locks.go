package pipeline

import "sync"

// entityLocks serializes merges per entity slug while leaving unrelated
// entities free to merge in parallel. Creation additionally locks a
// "create/"-prefixed identity key, which keeps the two namespaces from
// colliding. Locks are created lazily and kept for the life of the
// pipeline; the key space is small enough that reclaiming them is not
// worth the bookkeeping.
type entityLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the lock for one key and returns its release func.
func (l *entityLocks) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
