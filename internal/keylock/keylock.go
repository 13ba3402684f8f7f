// Package keylock provides mutual exclusion per string key. Locks for keys
// nobody holds are released so the map does not grow without bound.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock blocks until key is free and returns the function that releases it.
func (l *Locker) Lock(key string) (unlock func()) {
	l.mu.Lock()

	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}

	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--

		if e.refs == 0 {
			delete(l.locks, key)
		}

		l.mu.Unlock()
	}
}

// Len reports how many keys are currently held or awaited.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}
