// Package lock provides a non-blocking mutual exclusion keyed by id.
package lock

import "sync"

// KeyedLock holds at most one owner per key. The zero value is ready to use.
type KeyedLock struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func New() *KeyedLock {
	return &KeyedLock{held: make(map[int64]struct{})}
}

// TryLock acquires id without waiting. When ok is false the key is already
// held and release is nil. Calling release more than once is harmless.
func (l *KeyedLock) TryLock(id int64) (release func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = make(map[int64]struct{})
	}
	if _, busy := l.held[id]; busy {
		return nil, false
	}
	l.held[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, id)
			l.mu.Unlock()
		})
	}, true
}

// Held reports whether id is currently locked.
func (l *KeyedLock) Held(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[id]
	return ok
}

// Len returns the number of held keys.
func (l *KeyedLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
