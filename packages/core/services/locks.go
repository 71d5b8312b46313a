package services

import "sync"

// SessionLocks serialises mutations of the same session. Locks for different
// sessions are independent, and entries are dropped once nobody holds them.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sessionLock)}
}

// Lock blocks until the session is free and returns the matching unlock.
func (l *SessionLocks) Lock(sessionID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		l.locks[sessionID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}

func (l *SessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
