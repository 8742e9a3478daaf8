package session

import "sync"

// Store is the session repository keyed by user id. Acquire hands out the
// session together with a per-user lock so that two events from the same user
// cannot race through a mode-dependent branch while a long transform is in
// flight; events for different users proceed concurrently.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Acquire locks the user's session and returns it with a release function.
// Sessions are created lazily in the default mode.
func (s *Store) Acquire(userID int64) (*Session, func()) {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{Mode: ModeCompress}
		s.sessions[userID] = sess
	}
	s.mu.Unlock()

	return sess, lock.Unlock
}

// Peek returns a copy of the user's session without blocking on the per-user
// lock. Intended for diagnostics and tests.
func (s *Store) Peek(userID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}
