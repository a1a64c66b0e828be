package preferences

import "sync"

// Sessions keeps one Store per key (a user ID, a connection) for hosts that
// serve many users at once. Entries live only as long as the process.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewSessions() *Sessions {
	return &Sessions{stores: make(map[string]*Store)}
}

// Get returns the store for key, creating one with defaults on first use.
func (s *Sessions) Get(key string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[key]
	if !ok {
		st = NewStore()
		s.stores[key] = st
	}
	return st
}

// Forget drops the store for key.
func (s *Sessions) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, key)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
