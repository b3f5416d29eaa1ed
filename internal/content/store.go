package content

import "sync/atomic"

// Store holds the live portfolio. Readers never block writers; a reload
// swaps the whole value.
type Store struct {
	current atomic.Pointer[Portfolio]
}

// NewStore returns a store seeded with p.
func NewStore(p *Portfolio) *Store {
	s := &Store{}
	s.current.Store(p)
	return s
}

// Get returns the current portfolio. Callers must not mutate it.
func (s *Store) Get() *Portfolio {
	return s.current.Load()
}

// Replace installs p as the current portfolio.
func (s *Store) Replace(p *Portfolio) {
	s.current.Store(p)
}
