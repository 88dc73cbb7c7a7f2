package tracker

import (
	"context"
	"sync"
)

type stashKey struct{}

// Stash holds prior states captured before a write until the write completes.
// A stash belongs to one unit of work; concurrent units never share one.
type Stash struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewStash() *Stash {
	return &Stash{entries: make(map[string]string)}
}

// WithStash attaches a fresh stash to ctx so every save in the unit of work shares it
func WithStash(ctx context.Context) context.Context {
	return context.WithValue(ctx, stashKey{}, NewStash())
}

func StashFromContext(ctx context.Context) (*Stash, bool) {
	s, ok := ctx.Value(stashKey{}).(*Stash)
	return s, ok
}

func (s *Stash) Put(key, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = state
}

// Take returns the entry for key and removes it
func (s *Stash) Take(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.entries[key]
	delete(s.entries, key)
	return state, ok
}

func (s *Stash) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
