package kvstore

import "sync"

// Guard serializes read-modify-write cycles over the persisted collections.
// The store holds whole collections under single keys, so any two mutations
// that load, edit and save can lose each other's writes unless they share
// one lock. Every service that mutates a collection takes the same Guard.
type Guard struct {
	mu sync.Mutex
}

func NewGuard() *Guard {
	return &Guard{}
}

func (g *Guard) Lock()   { g.mu.Lock() }
func (g *Guard) Unlock() { g.mu.Unlock() }
