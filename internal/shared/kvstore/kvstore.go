// Package kvstore is the persistence surface: named collections stored as
// whole JSON payloads under string keys, read-modify-written as a unit.
package kvstore

import (
	"context"
	"errors"
)

// ErrMissing reports that a key has never been written.
var ErrMissing = errors.New("kvstore: key missing")

// Entry is a staged write, used to commit several collections at once.
type Entry struct {
	Key     string
	Payload []byte
}

type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	// SaveAll writes every entry atomically: either all become visible or
	// none do.
	SaveAll(ctx context.Context, entries ...Entry) error
}
