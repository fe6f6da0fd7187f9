// Package session keeps the binding between an authenticated account and
// its interaction window. Two scopes exist: a persistent one that survives
// restarts and a volatile one that lives with the process. A session is
// stored in exactly one of them; lookups prefer the persistent scope.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"leavedesk/internal/shared/identity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Session struct {
	User       identity.View `json:"user"`
	LoginTime  time.Time     `json:"loginTime"`
	RememberMe bool          `json:"rememberMe"`
}

//go:generate mockgen -source=session.go -destination=mock/session_mock.go -package=mock
type Store interface {
	Put(ctx context.Context, id string, s Session, persistent bool, ttl time.Duration) error
	// Get returns nil without error when no scope holds the session.
	Get(ctx context.Context, id string) (*Session, error)
	// Delete clears the session from both scopes; absent is a no-op.
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "session:"

type Manager struct {
	rdb      *redis.Client
	mu       sync.RWMutex
	volatile map[string]Session
	logger   *zap.Logger
}

// NewManager builds the two-scope store. A nil client degrades the
// persistent scope to volatile, for single-binary runs without Redis.
func NewManager(rdb *redis.Client, logger ...*zap.Logger) *Manager {
	l := zap.L().Named("session")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session")
	}
	return &Manager{rdb: rdb, volatile: make(map[string]Session), logger: l}
}

func (m *Manager) Put(ctx context.Context, id string, s Session, persistent bool, ttl time.Duration) error {
	if persistent && m.rdb != nil {
		payload, err := json.Marshal(s)
		if err != nil {
			return err
		}
		return m.rdb.Set(ctx, keyPrefix+id, payload, ttl).Err()
	}

	m.mu.Lock()
	m.volatile[id] = s
	m.mu.Unlock()
	return nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if m.rdb != nil {
		payload, err := m.rdb.Get(ctx, keyPrefix+id).Bytes()
		switch {
		case err == nil:
			var s Session
			if jsonErr := json.Unmarshal(payload, &s); jsonErr != nil {
				// Malformed persisted session: discard, fall
				// through to the volatile scope.
				m.logger.Warn("persisted session unreadable, discarding",
					zap.String("session_id", id),
					zap.Error(jsonErr),
				)
				m.rdb.Del(ctx, keyPrefix+id)
			} else {
				return &s, nil
			}
		case errors.Is(err, redis.Nil):
			// Not in the persistent scope; try volatile.
		default:
			return nil, err
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.volatile[id]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if m.rdb != nil {
		if err := m.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
			return err
		}
	}

	m.mu.Lock()
	delete(m.volatile, id)
	m.mu.Unlock()
	return nil
}
