package study

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/example/vocabot/pkg/models"
)

// SessionStore keeps active sessions addressable by handle. One session
// exists per user at a time; storing a new session replaces the user's
// previous one. Implementations may be backed by anything keyed; the
// in-memory store below suffices for a single process.
type SessionStore interface {
	// Get returns the session for a handle. Unknown handles mean the
	// caller is working with a dead session and must start a new one.
	Get(ctx context.Context, handle string) (*SessionState, error)
	Put(ctx context.Context, session *SessionState) error
	Delete(ctx context.Context, handle string) error
}

// MemorySessionStore holds sessions in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
	byUser   map[int64]string
}

// NewMemorySessionStore creates an empty session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*SessionState),
		byUser:   make(map[int64]string),
	}
}

// Get returns the session for a handle.
func (m *MemorySessionStore) Get(ctx context.Context, handle string) (*SessionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[handle]
	if !ok {
		return nil, errors.Wrapf(models.ErrInvalidSessionState, "unknown session handle %s", handle)
	}
	return session, nil
}

// Put stores a session, replacing any other session the same user had.
func (m *MemorySessionStore) Put(ctx context.Context, session *SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.byUser[session.UserID]; ok && old != session.Handle {
		delete(m.sessions, old)
	}
	m.sessions[session.Handle] = session
	m.byUser[session.UserID] = session.Handle
	return nil
}

// Delete removes a session. Deleting an unknown handle is a no-op.
func (m *MemorySessionStore) Delete(ctx context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[handle]; ok {
		delete(m.sessions, handle)
		if m.byUser[session.UserID] == handle {
			delete(m.byUser, session.UserID)
		}
	}
	return nil
}
