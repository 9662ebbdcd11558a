// Package store holds active reading sessions. Sessions are ephemeral by
// design; only the identity record and the archive outlive a process.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"perspective/internal/reading/models"
	"perspective/pkg/sentinel"
)

// Memory is an in-memory session store. Update applies its mutation to a
// clone and swaps it in only on success, so a failed transition never leaves
// partial state behind.
type Memory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[uuid.UUID]*models.Session)}
}

func (m *Memory) Create(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; exists {
		return sentinel.ErrInvalidState
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

// Get returns a snapshot of the session.
func (m *Memory) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.Clone(), nil
}

// Update runs fn against a clone of the stored session under the store lock.
// If fn succeeds the clone replaces the stored session and a fresh snapshot
// is returned; if fn fails the stored session is untouched.
func (m *Memory) Update(_ context.Context, id uuid.UUID, fn func(*models.Session) error) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	next := s.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	m.sessions[id] = next
	return next.Clone(), nil
}
