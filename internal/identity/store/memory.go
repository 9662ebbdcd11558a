// Package store provides the persistence boundary for the identity record:
// one key mapping to one serialized record.
package store

import (
	"context"
	"sync"

	"perspective/internal/identity"
	"perspective/pkg/sentinel"
)

// Memory keeps the record in process memory. It satisfies the store contract
// for single-process deployments and tests, at the cost of not surviving
// restarts.
type Memory struct {
	mu  sync.RWMutex
	rec *identity.Record
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*identity.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.rec == nil {
		return nil, sentinel.ErrNotFound
	}
	out := *m.rec
	return &out, nil
}

func (m *Memory) Save(_ context.Context, rec *identity.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.rec = &cp
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}
