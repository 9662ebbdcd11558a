package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"perspective/internal/archive"
)

// Memory is an in-memory archive store for single-process deployments and
// tests.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]*archive.Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]*archive.Entry)}
}

func (m *Memory) Save(_ context.Context, e *archive.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(e.Email)
	cp := *e
	cp.Pulls = append([]archive.PullRecord(nil), e.Pulls...)
	m.entries[key] = append(m.entries[key], &cp)
	return nil
}

func (m *Memory) ListByEmail(_ context.Context, email string) ([]*archive.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.entries[strings.ToLower(email)]
	out := make([]*archive.Entry, 0, len(stored))
	for _, e := range stored {
		cp := *e
		cp.Pulls = append([]archive.PullRecord(nil), e.Pulls...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
