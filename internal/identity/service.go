package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"perspective/internal/platform/metrics"
	"perspective/pkg/sentinel"
)

// Store durably mirrors the single identity record: read once at startup,
// written on sign-in, deleted on sign-out.
type Store interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Clear(ctx context.Context) error
}

// Service is the identity gate. It holds at most one signed-in record and is
// the only mutator of that record and its persisted mirror.
type Service struct {
	mu      sync.RWMutex
	current *Record

	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads a previously persisted record before first use. A missing
// record is the normal signed-out state, not an error.
func (s *Service) Restore(ctx context.Context) error {
	rec, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.current = rec
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "identity restored", "email", rec.Email)
	return nil
}

// SignIn decodes the credential and, on success, replaces the held record and
// persists it. A failed decode leaves all state unchanged and reports that no
// record was established; no error surfaces to callers.
func (s *Service) SignIn(ctx context.Context, credential string) (*Record, bool) {
	rec, ok := DecodeCredential(credential)
	if !ok {
		s.logger.WarnContext(ctx, "sign-in credential rejected")
		return nil, false
	}

	s.mu.Lock()
	s.current = &rec
	s.mu.Unlock()

	if err := s.store.Save(ctx, &rec); err != nil {
		// The in-memory record stands; only the restart mirror is degraded.
		s.logger.ErrorContext(ctx, "persist identity record failed", "error", err)
	}
	s.metrics.IncSignIns()

	out := rec
	return &out, true
}

// SignOut clears the held record and its persisted copy.
func (s *Service) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return err
	}
	return nil
}

// Current returns a copy of the held record, or nil when signed out.
func (s *Service) Current() *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	out := *s.current
	return &out
}

// IsSignedIn reports whether a record is held.
func (s *Service) IsSignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
