// Package archive keeps completed readings for signed-in identities, the
// durable record behind "save your perspective".
package archive

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"perspective/internal/identity"
	"perspective/internal/reading/models"
	dErrors "perspective/pkg/domain-errors"
)

// Store persists archive entries.
type Store interface {
	Save(ctx context.Context, e *Entry) error
	ListByEmail(ctx context.Context, email string) ([]*Entry, error)
}

// Service records and lists archived readings.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Archive records a completed reading for the identity. Sessions without an
// interpretation or identities without an email are skipped silently; the
// archive is strictly best-effort.
func (s *Service) Archive(ctx context.Context, rec *identity.Record, session *models.Session) error {
	if rec == nil || rec.Email == "" || session == nil || session.Interpretation == nil || session.Spread == nil {
		return nil
	}

	entry := &Entry{
		ID:            uuid.New(),
		Email:         rec.Email,
		Category:      string(session.Category),
		Question:      session.Question,
		SpreadName:    session.Spread.Name,
		Summary:       session.Interpretation.Summary,
		FinalGuidance: session.Interpretation.FinalGuidance,
		Pulls:         make([]PullRecord, 0, len(session.Pulls)),
		CreatedAt:     time.Now().UTC(),
	}
	for _, pull := range session.Pulls {
		pr := PullRecord{
			PositionTitle: pull.Position.Title,
			CardName:      pull.Card.Name,
		}
		if insight, ok := session.Interpretation.InsightFor(pull.Position.Title); ok {
			pr.Insight = insight
		}
		entry.Pulls = append(entry.Pulls, pr)
	}

	if err := s.store.Save(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "archive reading failed", "email", rec.Email, "error", err)
		return err
	}
	return nil
}

// List returns the identity's archived readings, newest first.
func (s *Service) List(ctx context.Context, rec *identity.Record) ([]*Entry, error) {
	if rec == nil || rec.Email == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "sign in to view your archive")
	}
	entries, err := s.store.ListByEmail(ctx, rec.Email)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list archive", err)
	}
	return entries, nil
}
