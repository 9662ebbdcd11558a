// Package proposer turns an inquiry into a concrete spread. It is a total
// function from the caller's perspective: any collaborator failure yields the
// catalog's default spread rather than an error.
package proposer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"perspective/internal/gen"
	"perspective/internal/platform/metrics"
	"perspective/internal/spread"
	dErrors "perspective/pkg/domain-errors"
)

// Generic strings substituted for fields the collaborator omitted.
const (
	genericName        = "Custom Reflection"
	genericDescription = "A spread tailored to your specific inquiry."
)

// Service proposes spreads via the generation collaborator, falling back to
// the static catalog.
type Service struct {
	gen     gen.Generator
	catalog []spread.Spread
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

// New constructs a Service over the given generator and spread catalog.
func New(g gen.Generator, catalog []spread.Spread, opts ...Option) *Service {
	s := &Service{
		gen:     g,
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Propose returns a spread with 2-4 positions tailored to the inquiry. The
// only error it can return is an empty catalog, which is a wiring bug, not a
// collaborator failure.
func (s *Service) Propose(ctx context.Context, category, question string) (spread.Spread, error) {
	if len(s.catalog) == 0 {
		return spread.Spread{}, dErrors.New(dErrors.CodeInvariantViolation, "spread catalog is empty")
	}

	draft, err := s.gen.ProposeSpread(ctx, gen.SpreadRequest{
		Category:  category,
		Question:  question,
		Exemplars: s.catalog,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "spread proposal failed, using catalog default",
			"category", category,
			"error", err,
		)
		s.metrics.IncSpreadFallbacks()
		return s.catalog[0], nil
	}

	proposed, ok := s.normalize(draft)
	if !ok {
		s.logger.WarnContext(ctx, "spread proposal out of range, using catalog default",
			"category", category,
			"positions", len(draft.Positions),
		)
		s.metrics.IncSpreadFallbacks()
		return s.catalog[0], nil
	}

	s.metrics.IncSpreadsProposed()
	return proposed, nil
}

// normalize fills omitted fields with generic strings. An out-of-range
// position count is not repairable and rejects the draft wholesale.
func (s *Service) normalize(draft gen.SpreadDraft) (spread.Spread, bool) {
	if n := len(draft.Positions); n < spread.MinPositions || n > spread.MaxPositions {
		return spread.Spread{}, false
	}

	out := spread.Spread{
		ID:          "custom-" + uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Positions:   make([]spread.Position, len(draft.Positions)),
	}
	if out.Name == "" {
		out.Name = genericName
	}
	if out.Description == "" {
		out.Description = genericDescription
	}
	for i, p := range draft.Positions {
		if p.Title == "" {
			p.Title = genericPositionTitle(i)
		}
		if p.Description == "" {
			p.Description = "What this moment asks you to consider."
		}
		out.Positions[i] = p
	}
	return out, true
}

func genericPositionTitle(i int) string {
	titles := []string{"The First Thread", "The Second Thread", "The Third Thread", "The Fourth Thread"}
	if i < len(titles) {
		return titles[i]
	}
	return "The Thread"
}
