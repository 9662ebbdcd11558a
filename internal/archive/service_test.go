package archive

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"perspective/internal/deck"
	"perspective/internal/identity"
	"perspective/internal/reading/models"
	"perspective/internal/spread"
	dErrors "perspective/pkg/domain-errors"
)

type ArchiveServiceSuite struct {
	suite.Suite
	ctx context.Context
	svc *Service
}

func (s *ArchiveServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.svc = New(newMemoryStore())
}

func newMemoryStore() Store {
	return &memoryWrapper{}
}

// memoryWrapper is an in-package stand-in; the real stores import this
// package and cannot be used here.
type memoryWrapper struct {
	entries []*Entry
}

func (m *memoryWrapper) Save(_ context.Context, e *Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryWrapper) ListByEmail(_ context.Context, email string) ([]*Entry, error) {
	var out []*Entry
	for _, e := range m.entries {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestArchiveServiceSuite(t *testing.T) {
	suite.Run(t, new(ArchiveServiceSuite))
}

func completedSession() *models.Session {
	sess := models.NewSession(uuid.New())
	sess.Step = models.StepResult
	sess.Category = models.CategoryCareer
	sess.Question = "What next?"
	sess.Spread = &spread.Spread{
		ID:   "test",
		Name: "The Test Path",
		Positions: []spread.Position{
			{Title: "Past"},
			{Title: "Future"},
		},
	}
	sess.Pulls = []models.CardPull{
		{Position: sess.Spread.Positions[0], Card: deck.Card{Name: "The Fool"}},
		{Position: sess.Spread.Positions[1], Card: deck.Card{Name: "The Star"}},
	}
	sess.Interpretation = &models.Interpretation{
		Summary: "A summary.",
		Details: []models.InterpretationDetail{
			{PositionTitle: "Past", Insight: "was"},
		},
		FinalGuidance: "Go.",
	}
	return sess
}

func (s *ArchiveServiceSuite) TestArchive() {
	rec := &identity.Record{Name: "Ann", Email: "ann@example.com"}

	s.Run("records a completed reading", func() {
		s.Require().NoError(s.svc.Archive(s.ctx, rec, completedSession()))

		entries, err := s.svc.List(s.ctx, rec)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)

		e := entries[0]
		s.Equal("Career", e.Category)
		s.Equal("The Test Path", e.SpreadName)
		s.Equal("A summary.", e.Summary)
		s.Require().Len(e.Pulls, 2)
		s.Equal("The Fool", e.Pulls[0].CardName)
		s.Equal("was", e.Pulls[0].Insight)
		// The second position has no matching detail; the pull is archived
		// without an insight.
		s.Empty(e.Pulls[1].Insight)
	})

	s.Run("skips sessions without an interpretation", func() {
		incomplete := completedSession()
		incomplete.Interpretation = nil

		s.Require().NoError(s.svc.Archive(s.ctx, rec, incomplete))
		entries, err := s.svc.List(s.ctx, rec)
		s.Require().NoError(err)
		s.Len(entries, 1, "incomplete session must not be archived")
	})

	s.Run("skips identities without an email", func() {
		s.Require().NoError(s.svc.Archive(s.ctx, &identity.Record{Name: "NoEmail"}, completedSession()))
		s.Require().NoError(s.svc.Archive(s.ctx, nil, completedSession()))
	})
}

func (s *ArchiveServiceSuite) TestListUnauthorized() {
	_, err := s.svc.List(s.ctx, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.svc.List(s.ctx, &identity.Record{Name: "NoEmail"})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
