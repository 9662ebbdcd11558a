package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"perspective/internal/reading/models"
	"perspective/pkg/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func (s *SessionStoreSuite) TestCreateAndGet() {
	sess := models.NewSession(uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, sess))

	got, err := s.store.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.ID, got.ID)
	s.Equal(models.StepLanding, got.Step)
}

func (s *SessionStoreSuite) TestCreateDuplicate() {
	sess := models.NewSession(uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, sess))
	s.Require().ErrorIs(s.store.Create(s.ctx, sess), sentinel.ErrInvalidState)
}

func (s *SessionStoreSuite) TestGetUnknown() {
	_, err := s.store.Get(s.ctx, uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestGetReturnsSnapshot() {
	sess := models.NewSession(uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, sess))

	got, err := s.store.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	got.Step = models.StepResult

	again, err := s.store.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(models.StepLanding, again.Step, "snapshot mutation must not leak into the store")
}

func (s *SessionStoreSuite) TestUpdate() {
	sess := models.NewSession(uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, sess))

	s.Run("applies the mutation and returns a snapshot", func() {
		got, err := s.store.Update(s.ctx, sess.ID, func(cur *models.Session) error {
			cur.Question = "what next?"
			return nil
		})
		s.Require().NoError(err)
		s.Equal("what next?", got.Question)

		stored, err := s.store.Get(s.ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal("what next?", stored.Question)
	})

	s.Run("a failed mutation leaves no partial state", func() {
		boom := errors.New("boom")
		_, err := s.store.Update(s.ctx, sess.ID, func(cur *models.Session) error {
			cur.Question = "half-written"
			cur.Step = models.StepResult
			return boom
		})
		s.Require().ErrorIs(err, boom)

		stored, err := s.store.Get(s.ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal("what next?", stored.Question)
		s.Equal(models.StepLanding, stored.Step)
	})

	s.Run("unknown session", func() {
		_, err := s.store.Update(s.ctx, uuid.New(), func(*models.Session) error { return nil })
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
