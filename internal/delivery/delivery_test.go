package delivery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"perspective/internal/deck"
	"perspective/internal/identity"
	"perspective/internal/reading/models"
	"perspective/internal/spread"
)

func resultSession() *models.Session {
	sess := models.NewSession(uuid.New())
	sess.Step = models.StepResult
	sess.Category = models.CategoryCareer
	sess.Question = "What next?"
	sess.Spread = &spread.Spread{
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
			{PositionTitle: "Future", Insight: "will"},
		},
		FinalGuidance: "Go forward.",
	}
	return sess
}

func TestCompose(t *testing.T) {
	rec := &identity.Record{Name: "Ann", Email: "ann@example.com"}
	msg := Compose(rec, resultSession())

	assert.Equal(t, "ann@example.com", msg.To)
	assert.Equal(t, "Your Perspective reading: Career", msg.Subject)
	assert.Contains(t, msg.Body, "Hi Ann,")
	assert.Contains(t, msg.Body, "The Test Path")
	assert.Contains(t, msg.Body, `"What next?"`)
	assert.Contains(t, msg.Body, "A summary.")
	assert.Contains(t, msg.Body, "The Fool")
	assert.Contains(t, msg.Body, "will")
	assert.Contains(t, msg.Body, "Go forward.")
}

func TestComposeFallsBackToEmailName(t *testing.T) {
	rec := &identity.Record{Email: "jane.doe@example.com"}
	msg := Compose(rec, resultSession())
	assert.Contains(t, msg.Body, "Hi Jane,")
}

func TestComposeSkipsUnmatchedPositions(t *testing.T) {
	sess := resultSession()
	sess.Interpretation.Details = sess.Interpretation.Details[:1]

	msg := Compose(&identity.Record{Name: "Ann", Email: "a@b.c"}, sess)
	assert.Contains(t, msg.Body, "The Fool")
	assert.NotContains(t, msg.Body, "The Star", "position without an insight is left out")
}
