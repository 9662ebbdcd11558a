package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perspective/internal/deck"
	"perspective/internal/spread"
)

func newSelectionSession(positions int) *Session {
	s := NewSession(uuid.New())
	sp := &spread.Spread{ID: "t", Name: "Test"}
	for i := 0; i < positions; i++ {
		sp.Positions = append(sp.Positions, spread.Position{Title: "P"})
		s.Pulls = append(s.Pulls, CardPull{
			Position: sp.Positions[i],
			Card:     deck.Card{ID: string(rune('a' + i))},
		})
	}
	s.Spread = sp
	s.Step = StepSelection
	return s
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCategory("Weather")
	assert.Error(t, err)
	_, err = ParseCategory("love")
	assert.Error(t, err, "categories are case-sensitive")
}

func TestTruncateQuestion(t *testing.T) {
	assert.Equal(t, "short", TruncateQuestion("short"))

	exact := strings.Repeat("a", MaxQuestionLen)
	assert.Equal(t, exact, TruncateQuestion(exact))

	over := strings.Repeat("a", MaxQuestionLen+10)
	assert.Len(t, []rune(TruncateQuestion(over)), MaxQuestionLen)

	// Multibyte input truncates on rune boundaries, never mid-character.
	wide := strings.Repeat("ü", MaxQuestionLen+1)
	got := TruncateQuestion(wide)
	assert.Len(t, []rune(got), MaxQuestionLen)
	assert.True(t, strings.HasPrefix(wide, got))
}

func TestToggleReveal(t *testing.T) {
	t.Run("double toggle restores the original state", func(t *testing.T) {
		s := newSelectionSession(3)
		s.ToggleReveal(1)
		assert.True(t, s.Revealed[1])
		s.ToggleReveal(1)
		assert.False(t, s.Revealed[1])
		assert.Empty(t, s.RevealedIndices())
	})

	t.Run("out-of-range indices are ignored", func(t *testing.T) {
		s := newSelectionSession(3)
		s.ToggleReveal(-1)
		s.ToggleReveal(3)
		assert.Empty(t, s.RevealedIndices())
	})

	t.Run("indices come back ordered", func(t *testing.T) {
		s := newSelectionSession(4)
		s.ToggleReveal(3)
		s.ToggleReveal(0)
		s.ToggleReveal(2)
		assert.Equal(t, []int{0, 2, 3}, s.RevealedIndices())
	})
}

func TestAllRevealed(t *testing.T) {
	s := newSelectionSession(3)
	assert.False(t, s.AllRevealed())

	s.ToggleReveal(0)
	s.ToggleReveal(1)
	assert.False(t, s.AllRevealed())

	s.ToggleReveal(2)
	assert.True(t, s.AllRevealed())

	// Without a spread there is nothing to reveal.
	empty := NewSession(uuid.New())
	assert.False(t, empty.AllRevealed())
}

func TestReset(t *testing.T) {
	s := newSelectionSession(3)
	s.Category = CategoryMoney
	s.Question = "anything"
	s.ToggleReveal(0)
	s.AwaitingIdentity = true
	s.Interpretation = &Interpretation{Summary: "x"}
	s.Delivery = DeliverySent
	epoch := s.Epoch

	s.Reset()

	assert.Equal(t, StepLanding, s.Step)
	assert.Equal(t, DefaultCategory(), s.Category)
	assert.Empty(t, s.Question)
	assert.Nil(t, s.Spread)
	assert.Nil(t, s.Pulls)
	assert.Empty(t, s.Revealed)
	assert.False(t, s.AwaitingIdentity)
	assert.Nil(t, s.Interpretation)
	assert.Equal(t, DeliveryIdle, s.Delivery)
	assert.Equal(t, epoch+1, s.Epoch, "reset must invalidate in-flight work")
}

func TestInsightFor(t *testing.T) {
	in := Interpretation{
		Summary: "s",
		Details: []InterpretationDetail{
			{PositionTitle: "Past", Insight: "was"},
			{PositionTitle: "Future", Insight: "will"},
		},
	}

	insight, ok := in.InsightFor("Past")
	require.True(t, ok)
	assert.Equal(t, "was", insight)

	// A title with no matching detail is a quiet miss, not a failure.
	_, ok = in.InsightFor("Sideways")
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	s := newSelectionSession(2)
	s.ToggleReveal(0)
	s.Interpretation = &Interpretation{Summary: "x", Details: []InterpretationDetail{{PositionTitle: "P", Insight: "i"}}}

	cp := s.Clone()
	cp.ToggleReveal(1)
	cp.Spread.Positions[0].Title = "Changed"
	cp.Interpretation.Details[0].Insight = "changed"

	assert.False(t, s.Revealed[1], "clone reveal must not leak back")
	assert.Equal(t, "P", s.Spread.Positions[0].Title)
	assert.Equal(t, "i", s.Interpretation.Details[0].Insight)
}
