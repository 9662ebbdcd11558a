package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"perspective/internal/deck"
	"perspective/internal/spread"
)

// Category is one of the fixed life areas a reading explores.
type Category string

const (
	CategoryLove    Category = "Love"
	CategoryCareer  Category = "Career"
	CategoryMoney   Category = "Money"
	CategoryGeneral Category = "General Guidance"
)

// Categories returns the fixed category set in presentation order.
func Categories() []Category {
	return []Category{CategoryLove, CategoryCareer, CategoryMoney, CategoryGeneral}
}

// DefaultCategory is the preselected category on a fresh session.
func DefaultCategory() Category {
	return CategoryLove
}

// ParseCategory validates raw input against the fixed set.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// MaxQuestionLen caps question text, in runes, at the boundary.
const MaxQuestionLen = 300

// TruncateQuestion enforces MaxQuestionLen.
func TruncateQuestion(q string) string {
	runes := []rune(q)
	if len(runes) <= MaxQuestionLen {
		return q
	}
	return string(runes[:MaxQuestionLen])
}

// Step is the session state machine's current step.
type Step string

const (
	StepLanding         Step = "landing"
	StepAnalyzingSpread Step = "analyzing_spread"
	StepSelection       Step = "selection"
	StepLoading         Step = "loading_interpretation"
	StepResult          Step = "result"
)

// DeliveryStatus tracks the interpretation copy's email delivery.
type DeliveryStatus string

const (
	DeliveryIdle    DeliveryStatus = "idle"
	DeliverySending DeliveryStatus = "sending"
	DeliverySent    DeliveryStatus = "sent"
)

// CardPull pairs exactly one position with exactly one card.
type CardPull struct {
	Position spread.Position `json:"position"`
	Card     deck.Card       `json:"card"`
}

// InterpretationDetail is one per-position insight, matched by title.
type InterpretationDetail struct {
	PositionTitle string `json:"positionTitle"`
	Insight       string `json:"insight"`
}

// Interpretation is the structured reading result.
type Interpretation struct {
	Summary       string                 `json:"summary"`
	Details       []InterpretationDetail `json:"details"`
	FinalGuidance string                 `json:"finalGuidance"`
}

// InsightFor looks up the detail for a position title. A missing title is a
// display-time lookup miss, never an error.
func (i Interpretation) InsightFor(title string) (string, bool) {
	for _, d := range i.Details {
		if d.PositionTitle == title {
			return d.Insight, true
		}
	}
	return "", false
}

// Session is the aggregate root for one reading. All mutation goes through
// the state machine's transition functions; the presentation layer only ever
// sees snapshots.
type Session struct {
	ID    uuid.UUID `json:"id"`
	Epoch uint64    `json:"-"`

	Step     Step     `json:"step"`
	Category Category `json:"category"`
	Question string   `json:"question"`

	Spread *spread.Spread `json:"spread,omitempty"`
	Pulls  []CardPull     `json:"pulls,omitempty"`

	Revealed map[int]bool `json:"-"`

	// AwaitingIdentity marks the identity-prompt sub-state: all cards are
	// revealed but interpretation is gated on sign-in.
	AwaitingIdentity bool `json:"awaitingIdentity"`

	Interpretation *Interpretation `json:"interpretation,omitempty"`
	Delivery       DeliveryStatus  `json:"deliveryStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession returns a fresh session at the landing step.
func NewSession(id uuid.UUID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Epoch:     1,
		Step:      StepLanding,
		Category:  DefaultCategory(),
		Revealed:  make(map[int]bool),
		Delivery:  DeliveryIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToggleReveal flips the reveal state of one position index. Double toggle
// restores the original state. Out-of-range indices are ignored.
func (s *Session) ToggleReveal(index int) {
	if index < 0 || index >= len(s.Pulls) {
		return
	}
	if s.Revealed[index] {
		delete(s.Revealed, index)
		return
	}
	s.Revealed[index] = true
}

// AllRevealed reports whether every position's card has been revealed. This
// is the sole progression predicate out of the selection step.
func (s *Session) AllRevealed() bool {
	return s.Spread != nil && len(s.Revealed) == len(s.Spread.Positions)
}

// RevealedIndices returns the reveal set in ascending order.
func (s *Session) RevealedIndices() []int {
	out := make([]int, 0, len(s.Revealed))
	for i := range s.Pulls {
		if s.Revealed[i] {
			out = append(out, i)
		}
	}
	return out
}

// Reset returns the session to the landing step and discards all reading
// state. The epoch moves forward so any in-flight collaborator result is
// discarded when it tries to commit.
func (s *Session) Reset() {
	s.Epoch++
	s.Step = StepLanding
	s.Category = DefaultCategory()
	s.Question = ""
	s.Spread = nil
	s.Pulls = nil
	s.Revealed = make(map[int]bool)
	s.AwaitingIdentity = false
	s.Interpretation = nil
	s.Delivery = DeliveryIdle
	s.UpdatedAt = time.Now().UTC()
}

// Clone deep-copies the session so callers can hand out snapshots.
func (s *Session) Clone() *Session {
	cp := *s
	if s.Spread != nil {
		sp := *s.Spread
		sp.Positions = append([]spread.Position(nil), s.Spread.Positions...)
		cp.Spread = &sp
	}
	cp.Pulls = append([]CardPull(nil), s.Pulls...)
	cp.Revealed = make(map[int]bool, len(s.Revealed))
	for k, v := range s.Revealed {
		cp.Revealed[k] = v
	}
	if s.Interpretation != nil {
		in := *s.Interpretation
		in.Details = append([]InterpretationDetail(nil), s.Interpretation.Details...)
		cp.Interpretation = &in
	}
	return &cp
}
