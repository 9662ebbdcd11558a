// Package gen defines the logical contract with the external generation
// collaborator. The core treats the collaborator as a fallible, stateless
// service: adapters return errors freely, and the calling components absorb
// every failure with a deterministic fallback.
package gen

import (
	"context"
	"errors"

	"perspective/internal/spread"
)

var (
	// ErrUpstream wraps transport-level collaborator failures.
	ErrUpstream = errors.New("upstream generation failure")
	// ErrMalformed marks a response that did not conform to the requested schema.
	ErrMalformed = errors.New("malformed generation response")
)

// SpreadRequest asks the collaborator to design a spread for one inquiry.
type SpreadRequest struct {
	Category  string
	Question  string
	Exemplars []spread.Spread
}

// SpreadDraft is the collaborator's unvalidated spread proposal.
type SpreadDraft struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Positions   []spread.Position `json:"positions"`
}

// PullContext carries everything the collaborator may ground an insight on.
// Interpretations must reference nothing outside these fields.
type PullContext struct {
	PositionTitle       string
	PositionDescription string
	CardName            string
	CardKeyword         string
}

// InterpretationRequest asks the collaborator to interpret a completed pull.
type InterpretationRequest struct {
	Category          string
	Question          string
	SpreadName        string
	SpreadDescription string
	Pulls             []PullContext
}

// DetailDraft is one per-position insight, matched to pulls by title.
type DetailDraft struct {
	PositionTitle string `json:"positionTitle"`
	Insight       string `json:"insight"`
}

// InterpretationDraft is the collaborator's unvalidated interpretation.
type InterpretationDraft struct {
	Summary       string        `json:"summary"`
	Details       []DetailDraft `json:"details"`
	FinalGuidance string        `json:"finalGuidance"`
}

// Generator is implemented by generation-collaborator adapters.
type Generator interface {
	ProposeSpread(ctx context.Context, req SpreadRequest) (SpreadDraft, error)
	Interpret(ctx context.Context, req InterpretationRequest) (InterpretationDraft, error)
}

// Disabled is a Generator for deployments without collaborator credentials.
// Every call fails, so callers always take their deterministic fallback path.
type Disabled struct{}

func (Disabled) ProposeSpread(context.Context, SpreadRequest) (SpreadDraft, error) {
	return SpreadDraft{}, ErrUpstream
}

func (Disabled) Interpret(context.Context, InterpretationRequest) (InterpretationDraft, error) {
	return InterpretationDraft{}, ErrUpstream
}
