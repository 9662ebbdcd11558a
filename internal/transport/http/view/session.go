// Package view holds the wire representations shared across handlers.
package view

import (
	"time"

	"perspective/internal/identity"
	"perspective/internal/reading/models"
	"perspective/internal/spread"
)

// Session is the wire view of a reading session. The epoch and the raw reveal
// map stay server-side.
type Session struct {
	ID               string                 `json:"id"`
	Step             models.Step            `json:"step"`
	Category         models.Category        `json:"category"`
	Question         string                 `json:"question,omitempty"`
	Spread           *spread.Spread         `json:"spread,omitempty"`
	Pulls            []models.CardPull      `json:"pulls,omitempty"`
	Revealed         []int                  `json:"revealed"`
	AllRevealed      bool                   `json:"allRevealed"`
	AwaitingIdentity bool                   `json:"awaitingIdentity"`
	Interpretation   *models.Interpretation `json:"interpretation,omitempty"`
	Delivery         models.DeliveryStatus  `json:"deliveryStatus"`
	SignedIn         bool                   `json:"signedIn"`
	Identity         *identity.Record       `json:"identity,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// NewSession builds the wire view from a session snapshot and the current
// identity state.
func NewSession(s *models.Session, signedIn bool, rec *identity.Record) Session {
	return Session{
		ID:               s.ID.String(),
		Step:             s.Step,
		Category:         s.Category,
		Question:         s.Question,
		Spread:           s.Spread,
		Pulls:            s.Pulls,
		Revealed:         s.RevealedIndices(),
		AllRevealed:      s.AllRevealed(),
		AwaitingIdentity: s.AwaitingIdentity,
		Interpretation:   s.Interpretation,
		Delivery:         s.Delivery,
		SignedIn:         signedIn,
		Identity:         rec,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
