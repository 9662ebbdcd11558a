package archive

import (
	"time"

	"github.com/google/uuid"
)

// PullRecord is the archived form of one position/card pairing.
type PullRecord struct {
	PositionTitle string `json:"positionTitle"`
	CardName      string `json:"cardName"`
	Insight       string `json:"insight,omitempty"`
}

// Entry is one completed reading archived for a signed-in identity, keyed by
// email address.
type Entry struct {
	ID            uuid.UUID    `json:"id"`
	Email         string       `json:"-"`
	Category      string       `json:"category"`
	Question      string       `json:"question"`
	SpreadName    string       `json:"spreadName"`
	Summary       string       `json:"summary"`
	FinalGuidance string       `json:"finalGuidance"`
	Pulls         []PullRecord `json:"pulls"`
	CreatedAt     time.Time    `json:"createdAt"`
}
