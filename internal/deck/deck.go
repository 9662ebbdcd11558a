package deck

import "errors"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Card is a single symbolic card in the fixed catalog.
type Card struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Keyword string `json:"keyword"`
	Image   string `json:"image"`
}

// Deck is an ordered collection of cards.
type Deck []Card

var (
	ErrInvalidCount    = errors.New("draw count must be at least 1")
	ErrCountExceedsDeck = errors.New("draw count exceeds number of cards in deck")
)

// Draw returns n unique cards from d using the provided RNG. Each call
// reshuffles the full deck, so draws are independent across readings. The
// deck itself is never mutated.
func Draw(d Deck, n int, rng RNG) ([]Card, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}
	if n > len(d) {
		return nil, ErrCountExceedsDeck
	}

	// Fisher-Yates over an index permutation; only the first n matter.
	indices := make([]int, len(d))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	cards := make([]Card, n)
	for i := range n {
		cards[i] = d[indices[i]]
	}
	return cards, nil
}
