package spread

import "fmt"

// Position limits. A spread outside these bounds is rejected wholesale.
const (
	MinPositions = 2
	MaxPositions = 4
)

// Position is one named slot in a spread.
type Position struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Spread is a named template of 2-4 positions. Order is presentation and
// reasoning order, not a set.
type Spread struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Positions   []Position `json:"positions"`
}

// Validate enforces the position-count invariant.
func (s Spread) Validate() error {
	if n := len(s.Positions); n < MinPositions || n > MaxPositions {
		return fmt.Errorf("spread %q has %d positions, want %d-%d", s.Name, n, MinPositions, MaxPositions)
	}
	return nil
}
