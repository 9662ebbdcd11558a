package spread

// catalog holds the fixed spread templates. They serve two roles: the first
// entry is the deterministic fallback when the generation collaborator fails,
// and all of them are passed as architectural exemplars in the proposal
// prompt.
var catalog = []Spread{
	{
		ID:          "past-present-future",
		Name:        "The Path of Time",
		Description: "A classic structure to see where you've been and where you are headed.",
		Positions: []Position{
			{Title: "The Past", Description: "Influences that are receding but still relevant."},
			{Title: "The Present", Description: "Your current energy and surroundings."},
			{Title: "The Potential Future", Description: "Where things are currently trending."},
		},
	},
	{
		ID:          "problem-solution",
		Name:        "The Clarity Bridge",
		Description: "Perfect for overcoming a specific hurdle.",
		Positions: []Position{
			{Title: "The Core Challenge", Description: "The heart of the matter you are facing."},
			{Title: "The Tool for Change", Description: "A mindset or action that will help you move forward."},
		},
	},
	{
		ID:          "decision",
		Name:        "The Crossroads",
		Description: "Compare two different paths or perspectives.",
		Positions: []Position{
			{Title: "Path A", Description: "The likely outcome of the first option."},
			{Title: "Path B", Description: "The likely outcome of the second option."},
			{Title: "The Deciding Factor", Description: "What you should weigh most heavily."},
		},
	},
	{
		ID:          "relationship",
		Name:        "The Mirror",
		Description: "Best for understanding dynamics between two people.",
		Positions: []Position{
			{Title: "Your Perspective", Description: "How you are showing up in this dynamic."},
			{Title: "Their Perspective", Description: "How the other person or the situation perceives you."},
			{Title: "The Connection", Description: "The common ground or friction between you."},
		},
	},
}

// Catalog returns the fixed spread templates. Callers must treat the result
// as read-only.
func Catalog() []Spread {
	return catalog
}
