// Package examples backs the "try an example" affordance with a fixed pool
// of starter questions per category.
package examples

import (
	"perspective/internal/deck"
	"perspective/internal/reading/models"
)

var pool = map[models.Category][]string{
	models.CategoryLove: {
		"How can I improve communication in my current relationship?",
		"What should I focus on to attract a healthy partnership?",
		"How can I better balance my personal needs with my partner's?",
		"What energy is currently surrounding my romantic life?",
	},
	models.CategoryCareer: {
		"I'm feeling stagnant at work, what should be my next move?",
		"What qualities should I bring to my new project?",
		"How can I navigate the upcoming changes in my team?",
		"What's the best approach for my next performance review?",
	},
	models.CategoryMoney: {
		"What's a healthy way to approach my financial goals this month?",
		"How can I change my mindset regarding abundance and scarcity?",
		"What should I consider before making a large purchase?",
		"What is a practical way to manage my current financial stress?",
	},
	models.CategoryGeneral: {
		"What energy should I focus on for the upcoming week?",
		"What's a constructive way to handle my current feeling of being 'stuck'?",
		"How can I find more peace in my daily routine?",
		"What part of my self-growth needs my attention right now?",
	},
}

// Pick returns one example question for the category, chosen uniformly.
// Unknown categories draw from the general pool.
func Pick(category models.Category, rng deck.RNG) string {
	options, ok := pool[category]
	if !ok {
		options = pool[models.CategoryGeneral]
	}
	return options[rng.Intn(len(options))]
}
