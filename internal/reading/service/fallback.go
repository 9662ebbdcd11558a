package service

import (
	"fmt"
	"strings"

	"perspective/internal/reading/models"
)

// Fallback is the deterministic local interpretation used when the
// collaborator is unreachable or returns a non-conforming draft. It covers
// every drawn position so the result step renders complete.
func Fallback(category models.Category, pulls []models.CardPull) models.Interpretation {
	details := make([]models.InterpretationDetail, len(pulls))
	for i, pull := range pulls {
		details[i] = models.InterpretationDetail{
			PositionTitle: pull.Position.Title,
			Insight:       fmt.Sprintf("This card encourages you to look closely at your current %s environment.", strings.ToLower(string(category))),
		}
	}
	return models.Interpretation{
		Summary:       "Your reading suggests a moment of transition and mindful attention.",
		Details:       details,
		FinalGuidance: "Trust your clarity and take one intentional step today.",
	}
}
