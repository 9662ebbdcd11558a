package gemini

import (
	"fmt"
	"strings"

	"perspective/internal/gen"
	"perspective/internal/spread"
)

// defaultInquiry substitutes for an empty question so the prompt always
// carries a concrete request.
const defaultInquiry = "I am seeking general perspective and clarity on my current path."

func spreadSystemPrompt(exemplars []spread.Spread) string {
	var b strings.Builder
	b.WriteString(`You are an expert Tarot Spread Architect. Your goal is to design a unique and nuanced tarot spread of 2 to 4 cards that perfectly addresses the user's specific query.

Guidelines:
- Analyze the user's question for hidden themes, conflicts, or specific choices.
- If the user is facing a choice, design a spread with comparative positions.
- If the user is seeking self-reflection, focus on internal vs external archetypes.
- If the question is vague, use a balanced structure like Past/Present/Future or Core/Tool/Outcome.
- The spread must have between 2 and 4 positions.
- Ensure position titles and descriptions are clear, modern, and grounded.
- Avoid spiritual jargon; use practical, coaching-oriented language.

Architectural Inspiration (Reference these structures but adapt them to the specific question):
`)
	for _, s := range exemplars {
		titles := make([]string, len(s.Positions))
		for i, p := range s.Positions {
			titles[i] = p.Title
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", s.Name, s.Description, strings.Join(titles, ", "))
	}
	return b.String()
}

func spreadUserPrompt(req gen.SpreadRequest) string {
	question := req.Question
	if question == "" {
		question = defaultInquiry
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Focus Area: %s\n", req.Category)
	fmt.Fprintf(&b, "User's Inquiry: %q\n\n", question)
	b.WriteString("Design a custom spread tailored to this inquiry.")
	return b.String()
}

const interpretationSystemPrompt = `You are a grounded, senior life coach using tarot symbolism for practical reflection.
Interpret the following tarot spread in the context of the user's question.

Rules:
- NO future predictions, supernatural claims, or mention of 'destiny' or 'luck'.
- Use a grounded, calm, and practical tone.
- Focus on synergy: how the cards interact within this specific spread structure.
- Provide actionable insights that empower the user's free will.
- Keep language simple and accessible for beginners.`

func interpretationUserPrompt(req gen.InterpretationRequest) string {
	question := req.Question
	if question == "" {
		question = "General Reflection"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Context: %s\n", req.Category)
	fmt.Fprintf(&b, "User Question: %q\n", question)
	fmt.Fprintf(&b, "Spread Name: %s\n", req.SpreadName)
	fmt.Fprintf(&b, "Spread Intent: %s\n\n", req.SpreadDescription)
	b.WriteString("Card Results:\n")
	for _, p := range req.Pulls {
		fmt.Fprintf(&b, "- Position %q (%s): Received card %q (%s)\n",
			p.PositionTitle, p.PositionDescription, p.CardName, p.CardKeyword)
	}
	return b.String()
}
