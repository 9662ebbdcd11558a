package gemini

import (
	"google.golang.org/genai"

	"perspective/internal/spread"
)

// spreadSchema constrains the proposal response to the spread draft shape.
func spreadSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "A creative name for this custom spread.",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "A brief explanation of why this spread structure fits the user's question.",
			},
			"positions": {
				Type:     genai.TypeArray,
				MinItems: genai.Ptr[int64](spread.MinPositions),
				MaxItems: genai.Ptr[int64](spread.MaxPositions),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {
							Type:        genai.TypeString,
							Description: "The name of the position (e.g., 'The Hidden Block' or 'Option A').",
						},
						"description": {
							Type:        genai.TypeString,
							Description: "What this position represents in the context of the inquiry.",
						},
					},
					Required: []string{"title", "description"},
				},
			},
		},
		Required: []string{"name", "description", "positions"},
	}
}

// interpretationSchema constrains the interpretation response.
func interpretationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A cohesive, high-level overview of the entire reading's message.",
			},
			"details": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"positionTitle": {Type: genai.TypeString},
						"insight": {
							Type:        genai.TypeString,
							Description: "Detailed, practical reflection for this specific card in its position.",
						},
					},
					Required: []string{"positionTitle", "insight"},
				},
			},
			"finalGuidance": {
				Type:        genai.TypeString,
				Description: "A concise, empowering mindset shift or practical next step.",
			},
		},
		Required: []string{"summary", "details", "finalGuidance"},
	}
}
