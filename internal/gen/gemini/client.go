// Package gemini adapts the Gemini API to the gen.Generator contract. Both
// operations go through one structured-call helper: prompt in, schema-
// constrained JSON out, decoded into the caller's draft type.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"perspective/internal/gen"
)

const defaultModel = "gemini-3-flash-preview"

// Client implements gen.Generator via the Gemini API.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New constructs a Gemini-backed generator.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	c := &Client{
		client: gc,
		model:  defaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ProposeSpread asks Gemini to design a 2-4 position spread for the inquiry.
func (c *Client) ProposeSpread(ctx context.Context, req gen.SpreadRequest) (gen.SpreadDraft, error) {
	var draft gen.SpreadDraft
	err := c.generateJSON(ctx,
		spreadSystemPrompt(req.Exemplars),
		spreadUserPrompt(req),
		0.4,
		spreadSchema(),
		&draft,
	)
	if err != nil {
		return gen.SpreadDraft{}, err
	}
	return draft, nil
}

// Interpret asks Gemini for a structured interpretation of a completed pull.
func (c *Client) Interpret(ctx context.Context, req gen.InterpretationRequest) (gen.InterpretationDraft, error) {
	var draft gen.InterpretationDraft
	err := c.generateJSON(ctx,
		interpretationSystemPrompt,
		interpretationUserPrompt(req),
		0.7,
		interpretationSchema(),
		&draft,
	)
	if err != nil {
		return gen.InterpretationDraft{}, err
	}
	return draft, nil
}

// generateJSON performs one schema-constrained generation call and decodes
// the JSON response into out.
func (c *Client) generateJSON(ctx context.Context, system, user string, temperature float32, schema *genai.Schema, out any) error {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr(temperature),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    schema,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", gen.ErrUpstream, err)
	}

	text := resp.Text()
	if text == "" {
		return fmt.Errorf("%w: empty response", gen.ErrMalformed)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		c.logger.WarnContext(ctx, "gemini returned invalid JSON", "model", c.model, "error", err)
		return fmt.Errorf("%w: %w", gen.ErrMalformed, err)
	}
	return nil
}
