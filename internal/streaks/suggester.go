package streaks

import (
	"context"
	"encoding/json"

	"streak-coach-backend/internal/ai"
)

// Suggester turns a rendered prompt into a validated suggestion body.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (json.RawMessage, error)
}

// SuggesterFunc adapts a plain function to Suggester.
type SuggesterFunc func(ctx context.Context, prompt string) (json.RawMessage, error)

func (f SuggesterFunc) Suggest(ctx context.Context, prompt string) (json.RawMessage, error) {
	return f(ctx, prompt)
}

// Coach asks the model and sanitizes its reply.
type Coach struct {
	gen ai.Generator
}

func NewCoach(gen ai.Generator) *Coach {
	return &Coach{gen: gen}
}

func (c *Coach) Suggest(ctx context.Context, prompt string) (json.RawMessage, error) {
	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return Sanitize(text)
}
