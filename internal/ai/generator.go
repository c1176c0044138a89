package ai

import (
	"context"
	"errors"
)

// Generation parameters sent with every request.
const (
	Temperature     = 0.9
	TopK            = 1
	TopP            = 1
	MaxOutputTokens = 2048
)

// ErrUpstream wraps every failure to obtain text from the model: transport
// errors, non-2xx statuses, undecodable bodies and missing candidates.
var ErrUpstream = errors.New("gemini api error")

// Generator turns a prompt into the model's raw reply text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
