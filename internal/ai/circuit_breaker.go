package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// CircuitBreaker stops calling the upstream after repeated failures. While
// open, Generate fails fast with ErrUpstream. It never retries.
//
// A call whose caller context ended is not held against the upstream. A
// deadline set by the generator itself (UPSTREAM_TIMEOUT) still counts.
type CircuitBreaker struct {
	gen Generator
	cb  *gobreaker.CircuitBreaker
}

// callerGone marks an error produced after the caller's context was done.
type callerGone struct{ err error }

func (e callerGone) Error() string { return e.err.Error() }
func (e callerGone) Unwrap() error { return e.err }

func countsAsSuccess(err error) bool {
	var gone callerGone
	return err == nil || errors.As(err, &gone)
}

func NewCircuitBreaker(gen Generator) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
	}
	settings.IsSuccessful = countsAsSuccess

	return &CircuitBreaker{
		gen: gen,
		cb:  gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *CircuitBreaker) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := c.cb.Execute(func() (interface{}, error) {
		text, err := c.gen.Generate(ctx, prompt)
		if err != nil && ctx.Err() != nil {
			return "", callerGone{err}
		}
		return text, err
	})
	if err != nil {
		var gone callerGone
		if errors.As(err, &gone) {
			return "", gone.err
		}
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		return "", err
	}

	text, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("%w: unexpected circuit breaker response type", ErrUpstream)
	}

	return text, nil
}

// State reports the breaker state, e.g. "closed" or "open".
func (c *CircuitBreaker) State() string {
	return c.cb.State().String()
}
