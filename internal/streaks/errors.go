package streaks

import (
	"context"
	"errors"

	"streak-coach-backend/internal/ai"
)

var (
	// ErrInvalidRequest is the only failure reported to the caller.
	ErrInvalidRequest = errors.New("invalid request")

	ErrParse = errors.New("model reply is not valid JSON")
	ErrShape = errors.New("invalid response format from AI")

	errPanic = errors.New("panic during generation")
)

// Kind labels for degraded responses.
const (
	KindUpstream = "upstream"
	KindCanceled = "canceled"
	KindParse    = "parse"
	KindShape    = "shape"
	KindPanic    = "panic"
	KindUnknown  = "unknown"
)

// errorKind classifies a generation failure for logs and metrics. ctx is
// the inbound request context: only its end counts as a cancellation, so an
// upstream deadline is reported as an upstream failure.
func errorKind(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return KindCanceled
	case errors.Is(err, ai.ErrUpstream):
		return KindUpstream
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrShape):
		return KindShape
	case errors.Is(err, errPanic):
		return KindPanic
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}
