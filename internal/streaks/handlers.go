package streaks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"streak-coach-backend/internal/ai"
	"streak-coach-backend/internal/analytics"
	"streak-coach-backend/internal/observability"
)

// SetupHandler serves streak setup requests. Apart from bad input (400)
// and unsupported methods (405) it always answers 200, with the fallback
// suggestion standing in for any generation failure.
func SetupHandler(s Suggester, log logrus.FieldLogger) http.HandlerFunc {
	log = log.WithField("component", "streaks")

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
		case http.MethodOptions:
			observability.StreakRequests.WithLabelValues(observability.OutcomePreflight).Inc()
			writePreflight(w)
			return
		default:
			observability.StreakRequests.WithLabelValues(observability.OutcomeMethodNotAllowed).Inc()
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = w.Write([]byte("Method not allowed"))
			return
		}

		env := analytics.FromRequest(r)

		req, err := DecodeSetupRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			log.WithError(err).Warn("rejected streak setup request")
			observability.StreakRequests.WithLabelValues(observability.OutcomeRejected).Inc()
			analytics.Log(log, env, analytics.EventStreakRejected, nil)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write(invalidRequestBody)
			return
		}

		props := map[string]any{
			"name_len": utf8.RuneCountInString(req.StreakName),
			"has_tone": req.ToneProvided,
		}

		prompt := ai.BuildStreakPrompt(req.StreakName, req.Tone)

		body, err := suggest(r.Context(), s, prompt)
		if err != nil {
			kind := errorKind(r.Context(), err)
			log.WithError(err).WithField("kind", kind).Error("streak generation failed, serving fallback")
			observability.StreakRequests.WithLabelValues(observability.OutcomeFallback).Inc()
			observability.Degradations.WithLabelValues(kind).Inc()
			props["kind"] = kind
			analytics.Log(log, env, analytics.EventStreakFallback, props)

			body = fallbackBody
		} else {
			observability.StreakRequests.WithLabelValues(observability.OutcomeSuggested).Inc()
			analytics.Log(log, env, analytics.EventStreakSuggested, props)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func writePreflight(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

// suggest runs the suggester, turning a panic into an error so it ends in
// the fallback like any other failure.
func suggest(ctx context.Context, s Suggester, prompt string) (body json.RawMessage, err error) {
	defer func() {
		if p := recover(); p != nil {
			body, err = nil, fmt.Errorf("%w: %v", errPanic, p)
		}
	}()

	body, err = s.Suggest(ctx, prompt)
	if err == nil && len(body) == 0 {
		err = fmt.Errorf("%w: empty suggestion", ErrShape)
	}
	return body, err
}
