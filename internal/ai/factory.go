package ai

import (
	"context"
	"net/http"

	"streak-coach-backend/internal/config"
)

// NewGenerator builds the configured transport, wrapped in a circuit
// breaker when enabled.
func NewGenerator(ctx context.Context, cfg *config.Config, httpClient *http.Client) (Generator, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var gen Generator

	switch cfg.GeminiTransport {

	case config.TransportSDK:
		g, err := NewGenAI(ctx, GenAIConfig{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			BaseURL:    cfg.GeminiBaseURL,
			HTTPClient: httpClient,
			Timeout:    cfg.UpstreamTimeout,
		})
		if err != nil {
			return nil, err
		}
		gen = g

	default:
		gen = NewGemini(
			cfg.GeminiAPIKey,
			WithBaseURL(cfg.GeminiBaseURL),
			WithModel(cfg.GeminiModel),
			WithHTTPClient(httpClient),
			WithTimeout(cfg.UpstreamTimeout),
		)
	}

	if cfg.BreakerEnabled {
		gen = NewCircuitBreaker(gen)
	}

	return gen, nil
}
