package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"streak-coach-backend/internal/observability"
)

// GenAI sends the same request as Gemini through the official SDK. The SDK
// authenticates with the x-goog-api-key header instead of the query string.
type GenAI struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	tracer  trace.Tracer
}

type GenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func NewGenAI(ctx context.Context, cfg GenAIConfig) (*GenAI, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GenAI{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		tracer:  otel.Tracer("streak-coach/ai"),
	}, nil
}

func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "gemini.generateContent", trace.WithAttributes(
		attribute.String("gemini.transport", "sdk"),
		attribute.String("gemini.model", g.model),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	observability.UpstreamCalls.WithLabelValues("sdk").Inc()
	start := time.Now()
	defer func() {
		observability.UpstreamLatency.WithLabelValues("sdk").Observe(time.Since(start).Seconds())
	}()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](Temperature),
		TopK:            genai.Ptr[float32](TopK),
		TopP:            genai.Ptr[float32](TopP),
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUpstream, err)
	} else {
		var text string
		if text, err = firstText(resp); err == nil {
			span.SetAttributes(attribute.Int("reply.length", len(text)))
			return text, nil
		}
	}

	observability.UpstreamErrors.WithLabelValues("sdk").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "generate failed")
	return "", err
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", ErrUpstream)
	}
	c := resp.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 || c.Parts[0] == nil {
		return "", fmt.Errorf("%w: candidate has no parts", ErrUpstream)
	}
	return c.Parts[0].Text, nil
}
