package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"streak-coach-backend/internal/observability"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-pro"
)

// ── Wire types ───────────────────────────────────────────────────

type part struct {
	Text *string `json:"text,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content *content `json:"content"`
	} `json:"candidates"`
}

// text follows candidates[0].content.parts[0].text.
func (r generateResponse) text() (string, error) {
	if len(r.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrUpstream)
	}
	c := r.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no parts", ErrUpstream)
	}
	if c.Parts[0].Text == nil {
		return "", fmt.Errorf("%w: first part has no text", ErrUpstream)
	}
	return *c.Parts[0].Text, nil
}

// ── Client ───────────────────────────────────────────────────────

// Option configures a Gemini client.
type Option func(*Gemini)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(g *Gemini) { g.baseURL = u }
}

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(g *Gemini) { g.model = model }
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gemini) { g.http = c }
}

// WithTimeout bounds each call. Zero means no deadline beyond the caller's.
func WithTimeout(d time.Duration) Option {
	return func(g *Gemini) { g.timeout = d }
}

// Gemini calls the generateContent REST endpoint, passing the API key as
// the "key" query parameter.
type Gemini struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	timeout time.Duration
	tracer  trace.Tracer
}

func NewGemini(apiKey string, opts ...Option) *Gemini {
	g := &Gemini{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		http:    http.DefaultClient,
		tracer:  otel.Tracer("streak-coach/ai"),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *Gemini) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "gemini.generateContent", trace.WithAttributes(
		attribute.String("gemini.transport", "rest"),
		attribute.String("gemini.model", g.model),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	observability.UpstreamCalls.WithLabelValues("rest").Inc()
	start := time.Now()
	defer func() {
		observability.UpstreamLatency.WithLabelValues("rest").Observe(time.Since(start).Seconds())
	}()

	text, err := g.generate(ctx, prompt)
	if err != nil {
		observability.UpstreamErrors.WithLabelValues("rest").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		return "", err
	}

	span.SetAttributes(attribute.Int("reply.length", len(text)))
	return text, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	p := prompt
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: &p}}}},
		GenerationConfig: generationConfig{
			Temperature:     Temperature,
			TopK:            TopK,
			TopP:            TopP,
			MaxOutputTokens: MaxOutputTokens,
		},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, redactKey(err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstream, res.StatusCode, bytes.TrimSpace(snippet))
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}

	return out.text()
}

// redactKey strips the request URL, which carries the API key, from
// transport errors before they reach the logs.
func redactKey(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}
