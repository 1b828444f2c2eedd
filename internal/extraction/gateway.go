package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/harborlabs/fleetdocs/internal/config"
	"github.com/harborlabs/fleetdocs/pkg/textextract"
)

const summaryMaxLen = 4000

// Analyzer is what the upload pipeline sees: one file in, one structured
// analysis out.
type Analyzer interface {
	Analyze(ctx context.Context, filename, fileType string, data []byte) (*DocumentAnalysis, error)
}

// Gateway routes analysis calls to a primary provider with optional fallback,
// wraps them in a circuit breaker, and bounds them with a timeout. The local
// text pre-pass always runs, so even a failed model call leaves us with the
// raw text length signal.
type Gateway struct {
	providers map[string]Provider
	primary   string
	fallback  string
	timeout   time.Duration
	breaker   *gobreaker.CircuitBreaker[string]
}

func NewGateway(cfg config.ExtractionConfig) *Gateway {
	g := &Gateway{
		providers: make(map[string]Provider),
		primary:   cfg.Provider,
		fallback:  cfg.FallbackProvider,
		timeout:   cfg.Timeout,
	}

	if cfg.OpenAIKey != "" {
		g.providers["openai"] = NewOpenAIProvider(cfg.OpenAIKey, cfg.Model)
	}
	if cfg.AnthropicKey != "" {
		g.providers["anthropic"] = NewAnthropicProvider(cfg.AnthropicKey, cfg.Model)
	}

	g.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "extraction",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return g
}

func (g *Gateway) Analyze(ctx context.Context, filename, fileType string, data []byte) (*DocumentAnalysis, error) {
	text := ""
	if extracted, err := textextract.Extract(bytes.NewReader(data), int64(len(data)), fileType); err == nil {
		text = extracted.Content
	} else {
		slog.Warn("local text extraction failed", "filename", filename, "error", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.analyzeWithFallback(ctx, filename, text)
	if err != nil {
		return nil, err
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}

	analysis.RawTextLength = len(text)
	analysis.Summary = textextract.Summarize(text, summaryMaxLen)
	if analysis.ShipName == "" {
		analysis.ShipName = DeriveShipName(text)
	}
	if analysis.Category == "" {
		analysis.Category = "certificate"
	}

	return analysis, nil
}

func (g *Gateway) analyzeWithFallback(ctx context.Context, filename, text string) (string, error) {
	raw, err := g.analyzeWith(ctx, g.primary, filename, text)
	if err != nil && g.fallback != "" && g.fallback != g.primary {
		slog.Warn("primary extraction provider failed, trying fallback",
			"primary", g.primary,
			"fallback", g.fallback,
			"error", err,
		)
		return g.analyzeWith(ctx, g.fallback, filename, text)
	}
	return raw, err
}

func (g *Gateway) analyzeWith(ctx context.Context, name, filename, text string) (string, error) {
	p, ok := g.providers[name]
	if !ok {
		return "", fmt.Errorf("extraction provider %q not configured", name)
	}
	return g.breaker.Execute(func() (string, error) {
		return p.AnalyzeText(ctx, filename, text)
	})
}

// parseAnalysis tolerates models that wrap their JSON in markdown fences.
func parseAnalysis(raw string) (*DocumentAnalysis, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}

	var analysis DocumentAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, err
	}
	if analysis.DocumentName == "" && analysis.DocumentNumber == "" {
		// keep going; the quality gate routes empty extractions to manual input
		slog.Debug("extraction returned no identifying fields")
	}
	return &analysis, nil
}
