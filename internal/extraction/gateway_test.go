package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborlabs/fleetdocs/internal/config"
)

type stubProvider struct {
	raw   string
	err   error
	calls int
}

func (p *stubProvider) AnalyzeText(context.Context, string, string) (string, error) {
	p.calls++
	return p.raw, p.err
}

func (p *stubProvider) Name() string { return "stub" }

func testGateway(primary, fallback Provider) *Gateway {
	g := NewGateway(config.ExtractionConfig{
		Provider:         "primary",
		FallbackProvider: "fallback",
		Timeout:          5 * time.Second,
	})
	if primary != nil {
		g.providers["primary"] = primary
	}
	if fallback != nil {
		g.providers["fallback"] = fallback
	}
	return g
}

const stubResponse = `{"document_name":"Safety Management Certificate","document_number":"SMC-2024-001","issue_date":"2024-03-01","category":"certificate","confidence":"high"}`

func TestAnalyzeEnrichesResult(t *testing.T) {
	g := testGateway(&stubProvider{raw: stubResponse}, nil)

	text := "SAFETY MANAGEMENT CERTIFICATE\nName of Ship: Northern Star\nIMO Number: 9312345\nThis is to certify that the safety management system has been audited."
	analysis, err := g.Analyze(context.Background(), "smc.txt", "text/plain", []byte(text))
	require.NoError(t, err)

	assert.Equal(t, "Safety Management Certificate", analysis.DocumentName)
	assert.Equal(t, len(text), analysis.RawTextLength)
	assert.NotEmpty(t, analysis.Summary)

	// The model left ship_name empty; the local heuristic patches it in.
	assert.Equal(t, "Northern Star", analysis.ShipName)
}

func TestAnalyzeFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &stubProvider{err: errors.New("rate limited")}
	fallback := &stubProvider{raw: stubResponse}
	g := testGateway(primary, fallback)

	analysis, err := g.Analyze(context.Background(), "smc.txt", "text/plain", []byte("some certificate text"))
	require.NoError(t, err)

	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, "SMC-2024-001", analysis.DocumentNumber)
}

func TestAnalyzeBothProvidersFail(t *testing.T) {
	g := testGateway(&stubProvider{err: errors.New("down")}, &stubProvider{err: errors.New("also down")})

	_, err := g.Analyze(context.Background(), "smc.txt", "text/plain", []byte("text"))
	assert.Error(t, err)
}

func TestAnalyzeUnconfiguredProvider(t *testing.T) {
	g := testGateway(nil, nil)

	_, err := g.Analyze(context.Background(), "smc.txt", "text/plain", []byte("text"))
	assert.Error(t, err)
}

func TestParseAnalysis(t *testing.T) {
	a, err := parseAnalysis(stubResponse)
	require.NoError(t, err)
	assert.Equal(t, "SMC-2024-001", a.DocumentNumber)

	fenced := "```json\n" + stubResponse + "\n```"
	a, err = parseAnalysis(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Safety Management Certificate", a.DocumentName)

	_, err = parseAnalysis("the document appears to be a certificate")
	assert.Error(t, err)
}

func TestFieldCounts(t *testing.T) {
	full := &DocumentAnalysis{
		DocumentName:   "SMC",
		DocumentNumber: "SMC-1",
		IssueDate:      "2024-03-01",
		ValidUntil:     "2029-03-01",
		HolderName:     "Nordic Shipping AS",
		ShipName:       "Northern Star",
	}
	critical, all := full.FieldCounts()
	assert.Equal(t, TotalCriticalFields, critical)
	assert.Equal(t, TotalAllFields, all)

	// Either governing date satisfies the critical date slot.
	dateOnly := &DocumentAnalysis{DocumentName: "SMC", ValidUntil: "2029-03-01"}
	critical, all = dateOnly.FieldCounts()
	assert.Equal(t, 2, critical)
	assert.Equal(t, 2, all)

	empty := &DocumentAnalysis{}
	critical, all = empty.FieldCounts()
	assert.Zero(t, critical)
	assert.Zero(t, all)
}
