package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessInsufficientText(t *testing.T) {
	gate := NewGate(50, 2)

	// Below the text floor nothing else matters, even a full field set.
	for _, textLen := range []int{0, 10, 49} {
		v := gate.Assess(Metrics{
			TextLength:            textLen,
			CriticalFieldsPresent: 3,
			TotalCriticalFields:   3,
			AllFieldsPresent:      6,
			TotalAllFields:        6,
		})
		assert.False(t, v.Sufficient, "text length %d", textLen)
		assert.Equal(t, ReasonInsufficientText, v.Reason)
	}
}

func TestAssessMissingCriticalFields(t *testing.T) {
	gate := NewGate(50, 2)

	v := gate.Assess(Metrics{
		TextLength:            500,
		CriticalFieldsPresent: 1,
		TotalCriticalFields:   3,
		AllFieldsPresent:      1,
		TotalAllFields:        6,
	})
	assert.False(t, v.Sufficient)
	assert.Equal(t, ReasonMissingCriticalFields, v.Reason)
}

func TestAssessSufficient(t *testing.T) {
	gate := NewGate(50, 2)

	v := gate.Assess(Metrics{
		TextLength:            50,
		CriticalFieldsPresent: 2,
		TotalCriticalFields:   3,
		AllFieldsPresent:      3,
		TotalAllFields:        6,
	})
	assert.True(t, v.Sufficient)
	assert.Empty(t, v.Reason)
	assert.InDelta(t, 0.5, v.ConfidenceScore, 1e-9)
}

func TestConfidenceScoreDoesNotGate(t *testing.T) {
	gate := NewGate(50, 2)

	// Low overall completeness is still sufficient when the critical floor
	// is met.
	v := gate.Assess(Metrics{
		TextLength:            200,
		CriticalFieldsPresent: 2,
		TotalCriticalFields:   3,
		AllFieldsPresent:      2,
		TotalAllFields:        6,
	})
	assert.True(t, v.Sufficient)
	assert.Less(t, v.ConfidenceScore, 0.5)
}

func TestConfidenceScoreClamped(t *testing.T) {
	gate := NewGate(50, 2)

	v := gate.Assess(Metrics{TextLength: 100, CriticalFieldsPresent: 2, AllFieldsPresent: 9, TotalAllFields: 6})
	assert.Equal(t, 1.0, v.ConfidenceScore)

	v = gate.Assess(Metrics{TextLength: 100, CriticalFieldsPresent: 2, AllFieldsPresent: 3, TotalAllFields: 0})
	assert.Equal(t, 0.0, v.ConfidenceScore)
}

func TestVerdictCarriesMetrics(t *testing.T) {
	gate := NewGate(50, 2)
	m := Metrics{TextLength: 10, CriticalFieldsPresent: 0, TotalCriticalFields: 3, TotalAllFields: 6}

	v := gate.Assess(m)
	assert.Equal(t, m, v.Metrics)
}
