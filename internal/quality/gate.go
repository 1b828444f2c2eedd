// Package quality decides whether an AI extraction result can be trusted
// enough to file a document without human review.
package quality

type Gate struct {
	minTextLength     int
	minCriticalFields int
}

func NewGate(minTextLength, minCriticalFields int) *Gate {
	return &Gate{
		minTextLength:     minTextLength,
		minCriticalFields: minCriticalFields,
	}
}

// Metrics are the raw counts produced by the extraction pass.
type Metrics struct {
	TextLength            int `json:"text_length"`
	CriticalFieldsPresent int `json:"critical_fields_present"`
	TotalCriticalFields   int `json:"total_critical_fields"`
	AllFieldsPresent      int `json:"all_fields_present"`
	TotalAllFields        int `json:"total_all_fields"`
}

type Verdict struct {
	Sufficient      bool    `json:"sufficient"`
	ConfidenceScore float64 `json:"confidence_score"`
	Reason          string  `json:"reason,omitempty"`
	Metrics         Metrics `json:"metrics"`
}

const (
	ReasonInsufficientText      = "insufficient_text"
	ReasonMissingCriticalFields = "missing_critical_fields"
)

// Assess classifies an extraction. A verdict is sufficient only when the
// source produced enough text to read at all and the critical field count
// clears the floor; the confidence score is informational and never gates.
func (g *Gate) Assess(m Metrics) Verdict {
	v := Verdict{
		ConfidenceScore: confidence(m),
		Metrics:         m,
	}

	switch {
	case m.TextLength < g.minTextLength:
		v.Reason = ReasonInsufficientText
	case m.CriticalFieldsPresent < g.minCriticalFields:
		v.Reason = ReasonMissingCriticalFields
	default:
		v.Sufficient = true
	}

	return v
}

func confidence(m Metrics) float64 {
	if m.TotalAllFields <= 0 {
		return 0
	}
	score := float64(m.AllFieldsPresent) / float64(m.TotalAllFields)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
