package extraction

// DocumentAnalysis is the structured result of one extraction pass over one
// uploaded file. It is ephemeral: consumed by the quality gate and the
// fingerprint matcher, round-tripped through the client while a duplicate
// resolution is pending, and never persisted as-is.
type DocumentAnalysis struct {
	DocumentName   string `json:"document_name"`
	DocumentNumber string `json:"document_number,omitempty"`
	IssueDate      string `json:"issue_date,omitempty"`  // YYYY-MM-DD
	ValidUntil     string `json:"valid_until,omitempty"` // YYYY-MM-DD
	HolderName     string `json:"holder_name,omitempty"`
	ShipName       string `json:"ship_name,omitempty"`
	Category       string `json:"category"`   // certificate | other
	Confidence     string `json:"confidence"` // high | medium | low
	RawTextLength  int    `json:"raw_text_length"`
	Summary        string `json:"summary,omitempty"`
}

// Critical fields are the ones a document is useless without: its name,
// its number, and a governing date (either one counts).
const TotalCriticalFields = 3

// TotalAllFields is the size of the full extractable field set.
const TotalAllFields = 6

// FieldCounts reports how many critical and total fields the analysis
// actually filled in, for the quality gate.
func (a *DocumentAnalysis) FieldCounts() (critical, all int) {
	if a.DocumentName != "" {
		critical++
		all++
	}
	if a.DocumentNumber != "" {
		critical++
		all++
	}
	if a.IssueDate != "" || a.ValidUntil != "" {
		critical++
	}
	if a.IssueDate != "" {
		all++
	}
	if a.ValidUntil != "" {
		all++
	}
	if a.HolderName != "" {
		all++
	}
	if a.ShipName != "" {
		all++
	}
	return critical, all
}
