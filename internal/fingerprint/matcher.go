// Package fingerprint decides whether a newly analyzed document is the same
// physical document as one already stored for the ship.
package fingerprint

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/harborlabs/fleetdocs/internal/config"
	"github.com/harborlabs/fleetdocs/internal/extraction"
	"github.com/harborlabs/fleetdocs/internal/models"
)

// Candidate pairs an existing document with a similarity score against the
// pending upload. Transient: it only ever lives inside a pending-resolution
// response.
type Candidate struct {
	DocumentID uuid.UUID `json:"existing_document_id"`
	Similarity float64   `json:"similarity"`
}

type Matcher struct {
	threshold        float64
	numberMatchScore float64
	nameWeight       float64
}

func NewMatcher(cfg config.FingerprintConfig) *Matcher {
	return &Matcher{
		threshold:        cfg.Threshold,
		numberMatchScore: cfg.NumberMatchScore,
		nameWeight:       cfg.NameWeight,
	}
}

// FindDuplicates scores the candidate against every existing document and
// returns the ones above the threshold, highest similarity first. Pure
// function: no side effects, no repository access.
func (m *Matcher) FindDuplicates(candidate *extraction.DocumentAnalysis, existing []models.ShipDocument) []Candidate {
	var out []Candidate
	for _, doc := range existing {
		sim := m.similarity(candidate, &doc)
		if sim > m.threshold {
			out = append(out, Candidate{DocumentID: doc.ID, Similarity: sim})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	return out
}

func (m *Matcher) similarity(candidate *extraction.DocumentAnalysis, doc *models.ShipDocument) float64 {
	// An exact document-number match is near-certain identity.
	if candidate.DocumentNumber != "" && doc.DocumentNumber != nil && *doc.DocumentNumber != "" {
		if strings.EqualFold(strings.TrimSpace(candidate.DocumentNumber), strings.TrimSpace(*doc.DocumentNumber)) {
			return m.numberMatchScore
		}
	}
	return m.nameWeight * nameSimilarity(candidate.DocumentName, doc.DocumentName)
}

// nameSimilarity is 1 minus the normalized edit distance between the two
// names after case folding and whitespace collapsing.
func nameSimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
