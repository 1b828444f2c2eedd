package extraction

import (
	"regexp"
	"strings"
)

// Patterns a ship name shows up under in certificate text. Label forms first;
// the M/V prefix form is the weakest signal and runs last.
var shipNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:name\s+of\s+(?:ship|vessel))\s*[:\-]?\s*([A-Z][A-Za-z0-9 .'\-]{1,40})`),
	regexp.MustCompile(`(?i:(?:ship|vessel)(?:'s)?\s+name)\s*[:\-]?\s*([A-Z][A-Za-z0-9 .'\-]{1,40})`),
	regexp.MustCompile(`\b(?i:m/?v|m\.v\.)\s+((?:[A-Z][A-Za-z0-9.'\-]*\s?){1,4})`),
}

// DeriveShipName scans extracted document text for a ship name. It is a pure
// local heuristic: the backfill scanner runs it against stored summaries with
// no model call, and the gateway uses it to patch analyses where the model
// left ship_name empty.
func DeriveShipName(text string) string {
	for _, re := range shipNamePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if name := cleanShipName(m[1]); name != "" {
			return name
		}
	}
	return ""
}

func cleanShipName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	// A label match often swallows the rest of the line; cut at the sentence
	// boundary and at filler words that never appear inside a real name.
	if i := strings.Index(name, ". "); i > 0 {
		name = name[:i]
	}
	for _, stop := range []string{" IMO", " Flag", " Port", " Gross", " Call"} {
		if i := strings.Index(name, stop); i > 0 {
			name = name[:i]
		}
	}
	name = strings.Trim(name, " .:-")
	if len(name) < 2 {
		return ""
	}
	return name
}
