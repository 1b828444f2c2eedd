package extraction

import "context"

// Provider abstracts the AI model that turns document text into structured
// metadata (OpenAI, Anthropic, ...).
type Provider interface {
	// AnalyzeText prompts the model with extracted document text and returns
	// the raw JSON payload it produced.
	AnalyzeText(ctx context.Context, filename, text string) (string, error)
	Name() string
}

const systemPrompt = `You extract metadata from maritime documents (ship certificates, survey reports, crew passports).
Respond with a single JSON object and nothing else, using exactly these keys:
{"document_name": string, "document_number": string or "", "issue_date": "YYYY-MM-DD" or "", "valid_until": "YYYY-MM-DD" or "", "holder_name": string or "", "ship_name": string or "", "category": "certificate" or "other", "confidence": "high"|"medium"|"low"}
Leave a field empty when the document does not state it. Never invent values.`
