package simplifier

import "strings"

// DefaultMaxInputChars bounds the report text embedded in the prompt.
const DefaultMaxInputChars = 4000

const instructionBlock = `You are a clinical explainer that rewrites medical lab reports into plain language for laypeople.
- Extract key lab values (e.g., Hemoglobin, WBC, Platelets, Creatinine, ALT/AST, A1C, LDL, TSH, etc.).
- For each, include value if present, status (low/high/normal) relative to typical adult reference, and a 1-2 sentence lay explanation with possible common causes. Avoid definitive diagnoses.
- Add a short overall summary.
- Add 2-5 safety cautions (e.g., see a doctor if...).
- Keep neutral, non-alarming tone. Avoid providing medical advice beyond general guidance.
Return strict JSON with the following shape:
{
  "summary": string,
  "findings": Array<{"name": string, "value"?: string, "status"?: string, "explanation": string}>,
  "cautions": string[]
}`

const reportHeader = "Report text to analyze (may be partial or noisy):\n\n"

// BuildPrompt embeds already-truncated report text after the fixed instruction block.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.Grow(len(instructionBlock) + 2 + len(reportHeader) + len(text))
	sb.WriteString(instructionBlock)
	sb.WriteString("\n\n")
	sb.WriteString(reportHeader)
	sb.WriteString(text)
	return sb.String()
}

// Truncate returns at most n characters of s, counted in runes so that multi-byte
// characters are never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ExtractJSON returns the candidate payload: the span from the first '{' to the last
// '}' when both exist in order, otherwise the whole trimmed text.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		return s[start : end+1]
	}
	return s
}
