package domain

import "strings"

// ReportInput is the raw material for one analysis: an uploaded document, pasted
// text, or both.
type ReportInput struct {
	Document     []byte
	DocumentName string
	Text         string
}

// HasDocument reports whether a non-empty document payload was supplied.
func (in ReportInput) HasDocument() bool {
	return len(in.Document) > 0
}

// HasText reports whether the pasted text is non-empty after trimming.
func (in ReportInput) HasText() bool {
	return strings.TrimSpace(in.Text) != ""
}

// SimplifiedFinding is one lab value and its plain-language explanation.
type SimplifiedFinding struct {
	Name        string  `json:"name" example:"Hemoglobin"`
	Value       *string `json:"value,omitempty" example:"10 g/dL"`
	Status      *string `json:"status,omitempty" example:"low"`
	Explanation string  `json:"explanation" example:"Hemoglobin carries oxygen in the blood; a low value can cause tiredness."`
}

// StatusLevel buckets the free-text status into high, low, normal or unknown.
func (f SimplifiedFinding) StatusLevel() StatusLevel {
	if f.Status == nil {
		return StatusUnknown
	}
	s := strings.ToLower(*f.Status)
	switch {
	case strings.Contains(s, "high"):
		return StatusHigh
	case strings.Contains(s, "low"):
		return StatusLow
	case strings.Contains(s, "normal"), strings.Contains(s, "within"):
		return StatusNormal
	default:
		return StatusUnknown
	}
}

// SimplifiedReport is the structured result handed back to callers. Findings and
// Cautions are never nil so that renderers never need a nil check.
type SimplifiedReport struct {
	Summary        string              `json:"summary" example:"Most values are within typical ranges; hemoglobin is slightly low."`
	Findings       []SimplifiedFinding `json:"findings"`
	Cautions       []string            `json:"cautions" example:"See a doctor if you feel unusually tired or short of breath."`
	RawTextSnippet *string             `json:"rawTextSnippet,omitempty"`
}

// NewSimplifiedReport returns a report with empty, non-nil sequences.
func NewSimplifiedReport(summary string) SimplifiedReport {
	return SimplifiedReport{
		Summary:  summary,
		Findings: []SimplifiedFinding{},
		Cautions: []string{},
	}
}
