package domain

// StatusLevel is the coarse bucket a finding's free-text status falls into.
type StatusLevel string

const (
	StatusHigh    StatusLevel = "high"
	StatusLow     StatusLevel = "low"
	StatusNormal  StatusLevel = "normal"
	StatusUnknown StatusLevel = "unknown"
)

// SimplifyOutcome describes how a simplify call ended.
type SimplifyOutcome string

const (
	OutcomeStructured   SimplifyOutcome = "structured"
	OutcomeUnstructured SimplifyOutcome = "unstructured"
	OutcomeBackendError SimplifyOutcome = "backend_error"
)

// ExportFormat is a rendering of a SimplifiedReport returned to callers.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ParseExportFormat maps a user-supplied format name to an ExportFormat.
// An empty name selects JSON.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportJSON:
		return ExportJSON, nil
	case ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	default:
		return "", ErrUnsupportedExportFormat
	}
}
