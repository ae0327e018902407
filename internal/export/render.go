package export

import (
	"encoding/json"
	"io"

	"labsimplify/internal/domain"
)

// ContentType returns the MIME type of a rendered report.
func ContentType(format domain.ExportFormat) string {
	switch format {
	case domain.ExportCSV:
		return "text/csv; charset=utf-8"
	case domain.ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json; charset=utf-8"
	}
}

// Write renders report in format to w. JSON output is the bare report, without an
// API envelope.
func Write(w io.Writer, format domain.ExportFormat, report *domain.SimplifiedReport) error {
	switch format {
	case domain.ExportCSV:
		return WriteCSV(w, report)
	case domain.ExportXLSX:
		return WriteXLSX(w, report)
	case domain.ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return domain.ErrUnsupportedExportFormat
	}
}
