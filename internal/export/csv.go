package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"labsimplify/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Section labels for the first CSV column.
const (
	SectionSummary = "Summary"
	SectionFinding = "Finding"
	SectionCaution = "Caution"
	SectionSnippet = "Source Excerpt"
)

// columns defines the CSV header row.
var columns = []string{
	"Section",
	"Name",
	"Value",
	"Status",
	"Level",
	"Text",
}

// Writer wraps csv.Writer for exporting a report as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteReport writes one row for the summary, one per finding and caution, and a
// final row for the source excerpt when the report carries one.
func (w *Writer) WriteReport(report *domain.SimplifiedReport) error {
	for _, row := range reportRows(report) {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and report rows to w.
func WriteCSV(w io.Writer, report *domain.SimplifiedReport) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteReport(report); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func reportRows(report *domain.SimplifiedReport) [][]string {
	rows := make([][]string, 0, 2+len(report.Findings)+len(report.Cautions))
	rows = append(rows, []string{SectionSummary, "", "", "", "", report.Summary})
	for i := range report.Findings {
		rows = append(rows, findingRow(&report.Findings[i]))
	}
	for _, c := range report.Cautions {
		rows = append(rows, []string{SectionCaution, "", "", "", "", c})
	}
	if report.RawTextSnippet != nil {
		rows = append(rows, []string{SectionSnippet, "", "", "", "", *report.RawTextSnippet})
	}
	return rows
}

func findingRow(f *domain.SimplifiedFinding) []string {
	return []string{
		SectionFinding,
		f.Name,
		deref(f.Value),
		deref(f.Status),
		string(f.StatusLevel()),
		f.Explanation,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}. The document's own
// extension is dropped and an empty name becomes "lab_report".
func BuildFilename(documentName string, format domain.ExportFormat) string {
	base := strings.TrimSuffix(documentName, filepath.Ext(documentName))
	sanitized := SanitizeFilename(base)
	if sanitized == "" {
		sanitized = "lab_report"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, format)
}

