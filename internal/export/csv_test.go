package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsimplify/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleReport() *domain.SimplifiedReport {
	report := domain.NewSimplifiedReport("Mostly normal, hemoglobin slightly low.")
	report.Findings = []domain.SimplifiedFinding{
		{Name: "Hemoglobin", Value: strPtr("10 g/dL"), Status: strPtr("Low"), Explanation: "Carries oxygen."},
		{Name: "Glucose", Explanation: "Sugar level, value not stated."},
	}
	report.Cautions = []string{"See a doctor if you feel faint."}
	return &report
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"Section", "Name", "Value", "Status", "Level", "Text"}, row)
}

func TestWriteCSV_Report(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, []string{"Summary", "", "", "", "", "Mostly normal, hemoglobin slightly low."}, rows[1])
	assert.Equal(t, []string{"Finding", "Hemoglobin", "10 g/dL", "Low", "low", "Carries oxygen."}, rows[2])
	assert.Equal(t, []string{"Finding", "Glucose", "", "", "unknown", "Sugar level, value not stated."}, rows[3])
	assert.Equal(t, []string{"Caution", "", "", "", "", "See a doctor if you feel faint."}, rows[4])
}

func TestWriteCSV_FallbackIncludesSnippet(t *testing.T) {
	report := domain.NewSimplifiedReport("raw text")
	report.Cautions = []string{"could not structure"}
	report.RawTextSnippet = strPtr("Hemoglobin 10")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, &report))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, SectionSnippet, rows[3][0])
	assert.Equal(t, "Hemoglobin 10", rows[3][5])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_Lab_Report", SanitizeFilename("My Lab Report"))
	assert.Equal(t, "a_b", SanitizeFilename("a!!!b"))
	assert.Equal(t, "", SanitizeFilename("***"))
	assert.Len(t, SanitizeFilename(strings.Repeat("x", 150)), 100)
}

func TestBuildFilename(t *testing.T) {
	date := time.Now().Format("2006-01-02")

	assert.Equal(t, "blood_panel_"+date+".csv", BuildFilename("blood panel.pdf", domain.ExportCSV))
	assert.Equal(t, "lab_report_"+date+".xlsx", BuildFilename("", domain.ExportXLSX))
}
