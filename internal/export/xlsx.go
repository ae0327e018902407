package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"labsimplify/internal/domain"
)

const (
	summarySheet  = "Summary"
	findingsSheet = "Findings"
)

var findingHeaders = []string{"Name", "Value", "Status", "Level", "Explanation"}

// levelFills shades a finding row by its status level.
var levelFills = map[domain.StatusLevel]string{
	domain.StatusHigh:   "FDE2E1",
	domain.StatusLow:    "FFF4CE",
	domain.StatusNormal: "E3F6E5",
}

// WriteXLSX writes a two-sheet workbook: the summary with cautions and source excerpt,
// and one row per finding.
func WriteXLSX(w io.Writer, report *domain.SimplifiedReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(findingsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	if err := writeSummarySheet(f, report, bold); err != nil {
		return err
	}
	if err := writeFindingsSheet(f, report, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report *domain.SimplifiedReport, bold int) error {
	rows := [][]interface{}{{SectionSummary, report.Summary}}
	for _, c := range report.Cautions {
		rows = append(rows, []interface{}{SectionCaution, c})
	}
	if report.RawTextSnippet != nil {
		rows = append(rows, []interface{}{SectionSnippet, *report.RawTextSnippet})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(rows)), bold)
	_ = f.SetColWidth(summarySheet, "A", "A", 16)
	_ = f.SetColWidth(summarySheet, "B", "B", 100)
	return nil
}

func writeFindingsSheet(f *excelize.File, report *domain.SimplifiedReport, bold int) error {
	if err := f.SetSheetRow(findingsSheet, "A1", &findingHeaders); err != nil {
		return fmt.Errorf("writing findings header: %w", err)
	}
	_ = f.SetCellStyle(findingsSheet, "A1", "E1", bold)

	fills := map[domain.StatusLevel]int{}
	for level, color := range levelFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return fmt.Errorf("creating style: %w", err)
		}
		fills[level] = style
	}

	for i := range report.Findings {
		fd := &report.Findings[i]
		level := fd.StatusLevel()
		row := []interface{}{fd.Name, deref(fd.Value), deref(fd.Status), string(level), fd.Explanation}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(findingsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing finding row: %w", err)
		}
		if style, ok := fills[level]; ok {
			_ = f.SetCellStyle(findingsSheet, fmt.Sprintf("A%d", i+2), fmt.Sprintf("E%d", i+2), style)
		}
	}

	_ = f.SetColWidth(findingsSheet, "A", "A", 22)
	_ = f.SetColWidth(findingsSheet, "B", "D", 14)
	_ = f.SetColWidth(findingsSheet, "E", "E", 80)
	return nil
}
