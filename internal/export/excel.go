// Package export writes batch analysis results to an Excel workbook:
// a summary sheet, a ranked results sheet, per-dimension contributions,
// and the checker findings.
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Row pairs one analysis report with the label it is listed under,
// usually the job description or resume file name.
type Row struct {
	Label  string
	Report types.AnalysisReport
}

// Sheet names
const (
	sheetSummary    = "Summary"
	sheetRankings   = "Rankings"
	sheetDimensions = "Dimensions"
	sheetFindings   = "Findings"
)

// Grade fill colors for the rankings sheet
var gradeFills = map[string]string{
	"A": "C6EFCE",
	"B": "FFEB9C",
	"C": "FFEB9C",
	"D": "FFC7CE",
	"F": "FF9999",
}

// WriteWorkbook renders the rows into an .xlsx workbook at path, appending
// the extension when missing. Rows are ranked by composite total, highest
// first, ties by label.
func WriteWorkbook(rows []Row, path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	ranked := append([]Row(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Report.Composite.Total != ranked[j].Report.Composite.Total {
			return ranked[i].Report.Composite.Total > ranked[j].Report.Composite.Total
		}
		return ranked[i].Label < ranked[j].Label
	})

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	for _, name := range []string{sheetRankings, sheetDimensions, sheetFindings} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return fmt.Errorf("building styles: %w", err)
	}
	if err := writeSummary(f, styles, ranked); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if err := writeRankings(f, styles, ranked); err != nil {
		return fmt.Errorf("writing rankings: %w", err)
	}
	if err := writeDimensions(f, styles, ranked); err != nil {
		return fmt.Errorf("writing dimensions: %w", err)
	}
	if err := writeFindings(f, styles, ranked); err != nil {
		return fmt.Errorf("writing findings: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// styleSet holds the style IDs shared across sheets
type styleSet struct {
	header int
	label  int
	wrap   int
	grades map[string]int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	s := styleSet{grades: make(map[string]int, len(gradeFills))}

	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}
	s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, err
	}
	s.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return s, err
	}
	for grade, color := range gradeFills {
		id, styleErr := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if styleErr != nil {
			return s, styleErr
		}
		s.grades[grade] = id
	}
	return s, nil
}

func writeSummary(f *excelize.File, styles styleSet, rows []Row) error {
	_ = f.SetColWidth(sheetSummary, "A", "A", 26)
	_ = f.SetColWidth(sheetSummary, "B", "B", 40)

	grades := map[string]int{}
	var total, highest, lowest float64
	for i, row := range rows {
		score := row.Report.Composite.Total
		grades[row.Report.Composite.Grade]++
		total += score
		if i == 0 || score > highest {
			highest = score
		}
		if i == 0 || score < lowest {
			lowest = score
		}
	}

	line := 1
	put := func(label string, value any, style int) {
		cellA := fmt.Sprintf("A%d", line)
		_ = f.SetCellValue(sheetSummary, cellA, label)
		if style != 0 {
			_ = f.SetCellStyle(sheetSummary, cellA, cellA, style)
		}
		if value != nil {
			_ = f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", line), value)
		}
		line++
	}

	put("Compatibility Analysis", nil, styles.header)
	_ = f.MergeCell(sheetSummary, "A1", "B1")
	line++
	put("Generated:", time.Now().Format("2006-01-02 15:04:05"), styles.label)
	put("Documents scored:", len(rows), styles.label)
	line++
	for _, grade := range []string{"A", "B", "C", "D", "F"} {
		put("Grade "+grade+":", grades[grade], 0)
	}
	if len(rows) > 0 {
		line++
		put("Average score:", fmt.Sprintf("%.2f", total/float64(len(rows))), styles.label)
		put("Highest score:", fmt.Sprintf("%.2f", highest), 0)
		put("Lowest score:", fmt.Sprintf("%.2f", lowest), 0)
	}
	return nil
}

func writeRankings(f *excelize.File, styles styleSet, rows []Row) error {
	headers := []string{"Rank", "Document", "Total", "Grade", "Semantic Fit", "Overlap", "Penalty", "Capped", "Degraded"}
	widths := []float64{7, 32, 10, 8, 13, 10, 11, 9, 10}
	for col, header := range headers {
		letter := string(rune('A' + col))
		_ = f.SetColWidth(sheetRankings, letter, letter, widths[col])
		cell := letter + "1"
		_ = f.SetCellValue(sheetRankings, cell, header)
		_ = f.SetCellStyle(sheetRankings, cell, cell, styles.header)
	}

	for i, row := range rows {
		line := i + 2
		report := row.Report
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("A%d", line), i+1)
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("B%d", line), row.Label)
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("C%d", line), report.Composite.Total)
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("D%d", line), report.Composite.Grade)
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("E%d", line),
			fmt.Sprintf("%.1f/%.0f", report.SemanticFit.Score, report.SemanticFit.MaxPoints))
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("F%d", line),
			fmt.Sprintf("%.0f%%", report.SemanticFit.OverlapRatio*100))
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("G%d", line), string(report.Penalty.Tier))
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("H%d", line), report.Composite.Capped)
		_ = f.SetCellValue(sheetRankings, fmt.Sprintf("I%d", line), report.Degraded)

		if style, ok := styles.grades[report.Composite.Grade]; ok {
			_ = f.SetCellStyle(sheetRankings, fmt.Sprintf("A%d", line), fmt.Sprintf("I%d", line), style)
		}
	}

	if len(rows) > 0 {
		_ = f.AutoFilter(sheetRankings, fmt.Sprintf("A1:I%d", len(rows)+1), []excelize.AutoFilterOptions{})
	}
	return f.SetPanes(sheetRankings, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeDimensions(f *excelize.File, styles styleSet, rows []Row) error {
	headers := []string{"Document", "Dimension", "Raw", "Max", "Weight", "Contribution", "Penalized"}
	widths := []float64{32, 22, 8, 8, 8, 13, 10}
	for col, header := range headers {
		letter := string(rune('A' + col))
		_ = f.SetColWidth(sheetDimensions, letter, letter, widths[col])
		cell := letter + "1"
		_ = f.SetCellValue(sheetDimensions, cell, header)
		_ = f.SetCellStyle(sheetDimensions, cell, cell, styles.header)
	}

	line := 2
	for _, row := range rows {
		for _, dim := range row.Report.Composite.Dimensions {
			_ = f.SetCellValue(sheetDimensions, fmt.Sprintf("A%d", line), row.Label)
			_ = f.SetCellValue(sheetDimensions, fmt.Sprintf("B%d", line), dim.Dimension)
			_ = f.SetCellValue(sheetDimensions, fmt.Sprintf("C%d", line), dim.Raw)
			_ = f.SetCellValue(sheetDimensions, fmt.Sprintf("D%d", line), dim.MaxPoints)
			_ = f.SetCellValue(sheetDimensions, fmt.Sprintf("E%d", line), dim.Weight)
			_ = f.SetCellValue(sheetDimensions, fmt.Sprintf("F%d", line), dim.Contribution)
			_ = f.SetCellValue(sheetDimensions, fmt.Sprintf("G%d", line), dim.Penalized)
			line++
		}
	}
	return f.SetPanes(sheetDimensions, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeFindings(f *excelize.File, styles styleSet, rows []Row) error {
	headers := []string{"Document", "Dimension", "Finding"}
	widths := []float64{32, 22, 70}
	for col, header := range headers {
		letter := string(rune('A' + col))
		_ = f.SetColWidth(sheetFindings, letter, letter, widths[col])
		cell := letter + "1"
		_ = f.SetCellValue(sheetFindings, cell, header)
		_ = f.SetCellStyle(sheetFindings, cell, cell, styles.header)
	}

	line := 2
	for _, row := range rows {
		for _, res := range row.Report.Results {
			for _, finding := range res.Findings {
				_ = f.SetCellValue(sheetFindings, fmt.Sprintf("A%d", line), row.Label)
				_ = f.SetCellValue(sheetFindings, fmt.Sprintf("B%d", line), res.Dimension)
				_ = f.SetCellValue(sheetFindings, fmt.Sprintf("C%d", line), finding)
				_ = f.SetCellStyle(sheetFindings, fmt.Sprintf("C%d", line), fmt.Sprintf("C%d", line), styles.wrap)
				line++
			}
		}
	}
	return nil
}
