// Package export renders a completed analysis run as an XLSX report.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/04divya/credit-transfer-checker/internal/core/domain"
)

const sheetName = "Comparison"

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// BuildWorkbook produces XLSX bytes for a completed run. Runs that have not
// reached the complete state have nothing to report.
func (s *Service) BuildWorkbook(snapshot domain.AnalysisSnapshot) ([]byte, error) {
	if snapshot.State != domain.StateComplete {
		return nil, domain.WrapError(
			domain.ErrNoAnalysis,
			"build report",
			fmt.Errorf("analysis state is %q", snapshot.State),
		)
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	f.SetSheetName("Sheet1", sheetName)

	setCell := func(cell string, value any) {
		_ = f.SetCellValue(sheetName, cell, value)
	}

	setCell("A1", "Transcript")
	setCell("B1", snapshot.TranscriptID)
	setCell("A2", "Classification")
	setCell("B2", string(snapshot.TranscriptClassification))
	setCell("A3", "Total Required Credits")
	if snapshot.Credits.TotalRequired != nil {
		setCell("B3", *snapshot.Credits.TotalRequired)
	}
	setCell("A4", "Credits Passed")
	if snapshot.Credits.CreditsPassed != nil {
		setCell("B4", *snapshot.Credits.CreditsPassed)
	}
	setCell("A5", "Remaining Credits")
	if remaining, ok := snapshot.Credits.Remaining(); ok {
		setCell("B5", remaining)
	}

	header := 7
	setCell(fmt.Sprintf("A%d", header), "Structure File")
	setCell(fmt.Sprintf("B%d", header), "Classification")
	setCell(fmt.Sprintf("C%d", header), "BERT Similarity (%)")
	setCell(fmt.Sprintf("D%d", header), "TF-IDF Similarity (%)")

	for i, result := range snapshot.Results {
		row := header + 1 + i
		setCell(fmt.Sprintf("A%d", row), result.StructureDocumentID)
		setCell(fmt.Sprintf("B%d", row), string(result.Classification))
		setCell(fmt.Sprintf("C%d", row), round2(result.Scores.Embedding))
		setCell(fmt.Sprintf("D%d", row), round2(result.Scores.Lexical))
	}

	warningsRow := header + len(snapshot.Results) + 2
	for i, warning := range snapshot.Warnings {
		setCell(fmt.Sprintf("A%d", warningsRow+i), "Warning")
		setCell(fmt.Sprintf("B%d", warningsRow+i), warning)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
