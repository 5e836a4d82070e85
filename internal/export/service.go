// Package export produces the client-side artifacts: CSV and XLSX files from
// projected export records, and a raw JSON dump of the full batch result.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rakapratama/permit-extractor/internal/entity"
)

// Service writes export artifacts. It is stateless beyond its logger.
type Service struct {
	sheetName string
	logger    *slog.Logger
}

func NewService(sheetName string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheetName == "" {
		sheetName = "Results"
	}
	return &Service{sheetName: sheetName, logger: logger}
}

// WriteCSV writes the header row and data rows. The header is always
// emitted, even for an empty batch, so the file is never header-less.
func (s *Service) WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	start := time.Now()

	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}

	s.logger.Info("export.csv.ok",
		"rows", len(rows),
		"columns", len(headers),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// WriteJSON dumps the full batch result as indented JSON.
func (s *Service) WriteJSON(w io.Writer, batch *entity.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		return fmt.Errorf("encode batch json: %w", err)
	}
	s.logger.Info("export.json.ok", "items", len(batch.Items))
	return nil
}

// BuildXLSX returns an XLSX workbook (as bytes) with the header row and data
// rows on a single sheet. Like the CSV path, headers survive an empty batch.
func (s *Service) BuildXLSX(headers []string, rows [][]string) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	sheet := s.sheetName
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen columns so names and passport numbers stay readable.
	if len(headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(headers))
		_ = f.SetColWidth(sheet, "A", "A", 6)
		_ = f.SetColWidth(sheet, "B", last, 22)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"columns", len(headers),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
