package entity

import (
	"fmt"

	"github.com/rakapratama/permit-extractor/constants"
)

// ExtractionRecord maps extracted field names to values for one document.
// Keys are whatever the extraction service emitted; absent keys are a valid,
// expected state, not an error. Immutable once received.
type ExtractionRecord map[string]string

// ResultItem is the per-file outcome inside a batch. Status is terminal once
// set: either a record or an error message, never both meaningfully.
type ResultItem struct {
	Filename     string                 `json:"filename"`
	Status       constants.ResultStatus `json:"status"`
	Record       ExtractionRecord       `json:"data,omitempty"`
	ErrorMessage string                 `json:"error,omitempty"`
}

// DownloadLinks carries server-relative paths to generated artifacts.
type DownloadLinks struct {
	ExcelPath string `json:"excel,omitempty"`
	ZipPath   string `json:"zip,omitempty"`
}

// BatchResult is the extraction service's response for one submission. It is
// created once per submission and held until the next submission overwrites
// it; there is no persistence beyond the session.
type BatchResult struct {
	Timestamp      string            `json:"timestamp,omitempty"`
	TotalFiles     int               `json:"total_files"`
	ProcessedFiles int               `json:"processed_files"`
	FailedFiles    int               `json:"failed_files"`
	Items          []ResultItem      `json:"results"`
	DownloadLinks  DownloadLinks     `json:"download_links,omitempty"`
	RenamedFiles   map[string]string `json:"renamed_files,omitempty"`
	FileInfo       map[string]any    `json:"file_info,omitempty"`
}

// Validate enforces the batch-level sanity invariants:
// processed+failed never exceeds total, counts are non-negative, and when
// items are populated there is exactly one per submitted file.
func (b *BatchResult) Validate() error {
	if b.TotalFiles < 0 || b.ProcessedFiles < 0 || b.FailedFiles < 0 {
		return fmt.Errorf("negative file counts: total=%d processed=%d failed=%d",
			b.TotalFiles, b.ProcessedFiles, b.FailedFiles)
	}
	if b.ProcessedFiles+b.FailedFiles > b.TotalFiles {
		return fmt.Errorf("processed (%d) + failed (%d) exceeds total (%d)",
			b.ProcessedFiles, b.FailedFiles, b.TotalFiles)
	}
	if len(b.Items) > 0 && len(b.Items) != b.TotalFiles {
		return fmt.Errorf("got %d result items for %d files", len(b.Items), b.TotalFiles)
	}
	for i, it := range b.Items {
		if it.Status != constants.StatusSuccess && it.Status != constants.StatusError {
			return fmt.Errorf("item %d (%s): unknown status %q", i, it.Filename, it.Status)
		}
	}
	return nil
}

// SucceededItems returns the items with a success status, preserving the
// original submission order.
func (b *BatchResult) SucceededItems() []ResultItem {
	var out []ResultItem
	for _, it := range b.Items {
		if it.Status == constants.StatusSuccess {
			out = append(out, it)
		}
	}
	return out
}
