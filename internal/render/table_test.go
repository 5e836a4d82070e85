package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rakapratama/permit-extractor/constants"
	"github.com/rakapratama/permit-extractor/internal/entity"
	"github.com/rakapratama/permit-extractor/internal/projector"
)

func TestTable(t *testing.T) {
	batch := &entity.BatchResult{
		TotalFiles:     2,
		ProcessedFiles: 1,
		FailedFiles:    1,
		Items: []entity.ResultItem{
			{
				Filename: "budi.pdf",
				Status:   constants.StatusSuccess,
				Record:   entity.ExtractionRecord{"Name": "BUDI SANTOSO", "Passport No": "A123"},
			},
			{
				Filename:     "bad.pdf",
				Status:       constants.StatusError,
				ErrorMessage: "unreadable",
			},
		},
	}
	rows := projector.ProjectBatch(batch, constants.EVLN)

	var buf bytes.Buffer
	Table(&buf, constants.EVLN, rows)
	out := buf.String()

	assert.Contains(t, out, "Filename")
	assert.Contains(t, out, "Passport No")
	assert.Contains(t, out, "BUDI SANTOSO")
	assert.Contains(t, out, "A123")
	assert.Contains(t, out, "error: unreadable")
	// missing fields render as the display placeholder
	assert.Contains(t, out, "-")
}
