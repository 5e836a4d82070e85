// Package render draws the projected batch as a terminal table.
package render

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/rakapratama/permit-extractor/constants"
	"github.com/rakapratama/permit-extractor/internal/projector"
)

// Table writes the rows for a document type: filename first, then the
// profile's display columns, then the per-file status. Failed files show
// their error message in the status column.
func Table(w io.Writer, dt constants.DocumentType, rows []projector.Row) {
	cols := projector.ResolveColumns(dt)

	headers := make([]string, 0, len(cols)+2)
	headers = append(headers, "Filename")
	headers = append(headers, cols...)
	headers = append(headers, "Status")

	t := tablewriter.NewWriter(w)
	t.SetHeader(headers)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)

	for _, r := range rows {
		row := make([]string, 0, len(headers))
		row = append(row, r.Filename)
		for _, c := range cols {
			v := r.Cells[c]
			if v == "" {
				v = projector.DisplayPlaceholder
			}
			row = append(row, v)
		}
		status := string(r.Status)
		if r.Status == constants.StatusError && r.Error != "" {
			status = status + ": " + r.Error
		}
		row = append(row, status)
		t.Append(row)
	}
	t.Render()
}
