// Package projector turns a raw extraction batch plus a document-type tag
// into renderable table rows and export-ready records. It is a pure
// in-memory transform: it never fails, and a missing field is a valid
// display state, not an error.
package projector

import (
	"strconv"
	"strings"

	"github.com/rakapratama/permit-extractor/constants"
	"github.com/rakapratama/permit-extractor/internal/entity"
)

// Placeholders for unresolved fields.
const (
	DisplayPlaceholder = "-"
	ExportPlaceholder  = ""
)

// Row is one table row: the projected cells plus the item's identity and
// outcome, so the table and the search filter can show failed files too.
type Row struct {
	Filename string
	Status   constants.ResultStatus
	Error    string
	Cells    map[string]string
}

// ResolveColumns returns the ordered display column headers for a document
// type, falling back to the generic profile for unrecognized tags.
func ResolveColumns(dt constants.DocumentType) []string {
	p := profileFor(dt)
	cols := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		cols[i] = c.Header
	}
	return cols
}

// resolve applies one column rule to a record: primary key, fallback keys in
// listed order, then the split transform on the first available source.
func resolve(rule ColumnRule, rec entity.ExtractionRecord) (string, bool) {
	for _, k := range rule.Keys {
		if v, ok := rec[k]; ok && v != "" {
			return v, true
		}
	}
	if rule.Split != nil {
		for _, src := range rule.Split.Sources {
			combined, ok := rec[src]
			if !ok || combined == "" {
				continue
			}
			parts := strings.Split(combined, rule.Split.Separator)
			if rule.Split.Index >= len(parts) {
				return "", false
			}
			return strings.TrimSpace(parts[rule.Split.Index]), true
		}
	}
	return "", false
}

// ProjectRow maps a record onto the display columns of a document type.
// Unresolved columns get the display placeholder.
func ProjectRow(rec entity.ExtractionRecord, dt constants.DocumentType) map[string]string {
	p := profileFor(dt)
	out := make(map[string]string, len(p.Columns))
	for _, rule := range p.Columns {
		if v, ok := resolve(rule, rec); ok {
			out[rule.Header] = v
		} else {
			out[rule.Header] = DisplayPlaceholder
		}
	}
	return out
}

// ProjectBatch projects every item of a batch, in submission order. Failed
// items get placeholder cells and keep their error message.
func ProjectBatch(batch *entity.BatchResult, dt constants.DocumentType) []Row {
	if batch == nil {
		return nil
	}
	rows := make([]Row, 0, len(batch.Items))
	for _, it := range batch.Items {
		rows = append(rows, Row{
			Filename: it.Filename,
			Status:   it.Status,
			Error:    it.ErrorMessage,
			Cells:    ProjectRow(it.Record, dt),
		})
	}
	return rows
}

// FilterBySearch returns the rows whose filename or any cell value contains
// the query, case-insensitively. An empty query is the identity. The result
// preserves input order; there is no ranking.
func FilterBySearch(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)
	var out []Row
	for _, r := range rows {
		if r.matches(q) {
			out = append(out, r)
		}
	}
	return out
}

func (r Row) matches(lowerQuery string) bool {
	if strings.Contains(strings.ToLower(r.Filename), lowerQuery) {
		return true
	}
	for _, v := range r.Cells {
		if strings.Contains(strings.ToLower(v), lowerQuery) {
			return true
		}
	}
	return false
}

// ExportHeaders returns the ordered header row for exports of a document
// type: row index, filename, the display columns plus any export-only
// columns, and the resolved document-type label.
func ExportHeaders(dt constants.DocumentType) []string {
	p := profileFor(dt)
	headers := []string{"No", "Filename"}
	for _, c := range p.Columns {
		headers = append(headers, c.Header)
	}
	for _, c := range p.Extra {
		headers = append(headers, c.Header)
	}
	return append(headers, "Document Type")
}

// BuildExportRecords flattens the successful items of a batch into ordered
// value rows aligned with ExportHeaders. Unresolved fields export as empty
// strings. Row count equals the number of success items; an empty batch
// yields headers with zero rows (never a header-less file).
func BuildExportRecords(batch *entity.BatchResult, dt constants.DocumentType) ([]string, [][]string) {
	headers := ExportHeaders(dt)
	if batch == nil {
		return headers, nil
	}

	label := string(dt)
	if label == "" {
		label = "Unknown"
	}
	p := profileFor(dt)
	rules := make([]ColumnRule, 0, len(p.Columns)+len(p.Extra))
	rules = append(rules, p.Columns...)
	rules = append(rules, p.Extra...)

	var rows [][]string
	for i, it := range batch.SucceededItems() {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(i+1), it.Filename)
		for _, rule := range rules {
			if v, ok := resolve(rule, it.Record); ok {
				row = append(row, v)
			} else {
				row = append(row, ExportPlaceholder)
			}
		}
		row = append(row, label)
		rows = append(rows, row)
	}
	return headers, rows
}
