// Package report assembles scan results into a tabular structure for
// terminal inspection and CSV export.
package report

import (
	"github.com/mrsinham/dicomscan/internal/extract"
)

// Report holds the ordered result rows of one scan plus its counters.
type Report struct {
	Columns []string
	Rows    []extract.Record

	// Counters
	Found      int   // candidate files discovered
	Parsed     int   // files parsed successfully
	Skipped    int   // files skipped as unreadable or invalid
	TotalBytes int64 // bytes of all parsed files
}

// New creates an empty report with the given column selection.
func New(columns []string) *Report {
	if len(columns) == 0 {
		columns = extract.DefaultColumns()
	}
	return &Report{Columns: columns}
}

// Add appends a row and updates the parse counters.
func (r *Report) Add(rec extract.Record) {
	r.Rows = append(r.Rows, rec)
	r.Parsed++
	r.TotalBytes += rec.FileSize
}

// cells returns the row values in column order, with the given placeholder
// for missing values.
func (r *Report) cells(rec extract.Record, missing string) []string {
	row := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		cell := rec.Cell(col)
		if cell == "" {
			cell = missing
		}
		row[i] = cell
	}
	return row
}
