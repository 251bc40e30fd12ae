package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the report as CSV: a header row followed by one row per
// file. Missing values become empty cells.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(r.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range r.Rows {
		if err := cw.Write(r.cells(rec, "")); err != nil {
			return fmt.Errorf("write row for %s: %w", rec.Filename, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the report to a CSV file at the given path.
func (r *Report) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return r.WriteCSV(f)
}
