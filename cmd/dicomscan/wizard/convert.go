package wizard

import (
	"github.com/mrsinham/dicomscan/internal/extract"
	"github.com/mrsinham/dicomscan/internal/scan"
)

// ToScanOptions converts ScanState to scan.Options for running a scan.
func ToScanOptions(s *ScanState) (scan.Options, error) {
	columns, err := extract.ParseColumns(s.Scan.Columns)
	if err != nil {
		return scan.Options{}, err
	}

	return scan.Options{
		InputDir:    s.Scan.InputDir,
		Recursive:   s.Scan.Recursive,
		Workers:     s.Scan.Workers,
		Columns:     columns,
		Limit:       s.Scan.Limit,
		NoIntensity: s.Scan.NoIntensity,
		PreviewDir:  s.Scan.PreviewsDir,
	}, nil
}

// FromScanOptions creates a ScanState from CLI options.
// Used for --save-config to export CLI options as YAML.
func FromScanOptions(opts scan.Options, columnsSpec, csvPath string) *ScanState {
	state := &ScanState{}
	state.Scan.InputDir = opts.InputDir
	state.Scan.Recursive = opts.Recursive
	state.Scan.Workers = opts.Workers
	state.Scan.Columns = columnsSpec
	state.Scan.NoIntensity = opts.NoIntensity
	state.Scan.PreviewsDir = opts.PreviewDir
	state.Scan.Limit = opts.Limit
	state.Scan.CSVPath = csvPath
	return state
}
