// Package wizard provides an interactive TUI for configuring DICOM scans.
package wizard

import "github.com/mrsinham/dicomscan/cmd/dicomscan/wizard/types"

// ScanState holds the complete state for the wizard interface.
type ScanState struct {
	Scan types.ScanConfig
}
