// Package types holds the wizard configuration shared between the wizard
// orchestrator and its screens.
package types

// ScanConfig holds all settings for one scan, as entered in the wizard.
// Columns keeps the comma-separated form typed by the user; it is parsed
// and validated when the scan starts.
type ScanConfig struct {
	InputDir    string
	Recursive   bool
	Workers     int
	Columns     string
	NoIntensity bool
	PreviewsDir string
	Limit       int
	CSVPath     string
}
