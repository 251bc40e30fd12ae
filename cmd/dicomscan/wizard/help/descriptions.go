package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"input_dir": {
		Title:       "INPUT DIRECTORY",
		Description: "Directory containing the DICOM files to scan.",
		Details:     "Without recursion only *.dcm files in the directory itself are read.",
	},
	"recursive": {
		Title:       "RECURSIVE SCAN",
		Description: "Also scan subdirectories.",
		Details: `Accepts .dcm files anywhere in the tree plus extensionless IM*
image files as found in DICOMDIR patient/study/series hierarchies.
The DICOMDIR index file itself is skipped.`,
	},
	"workers": {
		Title:       "WORKERS",
		Description: "Number of files parsed in parallel.",
		Details:     "0 uses one worker per CPU core. Lower this on constrained machines.",
	},
	"columns": {
		Title:       "COLUMNS",
		Description: "Comma-separated report columns.",
		Details: `Leave empty for the default set. Available:
Filename, PatientID, PatientName, StudyInstanceUID, StudyDescription,
StudyDate, Modality, Rows, Columns, MeanIntensity, MinIntensity,
MaxIntensity, StdDevIntensity, FileSize`,
	},
	"no_intensity": {
		Title:       "SKIP INTENSITY",
		Description: "Skip pixel data decoding and statistics.",
		Details:     "Much faster for large archives; intensity columns stay empty.",
	},
	"previews": {
		Title:       "PREVIEWS DIRECTORY",
		Description: "Write a PNG thumbnail of each image's first frame.",
		Details:     "Thumbnails are scaled to at most 256 pixels. Empty disables previews.",
	},
	"limit": {
		Title:       "FILE LIMIT",
		Description: "Scan at most this many files.",
		Details:     "0 means no limit. Files are taken in sorted path order.",
	},
	"csv_path": {
		Title:       "CSV PATH",
		Description: "Export the report as CSV to this path.",
		Details:     "One header row plus one row per readable file. Missing values become empty cells.",
	},
	"config_path": {
		Title:       "CONFIG PATH",
		Description: "Path for the YAML configuration file.",
		Details:     "Reload it later with --config or 'wizard --from'.",
	},
}
