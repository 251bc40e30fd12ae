package tests

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrsinham/dicomscan/internal/dicomtest"
	"github.com/mrsinham/dicomscan/internal/extract"
	"github.com/mrsinham/dicomscan/internal/scan"
)

// TestScanAndExport_EndToEnd generates a fixture series, scans it and
// verifies the CSV export matches the parsed metadata.
func TestScanAndExport_EndToEnd(t *testing.T) {
	inputDir := t.TempDir()

	spec := dicomtest.FileSpec{
		PatientID:        "PAT777",
		PatientName:      "ROE^RICHARD",
		StudyDescription: "KNEE MR",
		StudyDate:        "20240301",
		Modality:         "MR",
		Rows:             16,
		Cols:             16,
		FillValue:        250,
	}
	paths, err := dicomtest.WriteSeries(inputDir, 6, spec)
	if err != nil {
		t.Fatalf("Failed to write fixture series: %v", err)
	}
	t.Logf("Generated %d fixture files", len(paths))

	rep, err := scan.Scan(scan.Options{InputDir: inputDir, Quiet: true})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if rep.Parsed != 6 {
		t.Fatalf("Expected 6 files parsed, got %d", rep.Parsed)
	}

	csvPath := filepath.Join(t.TempDir(), "report.csv")
	if err := rep.SaveCSV(csvPath); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Opening CSV failed: %v", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV is not parseable: %v", err)
	}

	if len(records) != 7 {
		t.Fatalf("Expected header + 6 rows, got %d records", len(records))
	}

	header := records[0]
	defaults := extract.DefaultColumns()
	if len(header) != len(defaults) {
		t.Fatalf("Expected %d header columns, got %d", len(defaults), len(header))
	}
	for i, col := range defaults {
		if header[i] != col {
			t.Errorf("Header column %d: expected %s, got %s", i, col, header[i])
		}
	}

	// Column positions in the default set
	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	for i, row := range records[1:] {
		if row[colIndex["PatientID"]] != "PAT777" {
			t.Errorf("Row %d: expected PatientID PAT777, got %s", i, row[colIndex["PatientID"]])
		}
		if row[colIndex["Modality"]] != "MR" {
			t.Errorf("Row %d: expected Modality MR, got %s", i, row[colIndex["Modality"]])
		}
		if row[colIndex["Rows"]] != "16" {
			t.Errorf("Row %d: expected Rows 16, got %s", i, row[colIndex["Rows"]])
		}
		if row[colIndex["MeanIntensity"]] != "250.00" {
			t.Errorf("Row %d: expected MeanIntensity 250.00, got %s", i, row[colIndex["MeanIntensity"]])
		}
	}

	t.Logf("✓ End-to-end scan and CSV export verified")
}

// TestScan_MixedDirectory verifies the report over a directory mixing
// complete files, files without pixel data and files with missing tags.
func TestScan_MixedDirectory(t *testing.T) {
	inputDir := t.TempDir()

	fixtures := map[string]dicomtest.FileSpec{
		"complete.dcm": {Modality: "CT", FillValue: 100},
		"nopixels.dcm": {Modality: "CT", NoPixelData: true},
		"sparse.dcm": {
			OmitPatientID:        true,
			OmitPatientName:      true,
			OmitStudyDescription: true,
			OmitStudyDate:        true,
			OmitModality:         true,
			FillValue:            40,
		},
	}
	for name, spec := range fixtures {
		if err := dicomtest.WriteFile(filepath.Join(inputDir, name), spec); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", name, err)
		}
	}

	rep, err := scan.Scan(scan.Options{InputDir: inputDir, Quiet: true})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if rep.Parsed != 3 {
		t.Fatalf("Expected 3 files parsed, got %d", rep.Parsed)
	}

	byName := make(map[string]int)
	for i, rec := range rep.Rows {
		byName[rec.Filename] = i
	}

	complete := rep.Rows[byName["complete.dcm"]]
	if !complete.HasPixelData || complete.Intensity.Mean != 100 {
		t.Errorf("complete.dcm: expected mean 100, got %+v", complete.Intensity)
	}

	noPixels := rep.Rows[byName["nopixels.dcm"]]
	if noPixels.HasPixelData {
		t.Error("nopixels.dcm: expected no pixel data")
	}
	if noPixels.Cell(extract.ColMeanIntensity) != "" {
		t.Error("nopixels.dcm: expected empty MeanIntensity cell")
	}

	sparse := rep.Rows[byName["sparse.dcm"]]
	if sparse.PatientID != "" || sparse.Modality != "" {
		t.Errorf("sparse.dcm: expected empty metadata fields, got %+v", sparse)
	}
	if !sparse.HasPixelData {
		t.Error("sparse.dcm: pixel statistics should still be computed")
	}

	summary := rep.Summary()
	if summary.Modalities["CT"] != 2 {
		t.Errorf("Expected 2 CT files in histogram, got %d", summary.Modalities["CT"])
	}
	if summary.WithPixelData != 2 {
		t.Errorf("Expected 2 files with pixel data, got %d", summary.WithPixelData)
	}

	t.Logf("✓ Mixed directory report verified: %+v", summary)
}

// TestScan_CustomColumnSelection runs a scan with a narrowed column set
// and verifies only those columns appear in the CSV.
func TestScan_CustomColumnSelection(t *testing.T) {
	inputDir := t.TempDir()

	if _, err := dicomtest.WriteSeries(inputDir, 2, dicomtest.FileSpec{Modality: "MR", FillValue: 10}); err != nil {
		t.Fatalf("Failed to write fixtures: %v", err)
	}

	columns, err := extract.ParseColumns("Filename,Modality,FileSize")
	if err != nil {
		t.Fatalf("ParseColumns failed: %v", err)
	}

	rep, err := scan.Scan(scan.Options{InputDir: inputDir, Columns: columns, Quiet: true})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	csvPath := filepath.Join(t.TempDir(), "narrow.csv")
	if err := rep.SaveCSV(csvPath); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Opening CSV failed: %v", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV is not parseable: %v", err)
	}

	if len(records[0]) != 3 {
		t.Errorf("Expected 3 columns, got %d: %v", len(records[0]), records[0])
	}
	if records[0][0] != "Filename" || records[0][1] != "Modality" || records[0][2] != "FileSize" {
		t.Errorf("Unexpected header: %v", records[0])
	}

	t.Logf("✓ Custom column selection respected in export")
}

// TestScan_PreviewsAlongsideReport verifies thumbnails are written while
// the scan runs and that files without pixel data get none.
func TestScan_PreviewsAlongsideReport(t *testing.T) {
	inputDir := t.TempDir()
	previewDir := filepath.Join(t.TempDir(), "thumbs")

	if err := dicomtest.WriteFile(filepath.Join(inputDir, "with.dcm"), dicomtest.FileSpec{FillValue: 80}); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := dicomtest.WriteFile(filepath.Join(inputDir, "without.dcm"), dicomtest.FileSpec{NoPixelData: true}); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	rep, err := scan.Scan(scan.Options{InputDir: inputDir, PreviewDir: previewDir, Quiet: true})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if rep.Parsed != 2 {
		t.Fatalf("Expected 2 parsed, got %d", rep.Parsed)
	}

	if _, err := os.Stat(filepath.Join(previewDir, "with.png")); err != nil {
		t.Errorf("Expected preview with.png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(previewDir, "without.png")); !os.IsNotExist(err) {
		t.Error("File without pixel data should not get a preview")
	}

	t.Logf("✓ Previews written only for files with pixel data")
}
