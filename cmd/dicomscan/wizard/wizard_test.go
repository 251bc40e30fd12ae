package wizard

import (
	"reflect"
	"testing"

	"github.com/mrsinham/dicomscan/internal/extract"
	"github.com/mrsinham/dicomscan/internal/scan"
)

func TestToScanOptions(t *testing.T) {
	state := &ScanState{}
	state.Scan.InputDir = "/data/dicom"
	state.Scan.Recursive = true
	state.Scan.Workers = 2
	state.Scan.Columns = "Filename,Modality"
	state.Scan.NoIntensity = true
	state.Scan.Limit = 10
	state.Scan.PreviewsDir = "/tmp/previews"

	opts, err := ToScanOptions(state)
	if err != nil {
		t.Fatalf("ToScanOptions failed: %v", err)
	}

	if opts.InputDir != "/data/dicom" {
		t.Errorf("InputDir not converted correctly: %s", opts.InputDir)
	}
	if !opts.Recursive {
		t.Error("Recursive not converted correctly")
	}
	if opts.Workers != 2 {
		t.Errorf("Workers not converted correctly: %d", opts.Workers)
	}
	if !reflect.DeepEqual(opts.Columns, []string{extract.ColFilename, extract.ColModality}) {
		t.Errorf("Columns not parsed correctly: %v", opts.Columns)
	}
	if !opts.NoIntensity {
		t.Error("NoIntensity not converted correctly")
	}
	if opts.Limit != 10 {
		t.Errorf("Limit not converted correctly: %d", opts.Limit)
	}
	if opts.PreviewDir != "/tmp/previews" {
		t.Errorf("PreviewDir not converted correctly: %s", opts.PreviewDir)
	}
}

func TestToScanOptions_EmptyColumnsSelectDefaults(t *testing.T) {
	state := &ScanState{}
	state.Scan.InputDir = "/data/dicom"

	opts, err := ToScanOptions(state)
	if err != nil {
		t.Fatalf("ToScanOptions failed: %v", err)
	}

	if !reflect.DeepEqual(opts.Columns, extract.DefaultColumns()) {
		t.Errorf("Expected default columns, got %v", opts.Columns)
	}
}

func TestToScanOptions_InvalidColumns(t *testing.T) {
	state := &ScanState{}
	state.Scan.InputDir = "/data/dicom"
	state.Scan.Columns = "NotAColumn"

	if _, err := ToScanOptions(state); err == nil {
		t.Error("Expected error for invalid column selection, got nil")
	}
}

func TestFromScanOptions(t *testing.T) {
	opts := scan.Options{
		InputDir:    "/archive",
		Recursive:   true,
		Workers:     4,
		Limit:       50,
		NoIntensity: true,
		PreviewDir:  "/thumbs",
	}

	state := FromScanOptions(opts, "Filename,StudyDate", "out.csv")

	if state.Scan.InputDir != "/archive" {
		t.Errorf("InputDir not converted correctly: %s", state.Scan.InputDir)
	}
	if !state.Scan.Recursive {
		t.Error("Recursive not converted correctly")
	}
	if state.Scan.Workers != 4 {
		t.Errorf("Workers not converted correctly: %d", state.Scan.Workers)
	}
	if state.Scan.Columns != "Filename,StudyDate" {
		t.Errorf("Columns spec not kept: %s", state.Scan.Columns)
	}
	if !state.Scan.NoIntensity {
		t.Error("NoIntensity not converted correctly")
	}
	if state.Scan.Limit != 50 {
		t.Errorf("Limit not converted correctly: %d", state.Scan.Limit)
	}
	if state.Scan.PreviewsDir != "/thumbs" {
		t.Errorf("PreviewsDir not converted correctly: %s", state.Scan.PreviewsDir)
	}
	if state.Scan.CSVPath != "out.csv" {
		t.Errorf("CSVPath not converted correctly: %s", state.Scan.CSVPath)
	}
}

func TestRoundtrip_OptionsThroughYAML(t *testing.T) {
	opts := scan.Options{
		InputDir:  "/archive",
		Recursive: true,
		Workers:   6,
		Limit:     25,
	}

	state := FromScanOptions(opts, "", "report.csv")
	configPath := t.TempDir() + "/roundtrip.yaml"

	if err := SaveToYAML(state, configPath); err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}
	loaded, err := LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	back, err := ToScanOptions(loaded)
	if err != nil {
		t.Fatalf("ToScanOptions failed: %v", err)
	}

	if back.InputDir != opts.InputDir || back.Recursive != opts.Recursive ||
		back.Workers != opts.Workers || back.Limit != opts.Limit {
		t.Errorf("Roundtrip mismatch:\nOriginal: %+v\nLoaded: %+v", opts, back)
	}
	if loaded.Scan.CSVPath != "report.csv" {
		t.Errorf("CSVPath lost in roundtrip: %s", loaded.Scan.CSVPath)
	}
}
