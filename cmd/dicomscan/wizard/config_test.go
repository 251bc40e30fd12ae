package wizard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromYAML_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	content := `
scan:
  input_dir: ./dicom_series
  recursive: true
  workers: 4
  columns: "Filename,Modality,MeanIntensity"
  no_intensity: false
  limit: 100
output:
  csv_path: report.csv
  previews_dir: ./thumbs
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	state, err := LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if state.Scan.InputDir != "./dicom_series" {
		t.Errorf("Expected input_dir ./dicom_series, got %s", state.Scan.InputDir)
	}
	if !state.Scan.Recursive {
		t.Error("Expected recursive true")
	}
	if state.Scan.Workers != 4 {
		t.Errorf("Expected workers 4, got %d", state.Scan.Workers)
	}
	if state.Scan.Columns != "Filename,Modality,MeanIntensity" {
		t.Errorf("Expected columns list, got %s", state.Scan.Columns)
	}
	if state.Scan.NoIntensity {
		t.Error("Expected no_intensity false")
	}
	if state.Scan.Limit != 100 {
		t.Errorf("Expected limit 100, got %d", state.Scan.Limit)
	}
	if state.Scan.CSVPath != "report.csv" {
		t.Errorf("Expected csv_path report.csv, got %s", state.Scan.CSVPath)
	}
	if state.Scan.PreviewsDir != "./thumbs" {
		t.Errorf("Expected previews_dir ./thumbs, got %s", state.Scan.PreviewsDir)
	}
}

func TestLoadFromYAML_NonExistentFile(t *testing.T) {
	_, err := LoadFromYAML("/non/existent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadFromYAML_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	content := `
scan:
  input_dir: ./x
  workers: [invalid array in scalar field
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadFromYAML(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestSaveToYAML_AndLoadBack(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "output.yaml")

	state := &ScanState{}
	state.Scan.InputDir = "/data/archive"
	state.Scan.Recursive = true
	state.Scan.Workers = 8
	state.Scan.Columns = "Filename,PatientID,MeanIntensity,StdDevIntensity"
	state.Scan.NoIntensity = false
	state.Scan.Limit = 500
	state.Scan.CSVPath = "/tmp/out.csv"
	state.Scan.PreviewsDir = "/tmp/thumbs"

	if err := SaveToYAML(state, configPath); err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if *loaded != *state {
		t.Errorf("Roundtrip mismatch:\nOriginal: %+v\nLoaded: %+v", state, loaded)
	}
}

func TestLoadFromYAML_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal.yaml")

	content := `
scan:
  input_dir: ./minimal
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	state, err := LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("LoadFromYAML failed for minimal config: %v", err)
	}

	if state.Scan.InputDir != "./minimal" {
		t.Errorf("Expected input_dir ./minimal, got %s", state.Scan.InputDir)
	}
	if state.Scan.Recursive || state.Scan.Workers != 0 || state.Scan.Columns != "" {
		t.Errorf("Expected zero values for omitted fields, got %+v", state.Scan)
	}
}

func TestSaveToYAML_InvalidPath(t *testing.T) {
	state := &ScanState{}
	state.Scan.InputDir = "./x"

	err := SaveToYAML(state, "/nonexistent/deeply/nested/path/config.yaml")
	if err == nil {
		t.Error("Expected error when saving to invalid path, got nil")
	}
}
