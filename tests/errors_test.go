package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrsinham/dicomscan/internal/dicomtest"
	"github.com/mrsinham/dicomscan/internal/extract"
	"github.com/mrsinham/dicomscan/internal/scan"
)

// TestError_InvalidDirectory verifies scans of bad input paths fail with
// clear errors instead of panics or empty reports.
func TestError_InvalidDirectory(t *testing.T) {
	tests := []struct {
		name     string
		inputDir string
		contains string
	}{
		{"Empty", "", "required"},
		{"NonExistent", "/does/not/exist", "invalid directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scan.Scan(scan.Options{InputDir: tt.inputDir, Quiet: true})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got: %v", tt.contains, err)
			}
			t.Logf("✓ %v", err)
		})
	}
}

// TestError_NoDICOMFiles verifies a directory without matching files is an
// error, not an empty report.
func TestError_NoDICOMFiles(t *testing.T) {
	inputDir := t.TempDir()

	// Only non-DICOM content
	if err := os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := scan.Scan(scan.Options{InputDir: inputDir, Quiet: true})
	if err == nil {
		t.Fatal("Expected error for directory without DICOM files, got nil")
	}
	if !strings.Contains(err.Error(), "no DICOM files found") {
		t.Errorf("Expected 'no DICOM files found' error, got: %v", err)
	}
}

// TestError_CorruptFilesAreSkippedNotFatal verifies the parse-failure
// policy: corrupt files produce a warning and a skip count, never abort.
func TestError_CorruptFilesAreSkippedNotFatal(t *testing.T) {
	inputDir := t.TempDir()

	if err := dicomtest.WriteFile(filepath.Join(inputDir, "good.dcm"), dicomtest.FileSpec{FillValue: 10}); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	corruptions := map[string][]byte{
		"empty.dcm":     {},
		"garbage.dcm":   []byte("not a dicom file at all"),
		"truncated.dcm": make([]byte, 64), // shorter than the 128-byte preamble
	}
	for name, data := range corruptions {
		if err := os.WriteFile(filepath.Join(inputDir, name), data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	rep, err := scan.Scan(scan.Options{InputDir: inputDir, Quiet: true})
	if err != nil {
		t.Fatalf("Scan must not fail on corrupt files: %v", err)
	}

	if rep.Found != 4 {
		t.Errorf("Expected 4 files found, got %d", rep.Found)
	}
	if rep.Parsed != 1 {
		t.Errorf("Expected 1 file parsed, got %d", rep.Parsed)
	}
	if rep.Skipped != 3 {
		t.Errorf("Expected 3 files skipped, got %d", rep.Skipped)
	}
	if len(rep.Rows) != 1 || rep.Rows[0].Filename != "good.dcm" {
		t.Errorf("Expected only good.dcm in rows, got %d rows", len(rep.Rows))
	}

	t.Logf("✓ %d corrupt files skipped, good file parsed", rep.Skipped)
}

// TestError_UnknownColumn verifies column validation happens before any
// filesystem work.
func TestError_UnknownColumn(t *testing.T) {
	_, err := extract.ParseColumns("Filename,Modalitty")
	if err == nil {
		t.Fatal("Expected error for misspelled column, got nil")
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("Expected suggestion in error, got: %v", err)
	}
	t.Logf("✓ %v", err)
}

// TestError_PreviewDirNotCreatable verifies preview directory failures
// surface before the scan starts.
func TestError_PreviewDirNotCreatable(t *testing.T) {
	inputDir := t.TempDir()
	if err := dicomtest.WriteFile(filepath.Join(inputDir, "a.dcm"), dicomtest.FileSpec{}); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	// A file blocking the preview directory path
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write blocker: %v", err)
	}

	_, err := scan.Scan(scan.Options{
		InputDir:   inputDir,
		PreviewDir: filepath.Join(blocker, "thumbs"),
		Quiet:      true,
	})
	if err == nil {
		t.Fatal("Expected error when preview directory cannot be created, got nil")
	}
	t.Logf("✓ %v", err)
}

// TestError_NonPositiveLimitMeansNoLimit documents that limit validation
// is a CLI concern: the scanner itself treats non-positive limits as "no
// limit" so config-driven scans cannot truncate accidentally.
func TestError_NonPositiveLimitMeansNoLimit(t *testing.T) {
	inputDir := t.TempDir()
	if _, err := dicomtest.WriteSeries(inputDir, 3, dicomtest.FileSpec{FillValue: 1}); err != nil {
		t.Fatalf("Failed to write fixtures: %v", err)
	}

	for _, limit := range []int{0, -1} {
		rep, err := scan.Scan(scan.Options{InputDir: inputDir, Limit: limit, Quiet: true})
		if err != nil {
			t.Fatalf("Scan with limit %d failed: %v", limit, err)
		}
		if rep.Found != 3 {
			t.Errorf("Limit %d: expected all 3 files, got %d", limit, rep.Found)
		}
	}
}
