package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// listFiles enumerates candidate DICOM files in the input directory and
// returns their paths in sorted order. Without recursion it matches only
// *.dcm files in the directory itself, mirroring a plain glob. With
// recursion it walks the tree and also accepts extensionless IM* image
// files as written into DICOMDIR patient/study/series hierarchies; the
// DICOMDIR index itself is not an image and is skipped.
func listFiles(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("invalid directory: %s", dir)
	}

	var paths []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isCandidate(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory: %w", err)
		}
	} else {
		paths, err = filepath.Glob(filepath.Join(dir, "*.dcm"))
		if err != nil {
			return nil, fmt.Errorf("glob directory: %w", err)
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no DICOM files found in %s", dir)
	}

	sort.Strings(paths)
	return paths, nil
}

// isCandidate reports whether a file name looks like a DICOM image file.
func isCandidate(name string) bool {
	if name == "DICOMDIR" {
		return false
	}
	if strings.EqualFold(filepath.Ext(name), ".dcm") {
		return true
	}
	// IM000001-style names inside DICOMDIR hierarchies carry no extension
	return filepath.Ext(name) == "" && strings.HasPrefix(name, "IM")
}
