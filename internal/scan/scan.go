// Package scan walks a directory of DICOM files and extracts a metadata
// report from them.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/mrsinham/dicomscan/internal/extract"
	"github.com/mrsinham/dicomscan/internal/intensity"
	"github.com/mrsinham/dicomscan/internal/preview"
	"github.com/mrsinham/dicomscan/internal/report"
	"github.com/suyashkumar/dicom"
)

// Options contains all parameters for one scan.
type Options struct {
	InputDir  string
	Recursive bool     // also accept IM* files in DICOMDIR hierarchies
	Workers   int      // number of parallel workers (0 = auto-detect based on CPU cores)
	Columns   []string // report columns (empty = default set)
	Limit     int      // cap on number of files scanned (0 = no limit)

	NoIntensity bool   // skip pixel data analysis
	PreviewDir  string // write PNG thumbnails here (empty = no previews)

	// Output control
	Quiet            bool                     // suppress progress output (for TUI integration)
	ProgressCallback func(current, total int) // optional callback for progress updates
}

// fileTask identifies one file to process, keyed by its position in the
// sorted path list so results can be reassembled in order.
type fileTask struct {
	index int
	path  string
}

type fileResult struct {
	index int
	rec   extract.Record
	err   error
}

// Scan enumerates, parses and analyzes the DICOM files in opts.InputDir
// and assembles the results into a report. Unreadable files are counted
// and skipped with a warning; they never abort the scan. Row order is
// deterministic (sorted by path) regardless of worker scheduling.
func Scan(opts Options) (*report.Report, error) {
	if opts.InputDir == "" {
		return nil, fmt.Errorf("input directory is required")
	}

	paths, err := listFiles(opts.InputDir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	if opts.Limit > 0 && len(paths) > opts.Limit {
		paths = paths[:opts.Limit]
	}

	if !opts.Quiet {
		fmt.Printf("Found %d DICOM files in %s\n", len(paths), opts.InputDir)
	}

	columns := opts.Columns
	if len(columns) == 0 {
		columns = extract.DefaultColumns()
	}
	analyzeIntensity := !opts.NoIntensity && extract.IntensityColumns(columns)

	if opts.PreviewDir != "" {
		if err := os.MkdirAll(opts.PreviewDir, 0755); err != nil {
			return nil, fmt.Errorf("create preview directory: %w", err)
		}
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	if !opts.Quiet {
		fmt.Printf("Scanning with %d parallel workers...\n", numWorkers)
	}

	taskChan := make(chan fileTask, len(paths))
	resultChan := make(chan fileResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				rec, err := processFile(task.path, analyzeIntensity, opts.PreviewDir)
				resultChan <- fileResult{index: task.index, rec: rec, err: err}
			}
		}()
	}

	for i, path := range paths {
		taskChan <- fileTask{index: i, path: path}
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results by index so the report stays in path order
	results := make([]fileResult, len(paths))
	completed := 0
	for result := range resultChan {
		results[result.index] = result
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, len(paths))
		}
		if !opts.Quiet && (completed%10 == 0 || completed == len(paths)) {
			progress := float64(completed) / float64(len(paths)) * 100
			fmt.Printf("  Progress: %d/%d (%.0f%%)\n", completed, len(paths), progress)
		}
	}

	rep := report.New(columns)
	rep.Found = len(paths)
	for _, result := range results {
		if result.err != nil {
			rep.Skipped++
			if !opts.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", paths[result.index], result.err)
			}
			continue
		}
		rep.Add(result.rec)
	}

	return rep, nil
}

// processFile parses a single DICOM file and builds its report row.
func processFile(path string, analyzeIntensity bool, previewDir string) (extract.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return extract.Record{}, fmt.Errorf("stat file: %w", err)
	}

	ds, err := dicom.ParseFile(path, nil)
	if err != nil {
		return extract.Record{}, fmt.Errorf("not a valid DICOM file: %w", err)
	}

	rec := extract.FromDataset(filepath.Base(path), path, info.Size(), &ds)

	if analyzeIntensity {
		if stats, ok := intensity.FromDataset(&ds); ok {
			rec.Intensity = stats
			rec.HasPixelData = true
		}
	}

	if previewDir != "" {
		if img, ok := preview.FirstFrame(&ds); ok {
			thumb := preview.Thumbnail(img, preview.DefaultMaxDim)
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".png"
			if err := preview.WritePNG(thumb, filepath.Join(previewDir, name)); err != nil {
				return extract.Record{}, fmt.Errorf("write preview: %w", err)
			}
		}
	}

	return rec, nil
}
