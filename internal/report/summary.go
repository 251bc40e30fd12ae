package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a finished report: file counts, modality histogram,
// and the distribution of per-file mean intensities.
type Summary struct {
	Found      int
	Parsed     int
	Skipped    int
	TotalBytes int64

	Modalities map[string]int

	// Intensity distribution across files that have pixel data.
	WithPixelData int
	MeanIntensity float64
	StdDev        float64
}

// Summary computes the aggregate view of the report.
func (r *Report) Summary() Summary {
	s := Summary{
		Found:      r.Found,
		Parsed:     r.Parsed,
		Skipped:    r.Skipped,
		TotalBytes: r.TotalBytes,
		Modalities: make(map[string]int),
	}

	var means []float64
	for _, rec := range r.Rows {
		if rec.Modality != "" {
			s.Modalities[rec.Modality]++
		}
		if rec.HasPixelData {
			means = append(means, rec.Intensity.Mean)
		}
	}

	s.WithPixelData = len(means)
	if len(means) > 0 {
		s.MeanIntensity = stat.Mean(means, nil)
	}
	if len(means) > 1 {
		s.StdDev = stat.StdDev(means, nil)
	}

	return s
}

// String renders the summary as indented lines for terminal output.
func (s Summary) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "  Files found:    %d\n", s.Found)
	fmt.Fprintf(&sb, "  Files parsed:   %d\n", s.Parsed)
	if s.Skipped > 0 {
		fmt.Fprintf(&sb, "  Files skipped:  %d\n", s.Skipped)
	}
	fmt.Fprintf(&sb, "  Total size:     %s\n", humanize.Bytes(uint64(s.TotalBytes)))

	if len(s.Modalities) > 0 {
		names := make([]string, 0, len(s.Modalities))
		for m := range s.Modalities {
			names = append(names, m)
		}
		sort.Strings(names)

		parts := make([]string, len(names))
		for i, m := range names {
			parts[i] = fmt.Sprintf("%s=%d", m, s.Modalities[m])
		}
		fmt.Fprintf(&sb, "  Modalities:     %s\n", strings.Join(parts, ", "))
	}

	if s.WithPixelData > 0 {
		fmt.Fprintf(&sb, "  Mean intensity: %.2f (stddev %.2f, %d files with pixel data)\n",
			s.MeanIntensity, s.StdDev, s.WithPixelData)
	}

	return sb.String()
}
