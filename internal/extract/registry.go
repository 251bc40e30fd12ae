// Package extract turns parsed DICOM datasets into report rows.
package extract

import (
	"fmt"
	"strings"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// Column names as they appear in report headers and CSV output.
const (
	ColFilename         = "Filename"
	ColPatientID        = "PatientID"
	ColPatientName      = "PatientName"
	ColStudyInstanceUID = "StudyInstanceUID"
	ColStudyDescription = "StudyDescription"
	ColStudyDate        = "StudyDate"
	ColModality         = "Modality"
	ColRows             = "Rows"
	ColColumns          = "Columns"
	ColMeanIntensity    = "MeanIntensity"
	ColMinIntensity     = "MinIntensity"
	ColMaxIntensity     = "MaxIntensity"
	ColStdDevIntensity  = "StdDevIntensity"
	ColFileSize         = "FileSize"
)

// ColumnInfo describes a selectable report column. Derived columns are
// computed from file contents rather than read from a DICOM tag.
type ColumnInfo struct {
	Name    string
	Tag     tag.Tag
	Derived bool
}

// columnRegistry maps lowercase column names to their ColumnInfo.
var columnRegistry = map[string]ColumnInfo{
	"filename":         {Name: ColFilename, Derived: true},
	"patientid":        {Name: ColPatientID, Tag: tag.PatientID},
	"patientname":      {Name: ColPatientName, Tag: tag.PatientName},
	"studyinstanceuid": {Name: ColStudyInstanceUID, Tag: tag.StudyInstanceUID},
	"studydescription": {Name: ColStudyDescription, Tag: tag.StudyDescription},
	"studydate":        {Name: ColStudyDate, Tag: tag.StudyDate},
	"modality":         {Name: ColModality, Tag: tag.Modality},
	"rows":             {Name: ColRows, Tag: tag.Rows},
	"columns":          {Name: ColColumns, Tag: tag.Columns},
	"meanintensity":    {Name: ColMeanIntensity, Derived: true},
	"minintensity":     {Name: ColMinIntensity, Derived: true},
	"maxintensity":     {Name: ColMaxIntensity, Derived: true},
	"stddevintensity":  {Name: ColStdDevIntensity, Derived: true},
	"filesize":         {Name: ColFileSize, Derived: true},
}

// DefaultColumns returns the column set used when no --columns flag is given:
// the fixed metadata columns plus the derived mean intensity.
func DefaultColumns() []string {
	return []string{
		ColFilename,
		ColPatientID,
		ColPatientName,
		ColStudyInstanceUID,
		ColStudyDescription,
		ColStudyDate,
		ColModality,
		ColRows,
		ColColumns,
		ColMeanIntensity,
	}
}

// ColumnByName returns ColumnInfo for a given column name.
// The lookup is case-insensitive. If the column is not found, an error is
// returned with a suggestion for the closest matching name (using
// Levenshtein distance).
func ColumnByName(name string) (ColumnInfo, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(name))

	if info, ok := columnRegistry[normalizedName]; ok {
		return info, nil
	}

	suggestion := findClosestColumnName(normalizedName)
	if suggestion != "" {
		return ColumnInfo{}, fmt.Errorf("unknown column %q, did you mean %q?", name, suggestion)
	}

	return ColumnInfo{}, fmt.Errorf("unknown column %q", name)
}

// ParseColumns parses a comma-separated column list into canonical column
// names. An empty input selects the default column set.
func ParseColumns(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultColumns(), nil
	}

	parts := strings.Split(s, ",")
	columns := make([]string, 0, len(parts))
	seen := make(map[string]bool)
	for _, part := range parts {
		info, err := ColumnByName(part)
		if err != nil {
			return nil, err
		}
		if seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		columns = append(columns, info.Name)
	}

	return columns, nil
}

// IntensityColumns reports whether any of the given columns require pixel
// intensity analysis.
func IntensityColumns(columns []string) bool {
	for _, c := range columns {
		switch c {
		case ColMeanIntensity, ColMinIntensity, ColMaxIntensity, ColStdDevIntensity:
			return true
		}
	}
	return false
}

// findClosestColumnName finds the closest matching column name using
// Levenshtein distance. Returns empty string if no close match is found
// (distance > 5).
func findClosestColumnName(input string) string {
	const maxDistance = 5
	bestDistance := maxDistance + 1
	var bestMatch string

	for key, info := range columnRegistry {
		distance := levenshteinDistance(input, key)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = info.Name
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
// This is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to change one string into the other.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
