package extract

import (
	"strconv"
	"strings"

	"github.com/mrsinham/dicomscan/internal/intensity"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Record holds one report row: the extracted metadata of a single DICOM
// file plus its derived intensity values. Tag fields are empty strings when
// the tag is absent from the file.
type Record struct {
	Filename string
	Path     string
	FileSize int64

	PatientID        string
	PatientName      string
	StudyInstanceUID string
	StudyDescription string
	StudyDate        string
	Modality         string
	Rows             string
	Columns          string

	// Intensity is only meaningful when HasPixelData is true.
	Intensity    intensity.Stats
	HasPixelData bool
}

// FromDataset extracts the metadata columns from a parsed dataset.
// Missing tags yield empty fields, never errors. Intensity values are
// filled in separately by the scanner.
func FromDataset(filename, path string, size int64, ds *dicom.Dataset) Record {
	return Record{
		Filename:         filename,
		Path:             path,
		FileSize:         size,
		PatientID:        stringValue(ds, tag.PatientID),
		PatientName:      stringValue(ds, tag.PatientName),
		StudyInstanceUID: stringValue(ds, tag.StudyInstanceUID),
		StudyDescription: stringValue(ds, tag.StudyDescription),
		StudyDate:        stringValue(ds, tag.StudyDate),
		Modality:         stringValue(ds, tag.Modality),
		Rows:             stringValue(ds, tag.Rows),
		Columns:          stringValue(ds, tag.Columns),
	}
}

// Cell returns the rendered value for the given column, empty when the
// value is missing from the file.
func (r Record) Cell(column string) string {
	switch column {
	case ColFilename:
		return r.Filename
	case ColPatientID:
		return r.PatientID
	case ColPatientName:
		return r.PatientName
	case ColStudyInstanceUID:
		return r.StudyInstanceUID
	case ColStudyDescription:
		return r.StudyDescription
	case ColStudyDate:
		return r.StudyDate
	case ColModality:
		return r.Modality
	case ColRows:
		return r.Rows
	case ColColumns:
		return r.Columns
	case ColMeanIntensity:
		return r.intensityCell(r.Intensity.Mean)
	case ColMinIntensity:
		return r.intensityCell(r.Intensity.Min)
	case ColMaxIntensity:
		return r.intensityCell(r.Intensity.Max)
	case ColStdDevIntensity:
		return r.intensityCell(r.Intensity.StdDev)
	case ColFileSize:
		return strconv.FormatInt(r.FileSize, 10)
	}
	return ""
}

func (r Record) intensityCell(v float64) string {
	if !r.HasPixelData {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// stringValue reads a tag value as a display string. Returns empty string
// when the tag is absent or its value is empty.
func stringValue(ds *dicom.Dataset, t tag.Tag) string {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil {
		return ""
	}

	switch v := elem.Value.GetValue().(type) {
	case []string:
		if len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
	case []int:
		if len(v) > 0 {
			return strconv.Itoa(v[0])
		}
	case []float64:
		if len(v) > 0 {
			return strconv.FormatFloat(v[0], 'f', -1, 64)
		}
	}
	return ""
}
