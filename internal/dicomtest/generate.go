// Package dicomtest writes small synthetic DICOM files for tests.
// Tests cannot ship real imagery, so fixtures are generated on the fly
// with known tag values and constant pixel fills whose statistics are
// exact and easy to assert on.
package dicomtest

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// FileSpec describes one synthetic DICOM file. Zero-valued string fields
// get defaults; Omit* flags drop the corresponding tags entirely to
// exercise missing-tag handling.
type FileSpec struct {
	PatientID        string
	PatientName      string
	StudyInstanceUID string
	StudyDescription string
	StudyDate        string
	Modality         string

	Rows int // default 16
	Cols int // default 16

	BitsAllocated int // 8 or 16 (default 16)

	// FillValue is the constant pixel value for all frames; FrameValues
	// overrides it with one constant per frame for multi-frame files.
	FillValue   int
	FrameValues []int

	NoPixelData bool

	OmitPatientID        bool
	OmitPatientName      bool
	OmitStudyDescription bool
	OmitStudyDate        bool
	OmitModality         bool
}

func (s FileSpec) withDefaults() FileSpec {
	if s.PatientID == "" {
		s.PatientID = "PID000001"
	}
	if s.PatientName == "" {
		s.PatientName = "DOE^JANE"
	}
	if s.StudyInstanceUID == "" {
		s.StudyInstanceUID = deterministicUID("study_default")
	}
	if s.StudyDescription == "" {
		s.StudyDescription = "BRAIN MR"
	}
	if s.StudyDate == "" {
		s.StudyDate = "20240115"
	}
	if s.Modality == "" {
		s.Modality = "MR"
	}
	if s.Rows == 0 {
		s.Rows = 16
	}
	if s.Cols == 0 {
		s.Cols = 16
	}
	if s.BitsAllocated == 0 {
		s.BitsAllocated = 16
	}
	if len(s.FrameValues) == 0 {
		s.FrameValues = []int{s.FillValue}
	}
	return s
}

// WriteFile writes one synthetic DICOM file at the given path.
func WriteFile(path string, spec FileSpec) error {
	spec = spec.withDefaults()

	sopInstanceUID := deterministicUID(path)
	elements := []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}),
		mustNewElement(tag.SOPClassUID, []string{"1.2.840.10008.5.1.4.1.1.4"}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.SeriesInstanceUID, []string{deterministicUID(filepath.Dir(path))}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
	}

	if !spec.OmitPatientID {
		elements = append(elements, mustNewElement(tag.PatientID, []string{spec.PatientID}))
	}
	if !spec.OmitPatientName {
		elements = append(elements, mustNewElement(tag.PatientName, []string{spec.PatientName}))
	}
	elements = append(elements, mustNewElement(tag.StudyInstanceUID, []string{spec.StudyInstanceUID}))
	if !spec.OmitStudyDescription {
		elements = append(elements, mustNewElement(tag.StudyDescription, []string{spec.StudyDescription}))
	}
	if !spec.OmitStudyDate {
		elements = append(elements, mustNewElement(tag.StudyDate, []string{spec.StudyDate}))
	}
	if !spec.OmitModality {
		elements = append(elements, mustNewElement(tag.Modality, []string{spec.Modality}))
	}

	if !spec.NoPixelData {
		elements = append(elements,
			mustNewElement(tag.Rows, []int{spec.Rows}),
			mustNewElement(tag.Columns, []int{spec.Cols}),
			mustNewElement(tag.BitsAllocated, []int{spec.BitsAllocated}),
			mustNewElement(tag.BitsStored, []int{spec.BitsAllocated}),
			mustNewElement(tag.HighBit, []int{spec.BitsAllocated - 1}),
			mustNewElement(tag.PixelRepresentation, []int{0}),
			mustNewElement(tag.SamplesPerPixel, []int{1}),
			mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
		)
		if len(spec.FrameValues) > 1 {
			elements = append(elements,
				mustNewElement(tag.NumberOfFrames, []string{fmt.Sprintf("%d", len(spec.FrameValues))}))
		}
		elements = append(elements, mustNewElement(tag.PixelData, pixelData(spec)))
	}

	return writeDatasetToFile(path, dicom.Dataset{Elements: elements})
}

// WriteSeries writes n files into dir using IMG%04d.dcm names, all sharing
// the base spec. Returns the written paths in order.
func WriteSeries(dir string, n int, base FileSpec) ([]string, error) {
	paths := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("IMG%04d.dcm", i))
		if err := WriteFile(path, base); err != nil {
			return nil, fmt.Errorf("write fixture %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// pixelData builds constant-fill frames from the FileSpec.
func pixelData(spec FileSpec) dicom.PixelDataInfo {
	pixelsPerFrame := spec.Rows * spec.Cols
	frames := make([]*frame.Frame, len(spec.FrameValues))

	for i, value := range spec.FrameValues {
		if spec.BitsAllocated == 8 {
			nativeFrame := frame.NewNativeFrame[uint8](8, spec.Rows, spec.Cols, pixelsPerFrame, 1)
			for j := range nativeFrame.RawData {
				nativeFrame.RawData[j] = uint8(value)
			}
			frames[i] = &frame.Frame{Encapsulated: false, NativeData: nativeFrame}
		} else {
			nativeFrame := frame.NewNativeFrame[uint16](16, spec.Rows, spec.Cols, pixelsPerFrame, 1)
			for j := range nativeFrame.RawData {
				nativeFrame.RawData[j] = uint16(value)
			}
			frames[i] = &frame.Frame{Encapsulated: false, NativeData: nativeFrame}
		}
	}

	return dicom.PixelDataInfo{Frames: frames}
}

// writeDatasetToFile writes a DICOM dataset to a file
func writeDatasetToFile(filename string, ds dicom.Dataset) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds)
}

// mustNewElement creates a new DICOM element, panicking on error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// deterministicUID derives a stable UID from a seed string so identical
// inputs produce identical fixtures.
func deterministicUID(seed string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed)) // hash.Write never returns an error
	return fmt.Sprintf("1.2.826.0.1.3680043.10.511.%d", h.Sum64()%1e12)
}
