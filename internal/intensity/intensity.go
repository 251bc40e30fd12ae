// Package intensity computes pixel statistics from DICOM pixel data.
package intensity

import (
	"image"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds per-file pixel statistics. Mean is the mean of per-frame
// means, so multi-frame files weight every frame equally regardless of
// frame size. Min, Max and StdDev are computed over all pixels.
type Stats struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
	Pixels int
}

// Mean returns the mean pixel value across all frames.
// Returns ok=false when the dataset has no decodable pixel data.
func Mean(ds *dicom.Dataset) (float64, bool) {
	stats, ok := FromDataset(ds)
	if !ok {
		return 0, false
	}
	return stats.Mean, true
}

// FromDataset decodes all pixel data frames and computes their statistics.
// Returns ok=false when pixel data is absent, empty, or undecodable.
func FromDataset(ds *dicom.Dataset) (Stats, bool) {
	elem, err := ds.FindElementByTag(tag.PixelData)
	if err != nil || elem == nil {
		return Stats{}, false
	}

	info, ok := elem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok || len(info.Frames) == 0 {
		return Stats{}, false
	}

	frameMeans := make([]float64, 0, len(info.Frames))
	var all []float64
	for _, fr := range info.Frames {
		img, err := fr.GetImage()
		if err != nil {
			return Stats{}, false
		}
		pixels := framePixels(img)
		if len(pixels) == 0 {
			return Stats{}, false
		}
		frameMeans = append(frameMeans, stat.Mean(pixels, nil))
		all = append(all, pixels...)
	}

	return Stats{
		Mean:   stat.Mean(frameMeans, nil),
		Min:    floats.Min(all),
		Max:    floats.Max(all),
		StdDev: stat.StdDev(all, nil),
		Pixels: len(all),
	}, true
}

// framePixels flattens a decoded frame into raw pixel values. Grayscale
// images keep their stored values; anything else falls back to the 8-bit
// luminance of each pixel.
func framePixels(img image.Image) []float64 {
	switch im := img.(type) {
	case *image.Gray16:
		bounds := im.Bounds()
		pixels := make([]float64, 0, bounds.Dx()*bounds.Dy())
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, float64(im.Gray16At(x, y).Y))
			}
		}
		return pixels
	case *image.Gray:
		bounds := im.Bounds()
		pixels := make([]float64, 0, bounds.Dx()*bounds.Dy())
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, float64(im.GrayAt(x, y).Y))
			}
		}
		return pixels
	default:
		bounds := img.Bounds()
		pixels := make([]float64, 0, bounds.Dx()*bounds.Dy())
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				pixels = append(pixels, float64((r+g+b)/3>>8))
			}
		}
		return pixels
	}
}
