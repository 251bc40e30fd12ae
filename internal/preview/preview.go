// Package preview renders PNG thumbnails from DICOM pixel data.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"golang.org/x/image/draw"
)

// DefaultMaxDim is the longest edge of a generated thumbnail in pixels.
const DefaultMaxDim = 256

// FirstFrame decodes the first pixel data frame of a dataset.
// Returns ok=false when the dataset has no decodable pixel data.
func FirstFrame(ds *dicom.Dataset) (image.Image, bool) {
	elem, err := ds.FindElementByTag(tag.PixelData)
	if err != nil || elem == nil {
		return nil, false
	}

	info, ok := elem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok || len(info.Frames) == 0 {
		return nil, false
	}

	img, err := info.Frames[0].GetImage()
	if err != nil {
		return nil, false
	}
	return img, true
}

// Thumbnail scales an image down so its longest edge is at most maxDim
// pixels, preserving aspect ratio. Images already within bounds are
// returned unchanged.
func Thumbnail(src image.Image, maxDim int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// WritePNG encodes the image as PNG at the given path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
