package ocr

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/visarch/visex/internal/geom"
)

// TesseractMaxDim is the largest image dimension Tesseract 5.3 accepts.
const TesseractMaxDim = 32767

// Engine is the OCR collaborator boundary. Implementations receive page
// rasters and return hOCR markup or plain text; everything downstream of
// the raw engine output (parsing, filtering, caption matching) lives in
// this module.
type Engine interface {
	// RecognizeHOCR runs layout-aware OCR over a page raster and returns
	// the hOCR document bytes.
	RecognizeHOCR(ctx context.Context, img image.Image) ([]byte, error)
	// RegionText extracts plain text from a pixel-unit region of a page
	// raster.
	RegionText(ctx context.Context, img image.Image, box geom.Box) (string, error)
}

// ResizeForOCR shrinks a raster so neither dimension exceeds maxDim,
// preserving aspect ratio. Rasters already within bounds pass through
// unchanged. The cap itself may not exceed what Tesseract accepts.
func ResizeForOCR(img image.Image, maxDim int) (image.Image, error) {
	if maxDim <= 0 || maxDim > TesseractMaxDim {
		return nil, fmt.Errorf("resize cap must be between 1 and %d pixels, got %d", TesseractMaxDim, maxDim)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img, nil
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos), nil
}

// CropRegion cuts the pixel-unit box out of a page raster.
func CropRegion(img image.Image, box geom.Box) (image.Image, error) {
	px, err := box.Pixels()
	if err != nil {
		return nil, err
	}
	rect := image.Rect(int(px[0]), int(px[1]), int(px[2]), int(px[3]))
	return imaging.Crop(img, rect), nil
}
