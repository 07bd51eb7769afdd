// Package testutil provides synthetic page rasters for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// NewPageRaster builds a white page image with dark filled rectangles
// where figures would sit on a scanned page.
func NewPageRaster(width, height int, figures ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	dark := image.NewUniform(color.RGBA{40, 40, 40, 255})
	for _, fig := range figures {
		draw.Draw(img, fig, dark, image.Point{}, draw.Src)
	}
	return img
}

// SavePNG writes the image to path, failing the test on error.
func SavePNG(t *testing.T, img image.Image, path string) {
	t.Helper()
	require.NoError(t, imaging.Save(img, path))
}

// LoadPNG reads an image back, failing the test on error.
func LoadPNG(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	return img
}
