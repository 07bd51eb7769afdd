package ocr

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visarch/visex/internal/geom"
)

func TestResizeForOCRPassThrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))

	got, err := ResizeForOCR(img, 1000)
	require.NoError(t, err)
	assert.Same(t, image.Image(img), got)
}

func TestResizeForOCRShrinks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4000, 2000))

	got, err := ResizeForOCR(img, 1000)
	require.NoError(t, err)
	b := got.Bounds()
	assert.Equal(t, 1000, b.Dx())
	assert.Equal(t, 500, b.Dy(), "aspect ratio preserved")
}

func TestResizeForOCRValidatesCap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	_, err := ResizeForOCR(img, 0)
	assert.Error(t, err)

	_, err = ResizeForOCR(img, TesseractMaxDim+1)
	assert.Error(t, err)

	_, err = ResizeForOCR(img, TesseractMaxDim)
	assert.NoError(t, err)
}

func TestCropRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	crop, err := CropRegion(img, pxBox(t, 10, 20, 60, 90))
	require.NoError(t, err)
	assert.Equal(t, 50, crop.Bounds().Dx())
	assert.Equal(t, 70, crop.Bounds().Dy())

	_, err = CropRegion(img, geom.MustBox(10, 20, 60, 90, geom.Points()))
	assert.Error(t, err, "crops are defined on pixel boxes only")
}

func TestNewTesseract(t *testing.T) {
	e := NewTesseract("", "--oem 1 --psm 1")
	assert.Equal(t, "tesseract", e.Binary)
	assert.Equal(t, []string{"--oem", "1", "--psm", "1"}, e.Args)

	e = NewTesseract("/opt/tesseract/bin/tesseract", "")
	assert.Equal(t, "/opt/tesseract/bin/tesseract", e.Binary)
	assert.Empty(t, e.Args)
}
