package testutil

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageRaster(t *testing.T) {
	img := NewPageRaster(200, 300, image.Rect(10, 10, 50, 50))

	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.At(100, 200))
	assert.Equal(t, color.RGBA{40, 40, 40, 255}, img.At(20, 20))
}

func TestSaveAndLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	SavePNG(t, NewPageRaster(64, 64), path)

	img := LoadPNG(t, path)
	require.Equal(t, 64, img.Bounds().Dx())
}
