package metadata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visarch/visex/internal/geom"
)

func TestNewVisual(t *testing.T) {
	unit, err := geom.PixelsAtDPI(250)
	require.NoError(t, err)

	v := NewVisual(7, geom.MustBox(100, 100, 600, 600, unit))
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, 7, v.PageNumber)
	assert.Equal(t, [4]float64{100, 100, 600, 600}, v.BBox)
	assert.Equal(t, "250", v.BBoxUnit)
	assert.Empty(t, v.Captions)

	other := NewVisual(7, geom.MustBox(100, 100, 600, 600, unit))
	assert.NotEqual(t, v.ID, other.ID)
}

func TestSetCaptionLimit(t *testing.T) {
	v := NewVisual(1, geom.MustBox(0, 0, 10, 10, geom.Points()))

	require.NoError(t, v.SetCaption("Figure 1: plan"))
	require.NoError(t, v.SetCaption("figuur 1"))

	err := v.SetCaption("a third fragment")
	assert.ErrorIs(t, err, ErrCaptionFull)
	assert.Equal(t, []string{"Figure 1: plan", "figuur 1"}, v.Captions)
}

func TestSetLocationSingleAssignment(t *testing.T) {
	v := NewVisual(1, geom.MustBox(0, 0, 10, 10, geom.Points()))

	first := FilePath{Root: "/data/run1", Path: "img-1.png"}
	require.NoError(t, v.SetLocation(first, false))

	err := v.SetLocation(FilePath{Root: "/data/run2", Path: "other.png"}, false)
	assert.ErrorIs(t, err, ErrLocationSet)
	assert.Equal(t, "img-1.png", v.Location.Path)

	// The update flag repoints the root only.
	require.NoError(t, v.SetLocation(FilePath{Root: "/archive", Path: "ignored.png"}, true))
	assert.Equal(t, "/archive", v.Location.Root)
	assert.Equal(t, "img-1.png", v.Location.Path)
}

func TestFilePathFull(t *testing.T) {
	p := FilePath{Root: "/data/out", Path: "visuals/img.png"}
	assert.Equal(t, filepath.Join("/data/out", "visuals/img.png"), p.Full())

	p.UpdateRoot("/mnt/archive")
	assert.Equal(t, filepath.Join("/mnt/archive", "visuals/img.png"), p.Full())
}
