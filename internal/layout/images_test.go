package layout

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visarch/visex/internal/geom"
	"github.com/visarch/visex/internal/testutil"
)

func TestImageElement(t *testing.T) {
	img := testutil.NewPageRaster(120, 80)

	elem, err := imageElement(img)
	require.NoError(t, err)

	assert.Equal(t, 120, elem.SrcWidth)
	assert.Equal(t, 80, elem.SrcHeight)
	assert.Equal(t, geom.MustBox(0, 0, 120, 80, geom.Points()), elem.Box)

	decoded, err := png.Decode(bytes.NewReader(elem.Data))
	require.NoError(t, err)
	assert.Equal(t, 120, decoded.Bounds().Dx())
}

func TestDocumentAnalyzerMissingFile(t *testing.T) {
	a := NewDocumentAnalyzer()
	_, err := a.AnalyzePages(t.Context(), "does-not-exist.pdf")
	assert.Error(t, err)
}
