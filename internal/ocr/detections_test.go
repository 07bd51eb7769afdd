package ocr

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visarch/visex/internal/hocr"
)

func TestDetectionsFromHOCR(t *testing.T) {
	page := hocr.Page{
		ID:   "page_1",
		BBox: hocr.BBox{X1: 1000, Y1: 2000},
		Paragraphs: []hocr.Paragraph{
			{ID: "par_1", BBox: hocr.BBox{X0: 100, Y0: 100, X1: 600, Y1: 600}},
			{ID: "par_2", BBox: hocr.BBox{X0: 100, Y0: 620, X1: 600, Y1: 660},
				Text: "Figure 8: site plan", HasText: true},
			{ID: "par_3", BBox: hocr.BBox{X0: 100, Y0: 700, X1: 600, Y1: 710},
				Text: "   ", HasText: false},
		},
	}
	raster := image.NewRGBA(image.Rect(0, 0, 1000, 2000))

	det, err := DetectionsFromHOCR(page, raster, 250, 4, page.ID)
	require.NoError(t, err)

	assert.Equal(t, "page_1", det.PageID)
	assert.Equal(t, 4, det.PageNum)
	assert.Equal(t, 250, det.DPI)

	// Blank paragraphs are candidate images.
	assert.Equal(t, []string{"par_1", "par_3"}, sortedIDs(det.NonText))
	assert.Equal(t, []string{"par_2"}, sortedIDs(det.Text))
	assert.Equal(t, "Figure 8: site plan", det.Texts["par_2"])

	box := det.NonText["par_1"]
	assert.True(t, box.Unit.IsPixels())
	assert.Equal(t, 250, box.Unit.DPI())
	assert.Equal(t, 500.0, box.Width())
}

func TestDetectionsFromHOCRRejectsBadDPI(t *testing.T) {
	_, err := DetectionsFromHOCR(hocr.Page{}, nil, 0, 1, "p")
	assert.Error(t, err)
}

func TestRegionMapClone(t *testing.T) {
	m := RegionMap{"a": pxBox(t, 0, 0, 10, 10)}
	c := m.Clone()
	c["b"] = pxBox(t, 0, 0, 20, 20)
	assert.Len(t, m, 1)
	assert.Len(t, c, 2)
}
