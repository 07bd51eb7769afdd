// Package ocr turns rasterized PDF pages into candidate image and text
// regions. The OCR engine itself is an external collaborator behind the
// Engine interface; this package owns the hOCR post-processing: splitting
// paragraphs into text and non-text regions and filtering detection
// noise.
package ocr

import (
	"fmt"
	"image"

	"github.com/visarch/visex/internal/geom"
	"github.com/visarch/visex/internal/hocr"
)

// RegionMap maps opaque hOCR ids to pixel-unit bounding boxes.
type RegionMap map[string]geom.Box

// Clone returns a shallow copy of the map. Filters never mutate their
// input, so aliasing a RegionMap across pipeline stages is safe.
func (m RegionMap) Clone() RegionMap {
	out := make(RegionMap, len(m))
	for id, box := range m {
		out[id] = box
	}
	return out
}

// PageDetections holds the OCR view of a single page: the raster it was
// produced from and the detected regions, keyed by hOCR paragraph id.
// Non-text regions are candidate images; text regions are candidate
// caption blocks. Values are treated as immutable; filters return new
// maps instead of editing these.
type PageDetections struct {
	PageID  string
	PageNum int
	Raster  image.Image
	DPI     int
	NonText RegionMap
	Text    RegionMap
	// Texts carries the recognized content of each text region, keyed
	// like Text.
	Texts map[string]string
}

// DetectionsFromHOCR converts a parsed hOCR page into PageDetections.
// Paragraphs whose recognized text is blank are candidate image regions.
// All boxes carry a pixel unit bound to the rasterization DPI.
func DetectionsFromHOCR(page hocr.Page, raster image.Image, dpi, pageNum int, pageID string) (PageDetections, error) {
	unit, err := geom.PixelsAtDPI(dpi)
	if err != nil {
		return PageDetections{}, fmt.Errorf("invalid OCR resolution: %w", err)
	}

	det := PageDetections{
		PageID:  pageID,
		PageNum: pageNum,
		Raster:  raster,
		DPI:     dpi,
		NonText: make(RegionMap),
		Text:    make(RegionMap),
		Texts:   make(map[string]string),
	}
	for _, par := range page.Paragraphs {
		box, err := geom.NewBox([]float64{par.BBox.X0, par.BBox.Y0, par.BBox.X1, par.BBox.Y1}, unit)
		if err != nil {
			return PageDetections{}, err
		}
		if par.HasText {
			det.Text[par.ID] = box
			det.Texts[par.ID] = par.Text
		} else {
			det.NonText[par.ID] = box
		}
	}
	return det, nil
}
