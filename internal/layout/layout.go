// Package layout models the output of PDF layout analysis: per-page
// element records tagged by kind, with bounding boxes in points. The
// parser that produces them is an external collaborator behind the
// Analyzer interface.
package layout

import (
	"context"

	"github.com/visarch/visex/internal/geom"
)

// TextElement is a text block with its bounding box in points and the
// concatenated text content.
type TextElement struct {
	Box  geom.Box
	Text string
}

// ImageElement is an embedded raster image. The box is the placement on
// the page in points; SrcWidth/SrcHeight are the intrinsic pixel
// dimensions of the embedded image stream, used for size filtering.
type ImageElement struct {
	Box       geom.Box
	Name      string
	SrcWidth  int
	SrcHeight int
	Data      []byte
}

// VectorElement is a figure or curve drawing.
type VectorElement struct {
	Box geom.Box
}

// Page is the sorted layout of one PDF page. Numbering starts at 1 and
// follows the document's own page ids.
type Page struct {
	Number  int
	Texts   []TextElement
	Images  []ImageElement
	Vectors []VectorElement
}

// Analyzer is the PDF-layout collaborator boundary: given a PDF it emits
// one Page per document page with elements sorted by kind.
type Analyzer interface {
	AnalyzePages(ctx context.Context, pdfPath string) ([]Page, error)
}

// FilterImagesBySize drops images whose intrinsic pixel dimensions fall
// below the configured minimums. A zero minimum filters nothing.
func FilterImagesBySize(images []ImageElement, minWidth, minHeight int) []ImageElement {
	if minHeight == 0 {
		minHeight = minWidth
	}
	out := make([]ImageElement, 0, len(images))
	for _, img := range images {
		if img.SrcWidth < minWidth || img.SrcHeight < minHeight {
			continue
		}
		out = append(out, img)
	}
	return out
}
