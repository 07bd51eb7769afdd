package layout

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/visarch/visex/internal/geom"
	"github.com/visarch/visex/internal/pdf"
)

// DocumentAnalyzer combines the text layout with the document's embedded
// raster images. The PDF parser does not expose image placement, so each
// image box records the intrinsic size anchored at the page origin;
// caption matching still runs but usually resolves nothing for these,
// and the OCR strategy is the fallback for placement-accurate boxes.
type DocumentAnalyzer struct {
	text *TextAnalyzer
}

// NewDocumentAnalyzer builds the default production analyzer.
func NewDocumentAnalyzer() *DocumentAnalyzer {
	return &DocumentAnalyzer{text: NewTextAnalyzer()}
}

// AnalyzePages merges grouped text blocks with the embedded images of
// each page.
func (a *DocumentAnalyzer) AnalyzePages(ctx context.Context, pdfPath string) ([]Page, error) {
	pages, err := a.text.AnalyzePages(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	byPage, err := pdf.ExtractImages(pdfPath, "")
	if err != nil {
		return nil, fmt.Errorf("image extraction from %s failed: %w", pdfPath, err)
	}

	for i := range pages {
		for _, img := range byPage[pages[i].Number] {
			elem, err := imageElement(img)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", pages[i].Number, err)
			}
			pages[i].Images = append(pages[i].Images, elem)
		}
	}
	return pages, nil
}

// imageElement re-encodes an extracted image as PNG and sizes its box
// from the intrinsic dimensions.
func imageElement(img image.Image) (ImageElement, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	box, err := geom.NewBox([]float64{0, 0, float64(w), float64(h)}, geom.Points())
	if err != nil {
		return ImageElement{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ImageElement{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return ImageElement{
		Box:       box,
		SrcWidth:  w,
		SrcHeight: h,
		Data:      buf.Bytes(),
	}, nil
}
