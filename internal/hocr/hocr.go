// Package hocr parses hOCR markup as emitted by OCR engines into the
// paragraph-level regions the extraction pipeline works with. Only the
// subset of hOCR the pipeline needs is modeled: pages, paragraphs, their
// pixel bounding boxes, and whether a paragraph holds recognized text.
package hocr

// BBox is a pixel bounding box from an hOCR title attribute, in the form
// x0 y0 x1 y2 with the origin at the top-left of the page raster.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Y1 - b.Y0 }

// Paragraph is one ocr_par element. Paragraphs without any recognized
// word content are treated as candidate image regions by the pipeline.
type Paragraph struct {
	ID      string
	BBox    BBox
	Text    string
	HasText bool
}

// Page is one ocr_page element with its paragraphs in document order.
type Page struct {
	ID         string
	BBox       BBox
	Paragraphs []Paragraph
}

// Document is a parsed hOCR file.
type Document struct {
	Pages []Page
}
