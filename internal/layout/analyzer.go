package layout

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/visarch/visex/internal/geom"
)

// lineMergeFactor controls how far apart (in multiples of the line
// height) two lines may sit and still be grouped into one text block.
const lineMergeFactor = 1.6

// defaultLineHeight stands in when the parser reports no font size.
const defaultLineHeight = 12.0

// TextAnalyzer produces page layouts from the PDF's own content streams.
// Text runs come out with positions in points. Images are left to
// DocumentAnalyzer, which layers embedded image extraction on top.
type TextAnalyzer struct{}

// NewTextAnalyzer builds the default layout analyzer.
func NewTextAnalyzer() *TextAnalyzer { return &TextAnalyzer{} }

// AnalyzePages reads every page of the PDF and groups its text runs into
// block-level elements.
func (a *TextAnalyzer) AnalyzePages(ctx context.Context, pdfPath string) ([]Page, error) {
	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", pdfPath, err)
	}
	defer func() { _ = f.Close() }()

	pages := make([]Page, 0, reader.NumPage())
	for num := 1; num <= reader.NumPage(); num++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(num)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: num})
			continue
		}
		texts, err := groupTextRuns(page.Content().Text)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", num, err)
		}
		pages = append(pages, Page{Number: num, Texts: texts})
	}
	return pages, nil
}

// textLine is an intermediate row of runs sharing a baseline.
type textLine struct {
	x0, y0, x1, y1 float64
	words          []string
}

// groupTextRuns merges character/word runs into lines by baseline and
// lines into blocks by vertical proximity.
func groupTextRuns(runs []pdf.Text) ([]TextElement, error) {
	if len(runs) == 0 {
		return nil, nil
	}

	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // top of page first
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []textLine
	for _, run := range sorted {
		height := run.FontSize
		if height == 0 {
			height = defaultLineHeight
		}
		if n := len(lines); n > 0 && math.Abs(lines[n-1].y0-run.Y) < height/2 {
			line := &lines[n-1]
			line.x0 = math.Min(line.x0, run.X)
			line.x1 = math.Max(line.x1, run.X+run.W)
			line.y1 = math.Max(line.y1, run.Y+height)
			line.words = append(line.words, run.S)
			continue
		}
		lines = append(lines, textLine{
			x0:    run.X,
			y0:    run.Y,
			x1:    run.X + run.W,
			y1:    run.Y + height,
			words: []string{run.S},
		})
	}

	var elements []TextElement
	var block []textLine
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		elem, err := mergeLines(block)
		if err != nil {
			return err
		}
		elements = append(elements, elem)
		block = block[:0]
		return nil
	}

	for _, line := range lines {
		if len(block) > 0 {
			prev := block[len(block)-1]
			gap := prev.y0 - line.y1
			if gap > (prev.y1-prev.y0)*lineMergeFactor {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
		block = append(block, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return elements, nil
}

func mergeLines(block []textLine) (TextElement, error) {
	x0, y0 := block[0].x0, block[0].y0
	x1, y1 := block[0].x1, block[0].y1
	parts := make([]string, 0, len(block))
	for _, line := range block {
		x0 = math.Min(x0, line.x0)
		y0 = math.Min(y0, line.y0)
		x1 = math.Max(x1, line.x1)
		y1 = math.Max(y1, line.y1)
		parts = append(parts, strings.Join(line.words, ""))
	}
	box, err := geom.NewBox([]float64{x0, y0, x1, y1}, geom.Points())
	if err != nil {
		return TextElement{}, err
	}
	return TextElement{Box: box, Text: strings.Join(parts, "\n")}, nil
}
