package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/visarch/visex/internal/ocr"
)

// writeOverlay renders a diagnostic copy of the page raster with the
// surviving image regions and the text regions drawn as rectangles.
func (e *Extractor) writeOverlay(det ocr.PageDetections, regions ocr.RegionMap, outDir, entryID string) error {
	boxColor, err := parseHexColor(e.cfg.Output.OverlayBoxColor)
	if err != nil {
		return err
	}
	textColor, err := parseHexColor(e.cfg.Output.OverlayTextColor)
	if err != nil {
		return err
	}

	overlay, err := renderOverlay(det.Raster, regions, det.Text, boxColor, textColor)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s-page%d-overlay.png", entryID, det.PageNum)
	return imaging.Save(overlay, filepath.Join(outDir, name))
}

// renderOverlay copies the raster and draws both region sets over it.
func renderOverlay(img image.Image, boxes, texts ocr.RegionMap, boxColor, textColor color.Color) (*image.RGBA, error) {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)

	if err := drawRegions(dst, boxes, boxColor, 3); err != nil {
		return nil, err
	}
	if err := drawRegions(dst, texts, textColor, 1); err != nil {
		return nil, err
	}
	return dst, nil
}

func drawRegions(dst *image.RGBA, regions ocr.RegionMap, col color.Color, thickness int) error {
	for _, box := range regions {
		px, err := box.Pixels()
		if err != nil {
			return err
		}
		drawRect(dst, image.Rect(int(px[0]), int(px[1]), int(px[2]), int(px[3])), col, thickness)
	}
	return nil
}

// drawRect draws an axis-aligned rectangle outline.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	for t := range thickness {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, rect.Min.Y+t, col)
			dst.Set(x, rect.Max.Y-1-t, col)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.Set(rect.Min.X+t, y, col)
			dst.Set(rect.Max.X-1-t, y, col)
		}
	}
}

// parseHexColor parses "#RRGGBB" into an opaque color.
func parseHexColor(s string) (color.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("color must look like #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16), //nolint:gosec // G115: masked to 8 bits
		G: uint8(v >> 8),  //nolint:gosec // G115: masked to 8 bits
		B: uint8(v),       //nolint:gosec // G115: masked to 8 bits
		A: 255,
	}, nil
}
