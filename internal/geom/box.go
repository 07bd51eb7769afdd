package geom

import (
	"fmt"
)

// Box is a unit-aware, axis-aligned bounding box in the form
// (x0, y0, x1, y1) where (x0, y0) is the lower-left corner and (x1, y1)
// the upper-right corner. For pixel-unit boxes the raster origin is the
// top-left corner of the page image instead; callers that mix coordinate
// systems must account for the flipped vertical axis (see caption
// package).
//
// A Box is immutable after construction.
type Box struct {
	X0, Y0, X1, Y1 float64
	Unit           Unit
}

// NewBox builds a Box from a 4-element coordinate slice and a unit.
func NewBox(coords []float64, unit Unit) (Box, error) {
	if len(coords) != 4 {
		return Box{}, fmt.Errorf("bounding box must have exactly 4 coordinates (x0, y0, x1, y1), got %d", len(coords))
	}
	return Box{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3], Unit: unit}, nil
}

// MustBox is NewBox for coordinates known to be valid; it panics on error.
// Intended for tests and literals.
func MustBox(x0, y0, x1, y1 float64, unit Unit) Box {
	b, err := NewBox([]float64{x0, y0, x1, y1}, unit)
	if err != nil {
		panic(err)
	}
	return b
}

// Width returns x1 - x0 in the box's own unit.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns y1 - y0 in the box's own unit.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Area returns width*height in the box's own unit.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Points returns the coordinates converted to points. Millimeter
// coordinates are scaled, point coordinates pass through, and pixel
// coordinates are resolved through the unit's DPI.
func (b Box) Points() [4]float64 {
	coords := [4]float64{b.X0, b.Y0, b.X1, b.Y1}
	switch b.Unit.Kind() {
	case KindPoints:
		return coords
	case KindMillimeters:
		for i, c := range coords {
			coords[i] = MmToPoints(c)
		}
		return coords
	case KindPixels:
		for i, c := range coords {
			// DPI validated at unit construction
			pt, _ := PixelsToPoints(c, b.Unit.DPI())
			coords[i] = pt
		}
		return coords
	}
	return coords
}

// Pixels returns the raw pixel coordinates. It fails for linear units:
// pixel meaning is resolution-dependent and undefined without a DPI, so
// there is no pt->px conversion.
func (b Box) Pixels() ([4]float64, error) {
	if !b.Unit.IsPixels() {
		return [4]float64{}, fmt.Errorf("only DPI-unit boxes have pixel coordinates, got unit %q", b.Unit)
	}
	return [4]float64{b.X0, b.Y0, b.X1, b.Y1}, nil
}

// Contains reports whether other lies fully within b, boundary included.
// Both boxes are compared in their raw coordinates; callers must ensure
// they share a unit.
func (b Box) Contains(other Box) bool {
	return b.X0 <= other.X0 && b.Y0 <= other.Y0 && b.X1 >= other.X1 && b.Y1 >= other.Y1
}

// SameCoords reports whether two boxes have identical coordinates,
// ignoring units.
func (b Box) SameCoords(other Box) bool {
	return b.X0 == other.X0 && b.Y0 == other.Y0 && b.X1 == other.X1 && b.Y1 == other.Y1
}
