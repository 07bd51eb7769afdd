package geom

// Rect is a plain axis-aligned rectangle with no unit attached, used to
// describe pieces of a search region. Coordinates are normalized so that
// X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect builds a normalized Rect from two corner points.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Intersects reports whether two rectangles overlap or touch. Boundary
// contact counts as an intersection, matching polygon intersection
// semantics where shared edges intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 <= o.X1 && o.X0 <= r.X1 && r.Y0 <= o.Y1 && o.Y0 <= r.Y1
}

// containsInterior reports whether o lies strictly inside r, without
// touching r's boundary.
func (r Rect) containsInterior(o Rect) bool {
	return r.X0 < o.X0 && o.X1 < r.X1 && r.Y0 < o.Y0 && o.Y1 < r.Y1
}

// Region is a test region composed of a union of rectangles minus the
// interiors of hole rectangles. It covers the three shapes the caption
// search needs: a plain band (one rect), an L-shape (two rects), and a
// ring around the image box (one rect with one hole).
type Region struct {
	Rects []Rect
	Holes []Rect
}

// NewRegion builds a region from its component rectangles.
func NewRegion(rects ...Rect) Region {
	return Region{Rects: rects}
}

// WithHole returns a copy of the region with an additional hole cut out.
// A rectangle strictly inside a hole does not intersect the region; one
// touching or crossing the hole boundary does.
func (g Region) WithHole(hole Rect) Region {
	holes := make([]Rect, 0, len(g.Holes)+1)
	holes = append(holes, g.Holes...)
	holes = append(holes, hole)
	return Region{Rects: g.Rects, Holes: holes}
}

// Intersects reports whether the rectangle touches the region.
func (g Region) Intersects(o Rect) bool {
	hit := false
	for _, r := range g.Rects {
		if r.Intersects(o) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, h := range g.Holes {
		if h.containsInterior(o) {
			return false
		}
	}
	return true
}
