package caption

import (
	"github.com/visarch/visex/internal/geom"
)

// searchRegion builds the zone around an image box where a caption is
// expected, as a function of direction and offset distance. The image
// coordinates and the distance must already be in the same unit, and the
// direction must already be resolved against the box's coordinate system
// (see Direction.invertVertical).
//
// The corner math intentionally mirrors the behavior this was validated
// against: the up and down bands are positioned through the image's own
// height (bottom+height and top-height) rather than referencing the
// opposite edge directly. Both collapse to the adjacent band since
// height = top - bottom by construction.
func searchRegion(c [4]float64, d float64, dir Direction) geom.Region {
	x0, y0, x1, y1 := c[0], c[1], c[2], c[3]
	h := y1 - y0

	switch dir {
	case Up:
		// band directly above: from bottom+height up to top+d
		return geom.NewRegion(geom.NewRect(x0, y0+h, x1, y1+d))
	case Down:
		// band directly below: from bottom-d up to top-height
		return geom.NewRegion(geom.NewRect(x0, y0-d, x1, y1-h))
	case Left:
		return geom.NewRegion(geom.NewRect(x0-d, y0, x0, y1))
	case Right:
		return geom.NewRegion(geom.NewRect(x1, y0, x1+d, y1))
	case DownRight:
		// L-shape covering the band below (extended right by d) and the
		// band to the right (extended down by d)
		return geom.NewRegion(
			geom.NewRect(x0, y0-d, x1+d, y0),
			geom.NewRect(x1, y0-d, x1+d, y1),
		)
	case UpLeft:
		// mirror image of DownRight above and to the left
		return geom.NewRegion(
			geom.NewRect(x0-d, y1, x1, y1+d),
			geom.NewRect(x0-d, y0, x0, y1+d),
		)
	default: // All
		// ring expanded by d on every side; the image box itself is cut
		// out so text layered under the image is not matched
		outer := geom.NewRect(x0-d, y0-d, x1+d, y1+d)
		return geom.NewRegion(outer).WithHole(geom.NewRect(x0, y0, x1, y1))
	}
}
