package caption

import "fmt"

// Direction selects where around an image bounding box a caption is
// searched for. Directions are page-semantic: Down means "below the image
// as a reader sees the page" regardless of the coordinate system the
// box is expressed in.
type Direction int

const (
	// All searches a ring around the whole image box.
	All Direction = iota
	// Up searches a band above the image.
	Up
	// Down searches a band below the image.
	Down
	// Left searches a band to the left of the image.
	Left
	// Right searches a band to the right of the image.
	Right
	// DownRight searches an L-shaped area below and to the right.
	DownRight
	// UpLeft searches an L-shaped area above and to the left.
	UpLeft
)

var directionNames = map[Direction]string{
	All:       "all",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	DownRight: "down-right",
	UpLeft:    "up-left",
}

// ParseDirection maps a configuration string to a Direction. The empty
// string means All, matching the historical default of searching in
// every direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "all":
		return All, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "down-right":
		return DownRight, nil
	case "up-left":
		return UpLeft, nil
	}
	return All, fmt.Errorf("direction must be one of all, up, down, left, right, down-right, up-left; got %q", s)
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

func (d Direction) valid() bool {
	_, ok := directionNames[d]
	return ok
}

// invertVertical swaps Up and Down. Raster pixel coordinates put the
// origin at the top-left of the page while PDF layout coordinates put it
// at the bottom-left, so page-semantic up/down flip when the image box is
// expressed in pixels. Left/Right and the compound directions are left
// untouched.
func (d Direction) invertVertical() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}
