package geom

import (
	"fmt"
	"strconv"
)

// PointsPerMillimeter is the number of PDF points in one millimeter
// (1 inch = 72 pt = 25.4 mm).
const PointsPerMillimeter = 2.8346456693

// MmToPoints converts a length in millimeters to points (1/72 inch).
func MmToPoints(quantity float64) float64 {
	return quantity * PointsPerMillimeter
}

// PixelsToPoints converts a pixel length measured at the given resolution
// to points. The resolution must be a positive DPI value.
func PixelsToPoints(quantity float64, dpi int) (float64, error) {
	if dpi <= 0 {
		return 0, fmt.Errorf("dpi must be a positive integer, got %d", dpi)
	}
	return quantity / float64(dpi) * 72, nil
}

// UnitKind enumerates the measurement systems a Box can carry.
type UnitKind int

const (
	// KindPoints marks coordinates in PDF points (native layout analysis).
	KindPoints UnitKind = iota
	// KindMillimeters marks coordinates in millimeters.
	KindMillimeters
	// KindPixels marks raster pixel coordinates at a specific DPI.
	KindPixels
)

// Unit is a tagged measurement unit. Linear units (pt, mm) carry no
// resolution; pixel units are only meaningful together with the DPI the
// page was rasterized at.
type Unit struct {
	kind UnitKind
	dpi  int
}

// Points returns the point unit.
func Points() Unit { return Unit{kind: KindPoints} }

// Millimeters returns the millimeter unit.
func Millimeters() Unit { return Unit{kind: KindMillimeters} }

// PixelsAtDPI returns a pixel unit bound to the given rasterization
// resolution. The DPI must be positive.
func PixelsAtDPI(dpi int) (Unit, error) {
	if dpi <= 0 {
		return Unit{}, fmt.Errorf("dpi must be a positive integer, got %d", dpi)
	}
	return Unit{kind: KindPixels, dpi: dpi}, nil
}

// Kind reports which measurement system the unit belongs to.
func (u Unit) Kind() UnitKind { return u.kind }

// DPI returns the rasterization resolution for pixel units and zero for
// linear units.
func (u Unit) DPI() int { return u.dpi }

// IsPixels reports whether the unit is a pixel unit.
func (u Unit) IsPixels() bool { return u.kind == KindPixels }

// ParseUnit interprets a configuration value as a unit. Accepted forms are
// "pt", "mm", and a positive integer meaning pixels at that DPI.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "pt":
		return Points(), nil
	case "mm":
		return Millimeters(), nil
	}
	if dpi, err := strconv.Atoi(s); err == nil {
		return PixelsAtDPI(dpi)
	}
	return Unit{}, fmt.Errorf("unit must be 'mm', 'pt', or an integer DPI, got %q", s)
}

func (u Unit) String() string {
	switch u.kind {
	case KindPoints:
		return "pt"
	case KindMillimeters:
		return "mm"
	case KindPixels:
		return strconv.Itoa(u.dpi)
	}
	return "unknown"
}

// OffsetUnit restricts the units an Offset may use. Offsets come from
// configuration, never from PDF-native data, so points are not accepted.
type OffsetUnit string

const (
	// OffsetMillimeters is a millimeter offset distance.
	OffsetMillimeters OffsetUnit = "mm"
	// OffsetPixels is a pixel offset distance.
	OffsetPixels OffsetUnit = "px"
)

// Offset is a search distance around an image bounding box.
type Offset struct {
	Distance float64
	Unit     OffsetUnit
}

// NewOffset validates and builds an Offset.
func NewOffset(distance float64, unit OffsetUnit) (Offset, error) {
	if unit != OffsetMillimeters && unit != OffsetPixels {
		return Offset{}, fmt.Errorf("offset unit must be mm or px, got %q", unit)
	}
	return Offset{Distance: distance, Unit: unit}, nil
}
