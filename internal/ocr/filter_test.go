package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visarch/visex/internal/geom"
)

func pxBox(t *testing.T, x0, y0, x1, y1 float64) geom.Box {
	t.Helper()
	unit, err := geom.PixelsAtDPI(200)
	require.NoError(t, err)
	return geom.MustBox(x0, y0, x1, y1, unit)
}

func regionIDs(m RegionMap) []string {
	return sortedIDs(m)
}

func TestFilterBySize(t *testing.T) {
	regions := RegionMap{
		"big":    pxBox(t, 0, 0, 500, 500),
		"narrow": pxBox(t, 0, 0, 50, 500),
		"short":  pxBox(t, 0, 0, 500, 50),
	}

	got, err := FilterBySize(regions, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"big"}, regionIDs(got))

	// Width-only criterion keeps the short one.
	got, err = FilterBySize(regions, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"big", "short"}, regionIDs(got))

	_, err = FilterBySize(regions, 0, 0)
	assert.Error(t, err)
}

func TestFilterByAspectRatio(t *testing.T) {
	regions := RegionMap{
		"square": pxBox(t, 0, 0, 100, 100),
		"wide":   pxBox(t, 0, 0, 2100, 100),
		"tall":   pxBox(t, 0, 0, 100, 2100),
	}

	got, err := FilterByAspectRatio(regions, 20, AspectGreater)
	require.NoError(t, err)
	assert.Equal(t, []string{"square", "tall"}, regionIDs(got))

	got, err = FilterByAspectRatio(regions, 1.0/20, AspectLess)
	require.NoError(t, err)
	assert.Equal(t, []string{"square", "wide"}, regionIDs(got))

	_, err = FilterByAspectRatio(regions, 20, "!=")
	assert.Error(t, err)
	_, err = FilterByAspectRatio(regions, 0, AspectGreater)
	assert.Error(t, err)
}

func TestFilterContained(t *testing.T) {
	regions := RegionMap{
		"A": pxBox(t, 0, 0, 100, 100),
		"B": pxBox(t, 200, 300, 350, 400),
		"C": pxBox(t, 10, 20, 90, 90),
		"D": pxBox(t, 10, 10, 90, 90),
		"E": pxBox(t, 10, 10, 90, 90),
		"F": pxBox(t, 10, 10, 15, 20),
		"G": pxBox(t, 1000, 1000, 1200, 1200),
	}

	got := FilterContained(regions)

	// D is swallowed by A and E is its duplicate, but C and F survive:
	// each is enclosed by two regions, and the second removal attempt
	// restores them.
	assert.Equal(t, []string{"A", "B", "C", "F", "G"}, regionIDs(got))
}

func TestFilterContainedSimpleCase(t *testing.T) {
	regions := RegionMap{
		"outer": pxBox(t, 0, 0, 100, 100),
		"inner": pxBox(t, 10, 20, 90, 90),
		"other": pxBox(t, 200, 200, 300, 300),
	}

	got := FilterContained(regions)
	assert.Equal(t, []string{"other", "outer"}, regionIDs(got))

	// With single-level containment the filter is idempotent.
	again := FilterContained(got)
	assert.Equal(t, regionIDs(got), regionIDs(again))
}

func TestFilterContainedKeepsOverlaps(t *testing.T) {
	regions := RegionMap{
		"a": pxBox(t, 0, 0, 100, 100),
		"b": pxBox(t, 50, 50, 150, 150),
	}

	got := FilterContained(regions)
	assert.Equal(t, []string{"a", "b"}, regionIDs(got), "overlap is not containment")
}

func TestFilterContainedDoesNotMutateInput(t *testing.T) {
	regions := RegionMap{
		"outer": pxBox(t, 0, 0, 100, 100),
		"inner": pxBox(t, 10, 20, 90, 90),
	}

	_ = FilterContained(regions)
	assert.Len(t, regions, 2)
}

func TestFilterLargest(t *testing.T) {
	regions := RegionMap{
		"small": pxBox(t, 0, 0, 10, 10),
		"large": pxBox(t, 0, 0, 200, 200),
		"mid":   pxBox(t, 0, 0, 50, 50),
	}

	got := FilterLargest(regions)
	assert.Equal(t, []string{"large"}, regionIDs(got))

	assert.Empty(t, FilterLargest(RegionMap{}))
}

func TestFilterLargestTieBreaksOnID(t *testing.T) {
	regions := RegionMap{
		"b": pxBox(t, 0, 0, 100, 100),
		"a": pxBox(t, 50, 50, 150, 150),
	}

	got := FilterLargest(regions)
	assert.Equal(t, []string{"a"}, regionIDs(got))
}
