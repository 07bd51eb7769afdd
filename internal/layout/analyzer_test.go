package layout

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(s string, x, y, w, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: size}
}

func TestGroupTextRunsMergesLines(t *testing.T) {
	// Two lines close together form one block; a third far below forms
	// its own.
	runs := []pdf.Text{
		run("Figure ", 100, 500, 40, 12),
		run("3", 140, 500, 8, 12),
		run("site plan", 100, 486, 60, 12),
		run("footer", 100, 50, 40, 10),
	}

	elements, err := groupTextRuns(runs)
	require.NoError(t, err)
	require.Len(t, elements, 2)

	assert.Equal(t, "Figure 3\nsite plan", elements[0].Text)
	assert.Equal(t, 100.0, elements[0].Box.X0)
	assert.Equal(t, 486.0, elements[0].Box.Y0)
	assert.Equal(t, 160.0, elements[0].Box.X1)
	assert.Equal(t, 512.0, elements[0].Box.Y1)

	assert.Equal(t, "footer", elements[1].Text)
}

func TestGroupTextRunsSortsTopDown(t *testing.T) {
	runs := []pdf.Text{
		run("second", 100, 100, 40, 12),
		run("first", 100, 400, 40, 12),
	}

	elements, err := groupTextRuns(runs)
	require.NoError(t, err)
	require.Len(t, elements, 2)
	assert.Equal(t, "first", elements[0].Text)
	assert.Equal(t, "second", elements[1].Text)
}

func TestGroupTextRunsEmpty(t *testing.T) {
	elements, err := groupTextRuns(nil)
	require.NoError(t, err)
	assert.Empty(t, elements)
}

func TestGroupTextRunsZeroFontSize(t *testing.T) {
	elements, err := groupTextRuns([]pdf.Text{run("x", 10, 10, 5, 0)})
	require.NoError(t, err)
	require.Len(t, elements, 1)
	// Falls back to the default line height.
	assert.Equal(t, 22.0, elements[0].Box.Y1)
}
