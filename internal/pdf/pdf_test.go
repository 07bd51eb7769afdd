package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"empty means all", "", nil, false},
		{"single page", "3", []int{3}, false},
		{"comma list", "1,3,5", []int{1, 3, 5}, false},
		{"range", "2-5", []int{2, 3, 4, 5}, false},
		{"mixed", "1,4-6", []int{1, 4, 5, 6}, false},
		{"spaces tolerated", " 2 , 4 - 5 ", []int{2, 4, 5}, false},
		{"reversed range", "5-2", nil, true},
		{"garbage", "abc", nil, true},
		{"dangling range", "1-2-3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePageFromFilename(t *testing.T) {
	num, err := parsePageFromFilename("page_7_image_2.png")
	require.NoError(t, err)
	assert.Equal(t, 7, num)

	_, err = parsePageFromFilename("thumbnail.png")
	assert.Error(t, err)

	_, err = parsePageFromFilename("page_x_image_1.png")
	assert.Error(t, err)
}

func TestPdftoppmArgumentValidation(t *testing.T) {
	r := NewPdftoppm("")
	assert.Equal(t, "pdftoppm", r.Binary)

	_, err := r.RenderPage(t.Context(), "doc.pdf", 0, 200)
	assert.Error(t, err)

	_, err = r.RenderPage(t.Context(), "doc.pdf", 1, 0)
	assert.Error(t, err)
}

func TestValidateMissingFile(t *testing.T) {
	assert.Error(t, Validate("/nonexistent/doc.pdf"))
}
