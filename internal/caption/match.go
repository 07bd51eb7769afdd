package caption

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/visarch/visex/internal/geom"
)

const millimetersPerInch = 25.4

// MatchByDistance reports whether the text bounding box lies within the
// search region built around the image bounding box for the given offset
// and direction.
//
// Both boxes are normalized to a common unit first: a pixel-unit side
// keeps its raw pixel coordinates (and, for the image side, flips the
// vertical directions, since the raster origin sits top-left), while
// linear-unit sides are converted to points. Millimeter offsets are
// converted to the image box's unit before use; pixel offsets are only
// meaningful against pixel-unit image boxes and are rejected otherwise.
//
// A miss is an expected outcome, reported as false with a nil error.
func MatchByDistance(image, text geom.Box, off geom.Offset, dir Direction) (bool, error) {
	if !dir.valid() {
		return false, fmt.Errorf("invalid direction %v", dir)
	}

	var imgCoords [4]float64
	var distance float64

	if image.Unit.IsPixels() {
		px, err := image.Pixels()
		if err != nil {
			return false, err
		}
		imgCoords = px
		dir = dir.invertVertical()
		switch off.Unit {
		case geom.OffsetPixels:
			distance = off.Distance
		case geom.OffsetMillimeters:
			distance = off.Distance / millimetersPerInch * float64(image.Unit.DPI())
		default:
			return false, fmt.Errorf("offset unit must be mm or px, got %q", off.Unit)
		}
	} else {
		if off.Unit == geom.OffsetPixels {
			return false, errors.New("pixel offsets require a pixel-unit image box; the offset must share the image's unit")
		}
		if off.Unit != geom.OffsetMillimeters {
			return false, fmt.Errorf("offset unit must be mm or px, got %q", off.Unit)
		}
		imgCoords = image.Points()
		distance = geom.MmToPoints(off.Distance)
	}

	var textCoords [4]float64
	if text.Unit.IsPixels() {
		px, err := text.Pixels()
		if err != nil {
			return false, err
		}
		textCoords = px
	} else {
		textCoords = text.Points()
	}

	region := searchRegion(imgCoords, distance, dir)
	textRect := geom.NewRect(textCoords[0], textCoords[1], textCoords[2], textCoords[3])
	return region.Intersects(textRect), nil
}

// MatchByText reports whether the text starts with any of the given
// keywords, case-insensitively. Used as a tie-breaker when several text
// blocks sit within caption distance of the same image.
func MatchByText(text string, keywords []string) (bool, error) {
	re, err := keywordPattern(keywords)
	if err != nil {
		return false, err
	}
	return re.MatchString(strings.ToLower(text)), nil
}

// keywordPattern anchors each keyword to the start of the text and
// alternates them: ^figure|^caption|^figuur.
func keywordPattern(keywords []string) (*regexp.Regexp, error) {
	if len(keywords) == 0 {
		return nil, errors.New("keyword list cannot be empty; provide at least one keyword")
	}
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			return nil, errors.New("keywords must be non-empty strings")
		}
		parts = append(parts, "^"+strings.ToLower(kw))
	}
	re, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid caption keyword: %w", err)
	}
	return re, nil
}

// Candidate is a text block considered as a possible caption.
type Candidate struct {
	ID   string
	Box  geom.Box
	Text string
}

// Resolve applies the caption decision procedure to the text blocks of a
// page: every candidate within offset distance of the image is collected;
// a single distance match is decisive on its own, while multiple matches
// are narrowed by keyword, keeping the first keyword match in iteration
// order and discarding the rest. Returns nil when no caption is found.
//
// Discarding the later keyword matches can misattribute captions on
// dense pages; that behavior is retained deliberately and surfaced as a
// debug log rather than merged or reordered.
func Resolve(image geom.Box, candidates []Candidate, off geom.Offset, dir Direction,
	keywords []string, logger *slog.Logger,
) (*Candidate, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var matches []Candidate
	for _, cand := range candidates {
		ok, err := MatchByDistance(image, cand.Box, off, dir)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, cand)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		m := matches[0]
		return &m, nil
	}

	for i, cand := range matches {
		ok, err := MatchByText(cand.Text, keywords)
		if err != nil {
			return nil, err
		}
		if ok {
			if i < len(matches)-1 {
				logger.Debug("multiple caption candidates, keeping first keyword match",
					"kept", cand.ID, "discarded", len(matches)-1)
			}
			m := cand
			return &m, nil
		}
	}
	return nil, nil
}
