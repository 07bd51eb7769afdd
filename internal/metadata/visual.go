// Package metadata holds the output entities of the extraction pipeline:
// extracted visuals, the documents they came from, and the bibliographic
// entry that groups them, plus JSON/CSV serialization.
package metadata

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"path/filepath"

	"github.com/visarch/visex/internal/geom"
)

// maxCaptions bounds how many caption fragments a visual may carry; the
// distance and keyword matchers may each contribute one.
const maxCaptions = 2

var (
	// ErrCaptionFull signals a caption-set attempt beyond the fragment
	// limit. Recoverable: the orchestrator logs it and keeps going.
	ErrCaptionFull = errors.New("maximum number of captions already set")
	// ErrLocationSet signals an overwrite of a visual's storage location
	// without the update flag.
	ErrLocationSet = errors.New("location already set")
)

// FilePath is a storage location split into a relocatable root and a
// path relative to it, so a whole output tree can be moved by updating
// roots.
type FilePath struct {
	Root string `json:"root"`
	Path string `json:"path"`
}

// Full returns the joined path.
func (p FilePath) Full() string { return filepath.Join(p.Root, p.Path) }

// UpdateRoot repoints the root directory.
func (p *FilePath) UpdateRoot(root string) { p.Root = root }

// Document is one source PDF of an entry.
type Document struct {
	Location FilePath `json:"location"`
}

// Visual is one image extracted from a document page.
type Visual struct {
	ID         string     `json:"id"`
	PageNumber int        `json:"page_number"`
	BBox       [4]float64 `json:"bbox"`
	BBoxUnit   string     `json:"bbox_unit"`
	Captions   []string   `json:"captions,omitempty"`
	VisualType string     `json:"visual_type,omitempty"`
	Location   *FilePath  `json:"location,omitempty"`
}

// NewVisual creates a visual for a confirmed image candidate.
func NewVisual(pageNumber int, box geom.Box) *Visual {
	return &Visual{
		ID:         newID(),
		PageNumber: pageNumber,
		BBox:       [4]float64{box.X0, box.Y0, box.X1, box.Y1},
		BBoxUnit:   box.Unit.String(),
	}
}

// SetCaption records a caption fragment. At most two fragments are kept;
// further attempts return ErrCaptionFull.
func (v *Visual) SetCaption(caption string) error {
	if len(v.Captions) >= maxCaptions {
		return ErrCaptionFull
	}
	v.Captions = append(v.Captions, caption)
	return nil
}

// SetVisualType tags the visual (photo, drawing, map, ...).
func (v *Visual) SetVisualType(visualType string) {
	v.VisualType = visualType
}

// SetLocation records where the extracted image file is stored. The
// location is single-assignment; with update set, only the root path is
// repointed.
func (v *Visual) SetLocation(location FilePath, update bool) error {
	switch {
	case v.Location == nil:
		v.Location = &location
	case update:
		v.Location.UpdateRoot(location.Root)
	default:
		return ErrLocationSet
	}
	return nil
}

func newID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
