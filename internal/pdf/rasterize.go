package pdf

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Rasterizer renders single PDF pages to images for OCR input.
type Rasterizer interface {
	// RenderPage renders the 1-based page at the given DPI.
	RenderPage(ctx context.Context, pdfPath string, pageNum, dpi int) (image.Image, error)
}

// Pdftoppm rasterizes pages by shelling out to the poppler pdftoppm
// tool, which handles the scanned-thesis PDFs in the corpus more
// reliably than in-process rendering.
type Pdftoppm struct {
	// Binary is the executable to run, "pdftoppm" by default.
	Binary string
}

// NewPdftoppm builds a rasterizer around the given binary path.
func NewPdftoppm(binary string) *Pdftoppm {
	if binary == "" {
		binary = "pdftoppm"
	}
	return &Pdftoppm{Binary: binary}
}

// RenderPage renders one page to a PNG in a temp directory and decodes
// it.
func (r *Pdftoppm) RenderPage(ctx context.Context, pdfPath string, pageNum, dpi int) (image.Image, error) {
	if pageNum < 1 {
		return nil, fmt.Errorf("page number must be positive, got %d", pageNum)
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %d", dpi)
	}

	tempDir, err := os.MkdirTemp("", "visex-raster-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	prefix := filepath.Join(tempDir, "page")
	page := strconv.Itoa(pageNum)
	cmd := exec.CommandContext(ctx, r.Binary,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", page,
		"-l", page,
		pdfPath, prefix)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed for page %d of %s: %w (%s)",
			r.Binary, pageNum, pdfPath, err, strings.TrimSpace(stderr.String()))
	}

	// pdftoppm zero-pads the page suffix depending on the page count,
	// so glob instead of guessing the exact name.
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("no raster output for page %d of %s", pageNum, pdfPath)
	}
	return loadImageFile(matches[0])
}
