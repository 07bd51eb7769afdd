package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/visarch/visex/internal/geom"
)

// Tesseract drives a tesseract binary through its CLI. It satisfies
// Engine without cgo so the pipeline stays portable; the binary location
// and engine flags come from configuration.
type Tesseract struct {
	// Binary is the tesseract executable, "tesseract" by default.
	Binary string
	// Args are the engine flags, e.g. "--oem 1 --psm 1".
	Args []string
}

// NewTesseract builds a CLI-backed engine from a flag string such as
// "--oem 1 --psm 1".
func NewTesseract(binary, flags string) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	return &Tesseract{Binary: binary, Args: strings.Fields(flags)}
}

// RecognizeHOCR rasterizes the page through tesseract in hOCR mode.
func (t *Tesseract) RecognizeHOCR(ctx context.Context, img image.Image) ([]byte, error) {
	return t.run(ctx, img, "hocr")
}

// RegionText crops the region out of the page raster and extracts plain
// text from it.
func (t *Tesseract) RegionText(ctx context.Context, img image.Image, box geom.Box) (string, error) {
	region, err := CropRegion(img, box)
	if err != nil {
		return "", err
	}
	out, err := t.run(ctx, region, "txt")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// run writes the image to a scratch file and invokes tesseract with
// stdout output in the requested format ("hocr" or "txt").
func (t *Tesseract) run(ctx context.Context, img image.Image, format string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "visex-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	input := filepath.Join(dir, "page.png")
	if err := imaging.Save(img, input); err != nil {
		return nil, fmt.Errorf("failed to write OCR input image: %w", err)
	}

	args := []string{input, "stdout"}
	args = append(args, t.Args...)
	if format == "hocr" {
		args = append(args, "hocr")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
