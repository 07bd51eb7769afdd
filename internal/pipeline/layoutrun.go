package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/visarch/visex/internal/caption"
	"github.com/visarch/visex/internal/geom"
	"github.com/visarch/visex/internal/layout"
	"github.com/visarch/visex/internal/metadata"
)

// RunLayout extracts visuals from the PDF's own content streams:
// embedded images become visuals, nearby text blocks become their
// captions. Extracted image files land in outDir; visuals are appended
// to the entry. Page failures are isolated and reported in the result.
func (e *Extractor) RunLayout(ctx context.Context, pdfPath, outDir string, entry *metadata.Entry) (*Result, error) {
	start := time.Now()
	res := &Result{Strategy: "layout", PDF: pdfPath}

	off, dir, keywords, err := captionSettings(e.cfg.Layout.Caption)
	if err != nil {
		return nil, err
	}

	pages, err := e.analyzer.AnalyzePages(ctx, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("layout analysis of %s failed: %w", pdfPath, err)
	}
	res.Pages = len(pages)

	before := entry.TotalVisuals
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.layoutPage(page, outDir, entry, off, dir, keywords); err != nil {
			e.logger.Warn("page failed, continuing",
				"pdf", pdfPath, "page", page.Number, "error", err)
			res.PageErrors = append(res.PageErrors, PageError{Page: page.Number, Err: err.Error()})
		}
	}

	res.Visuals = entry.TotalVisuals - before
	res.Duration = time.Since(start)
	e.logger.Info("layout extraction finished",
		"pdf", pdfPath, "pages", res.Pages, "visuals", res.Visuals,
		"failed_pages", len(res.PageErrors), "duration", res.Duration)
	return res, nil
}

func (e *Extractor) layoutPage(page layout.Page, outDir string, entry *metadata.Entry,
	off geom.Offset, dir caption.Direction, keywords []string,
) error {
	images := layout.FilterImagesBySize(page.Images,
		e.cfg.Layout.Image.MinWidth, e.cfg.Layout.Image.MinHeight)
	if len(images) == 0 {
		return nil
	}

	candidates := make([]caption.Candidate, 0, len(page.Texts))
	for i, text := range page.Texts {
		candidates = append(candidates, caption.Candidate{
			ID:   strconv.Itoa(i),
			Box:  text.Box,
			Text: text.Text,
		})
	}

	for i, img := range images {
		visual := metadata.NewVisual(page.Number, img.Box)

		cand, err := caption.Resolve(img.Box, candidates, off, dir, keywords, e.logger)
		if err != nil {
			return err
		}
		if cand != nil {
			if err := visual.SetCaption(cand.Text); err != nil {
				e.setCaptionFailed(visual.ID, err)
			}
		}

		if len(img.Data) > 0 {
			name := fmt.Sprintf("%s-page%d-img%d.png", entry.EntryID, page.Number, i+1)
			if err := os.WriteFile(filepath.Join(outDir, name), img.Data, 0o600); err != nil {
				return fmt.Errorf("failed to save image: %w", err)
			}
			if err := visual.SetLocation(metadata.FilePath{Root: outDir, Path: name}, false); err != nil {
				return err
			}
		}

		entry.AddVisual(visual)
	}
	return nil
}

// setCaptionFailed downgrades caption-capacity errors to a warning; any
// other error from SetCaption is unexpected and logged as such.
func (e *Extractor) setCaptionFailed(visualID string, err error) {
	if errors.Is(err, metadata.ErrCaptionFull) {
		e.logger.Warn("caption limit reached, dropping fragment", "visual", visualID)
		return
	}
	e.logger.Error("failed to set caption", "visual", visualID, "error", err)
}
