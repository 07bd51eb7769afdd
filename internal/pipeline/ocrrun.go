package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/visarch/visex/internal/caption"
	"github.com/visarch/visex/internal/hocr"
	"github.com/visarch/visex/internal/metadata"
	"github.com/visarch/visex/internal/ocr"
)

// aspectMax bounds the width/height ratio of candidate image regions;
// anything wider (or, inverted, taller) is treated as a rule or margin
// artifact.
const aspectMax = 20.0

// pageJob is a single page to OCR.
type pageJob struct {
	pageNum int
}

// pageOutcome carries one page's extracted visuals back to the
// aggregator.
type pageOutcome struct {
	pageNum int
	visuals []*metadata.Visual
	err     error
}

// RunOCR extracts visuals by rasterizing every page, running the OCR
// engine over it, and mining the hOCR output for image-like regions and
// their captions. Pages are processed by a worker pool; failures are
// isolated per page. Cropped region images land in outDir; visuals are
// appended to the entry in page order.
func (e *Extractor) RunOCR(ctx context.Context, pdfPath, outDir string, entry *metadata.Entry) (*Result, error) {
	start := time.Now()
	res := &Result{Strategy: "ocr", PDF: pdfPath}

	if e.engine == nil {
		return nil, ErrNoEngine
	}
	if _, _, _, err := captionSettings(e.cfg.OCR.Caption); err != nil {
		return nil, err
	}

	pageCount, err := e.pageCount(pdfPath)
	if err != nil {
		return nil, err
	}
	res.Pages = pageCount

	workers := e.cfg.Batch.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > pageCount {
		workers = pageCount
	}

	e.progress.OnStart(pageCount)
	defer e.progress.OnComplete()

	jobs := make(chan pageJob, pageCount)
	results := make(chan pageOutcome, pageCount)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go e.ocrWorker(ctx, pdfPath, outDir, entry.EntryID, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for num := 1; num <= pageCount; num++ {
			select {
			case jobs <- pageJob{pageNum: num}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]pageOutcome, 0, pageCount)
	done := 0
	for outcome := range results {
		outcomes = append(outcomes, outcome)
		done++
		e.progress.OnProgress(done, pageCount)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Aggregate in page order so entry output is deterministic.
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].pageNum < outcomes[j].pageNum })
	before := entry.TotalVisuals
	for _, outcome := range outcomes {
		if outcome.err != nil {
			e.logger.Warn("page failed, continuing",
				"pdf", pdfPath, "page", outcome.pageNum, "error", outcome.err)
			res.PageErrors = append(res.PageErrors, PageError{
				Page: outcome.pageNum, Err: outcome.err.Error(),
			})
			continue
		}
		for _, v := range outcome.visuals {
			entry.AddVisual(v)
		}
	}

	res.Visuals = entry.TotalVisuals - before
	res.Duration = time.Since(start)
	e.logger.Info("ocr extraction finished",
		"pdf", pdfPath, "pages", res.Pages, "visuals", res.Visuals,
		"failed_pages", len(res.PageErrors), "duration", res.Duration)
	return res, nil
}

func (e *Extractor) ocrWorker(ctx context.Context, pdfPath, outDir, entryID string,
	jobs <-chan pageJob, results chan<- pageOutcome, wg *sync.WaitGroup,
) {
	defer wg.Done()
	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			visuals, err := e.ocrPage(ctx, pdfPath, outDir, entryID, job.pageNum)
			select {
			case results <- pageOutcome{pageNum: job.pageNum, visuals: visuals, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// ocrPage runs the full raster pipeline for one page.
func (e *Extractor) ocrPage(ctx context.Context, pdfPath, outDir, entryID string, pageNum int) ([]*metadata.Visual, error) {
	raster, err := e.raster.RenderPage(ctx, pdfPath, pageNum, e.cfg.OCR.Resolution)
	if err != nil {
		return nil, err
	}
	raster, err = ocr.ResizeForOCR(raster, e.cfg.OCR.Resize)
	if err != nil {
		return nil, err
	}

	hocrBytes, err := e.engine.RecognizeHOCR(ctx, raster)
	if err != nil {
		return nil, err
	}
	doc, err := hocr.Parse(hocrBytes)
	if err != nil {
		return nil, err
	}

	var visuals []*metadata.Visual
	for _, page := range doc.Pages {
		det, err := ocr.DetectionsFromHOCR(page, raster, e.cfg.OCR.Resolution, pageNum, page.ID)
		if err != nil {
			return nil, err
		}
		pageVisuals, err := e.minePage(ctx, det, outDir, entryID)
		if err != nil {
			return nil, err
		}
		visuals = append(visuals, pageVisuals...)
	}
	return visuals, nil
}

// minePage filters the non-text regions of one detected page down to
// plausible images and resolves a caption for each.
func (e *Extractor) minePage(ctx context.Context, det ocr.PageDetections, outDir, entryID string) ([]*metadata.Visual, error) {
	off, dir, keywords, err := captionSettings(e.cfg.OCR.Caption)
	if err != nil {
		return nil, err
	}

	regions, err := ocr.FilterBySize(det.NonText,
		float64(e.cfg.OCR.Image.MinWidth), float64(e.cfg.OCR.Image.MinHeight))
	if err != nil {
		return nil, err
	}
	regions, err = ocr.FilterByAspectRatio(regions, aspectMax, ocr.AspectGreater)
	if err != nil {
		return nil, err
	}
	regions, err = ocr.FilterByAspectRatio(regions, 1/aspectMax, ocr.AspectLess)
	if err != nil {
		return nil, err
	}
	regions = ocr.FilterContained(regions)

	candidates := textCandidates(det)

	var visuals []*metadata.Visual
	for idx, id := range sortedRegionIDs(regions) {
		box := regions[id]
		visual := metadata.NewVisual(det.PageNum, box)

		cand, err := caption.Resolve(box, candidates, off, dir, keywords, e.logger)
		if err != nil {
			return nil, err
		}
		if cand != nil {
			text := cand.Text
			// Paragraph text from hOCR can be noisy; re-reading the
			// caption area alone usually cleans it up.
			if clean, rerr := e.engine.RegionText(ctx, det.Raster, cand.Box); rerr == nil && strings.TrimSpace(clean) != "" {
				text = strings.TrimSpace(clean)
			}
			if err := visual.SetCaption(text); err != nil {
				e.setCaptionFailed(visual.ID, err)
			}
		}

		crop, err := ocr.CropRegion(det.Raster, box)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s-page%d-region%d.png", entryID, det.PageNum, idx+1)
		if err := imaging.Save(crop, filepath.Join(outDir, name)); err != nil {
			return nil, fmt.Errorf("failed to save region image: %w", err)
		}
		if err := visual.SetLocation(metadata.FilePath{Root: outDir, Path: name}, false); err != nil {
			return nil, err
		}

		visuals = append(visuals, visual)
	}

	if e.cfg.Output.Overlay {
		if err := e.writeOverlay(det, regions, outDir, entryID); err != nil {
			// Overlays are diagnostics only.
			e.logger.Warn("failed to write overlay", "page", det.PageNum, "error", err)
		}
	}
	return visuals, nil
}

// textCandidates turns the text regions of a page into caption
// candidates, in sorted id order for deterministic resolution.
func textCandidates(det ocr.PageDetections) []caption.Candidate {
	ids := make([]string, 0, len(det.Text))
	for id := range det.Text {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]caption.Candidate, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, caption.Candidate{
			ID:   id,
			Box:  det.Text[id],
			Text: det.Texts[id],
		})
	}
	return candidates
}

func sortedRegionIDs(regions ocr.RegionMap) []string {
	ids := make([]string, 0, len(regions))
	for id := range regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ErrNoEngine is returned when an OCR run is attempted without an engine.
var ErrNoEngine = errors.New("no OCR engine configured")
