// Package pipeline orchestrates visual extraction from PDF documents.
// Two strategies are provided: layout extraction reads images and text
// placement straight from the PDF content streams, while OCR extraction
// rasterizes pages and detects regions from hOCR output. Both feed the
// same caption matching and metadata output.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/visarch/visex/internal/caption"
	"github.com/visarch/visex/internal/config"
	"github.com/visarch/visex/internal/geom"
	"github.com/visarch/visex/internal/layout"
	"github.com/visarch/visex/internal/ocr"
	"github.com/visarch/visex/internal/pdf"
)

// Extractor runs extraction strategies over single documents. The PDF
// parser, rasterizer, and OCR engine are swappable collaborators.
type Extractor struct {
	cfg       *config.Config
	analyzer  layout.Analyzer
	raster    pdf.Rasterizer
	engine    ocr.Engine
	logger    *slog.Logger
	progress  ProgressCallback
	pageCount func(string) (int, error)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithAnalyzer replaces the PDF layout analyzer.
func WithAnalyzer(a layout.Analyzer) Option {
	return func(e *Extractor) { e.analyzer = a }
}

// WithRasterizer replaces the page rasterizer.
func WithRasterizer(r pdf.Rasterizer) Option {
	return func(e *Extractor) { e.raster = r }
}

// WithEngine replaces the OCR engine.
func WithEngine(eng ocr.Engine) Option {
	return func(e *Extractor) { e.engine = eng }
}

// WithLogger replaces the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithProgress installs a progress reporter for page-level strategies.
func WithProgress(p ProgressCallback) Option {
	return func(e *Extractor) { e.progress = p }
}

// WithPageCounter replaces the page-count lookup.
func WithPageCounter(fn func(string) (int, error)) Option {
	return func(e *Extractor) { e.pageCount = fn }
}

// New builds an Extractor with default collaborators derived from the
// configuration.
func New(cfg *config.Config, opts ...Option) *Extractor {
	e := &Extractor{
		cfg:       cfg,
		analyzer:  layout.NewDocumentAnalyzer(),
		raster:    pdf.NewPdftoppm(""),
		engine:    ocr.NewTesseract(cfg.OCR.Binary, cfg.OCR.Tesseract),
		logger:    slog.Default(),
		progress:  NoOpProgressCallback{},
		pageCount: pdf.PageCount,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// captionSettings resolves a validated caption block into the matcher
// inputs.
func captionSettings(cc config.CaptionConfig) (geom.Offset, caption.Direction, []string, error) {
	off, err := cc.Offset.ToOffset()
	if err != nil {
		return geom.Offset{}, caption.All, nil, err
	}
	dir, err := cc.ToDirection()
	if err != nil {
		return geom.Offset{}, caption.All, nil, err
	}
	return off, dir, cc.Keywords, nil
}

// PageError records a page that failed without aborting the document.
type PageError struct {
	Page int    `json:"page"`
	Err  string `json:"error"`
}

// Result summarizes one strategy run over one document.
type Result struct {
	Strategy   string        `json:"strategy"`
	PDF        string        `json:"pdf"`
	Pages      int           `json:"pages"`
	Visuals    int           `json:"visuals"`
	PageErrors []PageError   `json:"page_errors,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}
