package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/visarch/visex/internal/config"
	"github.com/visarch/visex/internal/metadata"
	"github.com/visarch/visex/internal/pdf"
	"github.com/visarch/visex/internal/pipeline"
)

// addExtractionFlags registers the flags shared by the layout and ocr
// commands.
func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", "", "output directory (default from config)")
	cmd.Flags().StringP("format", "f", "", "metadata output format: json, csv, or both")
	cmd.Flags().String("entry", "", "entry id for the document (single input only; default: filename stem)")
	cmd.Flags().Float64("offset", 0, "caption search distance")
	cmd.Flags().String("direction", "", "caption search direction (up, down, left, right, down-right, up-left, all)")
	cmd.Flags().StringSlice("keywords", nil, "caption keywords used to break ties")
	cmd.Flags().Int("min-width", 0, "minimum image width in pixels")
	cmd.Flags().Int("min-height", 0, "minimum image height in pixels")
	cmd.Flags().Bool("continue-on-error", false, "keep going when a document fails")
}

// applyExtractionFlags folds the shared flag overrides into the settings
// block of the selected strategy.
func applyExtractionFlags(cmd *cobra.Command, cfg *config.Config, caption *config.CaptionConfig, image *config.ImageConfig) {
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("offset") {
		caption.Offset.Distance, _ = cmd.Flags().GetFloat64("offset")
	}
	if cmd.Flags().Changed("direction") {
		caption.Direction, _ = cmd.Flags().GetString("direction")
	}
	if cmd.Flags().Changed("keywords") {
		caption.Keywords, _ = cmd.Flags().GetStringSlice("keywords")
	}
	if cmd.Flags().Changed("min-width") {
		image.MinWidth, _ = cmd.Flags().GetInt("min-width")
	}
	if cmd.Flags().Changed("min-height") {
		image.MinHeight, _ = cmd.Flags().GetInt("min-height")
	}
	if cmd.Flags().Changed("continue-on-error") {
		cfg.Batch.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}
}

// runExtraction processes each input PDF with the given strategy and
// writes the entry metadata next to the extracted visuals.
func runExtraction(cmd *cobra.Command, args []string, cfg *config.Config, strategy string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	entryFlag, _ := cmd.Flags().GetString("entry")
	if entryFlag != "" && len(args) > 1 {
		return fmt.Errorf("--entry applies to a single input, got %d", len(args))
	}

	ext := pipeline.New(cfg,
		pipeline.WithProgress(pipeline.NewLogProgressCallback(slog.Default(), slog.LevelInfo)))

	var failed int
	for _, path := range args {
		if err := extractDocument(cmd, ext, cfg, strategy, path, entryFlag); err != nil {
			if !cfg.Batch.ContinueOnError {
				return err
			}
			failed++
			slog.Error("document failed, continuing", "pdf", path, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}

func extractDocument(
	cmd *cobra.Command, ext *pipeline.Extractor, cfg *config.Config,
	strategy, path, entryID string,
) error {
	if err := pdf.Validate(path); err != nil {
		return fmt.Errorf("invalid PDF %s: %w", path, err)
	}

	if entryID == "" {
		entryID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	outDir := filepath.Join(cfg.Output.Dir, entryID)
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	entry := metadata.NewEntry(entryID)
	if cfg.Repository.BaseURL != "" {
		entry.SetWebURL(cfg.Repository.BaseURL)
	}
	entry.AddDocument(metadata.Document{Location: metadata.FilePath{
		Root: filepath.Dir(path),
		Path: filepath.Base(path),
	}})

	var res *pipeline.Result
	var err error
	switch strategy {
	case "ocr":
		res, err = ext.RunOCR(cmd.Context(), path, outDir, entry)
	default:
		res, err = ext.RunLayout(cmd.Context(), path, outDir, entry)
	}
	if err != nil {
		return err
	}

	if err := saveEntry(entry, outDir, cfg.Output.Format); err != nil {
		return err
	}

	slog.Info("document processed",
		"pdf", path, "strategy", res.Strategy, "pages", res.Pages,
		"visuals", res.Visuals, "failed_pages", len(res.PageErrors),
		"output", outDir)
	return nil
}

// saveEntry writes the metadata in the configured formats.
func saveEntry(entry *metadata.Entry, outDir, format string) error {
	if format == "json" || format == "both" {
		if err := entry.SaveJSON(filepath.Join(outDir, entry.EntryID+".json")); err != nil {
			return err
		}
	}
	if format == "csv" || format == "both" {
		if err := entry.SaveCSV(filepath.Join(outDir, entry.EntryID+".csv")); err != nil {
			return err
		}
	}
	return nil
}
