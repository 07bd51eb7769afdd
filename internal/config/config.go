package config

import (
	"fmt"
	"strings"

	"github.com/visarch/visex/internal/caption"
	"github.com/visarch/visex/internal/geom"
	"github.com/visarch/visex/internal/ocr"
)

// DefaultConfig returns a configuration with sensible defaults for
// architecture thesis scans: captions sit below figures, mm offsets on
// the native path, px offsets on the raster path.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Layout: AnalysisConfig{
			Caption: CaptionConfig{
				Offset:    OffsetConfig{Distance: 4, Unit: "mm"},
				Direction: "down",
				Keywords:  []string{"figure", "caption", "figuur"},
			},
			Image: ImageConfig{MinWidth: 120, MinHeight: 120},
		},
		OCR: OCRConfig{
			Caption: CaptionConfig{
				Offset:    OffsetConfig{Distance: 50, Unit: "px"},
				Direction: "down",
				Keywords:  []string{"figure", "caption", "figuur"},
			},
			Image:      ImageConfig{MinWidth: 120, MinHeight: 120},
			Resolution: 250,
			Resize:     30000,
			Tesseract:  "--psm 1 --oem 1",
			Binary:     "tesseract",
		},
		Output: OutputConfig{
			Dir:              "results",
			Format:           "both",
			Overlay:          false,
			OverlayBoxColor:  "#FF0000",
			OverlayTextColor: "#0000FF",
		},
		Batch: BatchConfig{
			Workers:         0,
			ContinueOnError: true,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     200,
			TimeoutSec:      300,
			ShutdownTimeout: 10,
		},
		Repository: RepositoryConfig{
			BaseURL: "http://resolver.tudelft.nl/",
		},
	}
}

// Validate validates the configuration and returns the first error.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if err := c.Layout.Caption.validate("layout.caption"); err != nil {
		return err
	}
	if err := c.OCR.Caption.validate("ocr.caption"); err != nil {
		return err
	}

	if c.OCR.Resolution <= 0 {
		return fmt.Errorf("invalid ocr.resolution: %d (must be positive)", c.OCR.Resolution)
	}
	if c.OCR.Resize <= 0 || c.OCR.Resize > ocr.TesseractMaxDim {
		return fmt.Errorf("invalid ocr.resize: %d (must be between 1 and %d)",
			c.OCR.Resize, ocr.TesseractMaxDim)
	}

	validFormats := []string{"json", "csv", "both"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("invalid batch workers: %d (must not be negative)", c.Batch.Workers)
	}

	return nil
}

// validate checks the caption block under the given key prefix.
func (cc *CaptionConfig) validate(prefix string) error {
	if _, err := cc.Offset.ToOffset(); err != nil {
		return fmt.Errorf("invalid %s.offset: %w", prefix, err)
	}
	if _, err := caption.ParseDirection(cc.Direction); err != nil {
		return fmt.Errorf("invalid %s.direction: %w", prefix, err)
	}
	if len(cc.Keywords) == 0 {
		return fmt.Errorf("invalid %s.keywords: at least one keyword required", prefix)
	}
	for _, kw := range cc.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("invalid %s.keywords: empty keyword", prefix)
		}
	}
	return nil
}

// ToOffset converts the configured distance to a search offset.
func (o OffsetConfig) ToOffset() (geom.Offset, error) {
	return geom.NewOffset(o.Distance, geom.OffsetUnit(o.Unit))
}

// ToDirection parses the configured direction name.
func (cc *CaptionConfig) ToDirection() (caption.Direction, error) {
	return caption.ParseDirection(cc.Direction)
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
