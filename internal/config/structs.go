package config

// Config is the complete configuration for the visex extraction tool.
// It covers both extraction strategies (native layout analysis and OCR),
// output handling, batch orchestration, and serve mode, and supports
// loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Layout holds settings for the native layout strategy, where
	// element boxes come out of the PDF content streams in points.
	Layout AnalysisConfig `mapstructure:"layout" yaml:"layout" json:"layout"`

	// OCR holds settings for the raster strategy, where boxes are
	// pixels at the configured resolution.
	OCR OCRConfig `mapstructure:"ocr" yaml:"ocr" json:"ocr"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Repository identifies the library repository the entries come from.
	Repository RepositoryConfig `mapstructure:"repository" yaml:"repository" json:"repository"`
}

// AnalysisConfig is the settings block shared by both strategies: how
// captions are matched and which image candidates survive filtering.
type AnalysisConfig struct {
	Caption CaptionConfig `mapstructure:"caption" yaml:"caption" json:"caption"`
	Image   ImageConfig   `mapstructure:"image" yaml:"image" json:"image"`
}

// CaptionConfig describes the caption search around an image: how far to
// look, in which direction, and which keywords break ties.
type CaptionConfig struct {
	Offset    OffsetConfig `mapstructure:"offset" yaml:"offset" json:"offset"`
	Direction string       `mapstructure:"direction" yaml:"direction" json:"direction"`
	Keywords  []string     `mapstructure:"keywords" yaml:"keywords" json:"keywords"`
}

// OffsetConfig is a search distance with its unit, "mm" for the layout
// strategy and "px" for the OCR strategy.
type OffsetConfig struct {
	Distance float64 `mapstructure:"distance" yaml:"distance" json:"distance"`
	Unit     string  `mapstructure:"unit" yaml:"unit" json:"unit"`
}

// ImageConfig sets the minimum pixel dimensions an image candidate must
// have to be kept. A zero height falls back to the width.
type ImageConfig struct {
	MinWidth  int `mapstructure:"min_width" yaml:"min_width" json:"min_width"`
	MinHeight int `mapstructure:"min_height" yaml:"min_height" json:"min_height"`
}

// OCRConfig extends the shared analysis settings with rasterization and
// engine options.
type OCRConfig struct {
	Caption CaptionConfig `mapstructure:"caption" yaml:"caption" json:"caption"`
	Image   ImageConfig   `mapstructure:"image" yaml:"image" json:"image"`

	// Resolution is the rasterization DPI for pages fed to the engine.
	Resolution int `mapstructure:"resolution" yaml:"resolution" json:"resolution"`
	// Resize caps raster dimensions before OCR. Tesseract rejects
	// inputs above 32767 pixels on either axis.
	Resize int `mapstructure:"resize" yaml:"resize" json:"resize"`
	// Tesseract holds extra flags passed through to the binary.
	Tesseract string `mapstructure:"tesseract" yaml:"tesseract" json:"tesseract"`
	// Binary overrides the tesseract executable path.
	Binary string `mapstructure:"binary" yaml:"binary" json:"binary"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir" json:"dir"`
	// Format selects metadata serialization: json, csv, or both.
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	// Overlay enables debug page images with detected boxes drawn in.
	Overlay bool `mapstructure:"overlay" yaml:"overlay" json:"overlay"`
	// OverlayBoxColor is the hex color used for non-text boxes.
	OverlayBoxColor string `mapstructure:"overlay_box_color" yaml:"overlay_box_color" json:"overlay_box_color"`
	// OverlayTextColor is the hex color used for text boxes.
	OverlayTextColor string `mapstructure:"overlay_text_color" yaml:"overlay_text_color" json:"overlay_text_color"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	// Workers is the page-level parallelism of the OCR strategy
	// (0 means one worker per CPU).
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
	// ContinueOnError keeps a batch going when one document fails.
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// RepositoryConfig contains settings of the source repository.
type RepositoryConfig struct {
	// BaseURL is the resolver prefix for entry web URLs; the entry id
	// is appended verbatim.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
}
