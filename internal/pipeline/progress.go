package pipeline

import (
	"fmt"
	"log/slog"
	"time"
)

// ProgressCallback receives page-level progress during extraction runs.
type ProgressCallback interface {
	// OnStart is called when processing begins with the total number of pages.
	OnStart(total int)

	// OnProgress is called after each page completes.
	OnProgress(current, total int)

	// OnComplete is called when processing is finished.
	OnComplete()
}

// NoOpProgressCallback implements ProgressCallback but does nothing.
type NoOpProgressCallback struct{}

func (NoOpProgressCallback) OnStart(total int)             {}
func (NoOpProgressCallback) OnProgress(current, total int) {}
func (NoOpProgressCallback) OnComplete()                   {}

// LogProgressCallback logs progress updates using slog.
type LogProgressCallback struct {
	logger    *slog.Logger
	level     slog.Level
	interval  int
	lastLog   int
	startTime time.Time
}

// NewLogProgressCallback creates a log-based progress reporter that
// emits every interval pages (default 10).
func NewLogProgressCallback(logger *slog.Logger, level slog.Level) *LogProgressCallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogProgressCallback{logger: logger, level: level, interval: 10}
}

// WithInterval sets how frequently to log progress (every N pages).
func (l *LogProgressCallback) WithInterval(interval int) *LogProgressCallback {
	l.interval = interval
	return l
}

func (l *LogProgressCallback) OnStart(total int) {
	l.startTime = time.Now()
	l.lastLog = 0
	l.logger.Log(nil, l.level, "starting extraction", "total_pages", total) //nolint:staticcheck // SA1012: slog accepts nil context
}

func (l *LogProgressCallback) OnProgress(current, total int) {
	if current-l.lastLog < l.interval && current != total {
		return
	}
	l.lastLog = current
	elapsed := time.Since(l.startTime)
	rate := float64(current) / elapsed.Seconds()
	l.logger.Log(nil, l.level, "extraction progress", //nolint:staticcheck // SA1012: slog accepts nil context
		"current", current,
		"total", total,
		"percent", fmt.Sprintf("%.1f", float64(current)/float64(total)*100),
		"rate", fmt.Sprintf("%.1f/s", rate),
	)
}

func (l *LogProgressCallback) OnComplete() {
	l.logger.Log(nil, l.level, "extraction completed", //nolint:staticcheck // SA1012: slog accepts nil context
		"elapsed", time.Since(l.startTime).Round(time.Millisecond))
}
