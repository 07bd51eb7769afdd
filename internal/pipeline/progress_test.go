package pipeline

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogProgressCallbackInterval(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cb := NewLogProgressCallback(logger, slog.LevelInfo).WithInterval(5)
	cb.OnStart(10)
	for i := 1; i <= 10; i++ {
		cb.OnProgress(i, 10)
	}
	cb.OnComplete()

	out := buf.String()
	assert.Contains(t, out, "starting extraction")
	assert.Contains(t, out, "extraction completed")
	// Every 5th page plus the final one, which coincides with page 10.
	assert.Equal(t, 2, strings.Count(out, "extraction progress"))
}

func TestLogProgressCallbackAlwaysLogsFinalPage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	cb := NewLogProgressCallback(logger, slog.LevelInfo).WithInterval(100)
	cb.OnStart(3)
	cb.OnProgress(1, 3)
	cb.OnProgress(2, 3)
	cb.OnProgress(3, 3)

	assert.Equal(t, 1, strings.Count(buf.String(), "extraction progress"))
}

func TestNoOpProgressCallback(t *testing.T) {
	var cb ProgressCallback = NoOpProgressCallback{}
	cb.OnStart(5)
	cb.OnProgress(1, 5)
	cb.OnComplete()
}
