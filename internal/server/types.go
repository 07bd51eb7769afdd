package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/visarch/visex/internal/config"
	"github.com/visarch/visex/internal/metadata"
	"github.com/visarch/visex/internal/pipeline"
)

// extractor is the slice of the pipeline the server needs.
type extractor interface {
	RunLayout(ctx context.Context, pdfPath, outDir string, entry *metadata.Entry) (*pipeline.Result, error)
	RunOCR(ctx context.Context, pdfPath, outDir string, entry *metadata.Entry) (*pipeline.Result, error)
}

// Server holds the HTTP server state and dependencies. Extractors are
// built per request so each one can carry its own progress reporter.
type Server struct {
	newExtractor func(pipeline.ProgressCallback) extractor
	corsOrigin   string
	maxUploadMB  int64
	timeoutSec   int
	repoBaseURL  string
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ExtractResult is the payload of a successful extraction request.
type ExtractResult struct {
	Strategy   string               `json:"strategy"`
	Pages      int                  `json:"pages"`
	Visuals    int                  `json:"visuals"`
	PageErrors []pipeline.PageError `json:"page_errors,omitempty"`
	Entry      *metadata.Entry      `json:"entry"`
}

type ExtractResponse struct {
	Success bool           `json:"success"`
	Result  *ExtractResult `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// NewServer creates a new extraction server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server requires a configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Server{
		newExtractor: func(p pipeline.ProgressCallback) extractor {
			return pipeline.New(cfg, pipeline.WithProgress(p))
		},
		corsOrigin:  cfg.Server.CORSOrigin,
		maxUploadMB: int64(cfg.Server.MaxUploadMB),
		timeoutSec:  cfg.Server.TimeoutSec,
		repoBaseURL: cfg.Repository.BaseURL,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/extract", s.corsMiddleware(s.extractHandler))
	mux.HandleFunc("/ws/extract", s.extractWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
