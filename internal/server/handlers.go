package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/visarch/visex/internal/metadata"
	"github.com/visarch/visex/internal/pipeline"
	"github.com/visarch/visex/internal/version"
)

const (
	strategyLayout = "layout"
	strategyOCR    = "ocr"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// extractHandler processes PDF extraction requests. The uploaded file is
// staged in a temporary directory; only the metadata entry travels back
// to the client, the cropped visuals are discarded with the directory.
func (s *Server) extractHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, strategy, err := s.parseExtractRequest(w, r)
	if err != nil {
		extractRequestsTotal.WithLabelValues(strategy, "error").Inc()
		return // error already written
	}
	defer func() { _ = file.Close() }()

	workDir, err := os.MkdirTemp("", "visex-serve-*")
	if err != nil {
		s.writeErrorResponse(w, "Failed to stage upload", http.StatusInternalServerError)
		extractRequestsTotal.WithLabelValues(strategy, "error").Inc()
		return
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	pdfPath := filepath.Join(workDir, "input.pdf")
	if err := saveUpload(file, pdfPath); err != nil {
		s.writeErrorResponse(w, "Failed to stage upload", http.StatusInternalServerError)
		extractRequestsTotal.WithLabelValues(strategy, "error").Inc()
		return
	}

	entry := s.newEntry(r.FormValue("entry"), header.Filename)

	ctx := r.Context()
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	start := time.Now()
	res, err := s.runStrategy(ctx, strategy, pdfPath, workDir, entry)
	duration := time.Since(start)

	if err != nil {
		extractRequestsTotal.WithLabelValues(strategy, "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Extraction failed: %v", err), http.StatusInternalServerError)
		return
	}

	extractRequestsTotal.WithLabelValues(strategy, "success").Inc()
	extractDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	extractVisuals.WithLabelValues(strategy).Observe(float64(res.Visuals))

	s.writeExtractResponse(w, r, res, entry)
}

// parseExtractRequest validates the multipart upload and resolves the
// strategy. On error the response has already been written.
func (s *Server) parseExtractRequest(
	w http.ResponseWriter,
	r *http.Request,
) (multipart.File, *multipart.FileHeader, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.handleFormParseError(w, err)
		return nil, nil, strategyLayout, err
	}

	strategy := r.FormValue("strategy")
	if strategy == "" {
		strategy = strategyLayout
	}
	if strategy != strategyLayout && strategy != strategyOCR {
		s.writeErrorResponse(w, "Unknown strategy: "+strategy, http.StatusBadRequest)
		return nil, nil, strategy, fmt.Errorf("unknown strategy %q", strategy)
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		s.writeErrorResponse(w, "No PDF file provided", http.StatusBadRequest)
		return nil, nil, strategy, err
	}

	if header.Size > s.maxUploadMB*1024*1024 {
		_ = file.Close()
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return nil, nil, strategy, fmt.Errorf("upload of %d bytes exceeds limit", header.Size)
	}

	uploadSizeBytes.Observe(float64(header.Size))
	return file, header, strategy, nil
}

func (s *Server) handleFormParseError(w http.ResponseWriter, err error) {
	// Distinguish body-too-large from generic parse error
	if strings.Contains(strings.ToLower(err.Error()), "body too large") ||
		strings.Contains(strings.ToLower(err.Error()), "request body too large") {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
	} else {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
	}
}

// newEntry builds the metadata entry a request's visuals accumulate
// into. The entry id defaults to the upload's filename stem.
func (s *Server) newEntry(entryID, filename string) *metadata.Entry {
	if entryID == "" {
		entryID = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	entry := metadata.NewEntry(entryID)
	if s.repoBaseURL != "" {
		entry.SetWebURL(s.repoBaseURL)
	}
	entry.AddDocument(metadata.Document{Location: metadata.FilePath{Path: filename}})
	return entry
}

func (s *Server) runStrategy(
	ctx context.Context, strategy, pdfPath, outDir string, entry *metadata.Entry,
) (*pipeline.Result, error) {
	ext := s.newExtractor(pipeline.NoOpProgressCallback{})
	if strategy == strategyOCR {
		return ext.RunOCR(ctx, pdfPath, outDir, entry)
	}
	return ext.RunLayout(ctx, pdfPath, outDir, entry)
}

func (s *Server) writeExtractResponse(
	w http.ResponseWriter, r *http.Request, res *pipeline.Result, entry *metadata.Entry,
) {
	// Determine output format: default json; allow 'format' in query or form
	format := r.FormValue("format")
	if format == "" {
		format = r.URL.Query().Get("format")
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		if err := entry.WriteCSV(w); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV response: %v\n", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := ExtractResponse{
		Success: true,
		Result: &ExtractResult{
			Strategy:   res.Strategy,
			Pages:      res.Pages,
			Visuals:    res.Visuals,
			PageErrors: res.PageErrors,
			Entry:      entry,
		},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding extract response: %v\n", err)
	}
}

// saveUpload copies the multipart file to disk.
func saveUpload(file multipart.File, path string) error {
	out, err := os.Create(path) //nolint:gosec // G304: path is under a fresh temp dir
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, file); err != nil {
		return err
	}
	return out.Close()
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ExtractResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Log error, but can't send another response
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}
