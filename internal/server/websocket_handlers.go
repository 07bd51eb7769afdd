package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/visarch/visex/internal/pipeline"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketExtractRequest is an extraction request sent over a
// WebSocket. PDF bytes travel base64-encoded in the JSON.
type WebSocketExtractRequest struct {
	Strategy string `json:"strategy"`
	EntryID  string `json:"entry_id,omitempty"`
	Filename string `json:"filename,omitempty"`
	PDF      []byte `json:"pdf"`
}

// WebSocketExtractResponse reports progress and the final result.
type WebSocketExtractResponse struct {
	Type      string         `json:"type"`
	Status    string         `json:"status"` // "processing", "completed", "error"
	Progress  float64        `json:"progress,omitempty"`
	Page      int            `json:"page,omitempty"`
	Pages     int            `json:"pages,omitempty"`
	Result    *ExtractResult `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorType string         `json:"error_type,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// wsConn serializes writes to a WebSocket connection. Page workers
// report progress concurrently.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(resp WebSocketExtractResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

// extractWebSocketHandler handles WebSocket connections for extraction
// with live page progress.
func (s *Server) extractWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(r.Context(), conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(ctx context.Context, conn *websocket.Conn) {
	// Set read deadline to prevent hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Send ping messages to keep connection alive
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}()

	wc := &wsConn{conn: conn}
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}
		// An extraction can outlast the read deadline; push it out for
		// the duration of the run.
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(ctx, wc, data)
		}
	}
}

// handleWebSocketMessage runs one extraction request and streams its
// progress back over the connection.
func (s *Server) handleWebSocketMessage(ctx context.Context, wc *wsConn, data []byte) {
	var req WebSocketExtractRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(wc, "", "invalid_request", fmt.Sprintf("Failed to parse request: %v", err))
		return
	}

	requestID := strconv.FormatInt(time.Now().UnixNano(), 10)

	if len(req.PDF) == 0 {
		s.sendWebSocketError(wc, requestID, "invalid_request", "No PDF data provided")
		return
	}
	strategy := req.Strategy
	if strategy == "" {
		strategy = strategyLayout
	}
	if strategy != strategyLayout && strategy != strategyOCR {
		s.sendWebSocketError(wc, requestID, "invalid_request", "Unknown strategy: "+strategy)
		return
	}

	wc.send(WebSocketExtractResponse{
		Type:      "extract_response",
		Status:    "processing",
		Progress:  0.0,
		RequestID: requestID,
	})

	workDir, err := os.MkdirTemp("", "visex-ws-*")
	if err != nil {
		s.sendWebSocketError(wc, requestID, "internal_error", "Failed to stage upload")
		return
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	pdfPath := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(pdfPath, req.PDF, 0o600); err != nil {
		s.sendWebSocketError(wc, requestID, "internal_error", "Failed to stage upload")
		return
	}

	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	entry := s.newEntry(req.EntryID, req.Filename)
	progress := &wsProgress{wc: wc, requestID: requestID}
	ext := s.newExtractor(progress)

	var res *pipeline.Result
	if strategy == strategyOCR {
		res, err = ext.RunOCR(ctx, pdfPath, workDir, entry)
	} else {
		res, err = ext.RunLayout(ctx, pdfPath, workDir, entry)
	}

	if err != nil {
		extractRequestsTotal.WithLabelValues(strategy, "error").Inc()
		s.sendWebSocketError(wc, requestID, "extraction_failed", err.Error())
		return
	}

	extractRequestsTotal.WithLabelValues(strategy, "success").Inc()
	extractVisuals.WithLabelValues(strategy).Observe(float64(res.Visuals))

	wc.send(WebSocketExtractResponse{
		Type:      "extract_response",
		Status:    "completed",
		Progress:  1.0,
		RequestID: requestID,
		Result: &ExtractResult{
			Strategy:   res.Strategy,
			Pages:      res.Pages,
			Visuals:    res.Visuals,
			PageErrors: res.PageErrors,
			Entry:      entry,
		},
	})
}

func (s *Server) sendWebSocketError(wc *wsConn, requestID, errorType, message string) {
	wc.send(WebSocketExtractResponse{
		Type:      "extract_response",
		Status:    "error",
		Error:     message,
		ErrorType: errorType,
		RequestID: requestID,
	})
}

// wsProgress streams page progress over the connection.
type wsProgress struct {
	wc        *wsConn
	requestID string
}

func (p *wsProgress) OnStart(total int) {
	p.wc.send(WebSocketExtractResponse{
		Type:      "extract_response",
		Status:    "processing",
		Pages:     total,
		RequestID: p.requestID,
	})
}

func (p *wsProgress) OnProgress(current, total int) {
	progress := 0.0
	if total > 0 {
		progress = float64(current) / float64(total)
	}
	p.wc.send(WebSocketExtractResponse{
		Type:      "extract_response",
		Status:    "processing",
		Progress:  progress,
		Page:      current,
		Pages:     total,
		RequestID: p.requestID,
	})
}

func (p *wsProgress) OnComplete() {}
