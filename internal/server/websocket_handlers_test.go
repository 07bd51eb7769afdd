package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestSocket(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(s.extractWebSocketHandler))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/extract"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readResponse(t *testing.T, conn *websocket.Conn) WebSocketExtractResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp WebSocketExtractResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func TestWebSocketExtractStreamsProgress(t *testing.T) {
	fake := &fakeExtractor{pages: 2}
	s := newTestServer(t, fake)
	conn := dialTestSocket(t, s)

	req := WebSocketExtractRequest{
		Strategy: "ocr",
		EntryID:  "uuid:7",
		PDF:      []byte("%PDF-1.4 fake"),
	}
	require.NoError(t, conn.WriteJSON(req))

	// Initial ack, OnStart, one progress message per page, then the
	// completed result.
	first := readResponse(t, conn)
	assert.Equal(t, "processing", first.Status)
	assert.NotEmpty(t, first.RequestID)

	var resp WebSocketExtractResponse
	sawPageProgress := false
	for {
		resp = readResponse(t, conn)
		if resp.Status != "processing" {
			break
		}
		if resp.Page > 0 {
			sawPageProgress = true
			assert.Equal(t, 2, resp.Pages)
		}
	}

	assert.True(t, sawPageProgress)
	require.Equal(t, "completed", resp.Status)
	assert.InDelta(t, 1.0, resp.Progress, 1e-9)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "ocr", resp.Result.Strategy)
	assert.Equal(t, "uuid:7", resp.Result.Entry.EntryID)
	require.Len(t, resp.Result.Entry.Visuals, 1)
}

func TestWebSocketExtractRejectsEmptyPDF(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{})
	conn := dialTestSocket(t, s)

	require.NoError(t, conn.WriteJSON(WebSocketExtractRequest{Strategy: "layout"}))

	resp := readResponse(t, conn)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "invalid_request", resp.ErrorType)
}

func TestWebSocketExtractRejectsUnknownStrategy(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{})
	conn := dialTestSocket(t, s)

	require.NoError(t, conn.WriteJSON(WebSocketExtractRequest{
		Strategy: "psychic",
		PDF:      []byte("%PDF"),
	}))

	resp := readResponse(t, conn)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "psychic")
}

func TestWebSocketExtractReportsFailure(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{err: assert.AnError})
	conn := dialTestSocket(t, s)

	require.NoError(t, conn.WriteJSON(WebSocketExtractRequest{PDF: []byte("%PDF")}))

	first := readResponse(t, conn)
	require.Equal(t, "processing", first.Status)

	resp := readResponse(t, conn)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "extraction_failed", resp.ErrorType)
}
