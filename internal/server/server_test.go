package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hevedar/appsketch/internal/dsl"
)

func writeSketch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.sketch")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write sketch file: %v", err)
	}
	return path
}

func newTestServer(t *testing.T, source string) *Server {
	t.Helper()
	s, err := New(&Config{
		Path: writeSketch(t, source),
		Port: 4333,
	})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

func TestNewAppliesDefaults(t *testing.T) {
	s := newTestServer(t, "screen Home\n")

	if s.config.Host != "127.0.0.1" {
		t.Errorf("Expected default host 127.0.0.1, got %s", s.config.Host)
	}
	if s.config.Debounce != 300*time.Millisecond {
		t.Errorf("Expected default debounce 300ms, got %v", s.config.Debounce)
	}
	if s.config.Title != "Sketch Preview" {
		t.Errorf("Expected default title, got %s", s.config.Title)
	}
	if s.http.Addr != "127.0.0.1:4333" {
		t.Errorf("Expected addr 127.0.0.1:4333, got %s", s.http.Addr)
	}

	_, result := s.snapshot()
	if len(result.Screens) != 1 {
		t.Errorf("Expected document parsed at startup, got %d screens", len(result.Screens))
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	path := writeSketch(t, "screen Home\n")

	tests := []struct {
		name   string
		config *Config
	}{
		{
			name:   "empty path",
			config: &Config{Port: 4333},
		},
		{
			name:   "zero port",
			config: &Config{Path: path, Port: 0},
		},
		{
			name:   "port out of range",
			config: &Config{Path: path, Port: 70000},
		},
		{
			name:   "missing document",
			config: &Config{Path: filepath.Join(t.TempDir(), "missing.sketch"), Port: 4333},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestPageHandler(t *testing.T) {
	s := newTestServer(t, "screen Home\nscreen Profile\nHome -> Profile\n")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Home") {
		t.Error("Expected page to contain the screen name")
	}
	if !strings.Contains(body, "2 screens") {
		t.Error("Expected page to contain the screen count")
	}
	if !strings.Contains(body, "/ws") {
		t.Error("Expected page to contain the WebSocket script")
	}
	if !strings.Contains(body, `<span class="tok-keyword">screen</span>`) {
		t.Error("Expected page to contain highlighted source")
	}
}

func TestPageHandlerNotFound(t *testing.T) {
	s := newTestServer(t, "screen Home\n")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestPreviewHandler(t *testing.T) {
	s := newTestServer(t, "screen Home\n  label \"Welcome\"\n")

	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `class="frame"`) {
		t.Error("Expected preview to contain a phone frame")
	}
	if !strings.Contains(body, "Welcome") {
		t.Error("Expected preview to contain the label text")
	}
}

func TestResultHandler(t *testing.T) {
	s := newTestServer(t, "screen Home\nscreen Profile\nHome -> Profile\n")

	req := httptest.NewRequest(http.MethodGet, "/api/result.json", nil)
	rec := httptest.NewRecorder()
	s.http.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var result struct {
		Screens []struct {
			Name string `json:"name"`
		} `json:"screens"`
		Links []dsl.ScreenLink `json:"links"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if len(result.Screens) != 2 {
		t.Errorf("Expected 2 screens, got %d", len(result.Screens))
	}
	if len(result.Links) != 1 {
		t.Errorf("Expected 1 link, got %d", len(result.Links))
	}
}

func TestHighlightSource(t *testing.T) {
	src := "screen Home\n  label \"Hi & <bye>\"\n"
	out := string(highlightSource(src, []dsl.Diagnostic{{Message: "bad line", LineNumber: 2}}))

	if !strings.Contains(out, `<span class="tok-keyword">screen</span>`) {
		t.Errorf("Expected keyword span, got %s", out)
	}
	if !strings.Contains(out, "&amp;") || strings.Contains(out, "<bye>") {
		t.Error("Expected raw text to be escaped")
	}
	if !strings.Contains(out, `<li class="flagged">`) {
		t.Error("Expected diagnostic line to be flagged")
	}
}

func TestHubBroadcast(t *testing.T) {
	h := newHub()
	go h.run()
	defer h.stop()

	c := &client{id: "tab", send: make(chan []byte, 2)}
	h.register <- c

	h.send([]byte("hello"))

	select {
	case got := <-c.send:
		if string(got) != "hello" {
			t.Errorf("Expected hello, got %s", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for broadcast")
	}

	h.unregister <- c

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("Expected send channel closed after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("Send channel not closed after unregister")
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	h := newHub()
	go h.run()
	defer h.stop()

	// Unbuffered channel that nobody reads: the first delivery attempt
	// cannot complete, so the hub must evict the client.
	c := &client{id: "slow", send: make(chan []byte)}
	h.register <- c

	h.send([]byte("first"))

	deadline := time.Now().Add(time.Second)
	for h.count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Slow client was not dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("Expected closed send channel, got a message")
		}
	default:
		t.Error("Expected send channel to be closed")
	}
}

func TestRefreshBroadcastsUpdate(t *testing.T) {
	path := writeSketch(t, "screen Home\n")
	s, err := New(&Config{Path: path, Port: 4333})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	go s.hub.run()
	defer s.hub.stop()

	c := &client{id: "tab", send: make(chan []byte, 4)}
	s.hub.register <- c

	if err := os.WriteFile(path, []byte("screen Home\nscreen Profile\n"), 0o600); err != nil {
		t.Fatalf("Failed to rewrite document: %v", err)
	}
	s.refresh()

	select {
	case raw := <-c.send:
		var msg updateMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("Failed to decode update: %v", err)
		}
		if msg.Type != "update" {
			t.Errorf("Expected update message, got %s", msg.Type)
		}
		if msg.Screens != 2 {
			t.Errorf("Expected 2 screens in update, got %d", msg.Screens)
		}
		if msg.Generation != 2 {
			t.Errorf("Expected generation 2, got %d", msg.Generation)
		}
	case <-time.After(time.Second):
		t.Fatal("No update broadcast after refresh")
	}

	_, result := s.snapshot()
	if len(result.Screens) != 2 {
		t.Errorf("Expected snapshot with 2 screens, got %d", len(result.Screens))
	}
}

func TestWebSocketPushOnRefresh(t *testing.T) {
	path := writeSketch(t, "screen Home\n")
	s, err := New(&Config{Path: path, Port: 4333})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	go s.hub.run()
	defer s.hub.stop()

	ts := httptest.NewServer(s.http.Handler)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial preview socket: %v", err)
	}
	defer conn.Close()

	// The handler registers the client before its first read; wait
	// until the hub has seen it.
	deadline := time.Now().Add(time.Second)
	for s.hub.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never registered with the hub")
		}
		time.Sleep(10 * time.Millisecond)
	}

	s.refresh()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read update from socket: %v", err)
	}

	var msg updateMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("Failed to decode update: %v", err)
	}
	if msg.Type != "update" {
		t.Errorf("Expected update message, got %s", msg.Type)
	}
}

func TestShutdownStopsHub(t *testing.T) {
	s := newTestServer(t, "screen Home\n")
	go s.hub.run()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}

	// Messages after shutdown are dropped, not deadlocked
	s.hub.send([]byte("late"))
}
