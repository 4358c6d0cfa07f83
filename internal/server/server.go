// Package server implements the live browser preview: an HTTP server
// that renders a sketch document as phone frames, watches the file for
// changes, and pushes update notifications to connected browsers over
// WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/logging"
	"go.uber.org/zap"
)

// Config holds the preview server configuration
type Config struct {
	Path      string        // sketch document to serve and watch
	Host      string        // bind address
	Port      int           // listen port
	Debounce  time.Duration // quiet period between a file event and the re-parse
	Advertise bool          // announce the server on the local network via mDNS
	Title     string        // preview page title
}

// Server serves a live preview of a single sketch document
type Server struct {
	config   *Config
	hub      *hub
	http     *http.Server
	upgrader websocket.Upgrader

	mu         sync.RWMutex
	source     string
	result     *dsl.ParseResult
	generation int64

	done     chan struct{}
	stopOnce sync.Once
	mdns     *zeroconf.Server
}

// New creates a preview server for the given document. The document is
// parsed once up front so the first page load already shows content.
func New(config *Config) (*Server, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("no document to serve")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid preview port: %d", config.Port)
	}
	if config.Host == "" {
		config.Host = "127.0.0.1"
	}
	if config.Debounce <= 0 {
		config.Debounce = 300 * time.Millisecond
	}
	if config.Title == "" {
		config.Title = "Sketch Preview"
	}

	s := &Server{
		config: config,
		hub:    newHub(),
		done:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local development tool; any page may connect
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

// Start runs the server and blocks until a shutdown signal arrives or
// the listener fails
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}

	watcher, err := s.startWatcher()
	if err != nil {
		_ = listener.Close()
		return err
	}
	defer func() {
		_ = watcher.Close()
	}()

	go s.hub.run()

	if s.config.Advertise {
		s.advertise()
	}

	logging.Info("Preview server listening",
		zap.String("addr", s.http.Addr),
		zap.String("path", s.config.Path),
	)
	fmt.Printf("Serving %s at http://%s/\n", s.config.Path, s.http.Addr)
	fmt.Println("Press Ctrl+C to stop.")

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping preview server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully stops the server: the watcher loop ends, the
// HTTP server drains, and every preview client is disconnected
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })

	if s.mdns != nil {
		s.mdns.Shutdown()
	}

	err := s.http.Shutdown(ctx)

	// Hijacked WebSocket connections are not covered by http.Shutdown;
	// stopping the hub tears them down.
	s.hub.stop()

	logging.Sync()
	return err
}

// startWatcher begins watching the document and returns the watcher so
// the caller controls its lifetime
func (s *Server) startWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(s.config.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	go s.watchLoop(watcher)
	return watcher, nil
}

// watchLoop coalesces file events with the configured debounce and
// triggers a re-parse and broadcast when the timer fires
func (s *Server) watchLoop(watcher *fsnotify.Watcher) {
	// Debounce timer starts disarmed; the first event arms it
	debounce := time.NewTimer(s.config.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-s.done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logging.LogFileEvent(event.Name, event.Op.String())

			// Editors that save via rename-over drop the watch on the
			// old inode; re-add the path so the next save is still seen.
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				_ = watcher.Add(s.config.Path)
			}

			debounce.Reset(s.config.Debounce)

		case <-debounce.C:
			s.refresh()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher error", zap.Error(err))
		}
	}
}

// load reads and parses the document, replacing the served snapshot
func (s *Server) load() error {
	data, err := os.ReadFile(s.config.Path) // #nosec G304 - path is validated by the serve command
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	start := time.Now()
	result := dsl.Parse(string(data))
	logging.LogParse(s.config.Path, len(result.Screens), len(result.Diagnostics), time.Since(start))

	s.mu.Lock()
	s.source = string(data)
	s.result = result
	s.generation++
	s.mu.Unlock()

	return nil
}

// refresh re-parses the document and notifies connected clients
func (s *Server) refresh() {
	if err := s.load(); err != nil {
		logging.Error("Failed to reload document",
			zap.String("path", s.config.Path),
			zap.Error(err),
		)
		return
	}
	s.broadcastUpdate()
}

func (s *Server) broadcastUpdate() {
	s.mu.RLock()
	msg := updateMessage{
		Type:        "update",
		Generation:  s.generation,
		Screens:     len(s.result.Screens),
		Diagnostics: len(s.result.Diagnostics),
	}
	s.mu.RUnlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		logging.Error("Failed to marshal update message", zap.Error(err))
		return
	}
	s.hub.send(payload)
}

// snapshot returns the current source text and parse result
func (s *Server) snapshot() (string, *dsl.ParseResult) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source, s.result
}

// advertise announces the preview over mDNS so phones and tablets on
// the same network can discover it
func (s *Server) advertise() {
	instance := fmt.Sprintf("appsketch %s", filepath.Base(s.config.Path))

	mdns, err := zeroconf.Register(instance, "_http._tcp", "local.", s.config.Port, []string{"path=/"}, nil)
	if err != nil {
		logging.Warn("mDNS advertising unavailable", zap.Error(err))
		return
	}

	s.mdns = mdns
	logging.Info("Advertising preview over mDNS",
		zap.String("instance", instance),
		zap.String("service", "_http._tcp"),
	)
}
