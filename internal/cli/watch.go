package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hevedar/appsketch/internal/logging"
	"github.com/spf13/cobra"
)

var (
	watchDebounce time.Duration
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Watch a sketch file and re-check it on change",
		Long: `Monitor a sketch file and re-run the checks every time it changes.

Uses file system notifications to detect changes. Rapid bursts of
events (editor autosave, atomic replace) are coalesced by a debounce
delay. Press Ctrl+C to stop watching.

Examples:
  appsketch watch login.sketch
  appsketch watch --debounce 1s login.sketch`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "delay after the last change before re-checking")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	// Use the configured debounce if the flag wasn't explicitly set
	if !cmd.Flag("debounce").Changed {
		watchDebounce = GetGlobalConfig().Preview.Debounce
	}

	watcher, cleanup, err := setupFileWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanup()

	// Check once up front so the terminal shows the current state
	checkOnce(filename)

	return runWatchLoop(watcher, filename)
}

// checkOnce re-reads the file, parses it, and prints a timestamped report
func checkOnce(filename string) {
	source, sourceName, err := readInput([]string{filename})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	result := parseSource(source, sourceName)

	fmt.Printf("\n[%s] ", time.Now().Format("15:04:05"))
	printDiagnostics(result, sourceName)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// setupFileWatcher creates and configures file watcher
func setupFileWatcher(filename string) (*fsnotify.Watcher, func(), error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("file does not exist: %s", filename)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", filename)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	// Validate file path for security
	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	// Create watcher
	watcher, err := createWatcher(filename)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		cleanupWatcher(watcher)
	}

	return watcher, cleanup, nil
}

// runWatchLoop runs the main watch loop with signal handling
func runWatchLoop(watcher *fsnotify.Watcher, filename string) error {
	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	// Debounce timer starts disarmed; the first event arms it
	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	// Watch loop
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			handleWatchEvent(event, watcher, filename, debounce)

		case <-debounce.C:
			checkOnce(filename)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// handleWatchEvent arms the debounce timer for relevant file events
func handleWatchEvent(event fsnotify.Event, watcher *fsnotify.Watcher, filename string, debounce *time.Timer) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	logging.LogFileEvent(event.Name, event.Op.String())

	// Editors that save via rename-over drop the watch on the old
	// inode; re-add the path so the next save is still seen.
	if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
		_ = watcher.Add(filename)
	}

	debounce.Reset(watchDebounce)
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	// Check for empty path
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	// Clean the path to resolve . and .. elements
	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	// For watch operations, ensure the file exists and is a regular file
	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
