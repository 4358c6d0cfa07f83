package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.appsketch.yaml",               // Project-specific config (highest priority)
	"~/.config/appsketch/config.yaml", // User config
	"/etc/appsketch/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.appsketch.yaml
// 4. ~/.config/appsketch/config.yaml
// 5. /etc/appsketch/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load the standard paths lowest priority first so later files
		// override earlier ones.
		paths := make([]string, len(l.configPaths))
		copy(paths, l.configPaths)
		for i := len(paths)/2 - 1; i >= 0; i-- {
			opp := len(paths) - 1 - i
			paths[i], paths[opp] = paths[opp], paths[i]
		}

		for _, path := range paths {
			expandedPath := expandPath(path)
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with
// the existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Output config
		"APPSKETCH_OUTPUT_FORMAT":     func(v string) error { config.Output.DefaultFormat = v; return nil },
		"APPSKETCH_OUTPUT_COLOR_MODE": func(v string) error { config.Output.ColorMode = v; return nil },
		"APPSKETCH_OUTPUT_NO_EMOJI":   func(v string) error { return parseBool(v, &config.Output.NoEmoji) },
		"APPSKETCH_OUTPUT_VERBOSE":    func(v string) error { return parseBool(v, &config.Output.Verbose) },

		// Editor config
		"APPSKETCH_EDITOR_DEBOUNCE": func(v string) error { return parseDuration(v, &config.Editor.Debounce) },
		"APPSKETCH_EDITOR_AUTOSAVE": func(v string) error { return parseBool(v, &config.Editor.Autosave) },

		// Preview config
		"APPSKETCH_PREVIEW_HOST":      func(v string) error { config.Preview.Host = v; return nil },
		"APPSKETCH_PREVIEW_PORT":      func(v string) error { return parseInt(v, &config.Preview.Port) },
		"APPSKETCH_PREVIEW_DEBOUNCE":  func(v string) error { return parseDuration(v, &config.Preview.Debounce) },
		"APPSKETCH_PREVIEW_ADVERTISE": func(v string) error { return parseBool(v, &config.Preview.Advertise) },

		// Render config
		"APPSKETCH_RENDER_HTML_TITLE": func(v string) error { config.Render.HTMLTitle = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}
	return nil
}

// GetConfigPaths returns the list of configuration file paths that will
// be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Save writes the configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config. Only
// non-zero values from source overwrite destination, so file sections
// may be partial.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeEditorConfig(&dst.Editor, &src.Editor)
	mergePreviewConfig(&dst.Preview, &src.Preview)
	mergeRenderConfig(&dst.Render, &src.Render)
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.NoEmoji {
		dst.NoEmoji = true
	}
	if src.Verbose {
		dst.Verbose = true
	}
}

func mergeEditorConfig(dst, src *EditorConfig) {
	if src.Debounce != 0 {
		dst.Debounce = src.Debounce
	}
	if src.Autosave {
		dst.Autosave = true
	}
}

func mergePreviewConfig(dst, src *PreviewConfig) {
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.Port != 0 {
		dst.Port = src.Port
	}
	if src.Debounce != 0 {
		dst.Debounce = src.Debounce
	}
	if src.Advertise {
		dst.Advertise = true
	}
}

func mergeRenderConfig(dst, src *RenderConfig) {
	if src.HTMLTitle != "" {
		dst.HTMLTitle = src.HTMLTitle
	}
	if src.NodeWidth != 0 {
		dst.NodeWidth = src.NodeWidth
	}
	if src.NodeHeight != 0 {
		dst.NodeHeight = src.NodeHeight
	}
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
