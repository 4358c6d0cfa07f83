package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Editor  EditorConfig  `yaml:"editor" json:"editor"`
	Preview PreviewConfig `yaml:"preview" json:"preview"`
	Render  RenderConfig  `yaml:"render" json:"render"`
}

// OutputConfig configures command output and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|html|svg
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	NoEmoji       bool   `yaml:"no_emoji" json:"no_emoji"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// EditorConfig configures the terminal editor
type EditorConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"` // re-parse delay after the last edit
	Autosave bool          `yaml:"autosave" json:"autosave"`
}

// PreviewConfig configures the live-preview server
type PreviewConfig struct {
	Host      string        `yaml:"host" json:"host"`
	Port      int           `yaml:"port" json:"port"`
	Debounce  time.Duration `yaml:"debounce" json:"debounce"` // re-parse delay after file changes
	Advertise bool          `yaml:"advertise" json:"advertise"`
}

// RenderConfig configures the HTML and SVG renderers
type RenderConfig struct {
	HTMLTitle  string  `yaml:"html_title" json:"html_title"`
	NodeWidth  float64 `yaml:"node_width" json:"node_width"`
	NodeHeight float64 `yaml:"node_height" json:"node_height"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			NoEmoji:       false,
			Verbose:       false,
		},
		Editor: EditorConfig{
			Debounce: 300 * time.Millisecond,
			Autosave: false,
		},
		Preview: PreviewConfig{
			Host:      "127.0.0.1",
			Port:      4333,
			Debounce:  300 * time.Millisecond,
			Advertise: false,
		},
		Render: RenderConfig{
			HTMLTitle:  "Sketch Preview",
			NodeWidth:  150,
			NodeHeight: 60,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateEditorConfig(); err != nil {
		return err
	}
	return c.validatePreviewConfig()
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"markdown": true,
			"html":     true,
			"svg":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, html, svg)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateEditorConfig() error {
	if c.Editor.Debounce < 0 {
		return fmt.Errorf("editor debounce must be non-negative")
	}
	if c.Editor.Debounce > 10*time.Second {
		return fmt.Errorf("editor debounce must be at most 10s")
	}
	return nil
}

func (c *Config) validatePreviewConfig() error {
	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview port must be between 1 and 65535")
	}
	if c.Preview.Debounce < 0 {
		return fmt.Errorf("preview debounce must be non-negative")
	}
	return nil
}
