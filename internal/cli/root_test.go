package cli

import (
	"strings"
	"testing"

	"github.com/hevedar/appsketch/internal/config"
	"github.com/spf13/cobra"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand("1.0.0", "abc123", "2026-01-01")

	if root.Use != "appsketch" {
		t.Errorf("Expected root command use 'appsketch', got %s", root.Use)
	}

	expectedSubcommands := []string{"check", "render", "graph", "watch", "edit", "serve", "config", "version"}
	for _, name := range expectedSubcommands {
		if findSubcommand(root, name) == nil {
			t.Errorf("Expected subcommand %s to be registered", name)
		}
	}

	expectedFlags := []string{"config", "verbose", "no-color", "no-emoji", "output"}
	for _, name := range expectedFlags {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s to be registered", name)
		}
	}
}

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func TestGetGlobalConfigFallsBackToDefaults(t *testing.T) {
	oldCfgFile := cfgFile
	oldGlobalConfig := globalConfig
	defer func() {
		cfgFile = oldCfgFile
		globalConfig = oldGlobalConfig
	}()

	cfgFile = "/path/that/does/not/exist/config.yaml"
	globalConfig = nil

	cfg := GetGlobalConfig()
	if cfg == nil {
		t.Fatal("GetGlobalConfig returned nil")
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default format fallback, got %s", cfg.Output.DefaultFormat)
	}

	// Second call returns the cached config
	if GetGlobalConfig() != cfg {
		t.Error("Expected GetGlobalConfig to cache the loaded config")
	}
}

func TestResolveFormat(t *testing.T) {
	oldRenderFormat := renderFormat
	oldOutputFmt := outputFmt
	oldGlobalConfig := globalConfig
	defer func() {
		renderFormat = oldRenderFormat
		outputFmt = oldOutputFmt
		globalConfig = oldGlobalConfig
	}()

	globalConfig = config.DefaultConfig()
	globalConfig.Output.DefaultFormat = "markdown"

	// Config default applies when no flags are set
	cmd := newRenderCommand()
	if got := resolveFormat(cmd, renderFormat); got != "markdown" {
		t.Errorf("Expected configured format markdown, got %s", got)
	}

	// Local --format flag wins over everything
	cmd = newRenderCommand()
	if err := cmd.Flags().Set("format", "svg"); err != nil {
		t.Fatalf("Failed to set format flag: %v", err)
	}
	if got := resolveFormat(cmd, renderFormat); got != "svg" {
		t.Errorf("Expected flag format svg, got %s", got)
	}

	// Root --output flag wins over the config default
	root := NewRootCommand("test", "none", "unknown")
	renderCmd := findSubcommand(root, "render")
	if renderCmd == nil {
		t.Fatal("render subcommand not found")
	}
	if err := root.PersistentFlags().Set("output", "json"); err != nil {
		t.Fatalf("Failed to set output flag: %v", err)
	}
	if got := resolveFormat(renderCmd, renderFormat); got != "json" {
		t.Errorf("Expected root output format json, got %s", got)
	}
}

func TestBuildRenderer(t *testing.T) {
	oldGlobalConfig := globalConfig
	oldNoColor := noColor
	defer func() {
		globalConfig = oldGlobalConfig
		noColor = oldNoColor
	}()

	globalConfig = config.DefaultConfig()
	noColor = true

	for _, format := range []string{"text", "json", "markdown", "html", "svg"} {
		renderer, err := buildRenderer(format, newRenderCommand())
		if err != nil {
			t.Errorf("buildRenderer(%q) failed: %v", format, err)
		}
		if renderer == nil {
			t.Errorf("buildRenderer(%q) returned nil", format)
		}
	}

	if _, err := buildRenderer("docx", newRenderCommand()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestShouldColorize(t *testing.T) {
	oldGlobalConfig := globalConfig
	oldNoColor := noColor
	defer func() {
		globalConfig = oldGlobalConfig
		noColor = oldNoColor
	}()

	globalConfig = config.DefaultConfig()

	// --no-color always wins
	noColor = true
	globalConfig.Output.ColorMode = "always"
	if shouldColorize() {
		t.Error("Expected --no-color to disable color")
	}

	noColor = false
	if !shouldColorize() {
		t.Error("Expected color_mode always to enable color")
	}

	globalConfig.Output.ColorMode = "never"
	if shouldColorize() {
		t.Error("Expected color_mode never to disable color")
	}
}

func TestVersionCommandOutput(t *testing.T) {
	output := captureStdout(t, func() {
		cmd := newVersionCommand("1.2.3", "abcdef", "2026-02-03")
		cmd.Run(cmd, nil)
	})

	if !strings.Contains(output, "appsketch 1.2.3 (abcdef) built on 2026-02-03") {
		t.Errorf("Expected version line, got: %s", output)
	}
	if !strings.Contains(output, "Go version:") {
		t.Error("Expected Go runtime version in output")
	}
}

func TestVersionCommandDevFallbacks(t *testing.T) {
	output := captureStdout(t, func() {
		cmd := newVersionCommand("dev", "none", "unknown")
		cmd.Run(cmd, nil)
	})

	if !strings.Contains(output, "appsketch development (local-build) built on local-build") {
		t.Errorf("Expected development fallbacks, got: %s", output)
	}
}
