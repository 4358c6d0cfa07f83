package config

// SampleConfig returns a fully commented configuration file suitable
// for `appsketch config init`.
func SampleConfig() string {
	return `# appsketch configuration file
#
# Search order:
#   1. ./.appsketch.yaml
#   2. ~/.config/appsketch/config.yaml
#   3. /etc/appsketch/config.yaml
#
# Environment variables with the APPSKETCH_ prefix override file settings,
# e.g. APPSKETCH_OUTPUT_FORMAT=json or APPSKETCH_PREVIEW_PORT=8080.

version: "1.0"

output:
  # Default output format: text, json, markdown, html, svg
  default_format: "text"

  # Color mode for terminal output: auto, always, never
  color_mode: "auto"

  # Disable emoji in terminal output (useful for Windows terminals)
  no_emoji: false

  # Verbose output on stderr
  verbose: false

editor:
  # Delay after the last keystroke before the preview re-parses
  debounce: 300ms

  # Write the buffer back to disk automatically after each successful parse
  autosave: false

preview:
  # Address the live preview server binds to
  host: "127.0.0.1"
  port: 4333

  # Delay after the last file change before reloading connected browsers
  debounce: 300ms

  # Advertise the preview server on the local network via mDNS
  advertise: false

render:
  # Page title for HTML output
  html_title: "Sketch Preview"

  # Screen node dimensions in the flow diagram (pixels)
  node_width: 150
  node_height: 60
`
}

// MinimalSampleConfig returns a compact configuration with only the
// settings most users change.
func MinimalSampleConfig() string {
	return `# appsketch configuration file
version: "1.0"

output:
  default_format: "text"
  color_mode: "auto"

preview:
  host: "127.0.0.1"
  port: 4333
`
}
