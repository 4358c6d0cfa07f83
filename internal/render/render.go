// Package render turns parse results into output formats: a styled
// terminal tree, JSON, Markdown, a self-contained HTML preview and an
// SVG flow graph. Renderers are pure consumers of the parse result and
// sanitize image sources themselves, independent of parser diagnostics.
package render

import (
	"fmt"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/layout"
)

// Renderer defines the interface for output rendering
type Renderer interface {
	Render(result *dsl.ParseResult) ([]byte, error)
}

// Formats lists the format names accepted by New
var Formats = []string{"text", "json", "markdown", "html", "svg"}

// New returns the renderer for a format name
func New(format string, color bool) (Renderer, error) {
	switch format {
	case "text", "":
		return NewText(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "html":
		return NewHTML("Sketch Preview"), nil
	case "svg":
		return NewSVG(layout.DefaultOptions()), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
