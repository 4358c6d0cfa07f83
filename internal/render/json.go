package render

import (
	"encoding/json"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/inspect"
)

// jsonRenderer renders the document as indented JSON
type jsonRenderer struct{}

// NewJSON creates a new JSON renderer
func NewJSON() Renderer {
	return &jsonRenderer{}
}

// DocumentOutput is the root JSON structure: the parse result enriched
// with a summary section so consumers get counts without walking the
// tree themselves.
type DocumentOutput struct {
	Summary     *inspect.Summary      `json:"summary"`
	Screens     []*dsl.Screen         `json:"screens"`
	Navigation  *dsl.NavigationConfig `json:"navigation,omitempty"`
	Links       []dsl.ScreenLink      `json:"links"`
	Diagnostics []dsl.Diagnostic      `json:"diagnostics"`
	LineCount   int                   `json:"line_count"`
}

func (f *jsonRenderer) Render(result *dsl.ParseResult) ([]byte, error) {
	output := &DocumentOutput{
		Summary:     inspect.Summarize(result),
		Screens:     result.Screens,
		Navigation:  result.Navigation,
		Links:       result.Links,
		Diagnostics: result.Diagnostics,
		LineCount:   result.LineCount,
	}
	return json.MarshalIndent(output, "", "  ")
}
