package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/inspect"
)

// htmlRenderer renders a self-contained preview page: every screen as
// a phone frame, the diagnostics list and the flow graph inline.
type htmlRenderer struct {
	title string
}

// NewHTML creates a new HTML preview renderer
func NewHTML(title string) Renderer {
	return &htmlRenderer{title: title}
}

type htmlDocument struct {
	Title       string
	Summary     *inspect.Summary
	Navigation  string
	Screens     []htmlScreen
	Links       []dsl.ScreenLink
	Diagnostics []dsl.Diagnostic
	Graph       template.HTML
}

type htmlScreen struct {
	Name     string
	Line     int
	Elements []htmlElement
}

// htmlElement is the uniform node the recursive template walks. Src is
// already sanitized; Blocked marks an image whose source was refused.
type htmlElement struct {
	Kind        string
	Text        string
	Placeholder string
	Src         string
	Blocked     bool
	Children    []htmlElement
}

func (r *htmlRenderer) Render(result *dsl.ParseResult) ([]byte, error) {
	doc := htmlDocument{
		Title:       r.title,
		Summary:     inspect.Summarize(result),
		Navigation:  navSummary(result.Navigation),
		Links:       result.Links,
		Diagnostics: result.Diagnostics,
	}
	for _, screen := range result.Screens {
		doc.Screens = append(doc.Screens, htmlScreen{
			Name:     screen.Name,
			Line:     screen.LineNumber,
			Elements: htmlElements(screen.Children),
		})
	}

	svg, err := NewSVG(nil).Render(result)
	if err != nil {
		return nil, fmt.Errorf("rendering flow graph: %w", err)
	}
	if len(result.Screens) > 0 {
		// Labels are XML-escaped by the SVG renderer, so inlining the
		// markup verbatim is safe.
		doc.Graph = template.HTML(svg)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("executing preview template: %w", err)
	}
	return buf.Bytes(), nil
}

func htmlElements(children []dsl.Element) []htmlElement {
	out := make([]htmlElement, 0, len(children))
	for _, el := range children {
		switch node := el.(type) {
		case *dsl.Container:
			out = append(out, htmlElement{
				Kind:     string(node.Kind),
				Children: htmlElements(node.Children),
			})
		case *dsl.Component:
			view := htmlElement{
				Kind:        string(node.Kind),
				Text:        node.Text,
				Placeholder: node.Placeholder,
			}
			if node.Kind == dsl.ComponentImage {
				view.Src = SafeImageSrc(node.Src)
				view.Blocked = view.Src == ""
			}
			out = append(out, view)
		}
	}
	return out
}

func navSummary(nav *dsl.NavigationConfig) string {
	if nav == nil {
		return ""
	}
	switch nav.Kind {
	case dsl.NavStack:
		return fmt.Sprintf("navigation_stack root=%s", nav.Root)
	case dsl.NavTabs:
		return fmt.Sprintf("tab_stack tabs=%s", strings.Join(nav.Tabs, ", "))
	case dsl.NavDrawer:
		return fmt.Sprintf("drawer_stack root=%s drawer=%s", nav.Root, nav.Drawer)
	}
	return ""
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, Arial, sans-serif; margin: 2rem; background: #f4f5f7; color: #222; }
h1 { font-size: 1.4rem; }
.summary { color: #666; margin-bottom: 1.5rem; }
.diagnostics { background: #fff3f3; border: 1px solid #e0b4b4; border-radius: 6px; padding: .75rem 1.25rem; margin-bottom: 1.5rem; }
.diagnostics li { margin: .25rem 0; }
.screens { display: flex; flex-wrap: wrap; gap: 1.5rem; }
.screen { width: 270px; }
.screen header { font-weight: 600; padding: .25rem .5rem; color: #4a78c2; }
.frame { background: #fff; border: 2px solid #4a78c2; border-radius: 14px; min-height: 180px; padding: .75rem; display: flex; flex-direction: column; gap: .5rem; }
.stack { display: flex; gap: .5rem; border: 1px dashed #ccd3e0; border-radius: 8px; padding: .5rem; }
.stack.vertical_stack { flex-direction: column; }
.stack.horizontal_stack { flex-direction: row; }
.label { margin: 0; }
input { border: 1px solid #bbb; border-radius: 6px; padding: .35rem .5rem; }
button { background: #4a78c2; color: #fff; border: 0; border-radius: 6px; padding: .4rem .75rem; }
img { max-width: 100%; border-radius: 6px; }
.image-blocked { background: #eee; color: #999; border-radius: 6px; padding: 1rem; text-align: center; font-size: .8rem; }
.flow { margin-top: 2rem; background: #fff; border-radius: 8px; padding: 1rem; overflow: auto; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="summary">{{.Summary.ScreenCount}} screens, {{.Summary.ComponentCount}} components, {{.Summary.LinkCount}} links{{if .Navigation}} &middot; {{.Navigation}}{{end}}</p>
{{if .Diagnostics}}
<ul class="diagnostics">
{{range .Diagnostics}}<li>line {{.LineNumber}}: {{.Message}}</li>
{{end}}</ul>
{{end}}
<div class="screens">
{{range .Screens}}<div class="screen">
<header>{{.Name}}</header>
<div class="frame">
{{range .Elements}}{{template "element" .}}{{end}}
</div>
</div>
{{end}}</div>
{{if .Graph}}
<div class="flow">
<h2>Screen Flow</h2>
{{.Graph}}
</div>
{{end}}
</body>
</html>
{{define "element"}}
{{- if eq .Kind "vertical_stack" "horizontal_stack" -}}
<div class="stack {{.Kind}}">{{range .Children}}{{template "element" .}}{{end}}</div>
{{- else if eq .Kind "label" -}}
<p class="label">{{.Text}}</p>
{{- else if eq .Kind "input" -}}
<input type="text" placeholder="{{.Placeholder}}" readonly>
{{- else if eq .Kind "button" -}}
<button type="button">{{.Text}}</button>
{{- else if eq .Kind "image" -}}
{{- if .Blocked -}}<div class="image-blocked">image unavailable</div>{{- else -}}<img src="{{.Src}}" alt="">{{- end -}}
{{- end -}}
{{end}}`))
