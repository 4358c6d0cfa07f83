package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/inspect"
)

// markdownRenderer renders a Markdown report
type markdownRenderer struct{}

// NewMarkdown creates a new Markdown renderer
func NewMarkdown() Renderer {
	return &markdownRenderer{}
}

func (f *markdownRenderer) Render(result *dsl.ParseResult) ([]byte, error) {
	var b strings.Builder
	summary := inspect.Summarize(result)

	b.WriteString("# Screen Sketch Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	f.writeSummaryTable(&b, summary)
	f.writeNavigation(&b, result.Navigation)
	f.writeScreens(&b, result)
	f.writeLinks(&b, result)
	f.writeDiagnostics(&b, result)

	return []byte(b.String()), nil
}

func (f *markdownRenderer) writeSummaryTable(b *strings.Builder, summary *inspect.Summary) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Screens | %d |\n", summary.ScreenCount))
	b.WriteString(fmt.Sprintf("| Containers | %d |\n", summary.ContainerCount))
	b.WriteString(fmt.Sprintf("| Components | %d |\n", summary.ComponentCount))
	b.WriteString(fmt.Sprintf("| Links | %d |\n", summary.LinkCount))
	b.WriteString(fmt.Sprintf("| Max Nesting Depth | %d |\n", summary.MaxDepth))
	b.WriteString(fmt.Sprintf("| Problems | %d |\n", summary.DiagnosticCount))
	if len(summary.Unreferenced) > 0 {
		b.WriteString(fmt.Sprintf("| Unreferenced Screens | %s |\n", strings.Join(summary.Unreferenced, ", ")))
	}
	b.WriteString("\n")
}

func (f *markdownRenderer) writeNavigation(b *strings.Builder, nav *dsl.NavigationConfig) {
	if nav == nil {
		return
	}
	b.WriteString("## Navigation\n\n")
	switch nav.Kind {
	case dsl.NavStack:
		b.WriteString(fmt.Sprintf("Stack navigation rooted at **%s**.\n\n", nav.Root))
	case dsl.NavTabs:
		b.WriteString(fmt.Sprintf("Tab navigation: %s.\n\n", strings.Join(nav.Tabs, ", ")))
	case dsl.NavDrawer:
		b.WriteString(fmt.Sprintf("Drawer navigation rooted at **%s** with drawer **%s**.\n\n", nav.Root, nav.Drawer))
	}
}

func (f *markdownRenderer) writeScreens(b *strings.Builder, result *dsl.ParseResult) {
	if len(result.Screens) == 0 {
		return
	}
	b.WriteString("## Screens\n\n")
	for _, screen := range result.Screens {
		b.WriteString(fmt.Sprintf("### %s\n\n", screen.Name))
		if len(screen.Children) == 0 {
			b.WriteString("*empty screen*\n")
		}
		for _, el := range screen.Children {
			f.writeElement(b, el, 0)
		}
		b.WriteString("\n")
	}
}

func (f *markdownRenderer) writeElement(b *strings.Builder, el dsl.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	switch node := el.(type) {
	case *dsl.Container:
		b.WriteString(fmt.Sprintf("%s- **%s**\n", indent, node.Kind))
		for _, child := range node.Children {
			f.writeElement(b, child, depth+1)
		}
	case *dsl.Component:
		switch node.Kind {
		case dsl.ComponentLabel:
			b.WriteString(fmt.Sprintf("%s- label %q\n", indent, node.Text))
		case dsl.ComponentInput:
			if node.Placeholder != "" {
				b.WriteString(fmt.Sprintf("%s- input (placeholder %q)\n", indent, node.Placeholder))
			} else {
				b.WriteString(fmt.Sprintf("%s- input\n", indent))
			}
		case dsl.ComponentButton:
			b.WriteString(fmt.Sprintf("%s- button %q\n", indent, node.Text))
		case dsl.ComponentImage:
			b.WriteString(fmt.Sprintf("%s- image `%s`\n", indent, node.Src))
		}
	}
}

func (f *markdownRenderer) writeLinks(b *strings.Builder, result *dsl.ParseResult) {
	if len(result.Links) == 0 {
		return
	}
	b.WriteString("## Links\n\n")
	for _, link := range result.Links {
		b.WriteString(fmt.Sprintf("- %s → %s\n", link.Source, link.Target))
	}
	b.WriteString("\n")
}

func (f *markdownRenderer) writeDiagnostics(b *strings.Builder, result *dsl.ParseResult) {
	if len(result.Diagnostics) == 0 {
		return
	}
	b.WriteString("## Problems\n\n")
	b.WriteString("| Line | Message |\n")
	b.WriteString("|------|---------|\n")
	for _, d := range result.Diagnostics {
		b.WriteString(fmt.Sprintf("| %d | %s |\n", d.LineNumber, d.Message))
	}
	b.WriteString("\n")
}
