package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/emoji"
	"github.com/hevedar/appsketch/internal/inspect"
)

// textRenderer renders a styled tree for terminal display
type textRenderer struct {
	styles textStyles
}

type textStyles struct {
	title  lipgloss.Style
	screen lipgloss.Style
	kind   lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
	ok     lipgloss.Style
}

// NewText creates a new terminal tree renderer with optional color
func NewText(color bool) Renderer {
	return &textRenderer{styles: newTextStyles(color)}
}

func newTextStyles(color bool) textStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return textStyles{plain, plain, plain, plain, plain, plain, plain}
	}
	return textStyles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		screen: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		err:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

func (r *textRenderer) Render(result *dsl.ParseResult) ([]byte, error) {
	var b strings.Builder
	summary := inspect.Summarize(result)

	r.writeHeader(&b, summary)
	r.writeNavigation(&b, result.Navigation)
	r.writeScreens(&b, result)
	r.writeLinks(&b, result)
	r.writeDiagnostics(&b, result)

	return []byte(b.String()), nil
}

func (r *textRenderer) writeHeader(b *strings.Builder, summary *inspect.Summary) {
	b.WriteString(emoji.GetEmoji("document") + " " + r.styles.title.Render("Sketch Document") + "\n")
	b.WriteString(r.styles.muted.Render(fmt.Sprintf("%d screens, %d components, %d links, %d problems",
		summary.ScreenCount, summary.ComponentCount, summary.LinkCount, summary.DiagnosticCount)))
	b.WriteString("\n\n")
}

func (r *textRenderer) writeNavigation(b *strings.Builder, nav *dsl.NavigationConfig) {
	if nav == nil {
		return
	}
	b.WriteString(emoji.GetEmoji("navigation") + " " + r.styles.kind.Render(string(nav.Kind)))
	switch nav.Kind {
	case dsl.NavStack:
		b.WriteString(" root=" + nav.Root)
	case dsl.NavTabs:
		b.WriteString(" tabs=" + strings.Join(nav.Tabs, ", "))
	case dsl.NavDrawer:
		b.WriteString(" root=" + nav.Root + " drawer=" + nav.Drawer)
	}
	b.WriteString("\n\n")
}

func (r *textRenderer) writeScreens(b *strings.Builder, result *dsl.ParseResult) {
	for _, screen := range result.Screens {
		b.WriteString(emoji.GetEmoji("screen") + " " + r.styles.screen.Render(screen.Name))
		b.WriteString(r.styles.muted.Render(fmt.Sprintf("  (line %d)", screen.LineNumber)))
		b.WriteString("\n")
		for i, el := range screen.Children {
			r.writeElement(b, el, "", i == len(screen.Children)-1)
		}
		b.WriteString("\n")
	}
}

func (r *textRenderer) writeElement(b *strings.Builder, el dsl.Element, prefix string, last bool) {
	connector, childPrefix := "├─ ", prefix+"│  "
	if last {
		connector, childPrefix = "└─ ", prefix+"   "
	}
	b.WriteString(prefix + connector + r.describe(el) + "\n")

	if c, ok := el.(*dsl.Container); ok {
		for i, child := range c.Children {
			r.writeElement(b, child, childPrefix, i == len(c.Children)-1)
		}
	}
}

func (r *textRenderer) describe(el dsl.Element) string {
	switch node := el.(type) {
	case *dsl.Container:
		return r.styles.kind.Render(string(node.Kind))
	case *dsl.Component:
		switch node.Kind {
		case dsl.ComponentLabel:
			return r.styles.kind.Render("label") + " " + r.styles.value.Render(fmt.Sprintf("%q", node.Text))
		case dsl.ComponentInput:
			if node.Placeholder != "" {
				return r.styles.kind.Render("input") + " " + r.styles.muted.Render(fmt.Sprintf("placeholder=%q", node.Placeholder))
			}
			return r.styles.kind.Render("input")
		case dsl.ComponentButton:
			return r.styles.kind.Render("button") + " " + r.styles.value.Render(fmt.Sprintf("%q", node.Text))
		case dsl.ComponentImage:
			return r.styles.kind.Render("image") + " " + r.styles.value.Render("src="+node.Src)
		}
	}
	return ""
}

func (r *textRenderer) writeLinks(b *strings.Builder, result *dsl.ParseResult) {
	if len(result.Links) == 0 {
		return
	}
	b.WriteString(emoji.GetEmoji("link") + " " + r.styles.title.Render("Links") + "\n")
	for _, link := range result.Links {
		b.WriteString(fmt.Sprintf("  %s -> %s\n", link.Source, link.Target))
	}
	b.WriteString("\n")
}

func (r *textRenderer) writeDiagnostics(b *strings.Builder, result *dsl.ParseResult) {
	if len(result.Diagnostics) == 0 {
		b.WriteString(emoji.GetEmoji("success") + " " + r.styles.ok.Render("no problems found") + "\n")
		return
	}
	b.WriteString(emoji.GetEmoji("error") + " " + r.styles.err.Render(fmt.Sprintf("%d problems", len(result.Diagnostics))) + "\n")
	for _, d := range result.Diagnostics {
		b.WriteString(fmt.Sprintf("  line %d: %s\n", d.LineNumber, d.Message))
	}
}
