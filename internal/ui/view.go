package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/inspect"
)

// maxVisibleDiagnostics caps the diagnostics panel; the rest collapses
// into a count.
const maxVisibleDiagnostics = 4

// screenItem adapts per-screen stats to the bubbles list
type screenItem struct {
	stats inspect.ScreenStats
}

func (i screenItem) FilterValue() string { return i.stats.Name }

func (i screenItem) Title() string { return i.stats.Name }

func (i screenItem) Description() string {
	return fmt.Sprintf("line %d, %d components", i.stats.LineNumber, i.stats.Components)
}

// View renders the full editor frame
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Loading editor..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.editor.View(),
		" ",
		m.renderSide(),
	)

	sections := []string{m.renderStatusBar(), body}
	if diags := m.renderDiagnostics(); diags != "" {
		sections = append(sections, diags)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar shows the focus mode, file name, cursor position and
// document counts on one line.
func (m *Model) renderStatusBar() string {
	mode := "EDIT"
	if m.focus == focusScreens {
		mode = "SCREENS"
	}

	name := m.path
	if name == "" {
		name = "untitled"
	}
	if m.dirty {
		name += " *"
	}
	left := m.styles.modeTag.Render(mode) + " " + m.styles.statusFile.Render(name)
	if m.status != "" {
		left += "  " + m.styles.statusNote.Render(m.status)
	}

	position := fmt.Sprintf("%d:%d", m.editor.Line()+1, m.editor.LineInfo().ColumnOffset+1)
	counts := fmt.Sprintf("%d screens  %d problems", m.summary.ScreenCount, m.summary.DiagnosticCount)
	right := m.styles.statusInfo.Render(position + "  " + counts)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderSide() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.screens.View(),
		m.renderPreview(),
	)
}

// renderPreview draws the selected screen's content tree, truncated to
// the pane height.
func (m *Model) renderPreview() string {
	var b strings.Builder
	screen := m.result.Screen(m.selected)
	switch {
	case screen == nil:
		b.WriteString(m.styles.muted.Render("no screen selected"))
	case len(screen.Children) == 0:
		b.WriteString(m.styles.screenName.Render(screen.Name))
		b.WriteString("\n" + m.styles.muted.Render("(empty)"))
	default:
		b.WriteString(m.styles.screenName.Render(screen.Name))
		for i, el := range screen.Children {
			m.writeElement(&b, el, "", i == len(screen.Children)-1)
		}
	}

	content := b.String()
	if inner := m.previewHeight - 2; inner > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > inner {
			lines = append(lines[:inner-1], m.styles.muted.Render("..."))
			content = strings.Join(lines, "\n")
		}
	}

	return m.styles.previewPane.
		Width(m.sideWidth - 2).
		Height(m.previewHeight - 2).
		Render(content)
}

func (m *Model) writeElement(b *strings.Builder, el dsl.Element, prefix string, last bool) {
	connector, childPrefix := "├─ ", prefix+"│  "
	if last {
		connector, childPrefix = "└─ ", prefix+"   "
	}
	b.WriteString("\n" + prefix + connector + m.describe(el))

	if c, ok := el.(*dsl.Container); ok {
		for i, child := range c.Children {
			m.writeElement(b, child, childPrefix, i == len(c.Children)-1)
		}
	}
}

func (m *Model) describe(el dsl.Element) string {
	switch node := el.(type) {
	case *dsl.Container:
		return m.styles.kind.Render(string(node.Kind))
	case *dsl.Component:
		switch node.Kind {
		case dsl.ComponentLabel:
			return m.styles.kind.Render("label") + " " + m.styles.value.Render(fmt.Sprintf("%q", node.Text))
		case dsl.ComponentInput:
			if node.Placeholder != "" {
				return m.styles.kind.Render("input") + " " + m.styles.muted.Render(fmt.Sprintf("placeholder=%q", node.Placeholder))
			}
			return m.styles.kind.Render("input")
		case dsl.ComponentButton:
			return m.styles.kind.Render("button") + " " + m.styles.value.Render(fmt.Sprintf("%q", node.Text))
		case dsl.ComponentImage:
			return m.styles.kind.Render("image") + " " + m.styles.value.Render("src="+node.Src)
		}
	}
	return ""
}

// renderDiagnostics lists parse problems under the body. Line numbers
// are clamped to the buffer so a half-edited document never points past
// its own end.
func (m *Model) renderDiagnostics() string {
	diags := m.result.Diagnostics
	if len(diags) == 0 {
		return ""
	}

	hidden := 0
	if len(diags) > maxVisibleDiagnostics {
		hidden = len(diags) - maxVisibleDiagnostics
		diags = diags[:maxVisibleDiagnostics]
	}

	var b strings.Builder
	b.WriteString(m.styles.diagTitle.Render(fmt.Sprintf("%d problems", len(m.result.Diagnostics))))
	for _, d := range diags {
		line := fmt.Sprintf("line %d: %s", m.clampLine(d.LineNumber), d.Message)
		b.WriteString("\n  " + m.styles.diagLine.Render(line))
	}
	if hidden > 0 {
		b.WriteString("\n  " + m.styles.muted.Render(fmt.Sprintf("and %d more", hidden)))
	}
	return b.String()
}

func (m *Model) clampLine(line int) int {
	if last := m.editor.LineCount(); line > last {
		return last
	}
	if line < 1 {
		return 1
	}
	return line
}

// diagnosticsHeight is the number of rows the diagnostics panel takes
// for n problems.
func diagnosticsHeight(n int) int {
	switch {
	case n == 0:
		return 0
	case n > maxVisibleDiagnostics:
		return maxVisibleDiagnostics + 2
	default:
		return n + 1
	}
}
