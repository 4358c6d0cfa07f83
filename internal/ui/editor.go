// Package ui implements the interactive terminal editor. The editor
// shows the sketch source in an editable buffer next to a screens list,
// a tree preview of the selected screen and a diagnostics panel. The
// buffer is re-parsed shortly after the user stops typing, so an
// untouched buffer always shows the same result.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hevedar/appsketch/internal/config"
	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/inspect"
)

// indentUnit is inserted when the user presses tab; sketch documents
// indent with two spaces per level.
const indentUnit = "  "

// untitledName is where an unnamed buffer goes on first save
const untitledName = "untitled.sketch"

// focusArea identifies which pane receives key input
type focusArea int

const (
	focusEditor focusArea = iota
	focusScreens
)

// reparseMsg asks the model to re-parse the buffer. The sequence number
// ties the message to the edit that scheduled it; ticks from superseded
// edits are dropped.
type reparseMsg struct {
	seq int
}

// Model is the bubbletea model for the editor
type Model struct {
	path     string
	debounce time.Duration
	autosave bool
	styles   styles

	editor  textarea.Model
	screens list.Model
	help    help.Model
	keys    keyMap

	result   *dsl.ParseResult
	summary  *inspect.Summary
	selected string

	focus    focusArea
	parseSeq int
	dirty    bool
	status   string

	width    int
	height   int
	ready    bool
	quitting bool

	sideWidth     int
	previewHeight int
}

// NewModel builds an editor for the document at path. An empty path or
// a missing file starts an empty buffer; the file is created on save.
func NewModel(path string, cfg *config.Config) (*Model, error) {
	source := ""
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - path comes from the command line
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		source = string(data)
	}

	st := newStyles(GetTheme())

	ta := textarea.New()
	ta.Placeholder = "screen Home"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.FocusedStyle.CursorLine = st.cursorLine
	ta.FocusedStyle.LineNumber = st.lineNumber
	ta.BlurredStyle.LineNumber = st.lineNumber
	ta.FocusedStyle.Placeholder = st.muted
	ta.BlurredStyle.Placeholder = st.muted
	ta.SetValue(source)
	ta.Focus()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(st.theme.Primary).
		BorderForeground(st.theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(st.theme.Secondary).
		BorderForeground(st.theme.Primary)

	screens := list.New([]list.Item{}, delegate, 0, 0)
	screens.Title = "Screens"
	screens.SetShowStatusBar(false)
	screens.SetFilteringEnabled(false)
	screens.SetShowHelp(false)
	screens.DisableQuitKeybindings()
	screens.Styles.Title = st.paneTitle

	m := &Model{
		path:     path,
		debounce: cfg.Editor.Debounce,
		autosave: cfg.Editor.Autosave,
		styles:   st,
		editor:   ta,
		screens:  screens,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	if m.debounce <= 0 {
		m.debounce = 300 * time.Millisecond
	}
	m.jumpToLine(1)
	m.reparse()
	return m, nil
}

// Run opens the editor over the alternate screen and blocks until the
// user quits
func Run(path string, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	model, err := NewModel(path, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}
	return nil
}

// Init initializes the bubbletea model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textarea.Blink)
}

// Update handles incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case reparseMsg:
		return m.handleReparse(msg)
	}
	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m.handleSave()

	case key.Matches(msg, m.keys.Switch):
		return m, m.toggleFocus()
	}

	if m.focus == focusScreens {
		return m.updateScreens(msg)
	}
	return m.updateEditor(msg)
}

// updateEditor feeds a key to the textarea and schedules a debounced
// re-parse when the buffer changed.
func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.editor.Value()

	var cmd tea.Cmd
	if key.Matches(msg, m.keys.Indent) {
		m.editor.InsertString(indentUnit)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}

	if m.editor.Value() != before {
		m.dirty = true
		m.status = ""
		m.parseSeq++
		return m, tea.Batch(cmd, m.scheduleReparse())
	}
	return m, cmd
}

// updateScreens routes keys to the screens list. Moving the cursor
// retargets the preview; enter jumps the editor to the declaration.
func (m *Model) updateScreens(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Open) {
		if item, ok := m.screens.SelectedItem().(screenItem); ok {
			m.selected = item.stats.Name
			m.focus = focusEditor
			m.jumpToLine(item.stats.LineNumber)
			return m, m.editor.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.screens, cmd = m.screens.Update(msg)
	if item, ok := m.screens.SelectedItem().(screenItem); ok {
		m.selected = item.stats.Name
	}
	return m, cmd
}

func (m *Model) handleSave() (tea.Model, tea.Cmd) {
	if m.path == "" {
		m.path = untitledName
	}
	if err := m.save(); err != nil {
		m.status = "save failed: " + err.Error()
	}
	return m, nil
}

func (m *Model) handleReparse(msg reparseMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.parseSeq {
		// A newer edit rescheduled the parse; this tick is stale.
		return m, nil
	}
	m.reparse()
	if m.autosave && m.dirty && m.path != "" {
		if err := m.save(); err != nil {
			m.status = "autosave failed: " + err.Error()
		}
	}
	if m.ready {
		m.layout()
	}
	return m, nil
}

func (m *Model) scheduleReparse() tea.Cmd {
	seq := m.parseSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return reparseMsg{seq: seq}
	})
}

// reparse rebuilds the parse result and everything derived from it
func (m *Model) reparse() {
	m.result = dsl.Parse(m.editor.Value())
	m.summary = inspect.Summarize(m.result)
	m.syncScreens()
}

// syncScreens rebuilds the screens list, keeping the selection on the
// same screen name when it still exists.
func (m *Model) syncScreens() {
	items := make([]list.Item, len(m.summary.Screens))
	index := 0
	for i, stats := range m.summary.Screens {
		items[i] = screenItem{stats: stats}
		if stats.Name == m.selected {
			index = i
		}
	}
	m.screens.SetItems(items)

	if len(items) == 0 {
		m.selected = ""
		return
	}
	m.screens.Select(index)
	m.selected = m.summary.Screens[index].Name
}

func (m *Model) save() error {
	if err := os.WriteFile(m.path, []byte(m.editor.Value()), 0o644); err != nil {
		return err
	}
	m.dirty = false
	m.status = "saved " + m.path
	return nil
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusEditor {
		m.focus = focusScreens
		m.editor.Blur()
		return nil
	}
	m.focus = focusEditor
	return m.editor.Focus()
}

// jumpToLine moves the editor cursor to the start of a 1-based line,
// clamping targets outside the buffer.
func (m *Model) jumpToLine(line int) {
	target := line - 1
	if last := m.editor.LineCount() - 1; target > last {
		target = last
	}
	if target < 0 {
		target = 0
	}
	for m.editor.Line() > target {
		m.editor.CursorUp()
	}
	for m.editor.Line() < target {
		m.editor.CursorDown()
	}
	m.editor.CursorStart()
}

const (
	statusBarHeight = 1
	helpBarHeight   = 1
	minEditorWidth  = 40
)

// layout distributes the window between the editor pane, the side
// column and the panels above and below them.
func (m *Model) layout() {
	diagHeight := diagnosticsHeight(len(m.result.Diagnostics))

	bodyHeight := m.height - statusBarHeight - helpBarHeight - diagHeight
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	editorWidth := m.width * 3 / 5
	if editorWidth < minEditorWidth {
		editorWidth = minEditorWidth
	}
	if editorWidth > m.width-24 {
		editorWidth = m.width - 24
	}
	if editorWidth < 20 {
		editorWidth = 20
	}
	sideWidth := m.width - editorWidth - 1
	if sideWidth < 0 {
		sideWidth = 0
	}

	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(bodyHeight)

	listHeight := bodyHeight / 2
	m.screens.SetSize(sideWidth, listHeight)

	m.sideWidth = sideWidth
	m.previewHeight = bodyHeight - listHeight
}
