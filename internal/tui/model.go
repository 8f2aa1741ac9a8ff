// Package tui provides the terminal host for the schedule widget. It paints
// the widget's node tree with lipgloss and forwards keys as widget
// interactions.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/schedwidget/internal/tui/commands"
	"github.com/javiermolinar/schedwidget/internal/tui/theme"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// Notifier turns widget render callbacks into TUI messages. Pass Notify as
// the widget's OnRender callback.
type Notifier struct {
	ch chan struct{}
}

// NewNotifier creates a notifier that coalesces pending renders.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Notify signals a change without blocking.
func (n *Notifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// C returns the channel signalled by Notify.
func (n *Notifier) C() <-chan struct{} {
	return n.ch
}

// Model is the main TUI model.
type Model struct {
	widget  *widget.Widget
	renders <-chan struct{}

	// Theme and styles
	palette     string // fixed palette, empty follows the widget theme
	styledTheme string
	styles      *Styles
	keys        KeyMap

	mode   Mode
	search textinput.Model
	cursor int // index into the focusable nodes
	status string

	// Terminal dimensions
	width  int
	height int
}

// New creates a model hosting w. renders may be nil when the host does not
// need asynchronous repaints.
func New(w *widget.Widget, n *Notifier, palette string) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 120

	m := Model{
		widget:  w,
		palette: palette,
		keys:    DefaultKeyMap(),
		search:  ti,
	}
	if n != nil {
		m.renders = n.C()
	}
	m.refreshStyles()
	return m
}

// Init starts listening for widget renders.
func (m Model) Init() tea.Cmd {
	return commands.WaitForRender(m.renders)
}

// refreshStyles rebuilds the styles when the effective theme changed.
func (m *Model) refreshStyles() {
	name := m.palette
	if name == "" {
		name = m.widget.State().Theme
	}
	if m.styles != nil && name == m.styledTheme {
		return
	}
	t, err := theme.Load(name)
	if err != nil {
		t = nil
	}
	m.styles = NewStyles(t)
	m.styledTheme = name
}

// Run starts the terminal UI and blocks until the user quits.
func Run(w *widget.Widget, n *Notifier, palette string) error {
	p := tea.NewProgram(New(w, n, palette), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
