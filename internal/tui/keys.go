package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/schedwidget/internal/debuglog"
	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/render"
	"github.com/javiermolinar/schedwidget/internal/tui/commands"
)

// KeyMap holds the key bindings of normal mode.
type KeyMap struct {
	PrevDay key.Binding
	NextDay key.Binding
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Close   key.Binding
	Search  key.Binding
	Mode    key.Binding
	Theme   key.Binding
	Export  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev day")),
		NextDay: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next day")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Mode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "layout")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Down, k.Open, k.Search, k.Mode, k.Theme, k.Export, k.Quit}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	debuglog.Log("key", map[string]any{"key": msg.String(), "mode": int(m.mode)})

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDay(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.shiftDay(1)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.focusables())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		focusables := m.focusables()
		if m.cursor < len(focusables) {
			m.widget.Click(focusables[m.cursor])
		}

	case key.Matches(msg, m.keys.Close):
		m.widget.CloseDetail()

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.search.SetValue(m.widget.State().SearchQuery)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Mode):
		next := m.widget.State().DisplayMode.Next()
		if err := m.widget.SetDisplayMode(next); err != nil {
			return m, setStatus(err.Error())
		}
		m.cursor = 0
		return m, setStatus("Layout: " + string(next))

	case key.Matches(msg, m.keys.Theme):
		m.widget.ToggleTheme()
		m.refreshStyles()
		return m, setStatus("Theme: " + m.widget.State().Theme)

	case key.Matches(msg, m.keys.Export):
		return m, commands.Export(m.widget)
	}

	m.clampCursor()
	return m, nil
}

// handleSearchKeys edits the query. Typing goes through the widget's
// debounced search; enter applies immediately and esc clears.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.widget.ApplySearch(m.search.Value())
		m.exitSearch()
		return m, nil
	case tea.KeyEsc:
		m.search.SetValue("")
		m.widget.ApplySearch("")
		m.exitSearch()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.typeQuery(value)
	}
	return m, cmd
}

// typeQuery feeds the rendered search box when there is one, so the query
// goes through the same handler a click host would use.
func (m *Model) typeQuery(value string) {
	var input *dom.Node
	m.widget.Inspect(func(root *dom.Node) { input = root.FirstByClass(render.ClassSearch) })
	if input != nil {
		m.widget.Input(input, value)
		return
	}
	m.widget.Search(value)
}

func (m *Model) exitSearch() {
	m.mode = ModeNormal
	m.search.Blur()
	m.cursor = 0
}

// shiftDay selects the neighbouring day. In tabs mode the tab is clicked.
func (m *Model) shiftDay(delta int) {
	doc := m.widget.Document()
	if doc == nil {
		return
	}
	current := m.widget.State().CurrentDayID
	idx := 0
	for i, d := range doc.Days {
		if d.ID == current {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 || idx >= len(doc.Days) {
		return
	}
	target := doc.Days[idx].ID

	var tab *dom.Node
	m.widget.Inspect(func(root *dom.Node) {
		tab = root.Find(func(n *dom.Node) bool {
			return n.HasClass(render.ClassTab) && n.Data("day-id") == target
		})
	})
	if tab != nil {
		m.widget.Click(tab)
	} else {
		m.widget.ChangeDay(target)
	}
	m.cursor = 0
}

func (m *Model) clampCursor() {
	n := len(m.focusables())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func setStatus(msg string) tea.Cmd {
	return func() tea.Msg { return commands.StatusMsgCmd{Msg: msg} }
}
