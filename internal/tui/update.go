package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/schedwidget/internal/tui/commands"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd := m.handleKeyMsg(msg)
		if model, ok := updated.(Model); ok {
			model.refreshStyles()
			return model, cmd
		}
		return updated, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-4, 10)
		return m, nil

	case commands.RenderMsg:
		// Debounced searches, highlight ticks and file reloads land here.
		m.refreshStyles()
		m.clampCursor()
		return m, commands.WaitForRender(m.renders)

	case commands.ExportedMsg:
		m.status = "Calendar exported"
		return m, commands.ClearStatusAfter()

	case commands.ErrMsg:
		if errors.Is(msg.Err, widget.ErrNoExporter) {
			m.status = "Export is not configured"
		} else {
			m.status = "Error: " + msg.Err.Error()
		}
		return m, commands.ClearStatusAfter()

	case commands.StatusMsgCmd:
		m.status = msg.Msg
		return m, commands.ClearStatusAfter()

	case commands.ClearStatusMsg:
		m.status = ""
		return m, nil
	}

	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}
