// Package commands provides TUI command constructors and message types.
package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/schedwidget/internal/widget"
)

// StatusTimeout is how long a status message stays visible.
const StatusTimeout = 3 * time.Second

// RenderMsg is sent when the widget tree changed outside a key handler,
// e.g. after a debounced search or a highlight tick.
type RenderMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ExportedMsg is sent when the calendar was handed to the exporter.
type ExportedMsg struct{}

// WaitForRender blocks until the widget reports a change. It returns nil
// once the channel is closed.
func WaitForRender(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return RenderMsg{}
	}
}

// Export runs the widget export.
func Export(w *widget.Widget) tea.Cmd {
	return func() tea.Msg {
		if err := w.Export(); err != nil {
			return ErrMsg{Err: err}
		}
		return ExportedMsg{}
	}
}

// ClearStatusAfter clears the status message after StatusTimeout.
func ClearStatusAfter() tea.Cmd {
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
