package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/schedwidget/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Header
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	MetaStyle     lipgloss.Style

	// Day navigation
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style

	// Day blocks
	DayTitleStyle lipgloss.Style
	DayThemeStyle lipgloss.Style
	EmptyStyle    lipgloss.Style

	// Activity cards
	TimeStyle         lipgloss.Style
	CardTitleStyle    lipgloss.Style
	CardCurrentStyle  lipgloss.Style
	CardDetailStyle   lipgloss.Style
	OptionalBadge     lipgloss.Style
	CurrentMarkStyle  lipgloss.Style
	FocusStyle        lipgloss.Style
	ActivityBarSymbol string

	// Detail panel
	DetailStyle      lipgloss.Style
	DetailTitleStyle lipgloss.Style

	// Error block
	ErrorStyle lipgloss.Style

	// Footer
	SearchStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p, ActivityBarSymbol: "▌"}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)
	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.Fg)
	s.MetaStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.TabStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Padding(0, 1)
	s.TabActiveStyle = s.TabStyle.
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent)

	s.DayTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg)
	s.DayThemeStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(p.FgMuted)
	s.EmptyStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(p.FgMuted)

	s.TimeStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Width(13)
	s.CardTitleStyle = lipgloss.NewStyle().
		Foreground(p.Fg)
	s.CardCurrentStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnCurrent).
		Background(p.Current)
	s.CardDetailStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)
	s.OptionalBadge = lipgloss.NewStyle().
		Foreground(p.Optional)
	s.CurrentMarkStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Current)
	s.FocusStyle = lipgloss.NewStyle().
		Background(p.BgSelection)

	s.DetailStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.DetailTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Current)

	s.SearchStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Accent)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	return s
}

// ActivityBar renders the colored type marker of a card.
func (s *Styles) ActivityBar(color string) string {
	if color == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(s.palette.ActivityColor(color)).Render(s.ActivityBarSymbol)
}
