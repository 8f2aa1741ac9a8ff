package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/render"
)

const cls = render.Block

// View paints the widget tree.
func (m Model) View() string {
	if m.width > 0 && m.width < 20 {
		return "Terminal too small"
	}

	// Read state before Inspect: the widget lock is not re-entrant.
	query := m.widget.State().SearchQuery
	var body []string
	focusLine := -1
	m.widget.Inspect(func(root *dom.Node) {
		body, focusLine = m.paint(root, query)
	})

	footer := m.renderFooter()
	height := m.height - len(footer)
	if m.height > 0 && height > 0 && len(body) > height {
		body = scroll(body, focusLine, height)
	}

	lines := append(body, footer...)
	if m.width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, m.width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

// focusables returns the nodes the cursor can visit: accordion headings and
// activity cards, in document order, skipping cards of collapsed days.
func (m Model) focusables() []*dom.Node {
	var out []*dom.Node
	m.widget.Inspect(func(root *dom.Node) {
		out = collectFocusables(root)
	})
	return out
}

func collectFocusables(root *dom.Node) []*dom.Node {
	days := root.FirstByClass(render.ClassDays)
	if days == nil {
		return nil
	}
	var out []*dom.Node
	days.Walk(func(n *dom.Node) bool {
		if n.HasClass(render.ClassActivities) && collapsed(n.Parent()) {
			return false
		}
		if n.HasHandler(dom.EventClick) && (n.HasClass(render.ClassDayHeader) || n.HasClass(render.ClassCard)) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func collapsed(day *dom.Node) bool {
	return day != nil && day.HasClass(cls+"__day--accordion") && !day.HasClass(render.ClassDayExpanded)
}

// paint turns the tree into lines and reports the line of the focused node.
// It runs under the widget lock, so it must not call Widget methods.
func (m Model) paint(root *dom.Node, query string) ([]string, int) {
	s := m.styles
	var lines []string
	focusLine := -1

	if errBlock := root.FirstByClass(render.ClassError); errBlock != nil {
		for i, c := range errBlock.Children() {
			text := c.TextContent()
			if i == 0 {
				text = "⚠ " + text
			}
			lines = append(lines, s.ErrorStyle.Render(text))
		}
		return lines, -1
	}

	if header := root.FirstByClass(render.ClassHeader); header != nil {
		lines = append(lines, m.paintHeader(header, query)...)
	}
	if nav := root.FirstByClass(render.ClassNav); nav != nil {
		lines = append(lines, m.paintNav(nav), "")
	}

	focused := m.focusedNode(root)
	if days := root.FirstByClass(render.ClassDays); days != nil {
		for _, day := range days.Children() {
			dayLines, at := m.paintDay(day, focused)
			if at >= 0 {
				focusLine = len(lines) + at
			}
			lines = append(lines, dayLines...)
		}
	}

	if detail := root.FirstByClass(render.ClassDetail); detail != nil {
		box := m.paintDetail(detail)
		focusLine = len(lines)
		lines = append(lines, strings.Split(box, "\n")...)
	}
	return lines, focusLine
}

func (m Model) focusedNode(root *dom.Node) *dom.Node {
	focusables := collectFocusables(root)
	if m.cursor < 0 || m.cursor >= len(focusables) {
		return nil
	}
	return focusables[m.cursor]
}

func (m Model) paintHeader(header *dom.Node, query string) []string {
	s := m.styles
	var lines []string
	if title := header.FirstByClass(cls + "__title"); title != nil {
		lines = append(lines, s.TitleStyle.Render(title.TextContent()))
	}
	if sub := header.FirstByClass(cls + "__subtitle"); sub != nil {
		lines = append(lines, s.SubtitleStyle.Render(sub.TextContent()))
	}
	if meta := header.FirstByClass(cls + "__meta"); meta != nil {
		var parts []string
		for _, c := range meta.Children() {
			parts = append(parts, c.TextContent())
		}
		lines = append(lines, s.MetaStyle.Render(strings.Join(parts, "  ")))
	}
	if query != "" && m.mode != ModeSearch {
		lines = append(lines, s.SearchStyle.Render("/ "+query))
	}
	return append(lines, "")
}

func (m Model) paintNav(nav *dom.Node) string {
	s := m.styles
	var tabs []string
	for _, tab := range nav.ByClass(render.ClassTab) {
		label := tab.FirstByClass(cls + "__day-tab-label").TextContent()
		if date := tab.FirstByClass(cls + "__day-tab-date"); date != nil {
			label += " " + date.TextContent()
		}
		if tab.HasClass(render.ClassTabActive) {
			tabs = append(tabs, s.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, s.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// paintDay returns the lines of one day block and the offset of the focused
// node inside them, or -1.
func (m Model) paintDay(day, focused *dom.Node) ([]string, int) {
	s := m.styles
	var lines []string
	at := -1

	if heading := day.FirstByClass(render.ClassDayHeader); heading != nil {
		title := heading.FirstByClass(cls + "__day-title").TextContent()
		if heading.HasHandler(dom.EventClick) {
			marker := "▸ "
			if !collapsed(day) {
				marker = "▾ "
			}
			title = marker + title
		}
		line := s.DayTitleStyle.Render(title)
		if theme := heading.FirstByClass(cls + "__day-theme"); theme != nil {
			line += "  " + s.DayThemeStyle.Render(theme.TextContent())
		}
		if heading == focused {
			at = len(lines)
			line = s.FocusStyle.Render(line)
		}
		lines = append(lines, line)
	}

	activities := day.FirstByClass(render.ClassActivities)
	if activities == nil || collapsed(day) {
		return append(lines, ""), at
	}
	for _, c := range activities.Children() {
		if c.HasClass(render.ClassEmpty) {
			lines = append(lines, "  "+s.EmptyStyle.Render(c.TextContent()))
			continue
		}
		if !c.HasClass(render.ClassCard) {
			continue
		}
		card := m.paintCard(c)
		if c == focused {
			at = len(lines)
			card[0] = s.FocusStyle.Render(card[0])
		}
		lines = append(lines, card...)
	}
	return append(lines, ""), at
}

func (m Model) paintCard(card *dom.Node) []string {
	s := m.styles
	current := card.HasClass(render.ClassCardCurrent)

	timeText := ""
	if t := card.FirstByClass(cls + "__activity-time"); t != nil {
		timeText = t.TextContent()
	}
	title := ""
	if icon := card.FirstByClass(cls + "__activity-icon"); icon != nil {
		title = icon.TextContent() + " "
	}
	if t := card.FirstByClass(render.ClassActivityTitle); t != nil {
		title += t.TextContent()
	}

	mark := " "
	titleStyle := s.CardTitleStyle
	if current {
		mark = s.CurrentMarkStyle.Render("●")
		titleStyle = s.CardCurrentStyle
	}
	head := s.ActivityBar(card.Style("--activity-color")) + mark + " " +
		s.TimeStyle.Render(timeText) + titleStyle.Render(title)
	if badge := card.FirstByClass(cls + "__activity-badge"); badge != nil {
		head += " " + s.OptionalBadge.Render("["+badge.TextContent()+"]")
	}

	lines := []string{head}
	indent := strings.Repeat(" ", 16)
	for _, class := range []string{"__activity-description", "__activity-speakers", "__activity-location"} {
		if n := card.FirstByClass(cls + class); n != nil {
			lines = append(lines, indent+s.CardDetailStyle.Render(n.TextContent()))
		}
	}
	return lines
}

func (m Model) paintDetail(detail *dom.Node) string {
	s := m.styles
	var lines []string
	if title := detail.FirstByClass(render.ClassDetail + "-title"); title != nil {
		line := title.TextContent()
		if icon := detail.FirstByClass(render.ClassDetail + "-icon"); icon != nil {
			line = icon.TextContent() + " " + line
		}
		lines = append(lines, s.DetailTitleStyle.Render(line))
	}
	if body := detail.FirstByClass(render.ClassDetail + "-body"); body != nil {
		for _, section := range body.Children() {
			lines = append(lines, detailLines(section)...)
		}
	}
	lines = append(lines, s.HelpStyle.Render("esc close"))

	box := s.DetailStyle
	if m.width > 4 {
		box = box.Width(min(m.width-2, 72))
	}
	return box.Render(strings.Join(lines, "\n"))
}

// detailLines flattens one body section: a label followed by a paragraph
// or a list, or a single inline line.
func detailLines(section *dom.Node) []string {
	children := section.Children()
	if len(children) != 2 || children[1].IsText() {
		return []string{section.TextContent()}
	}
	label := children[0].TextContent()
	if children[1].Tag != "ul" {
		return []string{label, "  " + children[1].TextContent()}
	}
	out := []string{label}
	for _, item := range children[1].Children() {
		out = append(out, "  • "+item.TextContent())
	}
	return out
}

func (m Model) renderFooter() []string {
	s := m.styles
	var lines []string
	if m.mode == ModeSearch {
		lines = append(lines, s.SearchStyle.Render(m.search.View()))
	}
	if m.status != "" {
		lines = append(lines, s.StatusStyle.Render(m.status))
	}

	var help []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	if m.mode == ModeSearch {
		help = []string{"enter apply", "esc clear"}
	}
	lines = append(lines, s.HelpStyle.Render(strings.Join(help, " • ")))
	return lines
}

// scroll keeps the focused line within a window of height lines.
func scroll(lines []string, focus, height int) []string {
	start := 0
	if focus >= height {
		start = focus - height/2
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
