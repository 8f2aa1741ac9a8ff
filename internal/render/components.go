package render

import (
	"strings"
	"time"

	"github.com/javiermolinar/schedwidget/internal/dateutil"
	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/schedule"
	"github.com/javiermolinar/schedwidget/internal/viewmodel"
)

// Block element names shared by every component.
const (
	Block = "schedule-widget"

	ClassHeader         = Block + "__header"
	ClassControls       = Block + "__header-controls"
	ClassSearch         = Block + "__search"
	ClassExportButton   = Block + "__export-btn"
	ClassThemeToggle    = Block + "__theme-toggle"
	ClassNav            = Block + "__day-navigation"
	ClassTab            = Block + "__day-tab"
	ClassTabActive      = ClassTab + "--active"
	ClassDays           = Block + "__days"
	ClassDay            = Block + "__day"
	ClassDayExpanded    = ClassDay + "--expanded"
	ClassDayHeader      = Block + "__day-header"
	ClassActivities     = Block + "__activities"
	ClassEmpty          = Block + "__empty"
	ClassCard           = Block + "__activity-card"
	ClassCardCurrent    = ClassCard + "--current"
	ClassCardOptional   = ClassCard + "--optional"
	ClassActivityTitle  = Block + "__activity-title"
	ClassDetail         = Block + "__detail"
	ClassError          = Block + "__error"
	classModePrefix     = Block + "--mode-"
	classThemePrefix    = Block + "--theme-"
	classTimelineLayout = ClassActivities + "--timeline"
)

// RenderHeader builds the title block and the optional controls. The search
// input is pre-filled with query so a rebuild keeps what the user typed.
func RenderHeader(info schedule.EventInfo, query string, opts Options, h Handlers) *dom.Node {
	msg := text(opts.Language)

	content := dom.El("div", Block+"__header-content").Append(
		dom.El("h1", Block+"__title").AppendText(info.Title),
	)
	if info.Subtitle != "" {
		content.Append(dom.El("p", Block+"__subtitle").AppendText(info.Subtitle))
	}

	meta := dom.El("div", Block+"__meta").Append(
		dom.El("span", Block+"__date-range").AppendText("📅 " + info.DateRange),
	)
	if info.Location != "" {
		meta.Append(dom.El("span", Block+"__location").AppendText("📍 " + info.Location))
	}
	for _, link := range info.Links() {
		meta.Append(dom.El("span", Block+"__url").Append(
			dom.El("a").
				SetAttr("href", link.URL).
				SetAttr("target", "_blank").
				SetAttr("rel", "noopener noreferrer").
				AppendText("🔗 " + link.Title),
		))
	}
	content.Append(meta)

	header := dom.El("div", ClassHeader).Append(content)

	if !opts.ShowSearch && !opts.EnableExport && !opts.ShowThemeToggle {
		return header
	}

	controls := dom.El("div", ClassControls)
	if opts.ShowSearch {
		input := dom.El("input", ClassSearch).
			SetAttr("type", "search").
			SetAttr("placeholder", msg.SearchPlaceholder).
			SetAttr("aria-label", msg.SearchLabel)
		if query != "" {
			input.SetAttr("value", query)
		}
		if h.OnSearchInput != nil {
			input.On(dom.EventInput, func(ev dom.Event) { h.OnSearchInput(ev.Value) })
		}
		controls.Append(input)
	}
	if opts.EnableExport {
		btn := dom.El("button", ClassExportButton).
			SetAttr("type", "button").
			SetAttr("aria-label", msg.ExportLabel).
			AppendText(msg.ExportButton)
		if h.OnExport != nil {
			btn.On(dom.EventClick, func(dom.Event) { h.OnExport() })
		}
		controls.Append(btn)
	}
	if opts.ShowThemeToggle {
		btn := dom.El("button", ClassThemeToggle).
			SetAttr("type", "button").
			AppendText(msg.ThemeToggle)
		if h.OnThemeToggle != nil {
			btn.On(dom.EventClick, func(dom.Event) { h.OnThemeToggle() })
		}
		controls.Append(btn)
	}
	return header.Append(controls)
}

// RenderDayNavigation builds the tab strip used in tabs mode.
func RenderDayNavigation(days []schedule.Day, currentDayID string, opts Options, onDayChange func(dayID string)) *dom.Node {
	nav := dom.El("nav", ClassNav).
		SetAttr("role", "tablist").
		SetAttr("aria-label", text(opts.Language).DaysLabel)

	for _, day := range days {
		dayID := day.ID
		active := dayID == currentDayID

		tab := dom.El("button", ClassTab).
			SetData("day-id", dayID).
			SetAttr("role", "tab").
			SetAttr("aria-selected", boolAttr(active)).
			SetAttr("aria-controls", "panel-"+dayID).
			SetAttr("id", "tab-"+dayID).
			ToggleClass(ClassTabActive, active).
			Append(dom.El("span", Block+"__day-tab-label").AppendText(day.DayLabel))

		if day.Theme != "" {
			tab.Append(dom.El("span", Block+"__day-tab-theme").AppendText(day.Theme))
		}
		if short := dateutil.FormatShortDate(day.Date, opts.Language); short != "" {
			tab.Append(dom.El("span", Block+"__day-tab-date").AppendText(short))
		}
		if onDayChange != nil {
			tab.On(dom.EventClick, func(dom.Event) { onDayChange(dayID) })
		}
		nav.Append(tab)
	}
	return nav
}

// RenderDayBlock builds one day: a heading outside tabs mode, then either the
// cards of the visible activities or an empty-state placeholder.
func RenderDayBlock(view viewmodel.DayView, mode viewmodel.DisplayMode, expanded bool, types schedule.TypeRegistry, opts Options, h Handlers) *dom.Node {
	day := view.Day
	dayID := day.ID

	block := dom.El("div", ClassDay).
		SetData("day-id", dayID).
		SetData("day-date", day.Date).
		SetAttr("id", "panel-"+dayID)

	switch mode {
	case viewmodel.ModeTabs:
		block.SetAttr("role", "tabpanel").SetAttr("aria-labelledby", "tab-"+dayID)
	default:
		block.SetAttr("role", "region")
		heading := dom.El("div", ClassDayHeader).Append(
			dom.El("h2", Block+"__day-title").AppendText(day.DayLabel),
		)
		if day.Theme != "" {
			heading.Append(dom.El("p", Block+"__day-theme").AppendText(day.Theme))
		}
		if mode == viewmodel.ModeAccordion {
			block.AddClass(ClassDay + "--accordion").ToggleClass(ClassDayExpanded, expanded)
			heading.
				SetAttr("role", "button").
				SetAttr("tabindex", "0").
				SetAttr("aria-expanded", boolAttr(expanded)).
				Append(dom.El("span", Block+"__day-toggle").SetAttr("aria-hidden", "true").AppendText("▼"))
			if h.OnToggleDay != nil {
				heading.On(dom.EventClick, func(dom.Event) { h.OnToggleDay(dayID) })
			}
		}
		block.Append(heading)
	}

	activities := dom.El("div", ClassActivities)
	if mode == viewmodel.ModeTimeline {
		activities.AddClass(classTimelineLayout)
	}

	if view.IsEmpty || len(view.Visible) == 0 {
		msg := text(opts.Language)
		placeholder := msg.NoneScheduled
		if view.EmptyReason == viewmodel.NoMatches {
			placeholder = msg.NoMatches
		}
		activities.Append(dom.El("div", ClassEmpty).AppendText(placeholder))
	} else {
		for _, a := range view.Visible {
			activities.Append(RenderActivityCard(a, types.Lookup(a.Type), opts, h.OnActivityClick))
		}
	}
	return block.Append(activities)
}

// RenderActivityCard builds the card for one activity. Optional fields that
// are blank, or switched off in opts, leave their fragment out.
func RenderActivityCard(a schedule.Activity, typeDef schedule.ActivityType, opts Options, onClick func(schedule.Activity)) *dom.Node {
	msg := text(opts.Language)

	card := dom.El("div", ClassCard).
		ToggleClass(ClassCardOptional, a.IsOptional).
		SetData("activity-id", a.ID).
		SetData("activity-type", a.Type).
		SetData("start-time", a.StartTime).
		SetData("end-time", a.EndTime).
		SetStyle("--activity-color", typeDef.Color)

	timeCol := dom.El("div", Block+"__activity-time").Append(
		dom.El("span", Block+"__time-start").AppendText(dateutil.FormatTime(a.StartTime, opts.TimeFormat)),
	)
	if opts.ShowEndTimes && a.EndTime != "" {
		timeCol.Append(
			dom.El("span", Block+"__time-separator").AppendText("-"),
			dom.El("span", Block+"__time-end").AppendText(dateutil.FormatTime(a.EndTime, opts.TimeFormat)),
		)
	}

	header := dom.El("div", Block+"__activity-header")
	if opts.ShowIcons {
		if icon := activityIcon(a, typeDef); icon != "" {
			header.Append(dom.El("span", Block+"__activity-icon").SetAttr("aria-hidden", "true").AppendText(icon))
		}
	}
	header.Append(dom.El("h3", ClassActivityTitle).AppendText(a.Title))
	if a.IsOptional {
		header.Append(dom.El("span", Block+"__activity-badge").AppendText(msg.OptionalBadge))
	}

	content := dom.El("div", Block+"__activity-content").Append(header)
	if a.Description != "" {
		content.Append(dom.El("p", Block+"__activity-description").AppendText(a.Description))
	}
	if opts.ShowSpeakers && len(a.Speakers) > 0 {
		speakers := dom.El("div", Block+"__activity-speakers").Append(
			dom.El("span", Block+"__speakers-label").AppendText("🎤"),
			dom.Text(" "),
		)
		for i, s := range a.Speakers {
			if i > 0 {
				speakers.AppendText(", ")
			}
			speakers.Append(dom.El("span", Block+"__speaker").AppendText(SpeakerLabel(s)))
		}
		content.Append(speakers)
	}
	if opts.ShowLocations && a.Location != "" {
		content.Append(dom.El("div", Block+"__activity-location").AppendText("📍 " + a.Location))
	}

	card.Append(timeCol, content)
	if onClick != nil {
		card.On(dom.EventClick, func(dom.Event) { onClick(a) })
	}
	return card
}

// RenderActivityDetail builds the detail panel shown for a clicked activity.
func RenderActivityDetail(a schedule.Activity, typeDef schedule.ActivityType, opts Options) *dom.Node {
	msg := text(opts.Language)

	header := dom.El("div", ClassDetail+"-header").SetStyle("border-left-color", typeDef.Color)
	if icon := activityIcon(a, typeDef); icon != "" {
		header.Append(dom.El("span", ClassDetail+"-icon").AppendText(icon))
	}
	header.Append(dom.El("h2", ClassDetail+"-title").SetAttr("id", "detail-"+a.ID).AppendText(a.Title))

	timeRange := dateutil.FormatTime(a.StartTime, opts.TimeFormat)
	if a.EndTime != "" {
		timeRange += " - " + dateutil.FormatTime(a.EndTime, opts.TimeFormat)
	}
	body := dom.El("div", ClassDetail+"-body").Append(labelled(ClassDetail+"-time", msg.DetailTime, timeRange))

	if a.Location != "" {
		body.Append(labelled(ClassDetail+"-location", msg.DetailLocation, a.Location))
	}
	if a.Description != "" {
		body.Append(dom.El("div", ClassDetail+"-description").Append(
			dom.El("strong").AppendText(msg.DetailDescription),
			dom.El("p").AppendText(a.Description),
		))
	}
	if len(a.Speakers) > 0 {
		list := dom.El("ul")
		for _, s := range a.Speakers {
			item := s.Name
			if s.Role != "" {
				item += " - " + s.Role
			}
			list.Append(dom.El("li").AppendText(item))
		}
		body.Append(dom.El("div", ClassDetail+"-speakers").Append(
			dom.El("strong").AppendText(msg.DetailSpeakers),
			list,
		))
	}
	if a.IsOptional {
		body.Append(dom.El("div", ClassDetail+"-note").Append(dom.El("em").AppendText(msg.DetailOptional)))
	}

	return dom.El("div", ClassDetail).
		SetAttr("role", "dialog").
		SetAttr("aria-labelledby", "detail-"+a.ID).
		SetData("activity-id", a.ID).
		Append(header, body)
}

// RenderError builds the inline block shown in place of the schedule when
// it cannot be rendered.
func RenderError(err error, lang string) *dom.Node {
	block := dom.El("div", ClassError).SetAttr("role", "alert").Append(
		dom.El("h3").AppendText(text(lang).ErrorTitle),
	)
	if err != nil {
		block.Append(dom.El("p").AppendText(err.Error()))
	}
	return block
}

// UpdateNavigationHighlight marks the tab of currentDayID active in place.
func UpdateNavigationHighlight(nav *dom.Node, currentDayID string) {
	if nav == nil {
		return
	}
	for _, tab := range nav.ByClass(ClassTab) {
		active := tab.Data("day-id") == currentDayID
		tab.ToggleClass(ClassTabActive, active)
		tab.SetAttr("aria-selected", boolAttr(active))
	}
}

// HighlightCurrentActivity marks the cards running at now within the day
// dated today and clears stale markers elsewhere. It returns the number of
// cards marked current.
func HighlightCurrentActivity(root *dom.Node, now time.Time) int {
	if root == nil {
		return 0
	}
	today := dateutil.CurrentDate(now)
	marked := 0
	for _, card := range root.ByClass(ClassCard) {
		active := false
		if day := card.Closest(ClassDay); day != nil && day.Data("day-date") == today {
			active = dateutil.IsCurrentlyActive(card.Data("start-time"), card.Data("end-time"), now)
		}
		card.ToggleClass(ClassCardCurrent, active)
		if active {
			card.SetAttr("aria-current", "true")
			marked++
		} else {
			card.RemoveAttr("aria-current")
		}
	}
	return marked
}

// SpeakerLabel renders "name (role)", or just the name when there is no role.
func SpeakerLabel(s schedule.Speaker) string {
	if s.Role == "" {
		return s.Name
	}
	return s.Name + " (" + s.Role + ")"
}

// ContainerClass returns the class list of the widget container.
func ContainerClass(theme string, mode viewmodel.DisplayMode) string {
	return strings.Join([]string{Block, classThemePrefix + theme, classModePrefix + string(mode)}, " ")
}

func activityIcon(a schedule.Activity, typeDef schedule.ActivityType) string {
	if a.Icon != "" {
		return a.Icon
	}
	return typeDef.Icon
}

func labelled(class, label, value string) *dom.Node {
	return dom.El("div", class).Append(
		dom.El("strong").AppendText(label),
		dom.Text(" "+value),
	)
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
