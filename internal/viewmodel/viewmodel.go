// Package viewmodel computes which days and activities are visible for a
// schedule document and the current interaction state. Everything here is
// pure so it can run on every keystroke.
package viewmodel

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/schedwidget/internal/schedule"
)

// DisplayMode is the navigation and layout strategy.
type DisplayMode string

const (
	ModeTabs       DisplayMode = "tabs"
	ModeAccordion  DisplayMode = "accordion"
	ModeFullScroll DisplayMode = "full-scroll"
	ModeTimeline   DisplayMode = "timeline"
)

// Modes lists every display mode in cycling order.
func Modes() []DisplayMode {
	return []DisplayMode{ModeTabs, ModeAccordion, ModeFullScroll, ModeTimeline}
}

// ParseDisplayMode validates a display mode name.
func ParseDisplayMode(s string) (DisplayMode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid display mode %q", s)
}

// Next returns the mode that follows m in Modes, wrapping around.
func (m DisplayMode) Next() DisplayMode {
	modes := Modes()
	for i, candidate := range modes {
		if candidate == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeTabs
}

// State is the interaction state that drives visibility.
type State struct {
	CurrentDayID string
	SearchQuery  string
	DisplayMode  DisplayMode
	Theme        string
}

// Searching reports whether a non-blank search query is active.
func (s State) Searching() bool {
	return normalizeQuery(s.SearchQuery) != ""
}

// EmptyReason explains why an included day has nothing to list.
type EmptyReason int

const (
	NotEmpty EmptyReason = iota
	NoneScheduled
	NoMatches
)

// DayView is one day to render together with its visible activities.
type DayView struct {
	Day         *schedule.Day
	Visible     []schedule.Activity
	IsEmpty     bool
	EmptyReason EmptyReason
}

// ComputeView returns the days to render, in document order.
//
// With a search query only days that have at least one match are included,
// whatever the display mode. Without one, tabs mode includes only the current
// day and every other mode includes all days.
func ComputeView(doc *schedule.Document, state State) []DayView {
	if doc == nil {
		return nil
	}
	query := normalizeQuery(state.SearchQuery)
	searching := query != ""

	views := make([]DayView, 0, len(doc.Days))
	for i := range doc.Days {
		day := &doc.Days[i]
		visible := Filter(day.Activities, query)

		if searching {
			if len(visible) == 0 {
				continue
			}
		} else if state.DisplayMode == ModeTabs && day.ID != state.CurrentDayID {
			continue
		}

		v := DayView{Day: day, Visible: visible}
		switch {
		case len(day.Activities) == 0:
			v.IsEmpty = true
			v.EmptyReason = NoneScheduled
		case len(visible) == 0:
			v.IsEmpty = true
			v.EmptyReason = NoMatches
		}
		views = append(views, v)
	}
	return views
}

// Filter returns the activities matching query, preserving order. The query
// matches case-insensitively against title, description, speaker names and
// location. An empty query matches everything.
func Filter(activities []schedule.Activity, query string) []schedule.Activity {
	query = normalizeQuery(query)
	if query == "" {
		return activities
	}
	out := make([]schedule.Activity, 0, len(activities))
	for _, a := range activities {
		if Matches(a, query) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a matches an already lower-cased, trimmed query.
func Matches(a schedule.Activity, query string) bool {
	if containsFold(a.Title, query) || containsFold(a.Description, query) || containsFold(a.Location, query) {
		return true
	}
	for _, s := range a.Speakers {
		if containsFold(s.Name, query) {
			return true
		}
	}
	return false
}

// VisibleIDs returns the activity ids included in views, keyed by day id.
func VisibleIDs(views []DayView) map[string][]string {
	out := make(map[string][]string, len(views))
	for _, v := range views {
		ids := make([]string, 0, len(v.Visible))
		for _, a := range v.Visible {
			ids = append(ids, a.ID)
		}
		out[v.Day.ID] = ids
	}
	return out
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func containsFold(s, lowerQuery string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
