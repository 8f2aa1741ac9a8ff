// Package summary provides aggregate statistics over a schedule document.
package summary

import (
	"fmt"
	"sort"

	"github.com/javiermolinar/schedwidget/internal/dateutil"
	"github.com/javiermolinar/schedwidget/internal/schedule"
)

// DayStats holds the numbers of one day.
type DayStats struct {
	DayID            string
	Label            string
	Date             string
	Activities       int
	Optional         int
	ScheduledMinutes int    // sum of activities with an end time
	First            string // earliest start, "" for an empty day
	Last             string // latest end or start
}

// TypeCount is the number of activities of one type.
type TypeCount struct {
	Type  string
	Count int
}

// Summary aggregates a whole document.
type Summary struct {
	Title            string
	Days             []DayStats
	Types            []TypeCount // most frequent first
	Activities       int
	Optional         int
	ScheduledMinutes int
}

// BusiestDay returns the day with the most scheduled minutes. Ties go to the
// earlier day.
func (s Summary) BusiestDay() (DayStats, bool) {
	var best DayStats
	found := false
	for _, d := range s.Days {
		if !found || d.ScheduledMinutes > best.ScheduledMinutes {
			best = d
			found = true
		}
	}
	return best, found
}

// Summarize computes the statistics of doc. Activities without an end time
// count toward totals but add no minutes.
func Summarize(doc *schedule.Document) Summary {
	s := Summary{Title: doc.EventInfo.Title}
	types := make(map[string]int)

	for _, day := range doc.Days {
		ds := DayStats{DayID: day.ID, Label: day.DayLabel, Date: day.Date}
		for _, a := range day.Activities {
			ds.Activities++
			if a.IsOptional {
				ds.Optional++
			}
			if d := dateutil.Duration(a.StartTime, a.EndTime); d > 0 {
				ds.ScheduledMinutes += d
			}
			if ds.First == "" || a.StartTime < ds.First {
				ds.First = a.StartTime
			}
			end := a.EndTime
			if end == "" {
				end = a.StartTime
			}
			if end > ds.Last {
				ds.Last = end
			}
			types[a.Type]++
		}
		s.Days = append(s.Days, ds)
		s.Activities += ds.Activities
		s.Optional += ds.Optional
		s.ScheduledMinutes += ds.ScheduledMinutes
	}

	for t, n := range types {
		s.Types = append(s.Types, TypeCount{Type: t, Count: n})
	}
	sort.Slice(s.Types, func(i, j int) bool {
		if s.Types[i].Count != s.Types[j].Count {
			return s.Types[i].Count > s.Types[j].Count
		}
		return s.Types[i].Type < s.Types[j].Type
	})
	return s
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
