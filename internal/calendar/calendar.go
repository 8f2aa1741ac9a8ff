// Package calendar exports a schedule document as an iCalendar file.
package calendar

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/schedwidget/internal/schedule"
)

// Fixed identifiers of exported calendars.
const (
	ProductID       = "-//Schedule Widget//EN"
	UIDDomain       = "schedule-widget"
	DefaultTimezone = "Europe/Bucharest"
	ContentType     = "text/calendar; charset=utf-8"
)

// Export renders doc as VCALENDAR text with one VEVENT per activity, in
// document order. now is stamped on every event in UTC.
//
// Start and end are floating local times built from the day date and the
// activity times. An activity without an end time is exported with DTEND
// equal to DTSTART: a zero-length event rather than a guessed duration.
//
// TEXT values (summary, description, location, calendar name) are escaped
// by the iCalendar library during serialization with the same rule as
// dateutil.EscapeCalendarText, so raw strings are set here.
func Export(doc *schedule.Document, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(doc.EventInfo.Title)
	cal.SetXWRTimezone(Timezone(doc.EventInfo))

	for _, day := range doc.Days {
		for _, a := range day.Activities {
			start := DateTime(day.Date, a.StartTime)
			end := start
			if a.EndTime != "" {
				end = DateTime(day.Date, a.EndTime)
			}

			ev := cal.AddEvent(a.ID + "@" + UIDDomain)
			ev.SetDtStampTime(now)
			ev.SetProperty(ical.ComponentPropertyDtStart, start)
			ev.SetProperty(ical.ComponentPropertyDtEnd, end)
			ev.SetSummary(a.Title)
			if strings.TrimSpace(a.Description) != "" {
				ev.SetDescription(a.Description)
			}
			if strings.TrimSpace(a.Location) != "" {
				ev.SetLocation(a.Location)
			}
			ev.SetStatus(ical.ObjectStatusConfirmed)
		}
	}

	return cal.Serialize(ical.WithNewLineWindows)
}

// Timezone returns the event timezone or DefaultTimezone.
func Timezone(info schedule.EventInfo) string {
	if info.Timezone != "" {
		return info.Timezone
	}
	return DefaultTimezone
}

// DateTime joins a YYYY-MM-DD date and an HH:MM time into the iCalendar
// basic form YYYYMMDDTHHMM00.
func DateTime(date, hhmm string) string {
	return strings.ReplaceAll(date, "-", "") + "T" + strings.ReplaceAll(hhmm, ":", "") + "00"
}

// Filename derives the download name from the event title: every character
// outside a-z and 0-9 becomes "-", the result is lower-cased and ".ics" is
// appended. Replacement is per rune, so a character outside the Basic
// Multilingual Plane such as an emoji yields one "-", where a UTF-16 based
// replacement would yield two.
func Filename(title string) string {
	var b strings.Builder
	b.Grow(len(title) + 4)
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	b.WriteString(".ics")
	return b.String()
}
