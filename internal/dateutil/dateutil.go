// Package dateutil provides the date and time-of-day helpers used to render
// and export schedules.
package dateutil

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
)

// Time formats accepted by FormatTime.
const (
	Format24h = "24h"
	Format12h = "12h"
)

// DateLayout is the layout of schedule day dates.
const DateLayout = "2006-01-02"

var (
	shortMonthsRO = [...]string{"ian.", "feb.", "mar.", "apr.", "mai", "iun.", "iul.", "aug.", "sept.", "oct.", "nov.", "dec."}
)

// ParseDate parses a date string in YYYY-MM-DD format as a local calendar
// date. No timezone conversion is applied.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatShortDate renders a day date for navigation tabs: "1 mai" for
// Romanian, "May 1" otherwise. Unparseable dates render as "".
func FormatShortDate(date, lang string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	if lang == "ro" {
		return strconv.Itoa(t.Day()) + " " + shortMonthsRO[t.Month()-1]
	}
	return t.Format("Jan 2")
}

// CurrentDate returns now as YYYY-MM-DD.
func CurrentDate(now time.Time) string {
	return now.Format(DateLayout)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsValidTime reports whether s is HH:MM with hour 00-23 and minute 00-59.
func IsValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	if !isDigits(s[0:2]) || !isDigits(s[3:5]) {
		return false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h <= 23 && m <= 59
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if !IsValidTime(t) {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// FormatTime renders an HH:MM time in the requested clock. "24h" (and any
// unknown format) returns the input unchanged; "12h" converts to a 12-hour
// clock with an AM/PM suffix, mapping midnight and noon to 12.
func FormatTime(t, format string) string {
	if t == "" {
		return ""
	}
	if format != Format12h {
		return t
	}
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return t
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return t
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return strconv.Itoa(display) + ":" + parts[1] + " " + suffix
}

// Duration returns the number of minutes from start to end. Either value
// missing yields 0; an end before start yields a negative duration.
func Duration(start, end string) int {
	if start == "" || end == "" {
		return 0
	}
	return TimeToMinutes(end) - TimeToMinutes(start)
}

// ClockTime returns the HH:MM time-of-day of now.
func ClockTime(now time.Time) string {
	return now.Format("15:04")
}

// IsCurrentlyActive reports whether now falls inside [start, end). Without an
// end time the activity is only active during the exact minute it starts.
func IsCurrentlyActive(start, end string, now time.Time) bool {
	if start == "" {
		return false
	}
	current := ClockTime(now)
	if end != "" {
		return current >= start && current < end
	}
	return current == start
}

// EscapeCalendarText escapes text for an iCalendar TEXT value: backslash,
// semicolon and comma get a preceding backslash and newlines become a
// literal \n.
func EscapeCalendarText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', ';', ',':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
