package schedule

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/schedwidget/internal/dateutil"
)

// ErrInvalidDocument is wrapped by every ValidationError.
var ErrInvalidDocument = errors.New("invalid schedule data")

// ValidationError identifies the first structural problem found in a
// document. DayIndex and ActivityIndex are -1 when not applicable.
type ValidationError struct {
	Field         string
	DayIndex      int
	ActivityIndex int
	Reason        string
}

func (e *ValidationError) Error() string {
	switch {
	case e.ActivityIndex >= 0:
		return fmt.Sprintf("%s: day %d, activity %d: %s %s", ErrInvalidDocument, e.DayIndex, e.ActivityIndex, e.Field, e.Reason)
	case e.DayIndex >= 0:
		return fmt.Sprintf("%s: day %d: %s %s", ErrInvalidDocument, e.DayIndex, e.Field, e.Reason)
	default:
		return fmt.Sprintf("%s: %s %s", ErrInvalidDocument, e.Field, e.Reason)
	}
}

// Unwrap lets errors.Is match ErrInvalidDocument.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidDocument
}

func docError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, DayIndex: -1, ActivityIndex: -1, Reason: reason}
}

func dayError(day int, field, reason string) *ValidationError {
	return &ValidationError{Field: field, DayIndex: day, ActivityIndex: -1, Reason: reason}
}

func activityError(day, act int, field, reason string) *ValidationError {
	return &ValidationError{Field: field, DayIndex: day, ActivityIndex: act, Reason: reason}
}

// Validate checks the document structure and stops at the first failure.
// It checks, in order: event info, the day list, each day's required
// fields and id uniqueness, then each activity's required fields, time
// formats, time ordering and id uniqueness within its day.
func Validate(doc *Document) error {
	if doc == nil {
		return docError("document", "is required")
	}
	if doc.EventInfo.Title == "" {
		return docError("eventInfo.title", "is required")
	}
	if doc.EventInfo.DateRange == "" {
		return docError("eventInfo.dateRange", "is required")
	}
	if len(doc.Days) == 0 {
		return docError("days", "must be a non-empty list")
	}

	seenDays := make(map[string]bool, len(doc.Days))
	for i, day := range doc.Days {
		if err := validateDay(i, day); err != nil {
			return err
		}
		if seenDays[day.ID] {
			return dayError(i, "id", fmt.Sprintf("%q is duplicated", day.ID))
		}
		seenDays[day.ID] = true

		seenActs := make(map[string]bool, len(day.Activities))
		for j, act := range day.Activities {
			if err := validateActivity(i, j, act); err != nil {
				return err
			}
			if seenActs[act.ID] {
				return activityError(i, j, "id", fmt.Sprintf("%q is duplicated", act.ID))
			}
			seenActs[act.ID] = true
		}
	}
	return nil
}

func validateDay(i int, day Day) error {
	switch {
	case day.ID == "":
		return dayError(i, "id", "is required")
	case day.Date == "":
		return dayError(i, "date", "is required")
	case day.DayLabel == "":
		return dayError(i, "dayLabel", "is required")
	}
	if _, err := dateutil.ParseDate(day.Date); err != nil {
		return dayError(i, "date", "must be YYYY-MM-DD")
	}
	if day.Activities == nil {
		return dayError(i, "activities", "must be a list")
	}
	return nil
}

func validateActivity(i, j int, act Activity) error {
	switch {
	case act.ID == "":
		return activityError(i, j, "id", "is required")
	case act.StartTime == "":
		return activityError(i, j, "startTime", "is required")
	case act.Title == "":
		return activityError(i, j, "title", "is required")
	case act.Type == "":
		return activityError(i, j, "type", "is required")
	}
	if !dateutil.IsValidTime(act.StartTime) {
		return activityError(i, j, "startTime", "must be HH:MM")
	}
	if act.EndTime != "" {
		if !dateutil.IsValidTime(act.EndTime) {
			return activityError(i, j, "endTime", "must be HH:MM")
		}
		if act.EndTime < act.StartTime {
			return activityError(i, j, "endTime", "must not be before startTime")
		}
	}
	return nil
}
