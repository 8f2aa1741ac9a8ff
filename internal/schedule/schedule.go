// Package schedule defines the schedule document rendered by the widget:
// event info, days, activities and the activity type registry.
package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Link is an external link shown in the event header.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// EventInfo describes the event as a whole.
type EventInfo struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	DateRange string `json:"dateRange"`
	Location  string `json:"location,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	URLs      []Link `json:"urls,omitempty"`
	URL       string `json:"url,omitempty"` // legacy single venue link
}

// Links returns the header links, falling back to the legacy single URL.
func (e EventInfo) Links() []Link {
	if len(e.URLs) > 0 {
		return e.URLs
	}
	if e.URL != "" {
		return []Link{{URL: e.URL, Title: "Venue Website"}}
	}
	return nil
}

// Speaker is a person presenting an activity.
type Speaker struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Activity is a single scheduled item within a day.
type Activity struct {
	ID          string    `json:"id"`
	StartTime   string    `json:"startTime"`         // "HH:MM"
	EndTime     string    `json:"endTime,omitempty"` // "HH:MM", optional
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	IsOptional  bool      `json:"isOptional,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Location    string    `json:"location,omitempty"`
	Speakers    []Speaker `json:"speakers,omitempty"`
}

// Day is a calendar day of the event.
//
// Activities must be non-nil: a day without events carries an empty slice.
// Validate rejects nil so that a decoded document missing the "activities"
// key fails, while "activities": [] decodes to an empty slice and passes.
// Callers building documents in Go should use []Activity{} for empty days.
type Day struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"` // "YYYY-MM-DD"
	DayLabel   string     `json:"dayLabel"`
	Theme      string     `json:"theme,omitempty"`
	Activities []Activity `json:"activities"`
}

// Document is the root aggregate handed to the widget. It is replaced
// wholesale on update and never mutated by rendering.
type Document struct {
	EventInfo     EventInfo    `json:"eventInfo"`
	Days          []Day        `json:"days"`
	ActivityTypes TypeRegistry `json:"activityTypes,omitempty"`
}

// DayByID returns the day with the given id.
func (d *Document) DayByID(id string) (*Day, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Days {
		if d.Days[i].ID == id {
			return &d.Days[i], true
		}
	}
	return nil, false
}

// HasDay reports whether a day with the given id exists.
func (d *Document) HasDay(id string) bool {
	_, ok := d.DayByID(id)
	return ok
}

// Types returns the document's registry, or the default one when the
// document does not carry its own.
func (d *Document) Types() TypeRegistry {
	if d == nil || len(d.ActivityTypes) == 0 {
		return DefaultTypes()
	}
	return d.ActivityTypes
}

// ActivityCount returns the total number of activities across all days.
func (d *Document) ActivityCount() int {
	n := 0
	for _, day := range d.Days {
		n += len(day.Activities)
	}
	return n
}

// Decode reads a JSON schedule document. It does not validate it.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	return &doc, nil
}

// LoadFile reads and decodes a JSON schedule document from path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}
