package summary

import (
	"strings"
	"testing"

	"github.com/javiermolinar/schedwidget/internal/schedule"
)

func TestOverlaps(t *testing.T) {
	doc := &schedule.Document{
		Days: []schedule.Day{
			{
				ID: "d1",
				Activities: []schedule.Activity{
					{ID: "b", Title: "Workshop", StartTime: "09:30", EndTime: "11:00"},
					{ID: "a", Title: "Talk", StartTime: "09:00", EndTime: "10:00"},
					{ID: "c", Title: "Lunch", StartTime: "11:00", EndTime: "12:00"},
					{ID: "d", Title: "Open desk", StartTime: "09:45"},
				},
			},
			{
				ID: "d2",
				Activities: []schedule.Activity{
					{ID: "e", Title: "Hike", StartTime: "09:00", EndTime: "10:00"},
				},
			},
		},
	}

	got := Overlaps(doc)
	if len(got) != 1 {
		t.Fatalf("overlaps = %d, want 1: %v", len(got), got)
	}
	o := got[0]
	if o.DayID != "d1" || o.First.ID != "a" || o.Second.ID != "b" {
		t.Errorf("unexpected overlap %+v", o)
	}
	if !strings.Contains(o.String(), `"Workshop" (09:30-11:00) overlaps "Talk"`) {
		t.Errorf("String() = %q", o.String())
	}
}

func TestTimesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"touching", "09:00", "10:00", "10:00", "11:00", false},
		{"partial", "09:00", "10:30", "10:00", "11:00", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timesOverlap(tt.start1, tt.end1, tt.start2, tt.end2); got != tt.want {
				t.Errorf("timesOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}
