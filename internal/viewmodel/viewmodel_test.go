package viewmodel

import (
	"reflect"
	"testing"

	"github.com/javiermolinar/schedwidget/internal/schedule"
)

func testDoc() *schedule.Document {
	return &schedule.Document{
		EventInfo: schedule.EventInfo{Title: "Retreat", DateRange: "1-2 May"},
		Days: []schedule.Day{
			{
				ID: "d1", Date: "2025-05-01", DayLabel: "Day 1",
				Activities: []schedule.Activity{
					{ID: "a", StartTime: "09:00", Title: "Intro", Type: "session", Speakers: []schedule.Speaker{{Name: "Ana Pop"}}},
					{ID: "b", StartTime: "10:00", Title: "Coffee", Type: "break", Location: "Terrace"},
				},
			},
			{
				ID: "d2", Date: "2025-05-02", DayLabel: "Day 2",
				Activities: []schedule.Activity{
					{ID: "c", StartTime: "08:00", Title: "Hike", Type: "recreation", Description: "Bring water"},
				},
			},
			{ID: "d3", Date: "2025-05-03", DayLabel: "Day 3", Activities: []schedule.Activity{}},
		},
	}
}

func TestComputeView(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  map[string][]string
	}{
		{
			name:  "tabs without query shows current day only",
			state: State{CurrentDayID: "d1", DisplayMode: ModeTabs},
			want:  map[string][]string{"d1": {"a", "b"}},
		},
		{
			name:  "accordion without query shows every day",
			state: State{CurrentDayID: "d1", DisplayMode: ModeAccordion},
			want:  map[string][]string{"d1": {"a", "b"}, "d2": {"c"}, "d3": {}},
		},
		{
			name:  "query filters across days in tabs",
			state: State{CurrentDayID: "d2", SearchQuery: "intro", DisplayMode: ModeTabs},
			want:  map[string][]string{"d1": {"a"}},
		},
		{
			name:  "query is case insensitive and trimmed",
			state: State{CurrentDayID: "d1", SearchQuery: "  INTRO ", DisplayMode: ModeTimeline},
			want:  map[string][]string{"d1": {"a"}},
		},
		{
			name:  "query matches speaker names",
			state: State{SearchQuery: "pop", DisplayMode: ModeFullScroll},
			want:  map[string][]string{"d1": {"a"}},
		},
		{
			name:  "query matches location and description",
			state: State{SearchQuery: "e", DisplayMode: ModeFullScroll},
			want:  map[string][]string{"d1": {"b"}, "d2": {"c"}},
		},
		{
			name:  "whitespace query behaves like empty",
			state: State{CurrentDayID: "d2", SearchQuery: "   ", DisplayMode: ModeTabs},
			want:  map[string][]string{"d2": {"c"}},
		},
		{
			name:  "no match includes no days",
			state: State{SearchQuery: "zzz", DisplayMode: ModeAccordion},
			want:  map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleIDs(ComputeView(testDoc(), tt.state))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeView_PreservesOrder(t *testing.T) {
	views := ComputeView(testDoc(), State{DisplayMode: ModeFullScroll})
	var ids []string
	for _, v := range views {
		ids = append(ids, v.Day.ID)
	}
	if !reflect.DeepEqual(ids, []string{"d1", "d2", "d3"}) {
		t.Errorf("unexpected day order %v", ids)
	}
}

func TestComputeView_EmptyReasons(t *testing.T) {
	views := ComputeView(testDoc(), State{DisplayMode: ModeAccordion})
	if len(views) != 3 {
		t.Fatalf("expected 3 days, got %d", len(views))
	}
	if views[0].IsEmpty || views[0].EmptyReason != NotEmpty {
		t.Errorf("d1 should not be empty: %+v", views[0])
	}
	if !views[2].IsEmpty || views[2].EmptyReason != NoneScheduled {
		t.Errorf("d3 should be empty with none scheduled: %+v", views[2])
	}

	// Tabs mode with an unknown current day renders nothing.
	if got := ComputeView(testDoc(), State{CurrentDayID: "nope", DisplayMode: ModeTabs}); len(got) != 0 {
		t.Errorf("expected no days, got %d", len(got))
	}
}

func TestComputeView_NilDocument(t *testing.T) {
	if got := ComputeView(nil, State{}); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	acts := testDoc().Days[0].Activities
	if got := Filter(acts, ""); len(got) != len(acts) {
		t.Errorf("expected %d activities, got %d", len(acts), len(got))
	}
}

func TestParseDisplayMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseDisplayMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseDisplayMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseDisplayMode("carousel"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestDisplayMode_Next(t *testing.T) {
	tests := []struct {
		in, want DisplayMode
	}{
		{ModeTabs, ModeAccordion},
		{ModeAccordion, ModeFullScroll},
		{ModeFullScroll, ModeTimeline},
		{ModeTimeline, ModeTabs},
		{DisplayMode("bogus"), ModeTabs},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%q.Next() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
