package schedule

import (
	"strings"
	"testing"
)

func TestLoadFile(t *testing.T) {
	doc, err := LoadFile("testdata/retreat.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.EventInfo.Title != "Mountain Retreat 2025" {
		t.Errorf("expected title Mountain Retreat 2025, got %q", doc.EventInfo.Title)
	}
	if len(doc.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(doc.Days))
	}
	if got := doc.ActivityCount(); got != 4 {
		t.Errorf("expected 4 activities, got %d", got)
	}

	intro := doc.Days[0].Activities[0]
	if intro.EndTime != "09:30" {
		t.Errorf("expected endTime 09:30, got %q", intro.EndTime)
	}
	if len(intro.Speakers) != 1 || intro.Speakers[0].Role != "Host" {
		t.Errorf("expected one speaker with role Host, got %+v", intro.Speakers)
	}
	if !doc.Days[1].Activities[0].IsOptional {
		t.Error("expected breakfast to be optional")
	}

	if err := Validate(doc); err != nil {
		t.Errorf("fixture should validate, got %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("testdata/nope.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"eventInfo": `)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDocument_DayByID(t *testing.T) {
	doc := &Document{Days: []Day{{ID: "d1"}, {ID: "d2"}}}

	day, ok := doc.DayByID("d2")
	if !ok || day.ID != "d2" {
		t.Errorf("expected to find d2, got %v %v", day, ok)
	}
	if doc.HasDay("d3") {
		t.Error("expected d3 to be missing")
	}

	var nilDoc *Document
	if nilDoc.HasDay("d1") {
		t.Error("nil document should have no days")
	}
}

func TestEventInfo_Links(t *testing.T) {
	t.Run("urls take precedence", func(t *testing.T) {
		info := EventInfo{URLs: []Link{{URL: "https://a", Title: "A"}}, URL: "https://legacy"}
		links := info.Links()
		if len(links) != 1 || links[0].Title != "A" {
			t.Errorf("unexpected links %+v", links)
		}
	})

	t.Run("legacy url", func(t *testing.T) {
		links := EventInfo{URL: "https://legacy"}.Links()
		if len(links) != 1 || links[0].Title != "Venue Website" {
			t.Errorf("unexpected links %+v", links)
		}
	})

	t.Run("none", func(t *testing.T) {
		if links := (EventInfo{}).Links(); links != nil {
			t.Errorf("expected nil, got %+v", links)
		}
	})
}

func TestTypeRegistry_Lookup(t *testing.T) {
	reg := DefaultTypes()

	if got := reg.Lookup("meal"); got.Icon != "🍽️" {
		t.Errorf("expected meal icon, got %q", got.Icon)
	}
	if got := reg.Lookup("unknown"); got.Label != "Altele" {
		t.Errorf("expected fallback to other, got %+v", got)
	}

	custom := TypeRegistry{"talk": {Color: "#000", Icon: "🎙", Label: "Talk"}}
	if got := custom.Lookup("unknown"); got.Color != "#ccc" {
		t.Errorf("expected neutral fallback, got %+v", got)
	}
}

func TestDocument_Types(t *testing.T) {
	doc := &Document{}
	if len(doc.Types()) != len(DefaultTypes()) {
		t.Error("expected default registry when document has none")
	}

	doc.ActivityTypes = TypeRegistry{"talk": {Label: "Talk"}}
	if _, ok := doc.Types()["talk"]; !ok {
		t.Error("expected document registry")
	}
}
