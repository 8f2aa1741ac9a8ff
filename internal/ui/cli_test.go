package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/schedwidget/internal/config"
	"github.com/javiermolinar/schedwidget/internal/db"
	"github.com/javiermolinar/schedwidget/internal/render"
	"github.com/javiermolinar/schedwidget/internal/schedule"
)

const scheduleJSON = `{
  "eventInfo": {"title": "Spring Camp", "dateRange": "1-2 May 2025"},
  "days": [
    {"id": "d1", "date": "2025-05-01", "dayLabel": "Thursday", "theme": "Arrival",
     "activities": [
       {"id": "a1", "startTime": "09:00", "endTime": "09:30", "title": "Intro", "type": "session"},
       {"id": "a2", "startTime": "12:00", "title": "Lunch", "type": "meal"}
     ]},
    {"id": "d2", "date": "2025-05-02", "dayLabel": "Friday",
     "activities": [
       {"id": "b1", "startTime": "10:00", "endTime": "12:00", "title": "Hike", "type": "recreation"}
     ]}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newTestApp(t *testing.T, dataPath string) *App {
	t.Helper()
	DisableColor()
	t.Cleanup(EnableColor)

	cfg := config.Default()
	cfg.Data.Path = dataPath
	cfg.Storage.DBPath = ""
	cfg.Options.HighlightCurrent = false
	cfg.Export.Dir = t.TempDir()
	return NewApp(cfg)
}

func TestRunValidate(t *testing.T) {
	DisableColor()
	t.Cleanup(EnableColor)

	t.Run("valid", func(t *testing.T) {
		var out bytes.Buffer
		if err := runValidate(&out, writeFile(t, "ok.json", scheduleJSON), render.LangEN, 120); err != nil {
			t.Fatalf("runValidate failed: %v", err)
		}
		for _, want := range []string{"✓ Spring Camp", "Thursday", "Arrival", "2 days, 3 activities (0 optional), 2h30m scheduled", "Busiest day: Friday"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q:\n%s", want, out.String())
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		bad := strings.Replace(scheduleJSON, `"09:00"`, `"9am"`, 1)
		var out bytes.Buffer
		err := runValidate(&out, writeFile(t, "bad.json", bad), render.LangEN, 120)
		if !errors.Is(err, schedule.ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument, got %v", err)
		}
		if !strings.Contains(out.String(), "✗") || !strings.Contains(out.String(), "field: startTime") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var out bytes.Buffer
		if err := runValidate(&out, filepath.Join(t.TempDir(), "none.json"), render.LangEN, 120); err == nil {
			t.Fatal("expected an error for a missing file")
		}
	})
}

func TestRunRender(t *testing.T) {
	a := newTestApp(t, writeFile(t, "ok.json", scheduleJSON))

	var out bytes.Buffer
	if err := a.runRender(&out); err != nil {
		t.Fatalf("runRender failed: %v", err)
	}
	html := out.String()
	for _, want := range []string{render.ClassHeader, render.ClassTab, "Spring Camp", "Intro"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(html, "Hike") {
		t.Error("tabs mode should only render the first day")
	}
}

func TestRunRender_InvalidPrintsErrorBlock(t *testing.T) {
	bad := strings.Replace(scheduleJSON, `"Spring Camp"`, `""`, 1)
	a := newTestApp(t, writeFile(t, "bad.json", bad))

	var out bytes.Buffer
	err := a.runRender(&out)
	var verr *schedule.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if !strings.Contains(out.String(), render.ClassError) {
		t.Errorf("expected the error block, got %q", out.String())
	}
}

func TestRunExport(t *testing.T) {
	a := newTestApp(t, writeFile(t, "ok.json", scheduleJSON))
	dir := t.TempDir()

	var out bytes.Buffer
	if err := a.runExport(&out, dir, false, false); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "spring-camp.ics"))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if got := strings.Count(string(data), "BEGIN:VEVENT"); got != 3 {
		t.Errorf("VEVENT count = %d, want 3", got)
	}
	if !strings.Contains(out.String(), "Exported") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRunExport_Stdout(t *testing.T) {
	a := newTestApp(t, writeFile(t, "ok.json", scheduleJSON))

	var out bytes.Buffer
	if err := a.runExport(&out, t.TempDir(), false, true); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "BEGIN:VCALENDAR") {
		t.Errorf("expected calendar text, got %q", out.String())
	}
}

func TestVersionCmd(t *testing.T) {
	a := newTestApp(t, "unused.json")
	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetArgs([]string{"version"})
	if err := a.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "schedwidget dev") {
		t.Errorf("unexpected version output: %q", out.String())
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := writeFile(t, "ok.json", scheduleJSON)
	a := newTestApp(t, "unused.json")

	var out bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetArgs([]string{"render", "--data", path, "--mode", "accordion", "--theme", "dark"})
	if err := a.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	html := out.String()
	if !strings.Contains(html, "schedule-widget--mode-accordion") || !strings.Contains(html, "schedule-widget--theme-dark") {
		t.Errorf("flags not applied:\n%s", html)
	}
	if !strings.Contains(html, "Hike") {
		t.Error("accordion mode should render every day")
	}
}

func TestOpenPreferences(t *testing.T) {
	prefs, closeFn, err := openPreferences("")
	if err != nil {
		t.Fatalf("openPreferences(\"\") failed: %v", err)
	}
	if _, ok := prefs.(*db.Memory); !ok {
		t.Errorf("expected in-memory preferences, got %T", prefs)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	prefs, closeFn, err = openPreferences(path)
	if err != nil {
		t.Fatalf("openPreferences(%q) failed: %v", path, err)
	}
	defer func() { _ = closeFn() }()
	if err := prefs.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok := prefs.Get("k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"truncated text", 6, "trunc…"},
		{"no limit", 0, "no limit"},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
