package integration

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/schedwidget/internal/db"
	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/export"
	"github.com/javiermolinar/schedwidget/internal/render"
	"github.com/javiermolinar/schedwidget/internal/schedule"
	"github.com/javiermolinar/schedwidget/internal/watch"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

const containerID = "schedule"

// openRepo creates a fresh preferences store with automatic cleanup.
func openRepo(t *testing.T, path string) *db.SQLite {
	t.Helper()
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// writeSchedule writes a two-day schedule titled title.
func writeSchedule(t *testing.T, path, title string) {
	t.Helper()
	doc := `{
  "eventInfo": {"title": "` + title + `", "dateRange": "1-2 May 2025"},
  "days": [
    {"id": "d1", "date": "2025-05-01", "dayLabel": "Thursday", "activities": [
      {"id": "a1", "startTime": "09:00", "endTime": "09:30", "title": "Intro", "type": "session"}
    ]},
    {"id": "d2", "date": "2025-05-02", "dayLabel": "Friday", "activities": [
      {"id": "b1", "startTime": "08:00", "endTime": "09:00", "title": "Breakfast", "type": "meal"}
    ]}
  ]
}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing schedule: %v", err)
	}
}

func mount(t *testing.T, doc *schedule.Document, mutate func(*widget.Config)) *widget.Widget {
	t.Helper()
	opts := render.DefaultOptions()
	opts.HighlightCurrent = false
	cfg := widget.Config{
		ContainerID: containerID,
		Host:        dom.NewDocumentWithContainer(containerID),
		Data:        doc,
		Options:     &opts,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := widget.New(cfg)
	if err != nil {
		t.Fatalf("widget.New failed: %v", err)
	}
	t.Cleanup(w.Destroy)
	return w
}

func TestPreferredDaySurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "schedule.json")
	dbPath := filepath.Join(dir, "prefs.db")
	writeSchedule(t, dataPath, "Camp")

	doc, err := schedule.LoadFile(dataPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	first := mount(t, doc, func(c *widget.Config) { c.Preferences = repo })
	if !first.ChangeDay("d2") {
		t.Fatal("ChangeDay(d2) reported no change")
	}
	first.Destroy()
	if err := repo.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openRepo(t, dbPath)
	second := mount(t, doc, func(c *widget.Config) { c.Preferences = reopened })
	if got := second.State().CurrentDayID; got != "d2" {
		t.Errorf("restored day = %q, want d2", got)
	}
}

func TestStalePreferenceFallsBackToFirstDay(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "schedule.json")
	writeSchedule(t, dataPath, "Camp")
	doc, err := schedule.LoadFile(dataPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	repo := openRepo(t, filepath.Join(dir, "prefs.db"))
	if err := repo.Set(widget.PreferenceCurrentDay, "removed-day"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	w := mount(t, doc, func(c *widget.Config) { c.Preferences = repo })
	if got := w.State().CurrentDayID; got != "d1" {
		t.Errorf("current day = %q, want d1", got)
	}
}

func TestReloadRepublishesCalendar(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "schedule.json")
	writeSchedule(t, dataPath, "Spring Camp")

	doc, err := schedule.LoadFile(dataPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	srv := export.NewServer()
	w := mount(t, doc, func(c *widget.Config) { c.Exporter = srv })
	if err := w.Export(); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if got := srv.Filename(); got != "spring-camp.ics" {
		t.Fatalf("published %q", got)
	}

	republished := make(chan struct{}, 1)
	watcher, err := watch.New(dataPath, 20*time.Millisecond, func(doc *schedule.Document, err error) {
		if err != nil {
			return
		}
		if err := w.Update(doc); err != nil {
			return
		}
		if err := w.Export(); err == nil {
			select {
			case republished <- struct{}{}:
			default:
			}
		}
	})
	if err != nil {
		t.Fatalf("watch.New failed: %v", err)
	}
	t.Cleanup(func() { _ = watcher.Close() })

	writeSchedule(t, dataPath, "Autumn Camp")
	select {
	case <-republished:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the reload")
	}

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/calendar.ics")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "X-WR-CALNAME:Autumn Camp") {
		t.Errorf("calendar not republished:\n%s", body)
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "autumn-camp.ics") {
		t.Errorf("Content-Disposition = %q", resp.Header.Get("Content-Disposition"))
	}
	if !strings.Contains(w.HTML(), "Autumn Camp") {
		t.Error("widget tree not updated")
	}
}

func TestInvalidReloadKeepsCurrentTree(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "schedule.json")
	writeSchedule(t, dataPath, "Camp")
	doc, err := schedule.LoadFile(dataPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	w := mount(t, doc, nil)

	// An empty title fails validation.
	writeSchedule(t, dataPath, "")
	broken, err := schedule.LoadFile(dataPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := w.Update(broken); err == nil {
		t.Fatal("expected a validation error")
	}
	if html := w.HTML(); !strings.Contains(html, "Camp") || strings.Contains(html, render.ClassError) {
		t.Errorf("tree replaced after a failed update:\n%s", html)
	}
}
