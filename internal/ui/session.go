package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/schedwidget/internal/db"
	"github.com/javiermolinar/schedwidget/internal/debuglog"
	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/schedule"
	"github.com/javiermolinar/schedwidget/internal/watch"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

// session is a widget mounted from the configuration together with the
// resources it holds.
type session struct {
	host    *dom.Document
	widget  *widget.Widget
	closers []func() error
}

// mountError carries the host whose container shows the inline error block.
type mountError struct {
	host *dom.Document
	err  error
}

func (e *mountError) Error() string { return e.err.Error() }
func (e *mountError) Unwrap() error { return e.err }

// mount loads the schedule and creates the widget in a fresh host document.
func (a *App) mount(cb widget.Callbacks, exp widget.Exporter) (*session, error) {
	doc, err := schedule.LoadFile(a.config.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}

	prefs, closePrefs, err := openPreferences(a.config.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	host := dom.NewDocumentWithContainer(a.config.Widget.ContainerID)
	opts := a.config.RenderOptions()
	w, err := widget.New(widget.Config{
		ContainerID: a.config.Widget.ContainerID,
		Host:        host,
		Data:        doc,
		Theme:       a.config.Widget.Theme,
		DisplayMode: a.config.DisplayMode(),
		Options:     &opts,
		Callbacks:   cb,
		Preferences: prefs,
		Exporter:    exp,
	})
	if err != nil {
		_ = closePrefs()
		return nil, &mountError{host: host, err: err}
	}

	return &session{
		host:    host,
		widget:  w,
		closers: []func() error{closePrefs, func() error { w.Destroy(); return nil }},
	}, nil
}

// openPreferences opens the SQLite store at path, or an in-memory store when
// path is empty.
func openPreferences(path string) (widget.Preferences, func() error, error) {
	if path == "" {
		return db.NewMemory(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}
	store, err := db.New(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening preferences: %w", err)
	}
	return store, store.Close, nil
}

// watch reloads the widget when the schedule file changes. after runs once
// each successful update is applied.
func (s *session) watch(path string, after func()) error {
	w, err := watch.New(path, watch.DefaultDebounce, func(doc *schedule.Document, err error) {
		if err != nil {
			return
		}
		if err := s.widget.Update(doc); err != nil {
			debuglog.Error("reload", err)
			return
		}
		if after != nil {
			after()
		}
	})
	if err != nil {
		return fmt.Errorf("watching schedule: %w", err)
	}
	s.closers = append(s.closers, w.Close)
	return nil
}

// Close stops the watcher, destroys the widget and closes the preferences,
// in that order.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			debuglog.Error("session close", err)
		}
	}
}
