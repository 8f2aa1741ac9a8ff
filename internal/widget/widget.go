// Package widget ties the schedule document, interaction state, renderer and
// collaborators into one owned instance.
//
// Every handler runs with the widget lock held, one at a time. Callbacks are
// queued while the lock is held and invoked after it is released, so a
// callback may call back into the widget.
package widget

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/javiermolinar/schedwidget/internal/calendar"
	"github.com/javiermolinar/schedwidget/internal/debuglog"
	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/render"
	"github.com/javiermolinar/schedwidget/internal/schedule"
	"github.com/javiermolinar/schedwidget/internal/viewmodel"
)

const (
	DefaultTheme          = "mountain-retreat"
	DefaultDisplayMode    = viewmodel.ModeTabs
	DefaultSearchDebounce = 300 * time.Millisecond

	// PreferenceCurrentDay is the preference key holding the last viewed day.
	PreferenceCurrentDay = "schedule-widget-current-day"

	highlightSchedule = "@every 1m"
)

// DefaultThemes is the cycle used by the theme toggle.
var DefaultThemes = []string{"mountain-retreat", "professional", "minimal", "dark"}

var (
	// ErrDestroyed is returned by operations on a destroyed widget.
	ErrDestroyed = errors.New("widget destroyed")
	// ErrNoExporter is returned by Export when no exporter is configured.
	ErrNoExporter = errors.New("no exporter configured")
)

// ConfigError reports an unusable configuration. Nothing is rendered when it
// is returned.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid widget config: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Preferences persists small string values across sessions.
type Preferences interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Exporter receives the generated calendar file.
type Exporter interface {
	Export(filename string, content []byte) error
}

// Callbacks notify the embedding host. They run outside the widget lock.
type Callbacks struct {
	OnDayChange     func(dayID string)
	OnActivityClick func(a schedule.Activity)
	OnSearch        func(query string)
	// OnRender fires after any change to the tree.
	OnRender func()
}

// Config configures New.
type Config struct {
	ContainerID string
	Host        *dom.Document
	Data        *schedule.Document

	// Theme and DisplayMode fall back to DefaultTheme and DefaultDisplayMode.
	Theme       string
	DisplayMode viewmodel.DisplayMode
	// Options falls back to render.DefaultOptions when nil.
	Options *render.Options

	Callbacks   Callbacks
	Preferences Preferences
	Exporter    Exporter

	// Clock defaults to time.Now.
	Clock          func() time.Time
	SearchDebounce time.Duration
	Themes         []string
}

// Widget is a mounted schedule widget.
type Widget struct {
	mu sync.Mutex

	container *dom.Node
	renderer  *render.Renderer
	opts      render.Options

	doc      *schedule.Document
	state    viewmodel.State
	expanded map[string]bool

	callbacks Callbacks
	prefs     Preferences
	exporter  Exporter
	clock     func() time.Time
	debounce  time.Duration
	themes    []string

	searchTimer *time.Timer
	searchGen   uint64 // bumped per keystroke so a timer that already fired is ignored
	ticker      *cron.Cron
	pending     []func()
	dirty       bool
	destroyed   bool
}

// New mounts a widget into the container element of cfg.Host.
//
// A *ConfigError is returned before anything is rendered. A
// *schedule.ValidationError is returned after the inline error block has been
// rendered into the container.
func New(cfg Config) (*Widget, error) {
	container, err := resolveContainer(cfg)
	if err != nil {
		return nil, err
	}

	mode := cfg.DisplayMode
	if mode == "" {
		mode = DefaultDisplayMode
	} else if mode, err = viewmodel.ParseDisplayMode(string(mode)); err != nil {
		return nil, &ConfigError{Field: "displayMode", Reason: "is not a known mode", Err: err}
	}

	opts := render.DefaultOptions()
	if cfg.Options != nil {
		opts = *cfg.Options
	}

	w := &Widget{
		container: container,
		opts:      opts,
		callbacks: cfg.Callbacks,
		prefs:     cfg.Preferences,
		exporter:  cfg.Exporter,
		clock:     cfg.Clock,
		debounce:  cfg.SearchDebounce,
		themes:    cfg.Themes,
		state: viewmodel.State{
			DisplayMode: mode,
			Theme:       cfg.Theme,
		},
	}
	if w.clock == nil {
		w.clock = time.Now
	}
	if w.debounce <= 0 {
		w.debounce = DefaultSearchDebounce
	}
	if len(w.themes) == 0 {
		w.themes = DefaultThemes
	}
	if w.state.Theme == "" {
		w.state.Theme = DefaultTheme
	}

	w.renderer = render.New(container, opts, w.handlers())
	w.renderer.Now = w.clock

	if err := schedule.Validate(cfg.Data); err != nil {
		w.renderer.RenderError(err)
		debuglog.Error("widget init", err)
		return nil, err
	}

	w.doc = cfg.Data
	w.state.CurrentDayID = w.initialDay()
	w.expanded = initialExpanded(w.doc, w.state.DisplayMode)
	w.renderer.RenderFull(w.doc, w.state, w.expanded)

	if opts.HighlightCurrent {
		if err := w.startTicker(); err != nil {
			w.renderer.Reset()
			return nil, fmt.Errorf("starting highlight ticker: %w", err)
		}
	}

	debuglog.Log("widget_init", map[string]any{
		"container": cfg.ContainerID,
		"mode":      string(w.state.DisplayMode),
		"theme":     w.state.Theme,
		"day":       w.state.CurrentDayID,
		"days":      len(w.doc.Days),
	})
	return w, nil
}

func resolveContainer(cfg Config) (*dom.Node, error) {
	if cfg.ContainerID == "" {
		return nil, &ConfigError{Field: "containerId", Reason: "is required"}
	}
	if cfg.Host == nil {
		return nil, &ConfigError{Field: "host", Reason: "is required"}
	}
	container, err := cfg.Host.GetElementByID(cfg.ContainerID)
	if err != nil {
		return nil, &ConfigError{
			Field:  "containerId",
			Reason: fmt.Sprintf("%q does not match any element", cfg.ContainerID),
			Err:    err,
		}
	}
	if cfg.Data == nil {
		return nil, &ConfigError{Field: "data", Reason: "is required"}
	}
	return container, nil
}

// initialDay prefers the persisted day when it still exists.
func (w *Widget) initialDay() string {
	if w.prefs != nil {
		if saved, ok := w.prefs.Get(PreferenceCurrentDay); ok && w.doc.HasDay(saved) {
			return saved
		}
	}
	return w.doc.Days[0].ID
}

// initialExpanded opens the first day in accordion mode.
func initialExpanded(doc *schedule.Document, mode viewmodel.DisplayMode) map[string]bool {
	expanded := make(map[string]bool, len(doc.Days))
	if mode == viewmodel.ModeAccordion && len(doc.Days) > 0 {
		expanded[doc.Days[0].ID] = true
	}
	return expanded
}

func (w *Widget) handlers() render.Handlers {
	return render.Handlers{
		OnSearchInput:   w.search,
		OnDayChange:     func(id string) { w.changeDay(id) },
		OnToggleDay:     func(id string) { w.toggleDay(id) },
		OnActivityClick: w.clickActivity,
		OnExport: func() {
			if err := w.export(); err != nil {
				debuglog.Error("export", err)
			}
		},
		OnThemeToggle: w.toggleTheme,
		OnCloseDetail: w.closeDetail,
	}
}

func (w *Widget) startTicker() error {
	w.ticker = cron.New()
	if _, err := w.ticker.AddFunc(highlightSchedule, func() { w.HighlightNow() }); err != nil {
		return err
	}
	w.ticker.Start()
	return nil
}

// dispatch runs fn under the lock, then delivers queued callbacks.
func (w *Widget) dispatch(fn func()) bool {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return false
	}
	fn()
	pending := w.pending
	w.pending = nil
	if w.dirty && w.callbacks.OnRender != nil {
		pending = append(pending, w.callbacks.OnRender)
	}
	w.dirty = false
	w.mu.Unlock()

	for _, cb := range pending {
		cb()
	}
	return true
}

func (w *Widget) notify(cb func()) {
	w.pending = append(w.pending, cb)
}

// Click dispatches a click on a node of the widget's tree.
func (w *Widget) Click(n *dom.Node) bool {
	handled := false
	w.dispatch(func() { handled = n.Click() })
	return handled
}

// Input types value into a node of the widget's tree.
func (w *Widget) Input(n *dom.Node, value string) bool {
	handled := false
	w.dispatch(func() { handled = n.Input(value) })
	return handled
}

// Inspect runs fn with the root node while no handler can mutate the tree.
// fn must not call other Widget methods.
func (w *Widget) Inspect(fn func(root *dom.Node)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.container)
}

// HTML serializes the current tree.
func (w *Widget) HTML() string {
	var s string
	w.Inspect(func(root *dom.Node) { s = root.HTML() })
	return s
}

// Root returns the container node. Reading it while handlers run races with
// them; prefer Inspect.
func (w *Widget) Root() *dom.Node {
	return w.container
}

// Document returns the schedule currently rendered.
func (w *Widget) Document() *schedule.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc
}

// Options returns the display options in effect.
func (w *Widget) Options() render.Options {
	return w.opts
}

// State returns a copy of the interaction state.
func (w *Widget) State() viewmodel.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Expanded reports whether an accordion day is open.
func (w *Widget) Expanded(dayID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expanded[dayID]
}

// Update validates data and re-renders with it. On failure the current tree
// is kept and the error returned.
func (w *Widget) Update(data *schedule.Document) error {
	if err := schedule.Validate(data); err != nil {
		debuglog.Error("widget update", err)
		return err
	}
	if !w.dispatch(func() {
		w.doc = data
		if !data.HasDay(w.state.CurrentDayID) {
			w.state.CurrentDayID = data.Days[0].ID
		}
		w.expanded = initialExpanded(data, w.state.DisplayMode)
		w.renderer.CloseDetail()
		w.renderer.RenderFull(w.doc, w.state, w.expanded)
		w.dirty = true
		debuglog.Log("widget_update", map[string]any{"days": len(data.Days)})
	}) {
		return ErrDestroyed
	}
	return nil
}

// SetTheme swaps the theme class without re-rendering.
func (w *Widget) SetTheme(theme string) {
	if theme == "" {
		return
	}
	w.dispatch(func() { w.setTheme(theme) })
}

func (w *Widget) setTheme(theme string) {
	w.state.Theme = theme
	w.renderer.SetTheme(theme)
	w.dirty = true
}

func (w *Widget) toggleTheme() {
	next := w.themes[0]
	for i, t := range w.themes {
		if t == w.state.Theme {
			next = w.themes[(i+1)%len(w.themes)]
			break
		}
	}
	w.setTheme(next)
}

// ToggleTheme advances to the next theme in the cycle.
func (w *Widget) ToggleTheme() {
	w.dispatch(w.toggleTheme)
}

// SetDisplayMode switches the layout and re-renders.
func (w *Widget) SetDisplayMode(mode viewmodel.DisplayMode) error {
	parsed, err := viewmodel.ParseDisplayMode(string(mode))
	if err != nil {
		return err
	}
	if !w.dispatch(func() {
		w.state.DisplayMode = parsed
		w.expanded = initialExpanded(w.doc, parsed)
		w.renderer.RenderFull(w.doc, w.state, w.expanded)
		w.dirty = true
	}) {
		return ErrDestroyed
	}
	return nil
}

// ChangeDay selects a day. Unknown ids are ignored and reported as false.
func (w *Widget) ChangeDay(dayID string) bool {
	changed := false
	w.dispatch(func() { changed = w.changeDay(dayID) })
	return changed
}

func (w *Widget) changeDay(dayID string) bool {
	if !w.doc.HasDay(dayID) {
		return false
	}
	w.state.CurrentDayID = dayID
	w.renderer.UpdateNavigationHighlight(dayID)
	if w.state.DisplayMode == viewmodel.ModeTabs {
		w.renderer.UpdateContent(w.state, w.expanded)
	}
	w.dirty = true

	if w.prefs != nil {
		if err := w.prefs.Set(PreferenceCurrentDay, dayID); err != nil {
			debuglog.Error("saving current day", err)
		}
	}
	debuglog.Log("day_change", map[string]any{"day": dayID})

	if cb := w.callbacks.OnDayChange; cb != nil {
		w.notify(func() { cb(dayID) })
	}
	return true
}

// Search schedules query to be applied once typing pauses.
func (w *Widget) Search(query string) {
	w.dispatch(func() { w.search(query) })
}

func (w *Widget) search(query string) {
	if w.searchTimer != nil {
		w.searchTimer.Stop()
	}
	w.searchGen++
	gen := w.searchGen
	w.searchTimer = time.AfterFunc(w.debounce, func() {
		w.dispatch(func() {
			if gen == w.searchGen {
				w.applySearch(query)
			}
		})
	})
}

// ApplySearch filters immediately, bypassing the debounce.
func (w *Widget) ApplySearch(query string) {
	w.dispatch(func() {
		if w.searchTimer != nil {
			w.searchTimer.Stop()
			w.searchTimer = nil
		}
		w.searchGen++
		w.applySearch(query)
	})
}

func (w *Widget) applySearch(query string) {
	w.state.SearchQuery = query
	w.renderer.UpdateContent(w.state, w.expanded)
	w.dirty = true
	debuglog.Log("search", map[string]any{"query": query})

	if cb := w.callbacks.OnSearch; cb != nil {
		w.notify(func() { cb(query) })
	}
}

// ToggleDay opens or closes an accordion day.
func (w *Widget) ToggleDay(dayID string) {
	w.dispatch(func() { w.toggleDay(dayID) })
}

func (w *Widget) toggleDay(dayID string) {
	if !w.doc.HasDay(dayID) {
		return
	}
	open := !w.expanded[dayID]
	w.expanded[dayID] = open
	w.renderer.SetExpanded(dayID, open)
	w.dirty = true
}

// ClickActivity opens the detail panel for an activity. It reports whether
// the activity exists.
func (w *Widget) ClickActivity(dayID, activityID string) bool {
	found := false
	w.dispatch(func() {
		day, ok := w.doc.DayByID(dayID)
		if !ok {
			return
		}
		for _, a := range day.Activities {
			if a.ID == activityID {
				w.clickActivity(a)
				found = true
				return
			}
		}
	})
	return found
}

func (w *Widget) clickActivity(a schedule.Activity) {
	w.renderer.ShowDetail(a)
	w.dirty = true
	if cb := w.callbacks.OnActivityClick; cb != nil {
		w.notify(func() { cb(a) })
	}
}

// CloseDetail closes the detail panel.
func (w *Widget) CloseDetail() {
	w.dispatch(w.closeDetail)
}

func (w *Widget) closeDetail() {
	if w.renderer.Detail() == nil {
		return
	}
	w.renderer.CloseDetail()
	w.dirty = true
}

// Export generates the calendar file and hands it to the exporter.
func (w *Widget) Export() error {
	var err error
	if !w.dispatch(func() { err = w.export() }) {
		return ErrDestroyed
	}
	return err
}

func (w *Widget) export() error {
	if w.exporter == nil {
		return ErrNoExporter
	}
	filename := calendar.Filename(w.doc.EventInfo.Title)
	content := calendar.Export(w.doc, w.clock())
	if err := w.exporter.Export(filename, []byte(content)); err != nil {
		return fmt.Errorf("exporting %s: %w", filename, err)
	}
	debuglog.Log("export", map[string]any{
		"filename": filename,
		"events":   w.doc.ActivityCount(),
	})
	return nil
}

// HighlightNow refreshes the current-activity markers and returns how many
// cards are marked.
func (w *Widget) HighlightNow() int {
	marked := 0
	w.dispatch(func() {
		marked = w.renderer.HighlightCurrentActivity(w.clock())
		w.dirty = true
	})
	return marked
}

// Destroy stops timers, empties the container and releases the instance.
// Later calls are no-ops.
func (w *Widget) Destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	if w.searchTimer != nil {
		w.searchTimer.Stop()
		w.searchTimer = nil
	}
	ticker := w.ticker
	w.ticker = nil
	w.renderer.Reset()
	w.pending = nil
	w.doc = nil
	w.mu.Unlock()

	if ticker != nil {
		// A tick already running finds the widget destroyed and returns.
		ticker.Stop()
	}
	debuglog.Log("widget_destroy", nil)
}
