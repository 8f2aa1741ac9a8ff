// Package render builds the schedule widget's view tree and updates it in
// place on interaction.
package render

import (
	"strings"
	"time"

	"github.com/javiermolinar/schedwidget/internal/dateutil"
	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/schedule"
	"github.com/javiermolinar/schedwidget/internal/viewmodel"
)

// Options are the display switches of the widget.
type Options struct {
	ShowSearch       bool
	EnableExport     bool
	ShowIcons        bool
	Language         string
	TimeFormat       string
	HighlightCurrent bool
	ShowEndTimes     bool
	ShowSpeakers     bool
	ShowLocations    bool
	ShowThemeToggle  bool
}

// DefaultOptions returns the options used when the caller sets none.
func DefaultOptions() Options {
	return Options{
		ShowIcons:        true,
		Language:         LangRO,
		TimeFormat:       dateutil.Format24h,
		HighlightCurrent: true,
		ShowEndTimes:     true,
		ShowSpeakers:     true,
		ShowLocations:    true,
	}
}

// Handlers are bound to interactive nodes. Nil handlers leave the node
// without a listener.
type Handlers struct {
	OnSearchInput   func(query string)
	OnDayChange     func(dayID string)
	OnToggleDay     func(dayID string)
	OnActivityClick func(a schedule.Activity)
	OnExport        func()
	OnThemeToggle   func()
	OnCloseDetail   func()
}

// Renderer owns the nodes it mounted into a container so that later updates
// touch only the affected region.
type Renderer struct {
	// Now supplies the clock used for current-activity markers. It defaults
	// to time.Now.
	Now func() time.Time

	container *dom.Node
	opts      Options
	handlers  Handlers

	doc     *schedule.Document
	types   schedule.TypeRegistry
	header  *dom.Node
	nav     *dom.Node
	content *dom.Node
	detail  *dom.Node
}

// New creates a renderer mounting into container.
func New(container *dom.Node, opts Options, h Handlers) *Renderer {
	return &Renderer{container: container, opts: opts, handlers: h}
}

// Container returns the mount point.
func (r *Renderer) Container() *dom.Node {
	return r.container
}

// Options returns the options the renderer was created with.
func (r *Renderer) Options() Options {
	return r.opts
}

// Nav returns the tab strip, or nil outside tabs mode.
func (r *Renderer) Nav() *dom.Node {
	return r.nav
}

// Content returns the area holding the day blocks.
func (r *Renderer) Content() *dom.Node {
	return r.content
}

// RenderFull rebuilds the whole widget for doc and state.
func (r *Renderer) RenderFull(doc *schedule.Document, state viewmodel.State, expanded map[string]bool) {
	r.doc = doc
	r.types = doc.Types()
	r.nav = nil
	r.detail = nil

	r.container.Off()
	r.container.Clear()
	r.container.SetClassName(ContainerClass(state.Theme, state.DisplayMode))

	r.header = RenderHeader(doc.EventInfo, state.SearchQuery, r.opts, r.handlers)
	r.container.Append(r.header)

	if state.DisplayMode == viewmodel.ModeTabs {
		r.nav = RenderDayNavigation(doc.Days, state.CurrentDayID, r.opts, r.handlers.OnDayChange)
		r.container.Append(r.nav)
	}

	r.content = dom.El("div", ClassDays)
	r.container.Append(r.content)
	r.UpdateContent(state, expanded)
}

// UpdateContent rebuilds only the day blocks. The header, and with it the
// search input, is left untouched.
func (r *Renderer) UpdateContent(state viewmodel.State, expanded map[string]bool) {
	if r.content == nil || r.doc == nil {
		return
	}
	r.content.Off()
	r.content.Clear()
	for _, view := range viewmodel.ComputeView(r.doc, state) {
		r.content.Append(RenderDayBlock(view, state.DisplayMode, expanded[view.Day.ID], r.types, r.opts, r.handlers))
	}
	if r.opts.HighlightCurrent {
		r.HighlightCurrentActivity(r.now())
	}
}

// UpdateNavigationHighlight marks the current tab without rebuilding the nav.
func (r *Renderer) UpdateNavigationHighlight(currentDayID string) {
	UpdateNavigationHighlight(r.nav, currentDayID)
}

// SetExpanded toggles an accordion day in place.
func (r *Renderer) SetExpanded(dayID string, expanded bool) {
	if r.content == nil {
		return
	}
	block := r.content.Find(func(n *dom.Node) bool {
		return n.HasClass(ClassDay) && n.Data("day-id") == dayID
	})
	if block == nil {
		return
	}
	block.ToggleClass(ClassDayExpanded, expanded)
	if heading := block.FirstByClass(ClassDayHeader); heading != nil {
		heading.SetAttr("aria-expanded", boolAttr(expanded))
	}
}

// SetTheme swaps the theme class on the container.
func (r *Renderer) SetTheme(theme string) {
	for _, c := range r.container.Classes() {
		if strings.HasPrefix(c, classThemePrefix) {
			r.container.RemoveClass(c)
		}
	}
	r.container.AddClass(classThemePrefix + theme)
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// HighlightCurrentActivity refreshes the current-activity markers.
func (r *Renderer) HighlightCurrentActivity(now time.Time) int {
	return HighlightCurrentActivity(r.content, now)
}

// ShowDetail mounts the detail panel for a, replacing any previous one.
func (r *Renderer) ShowDetail(a schedule.Activity) *dom.Node {
	r.CloseDetail()
	r.detail = RenderActivityDetail(a, r.types.Lookup(a.Type), r.opts)
	closeDetail := r.handlers.OnCloseDetail
	if closeDetail == nil {
		closeDetail = r.CloseDetail
	}
	r.detail.Append(
		dom.El("button", ClassDetail+"-close").
			SetAttr("type", "button").
			SetAttr("aria-label", text(r.opts.Language).Close).
			AppendText("✕").
			On(dom.EventClick, func(dom.Event) { closeDetail() }),
	)
	r.container.Append(r.detail)
	return r.detail
}

// Detail returns the open detail panel, if any.
func (r *Renderer) Detail() *dom.Node {
	return r.detail
}

// CloseDetail removes the detail panel.
func (r *Renderer) CloseDetail() {
	if r.detail != nil {
		r.detail.Remove()
		r.detail = nil
	}
}

// RenderError replaces the container content with the error block.
func (r *Renderer) RenderError(err error) {
	r.Reset()
	r.container.SetClassName(Block)
	r.container.Append(RenderError(err, r.opts.Language))
}

// Reset empties the container and drops every listener under it.
func (r *Renderer) Reset() {
	r.container.Off()
	r.container.Clear()
	r.container.SetClassName("")
	r.header, r.nav, r.content, r.detail = nil, nil, nil, nil
	r.doc = nil
}
