package commands

import (
	"errors"
	"testing"

	"github.com/javiermolinar/schedwidget/internal/dom"
	"github.com/javiermolinar/schedwidget/internal/schedule"
	"github.com/javiermolinar/schedwidget/internal/widget"
)

type fakeExporter struct {
	err   error
	calls int
}

func (f *fakeExporter) Export(string, []byte) error {
	f.calls++
	return f.err
}

func newWidget(t *testing.T, exp widget.Exporter) *widget.Widget {
	t.Helper()
	doc := &schedule.Document{
		EventInfo: schedule.EventInfo{Title: "Retreat", DateRange: "May"},
		Days: []schedule.Day{{
			ID: "d1", Date: "2025-05-01", DayLabel: "Thu",
			Activities: []schedule.Activity{{ID: "a", StartTime: "09:00", Title: "Intro", Type: "session"}},
		}},
	}
	w, err := widget.New(widget.Config{
		ContainerID: "c",
		Host:        dom.NewDocumentWithContainer("c"),
		Data:        doc,
		Exporter:    exp,
	})
	if err != nil {
		t.Fatalf("widget.New failed: %v", err)
	}
	t.Cleanup(w.Destroy)
	return w
}

func TestWaitForRender(t *testing.T) {
	if WaitForRender(nil) != nil {
		t.Fatal("nil channel should give a nil command")
	}

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	if _, ok := WaitForRender(ch)().(RenderMsg); !ok {
		t.Error("expected RenderMsg")
	}

	close(ch)
	if msg := WaitForRender(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %T", msg)
	}
}

func TestExport(t *testing.T) {
	exp := &fakeExporter{}
	msg := Export(newWidget(t, exp))()
	if _, ok := msg.(ExportedMsg); !ok {
		t.Fatalf("expected ExportedMsg, got %T", msg)
	}
	if exp.calls != 1 {
		t.Errorf("exporter calls = %d", exp.calls)
	}

	boom := errors.New("boom")
	msg = Export(newWidget(t, &fakeExporter{err: boom}))()
	errMsg, ok := msg.(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, boom) {
		t.Errorf("expected ErrMsg wrapping boom, got %#v", msg)
	}
}

func TestClearStatusAfter(t *testing.T) {
	if ClearStatusAfter() == nil {
		t.Fatal("expected a tick command")
	}
}
