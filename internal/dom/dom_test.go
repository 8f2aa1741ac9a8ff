package dom

import (
	"errors"
	"strings"
	"testing"
)

func TestNode_Classes(t *testing.T) {
	n := El("div", "a", "b", "a", "")
	if got := n.ClassName(); got != "a b" {
		t.Errorf("ClassName = %q, want %q", got, "a b")
	}

	n.ToggleClass("c", true).ToggleClass("a", false)
	if n.HasClass("a") || !n.HasClass("c") {
		t.Errorf("unexpected classes %v", n.Classes())
	}

	n.SetClassName("  x   y ")
	if got := n.ClassName(); got != "x y" {
		t.Errorf("ClassName after reset = %q", got)
	}

	n.SetAttr("class", "z")
	if got := n.ClassName(); got != "z" {
		t.Errorf("class attribute should replace classes, got %q", got)
	}
}

func TestNode_Attrs(t *testing.T) {
	n := El("button").SetAttr("role", "tab").SetData("day-id", "d1")

	if v, ok := n.Attr("role"); !ok || v != "tab" {
		t.Errorf("role = %q, %v", v, ok)
	}
	if got := n.Data("day-id"); got != "d1" {
		t.Errorf("data-day-id = %q", got)
	}

	n.SetAttr("role", "button").RemoveAttr("data-day-id")
	if got := n.AttrOr("role", ""); got != "button" {
		t.Errorf("role after update = %q", got)
	}
	if _, ok := n.Attr("data-day-id"); ok {
		t.Error("expected data-day-id to be removed")
	}
	if got := n.AttrOr("missing", "def"); got != "def" {
		t.Errorf("AttrOr default = %q", got)
	}
}

func TestNode_TreeOps(t *testing.T) {
	root := El("div")
	a := El("p").AppendText("one")
	b := El("p").AppendText("two")
	root.Append(a, nil, b)

	if len(root.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children()))
	}
	if a.Parent() != root {
		t.Error("expected parent link")
	}
	if got := root.TextContent(); got != "onetwo" {
		t.Errorf("TextContent = %q", got)
	}

	other := El("section")
	other.Append(a)
	if len(root.Children()) != 1 || a.Parent() != other {
		t.Error("appending elsewhere should move the node")
	}

	c := El("p").AppendText("three")
	b.ReplaceWith(c)
	if root.Children()[0] != c || b.Parent() != nil {
		t.Error("ReplaceWith should swap the node in place")
	}

	c.SetText("changed")
	if got := c.TextContent(); got != "changed" {
		t.Errorf("SetText = %q", got)
	}

	root.Clear()
	if len(root.Children()) != 0 || c.Parent() != nil {
		t.Error("Clear should detach children")
	}
}

func TestNode_Queries(t *testing.T) {
	root := El("div", "root").Append(
		El("nav", "nav").Append(
			El("button", "tab").SetData("day-id", "d1"),
			El("button", "tab", "tab--active").SetData("day-id", "d2"),
		),
		El("div", "day").SetAttr("id", "panel-d1").Append(
			El("div", "card").Append(El("h3", "title").AppendText("Intro")),
		),
	)

	if got := len(root.ByClass("tab")); got != 2 {
		t.Errorf("expected 2 tabs, got %d", got)
	}
	if tab := root.ByAttr("data-day-id", "d2"); tab == nil || !tab.HasClass("tab--active") {
		t.Errorf("unexpected tab %v", tab)
	}
	if root.ByID("panel-d1") == nil {
		t.Error("expected panel by id")
	}

	title := root.FirstByClass("title")
	if title == nil {
		t.Fatal("expected title")
	}
	if day := title.Closest("day"); day == nil || day.AttrOr("id", "") != "panel-d1" {
		t.Errorf("Closest returned %v", day)
	}
	if title.Closest("missing") != nil {
		t.Error("expected nil for missing ancestor class")
	}
}

func TestNode_Dispatch(t *testing.T) {
	var got []string
	card := El("div", "card").On(EventClick, func(ev Event) {
		got = append(got, "card:"+ev.Target.Tag)
	})
	title := El("h3")
	card.Append(title)

	if !title.Click() {
		t.Error("expected click to be handled by ancestor")
	}
	if len(got) != 1 || got[0] != "card:h3" {
		t.Errorf("unexpected events %v", got)
	}

	var value string
	input := El("input").On(EventInput, func(ev Event) { value = ev.Value })
	input.Input("hike")
	if value != "hike" || input.AttrOr("value", "") != "hike" {
		t.Errorf("input value = %q, attr %q", value, input.AttrOr("value", ""))
	}

	card.Off()
	got = nil
	if title.Click() || len(got) != 0 {
		t.Error("expected no handlers after Off")
	}
}

func TestNode_HTMLEscapesContent(t *testing.T) {
	n := El("div", "card").
		SetData("title", `"quoted" & <b>`).
		SetStyle("--activity-color", "#3B82F6").
		Append(El("h3").AppendText("<script>alert(1)</script>"))

	out := n.HTML()

	if strings.Contains(out, "<script>") {
		t.Errorf("text content must be escaped, got %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Errorf("expected escaped script text, got %s", out)
	}
	if !strings.Contains(out, `data-title="&#34;quoted&#34; &amp; &lt;b&gt;"`) {
		t.Errorf("expected escaped attribute, got %s", out)
	}
	if !strings.Contains(out, `class="card"`) || !strings.Contains(out, `style="--activity-color: #3B82F6"`) {
		t.Errorf("missing class or style, got %s", out)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.org/a?b=c", "https://example.org/a?b=c"},
		{"http://example.org", "http://example.org"},
		{"mailto:team@example.org", "mailto:team@example.org"},
		{"/schedule#day-2", "/schedule#day-2"},
		{"javascript:alert(1)", "#"},
		{"  JavaScript:alert(1)", "#"},
		{"java\tscript:alert(1)", "#"},
		{"java script:alert(1)", "#"},
		{"data:text/html,<b>x</b>", "#"},
		{"vbscript:msgbox", "#"},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.in); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNode_SetAttrSanitizesURLs(t *testing.T) {
	a := El("a").SetAttr("href", "javascript:alert(1)").SetAttr("title", "javascript:ok")
	if got := a.AttrOr("href", ""); got != "#" {
		t.Errorf("href = %q, want #", got)
	}
	if got := a.AttrOr("title", ""); got != "javascript:ok" {
		t.Errorf("title = %q, non-URL attributes must be kept", got)
	}
	if strings.Contains(a.HTML(), "javascript:alert") {
		t.Errorf("unsafe URL serialized: %s", a.HTML())
	}
}

func TestNode_InnerHTML(t *testing.T) {
	n := El("div").Append(El("span").AppendText("a"), Text("b"))
	if got := n.InnerHTML(); got != "<span>a</span>b" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestDocument_GetElementByID(t *testing.T) {
	doc := NewDocumentWithContainer("schedule")

	n, err := doc.GetElementByID("schedule")
	if err != nil || n.Tag != "div" {
		t.Fatalf("expected container, got %v %v", n, err)
	}

	if _, err := doc.GetElementByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := doc.GetElementByID(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty id, got %v", err)
	}
}
