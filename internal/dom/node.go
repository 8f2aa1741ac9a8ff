// Package dom provides the in-memory view tree the widget renders into.
//
// Nodes are built through chained methods and never from markup strings, so
// user content only reaches output as text or attribute values. HTML output
// goes through golang.org/x/net/html, which is the single place content is
// escaped.
package dom

import (
	"net/url"
	"strings"
)

// EventType names an interaction dispatched to a node.
type EventType string

const (
	EventClick EventType = "click"
	EventInput EventType = "input"
)

// Event is delivered to handlers. Value carries the input text for
// EventInput.
type Event struct {
	Type   EventType
	Target *Node
	Value  string
}

// Handler reacts to an event on a node.
type Handler func(Event)

type pair struct {
	key, value string
}

var urlAttrs = map[string]bool{"href": true, "src": true, "action": true}

// SafeURL returns raw when it is relative or uses http, https or mailto, and
// "#" otherwise.
func SafeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
	default:
		return "#"
	}
	// A colon before any slash is a scheme the parser did not recognize.
	if u.Scheme == "" {
		if i := strings.IndexAny(raw, ":/?#"); i >= 0 && raw[i] == ':' {
			return "#"
		}
	}
	return raw
}

// Node is an element or, when Tag is empty, a text node.
type Node struct {
	Tag string

	text     string
	classes  []string
	attrs    []pair
	styles   []pair
	children []*Node
	parent   *Node
	handlers map[EventType][]Handler
}

// El creates an element with the given classes.
func El(tag string, classes ...string) *Node {
	n := &Node{Tag: tag}
	return n.AddClass(classes...)
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{text: s}
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// AddClass adds classes that are not present yet. Empty names are ignored.
func (n *Node) AddClass(names ...string) *Node {
	for _, name := range names {
		if name == "" || n.HasClass(name) {
			continue
		}
		n.classes = append(n.classes, name)
	}
	return n
}

// RemoveClass removes the named class if present.
func (n *Node) RemoveClass(name string) *Node {
	for i, c := range n.classes {
		if c == name {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			break
		}
	}
	return n
}

// ToggleClass adds name when on is true and removes it otherwise.
func (n *Node) ToggleClass(name string, on bool) *Node {
	if on {
		return n.AddClass(name)
	}
	return n.RemoveClass(name)
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.classes {
		if c == name {
			return true
		}
	}
	return false
}

// Classes returns a copy of the node's classes in insertion order.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// ClassName returns the class attribute value.
func (n *Node) ClassName() string {
	return strings.Join(n.classes, " ")
}

// SetClassName replaces every class with the space separated list.
func (n *Node) SetClassName(s string) *Node {
	n.classes = nil
	return n.AddClass(strings.Fields(s)...)
}

// SetAttr sets an attribute, keeping its original position when it exists.
// The "class" attribute is routed to the class list. URL attributes pass
// through SafeURL.
func (n *Node) SetAttr(key, value string) *Node {
	if key == "class" {
		return n.SetClassName(value)
	}
	if urlAttrs[key] {
		value = SafeURL(value)
	}
	n.attrs = setPair(n.attrs, key, value)
	return n
}

// Attr returns the value of an attribute.
func (n *Node) Attr(key string) (string, bool) {
	return getPair(n.attrs, key)
}

// AttrOr returns the value of an attribute or def when it is unset.
func (n *Node) AttrOr(key, def string) string {
	if v, ok := n.Attr(key); ok {
		return v
	}
	return def
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(key string) *Node {
	n.attrs = removePair(n.attrs, key)
	return n
}

// SetData sets a data-* attribute.
func (n *Node) SetData(key, value string) *Node {
	return n.SetAttr("data-"+key, value)
}

// Data returns a data-* attribute value, or "" when unset.
func (n *Node) Data(key string) string {
	return n.AttrOr("data-"+key, "")
}

// SetStyle sets an inline style property.
func (n *Node) SetStyle(prop, value string) *Node {
	n.styles = setPair(n.styles, prop, value)
	return n
}

// Style returns an inline style property value.
func (n *Node) Style(prop string) string {
	v, _ := getPair(n.styles, prop)
	return v
}

// Append adds children at the end, detaching them from any previous parent.
// Nil children are skipped so optional fragments can be passed inline.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			c.parent.removeChild(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// AppendText adds a text child.
func (n *Node) AppendText(s string) *Node {
	return n.Append(Text(s))
}

// SetText replaces all children with a single text node.
func (n *Node) SetText(s string) *Node {
	n.Clear()
	return n.AppendText(s)
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node, or nil for a detached root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Clear detaches every child.
func (n *Node) Clear() *Node {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	return n
}

// ReplaceWith swaps n for repl in n's parent and returns repl.
func (n *Node) ReplaceWith(repl *Node) *Node {
	p := n.parent
	if p == nil || repl == nil {
		return repl
	}
	if repl.parent != nil {
		repl.parent.removeChild(repl)
	}
	for i, c := range p.children {
		if c == n {
			p.children[i] = repl
			repl.parent = p
			n.parent = nil
			break
		}
	}
	return repl
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.removeChild(n)
	}
}

func (n *Node) removeChild(c *Node) {
	for i, child := range n.children {
		if child == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.text
	}
	var b strings.Builder
	n.Walk(func(d *Node) bool {
		if d.IsText() {
			b.WriteString(d.text)
		}
		return true
	})
	return b.String()
}

func setPair(pairs []pair, key, value string) []pair {
	for i := range pairs {
		if pairs[i].key == key {
			pairs[i].value = value
			return pairs
		}
	}
	return append(pairs, pair{key, value})
}

func getPair(pairs []pair, key string) (string, bool) {
	for _, p := range pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

func removePair(pairs []pair, key string) []pair {
	for i, p := range pairs {
		if p.key == key {
			return append(pairs[:i], pairs[i+1:]...)
		}
	}
	return pairs
}
