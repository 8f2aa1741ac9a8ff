package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML serializes n and its descendants.
func (n *Node) WriteHTML(w io.Writer) error {
	if err := html.Render(w, n.toHTML()); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// HTML returns the serialized markup of n. Serialization into memory cannot
// fail, so errors are dropped.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	_ = n.WriteHTML(&buf)
	return buf.String()
}

// InnerHTML returns the serialized markup of n's children.
func (n *Node) InnerHTML() string {
	var buf bytes.Buffer
	for _, c := range n.children {
		_ = c.WriteHTML(&buf)
	}
	return buf.String()
}

func (n *Node) toHTML() *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.text}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
		Attr:     n.htmlAttrs(),
	}
	for _, c := range n.children {
		out.AppendChild(c.toHTML())
	}
	return out
}

func (n *Node) htmlAttrs() []html.Attribute {
	attrs := make([]html.Attribute, 0, len(n.attrs)+2)
	if len(n.classes) > 0 {
		attrs = append(attrs, html.Attribute{Key: "class", Val: n.ClassName()})
	}
	for _, p := range n.attrs {
		attrs = append(attrs, html.Attribute{Key: p.key, Val: p.value})
	}
	if len(n.styles) > 0 {
		parts := make([]string, 0, len(n.styles))
		for _, p := range n.styles {
			parts = append(parts, p.key+": "+p.value)
		}
		attrs = append(attrs, html.Attribute{Key: "style", Val: strings.Join(parts, "; ")})
	}
	return attrs
}
