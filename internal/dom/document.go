package dom

import "errors"

// ErrNotFound is returned when an element id does not resolve.
var ErrNotFound = errors.New("element not found")

// Document is the host surface a widget mounts into. Elements are looked up
// by id under its body.
type Document struct {
	body *Node
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{body: El("body")}
}

// NewDocumentWithContainer creates a document whose body holds one empty
// div with the given id.
func NewDocumentWithContainer(id string) *Document {
	d := NewDocument()
	d.body.Append(El("div").SetAttr("id", id))
	return d
}

// Body returns the document body.
func (d *Document) Body() *Node {
	return d.body
}

// GetElementByID finds an element by id under the body.
func (d *Document) GetElementByID(id string) (*Node, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	if n := d.body.ByAttr("id", id); n != nil {
		return n, nil
	}
	return nil, ErrNotFound
}
