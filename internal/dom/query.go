package dom

// Walk visits n and its descendants in document order. Returning false from
// fn skips the visited node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first descendant of n (n excluded) matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	for _, c := range n.children {
		if pred(c) {
			return c
		}
		if found := c.Find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of n (n excluded) matching pred.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if pred(d) {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// ByClass returns every descendant element carrying the class.
func (n *Node) ByClass(class string) []*Node {
	return n.FindAll(func(d *Node) bool { return d.HasClass(class) })
}

// FirstByClass returns the first descendant element carrying the class.
func (n *Node) FirstByClass(class string) *Node {
	return n.Find(func(d *Node) bool { return d.HasClass(class) })
}

// ByAttr returns the first descendant whose attribute key equals value.
func (n *Node) ByAttr(key, value string) *Node {
	return n.Find(func(d *Node) bool {
		v, ok := d.Attr(key)
		return ok && v == value
	})
}

// ByID returns n or the descendant with the given id attribute.
func (n *Node) ByID(id string) *Node {
	if v, ok := n.Attr("id"); ok && v == id {
		return n
	}
	return n.ByAttr("id", id)
}

// Closest returns n or its nearest ancestor carrying the class.
func (n *Node) Closest(class string) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.HasClass(class) {
			return cur
		}
	}
	return nil
}
