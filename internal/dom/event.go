package dom

// On registers a handler for the event type.
func (n *Node) On(t EventType, h Handler) *Node {
	if h == nil {
		return n
	}
	if n.handlers == nil {
		n.handlers = make(map[EventType][]Handler)
	}
	n.handlers[t] = append(n.handlers[t], h)
	return n
}

// HasHandler reports whether the node listens for the event type.
func (n *Node) HasHandler(t EventType) bool {
	return len(n.handlers[t]) > 0
}

// Off drops every handler registered on n and its descendants.
func (n *Node) Off() {
	n.Walk(func(d *Node) bool {
		d.handlers = nil
		return true
	})
}

// Dispatch delivers ev to the target and then to each ancestor that listens
// for the same type. It reports whether any handler ran.
func (n *Node) Dispatch(ev Event) bool {
	if ev.Target == nil {
		ev.Target = n
	}
	handled := false
	for cur := n; cur != nil; cur = cur.parent {
		for _, h := range cur.handlers[ev.Type] {
			h(ev)
			handled = true
		}
	}
	return handled
}

// Click dispatches a click on n.
func (n *Node) Click() bool {
	return n.Dispatch(Event{Type: EventClick, Target: n})
}

// Input stores value as the node's value attribute and dispatches an input
// event carrying it.
func (n *Node) Input(value string) bool {
	n.SetAttr("value", value)
	return n.Dispatch(Event{Type: EventInput, Target: n, Value: value})
}
