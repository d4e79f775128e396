package dom

// Listener handles a dispatched event.
type Listener func(*Event)

// Event is dispatched to listeners registered on live nodes.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node
	Detail        any

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// AddListener registers l for kind on n, replacing any listener of the same
// kind.
func AddListener(n *Node, kind string, l Listener) {
	if n == nil || l == nil {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string]Listener)
	}
	n.listeners[kind] = l
}

// RemoveListener removes the listener for kind on n.
func RemoveListener(n *Node, kind string) {
	if n == nil {
		return
	}
	delete(n.listeners, kind)
}

// RemoveListeners removes every listener registered on n.
func RemoveListeners(n *Node) {
	if n == nil {
		return
	}
	n.listeners = nil
}

// ListenerFor returns the listener registered for kind on n.
func ListenerFor(n *Node, kind string) Listener {
	if n == nil {
		return nil
	}
	return n.listeners[kind]
}

// ListenerCount returns the number of listeners registered on n.
func ListenerCount(n *Node) int {
	if n == nil {
		return 0
	}
	return len(n.listeners)
}

// Dispatch delivers ev to target and then to each ancestor until a listener
// stops propagation. It reports whether any listener ran.
func Dispatch(target *Node, ev *Event) bool {
	ev.Target = target
	handled := false
	for n := target; n != nil && !ev.stopped; n = n.parent {
		if l := n.listeners[ev.Type]; l != nil {
			ev.CurrentTarget = n
			l(ev)
			handled = true
		}
	}
	return handled
}
