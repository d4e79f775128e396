package vdom

// AttrOp is the kind of an attribute change.
type AttrOp uint8

const (
	// AttrSet replaces the whole value (or adds it).
	AttrSet AttrOp = iota
	// AttrPatch merges a map delta into the current map value; keys whose
	// delta value is nil are removed.
	AttrPatch
	// AttrRemove removes the attribute.
	AttrRemove
)

// String returns the name of the op.
func (o AttrOp) String() string {
	switch o {
	case AttrSet:
		return "Set"
	case AttrPatch:
		return "Patch"
	case AttrRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// AttrChange is one entry of an attribute delta.
type AttrChange struct {
	Op    AttrOp
	Name  string
	Value any
	// Listener marks names routed to the event subsystem. For a listener
	// AttrSet, Replaces tells whether a previous listener was bound.
	Listener bool
	Replaces bool
}

// DiffAttrs computes the changes that turn prev into next, in attribute name
// order. Pointer-equal sets produce no changes.
//
// Scalars compare with LooseEqual. Arrays are replaced whole when any
// element differs. Maps on both sides produce an AttrPatch with the changed
// keys. A value changing shape is replaced with AttrSet. Listeners present
// on both sides are always reported as a rebinding AttrSet.
func DiffAttrs(prev, next *Attrs) []AttrChange {
	if prev == next {
		return nil
	}
	var changes []AttrChange
	pn, nn := prev.Names(), next.Names()
	i, j := 0, 0
	for i < len(pn) || j < len(nn) {
		var name string
		switch {
		case j >= len(nn) || (i < len(pn) && pn[i] < nn[j]):
			name = pn[i]
			i++
		case i >= len(pn) || nn[j] < pn[i]:
			name = nn[j]
			j++
		default:
			name = nn[j]
			i++
			j++
		}
		if c, ok := diffAttr(name, prev.Value(name), next.Value(name)); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

func diffAttr(name string, a, b any) (AttrChange, bool) {
	if IsEventAttr(name) {
		switch {
		case b != nil:
			return AttrChange{Op: AttrSet, Name: name, Value: b, Listener: true, Replaces: a != nil}, true
		case a != nil:
			return AttrChange{Op: AttrRemove, Name: name, Listener: true}, true
		}
		return AttrChange{}, false
	}

	switch {
	case a == nil && b == nil:
		return AttrChange{}, false
	case b == nil:
		return AttrChange{Op: AttrRemove, Name: name}, true
	case a == nil:
		return AttrChange{Op: AttrSet, Name: name, Value: b}, true
	}

	aArr, aIsArr := a.([]any)
	bArr, bIsArr := b.([]any)
	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	switch {
	case aIsArr && bIsArr:
		if arraysEqual(aArr, bArr) {
			return AttrChange{}, false
		}
	case aIsMap && bIsMap:
		delta := mapDelta(aMap, bMap)
		if len(delta) == 0 {
			return AttrChange{}, false
		}
		return AttrChange{Op: AttrPatch, Name: name, Value: delta}, true
	case aIsArr || bIsArr || aIsMap || bIsMap:
		// shape change
	default:
		if LooseEqual(a, b) {
			return AttrChange{}, false
		}
	}
	return AttrChange{Op: AttrSet, Name: name, Value: b}, true
}

func arraysEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !LooseEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// mapDelta returns the keys of next whose value changed from prev, plus the
// keys set in prev and missing from next mapped to nil.
func mapDelta(prev, next map[string]any) map[string]any {
	var delta map[string]any
	add := func(k string, v any) {
		if delta == nil {
			delta = make(map[string]any)
		}
		delta[k] = v
	}
	for k, v := range next {
		if !LooseEqual(prev[k], v) {
			add(k, v)
		}
	}
	for k, v := range prev {
		if _, ok := next[k]; !ok && v != nil {
			add(k, nil)
		}
	}
	return delta
}
