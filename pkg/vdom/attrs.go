package vdom

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

// Attrs is a sealed attribute set. A nil *Attrs means "no attributes".
// Names are kept sorted so every traversal is deterministic.
type Attrs struct {
	values map[string]any
	names  []string
}

// NewAttrs seals m into an attribute set. Values are normalized: typed
// slices become []any, typed maps become map[string]any and listener funcs
// become dom.Listener. An empty m yields nil.
//
// In dev mode an on-prefixed name missing from the event table, or a value
// that cannot be rendered, panics with a coded *errors.Error.
func NewAttrs(m map[string]any) *Attrs {
	if len(m) == 0 {
		return nil
	}
	a := &Attrs{values: make(map[string]any, len(m)), names: make([]string, 0, len(m))}
	for name, v := range m {
		nv, err := normalizeAttr(name, v)
		if err != nil {
			if DevMode() {
				panic(err)
			}
			Logger().Debug("vdom: keeping unrecognized attribute value", "attr", name, "error", err)
		}
		a.values[name] = nv
		a.names = append(a.names, name)
	}
	sort.Strings(a.names)
	return a
}

// Len returns the number of attributes, including nil-valued ones.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// Get returns the value for name.
func (a *Attrs) Get(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[name]
	return v, ok
}

// Value returns the value for name, or nil.
func (a *Attrs) Value(name string) any {
	v, _ := a.Get(name)
	return v
}

// Has reports whether name carries a non-nil value.
func (a *Attrs) Has(name string) bool {
	return a.Value(name) != nil
}

// Names returns the attribute names in sorted order. The slice must not be
// modified.
func (a *Attrs) Names() []string {
	if a == nil {
		return nil
	}
	return a.names
}

// Range calls fn for each attribute in name order until fn returns false.
func (a *Attrs) Range(fn func(name string, v any) bool) {
	if a == nil {
		return
	}
	for _, name := range a.names {
		if !fn(name, a.values[name]) {
			return
		}
	}
}

// Map returns a copy of the attributes as a map.
func (a *Attrs) Map() map[string]any {
	if a == nil {
		return nil
	}
	m := make(map[string]any, len(a.values))
	for k, v := range a.values {
		m[k] = v
	}
	return m
}

func normalizeAttr(name string, v any) (any, error) {
	if IsEventAttr(name) {
		if v == nil {
			return nil, nil
		}
		if l := toListener(v); l != nil {
			return l, nil
		}
		return v, errors.New(errors.CodeInvalidAttrValue).
			WithDetailf("listener attribute %q needs a func, got %T", name, v)
	}
	if hasEventPrefix(name) {
		return v, errors.New(errors.CodeUnknownListener).WithDetailf("attribute %q", name)
	}
	nv, ok := normalizeValue(v)
	if !ok {
		return v, errors.New(errors.CodeInvalidAttrValue).WithDetailf("attribute %q has unsupported type %T", name, v)
	}
	return nv, nil
}

func toListener(v any) dom.Listener {
	switch f := v.(type) {
	case dom.Listener:
		return f
	case func(*dom.Event):
		return dom.Listener(f)
	case func():
		return func(*dom.Event) { f() }
	}
	return nil
}

// normalizeValue converts v to one of the attribute value shapes: nil,
// string, bool, a numeric kind, []any or map[string]any.
func normalizeValue(v any) (any, bool) {
	switch x := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, true
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			ne, ok := normalizeValue(e)
			if !ok {
				return v, false
			}
			out[i] = ne
		}
		return out, true
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ne, ok := normalizeValue(e)
			if !ok {
				return v, false
			}
			out[k] = ne
		}
		return out, true
	case fmt.Stringer:
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			ne, ok := normalizeValue(rv.Index(i).Interface())
			if !ok {
				return v, false
			}
			out[i] = ne
		}
		return out, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ne, ok := normalizeValue(iter.Value().Interface())
			if !ok {
				return v, false
			}
			out[iter.Key().String()] = ne
		}
		return out, true
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, true
		}
		return normalizeValue(rv.Elem().Interface())
	}
	return v, false
}
