// Package domattrs is the attribute handler table: it applies attribute
// values to live nodes and formats them for markup.
//
// Values arrive in the normalized shapes produced by vdom: nil, string,
// bool, numeric kinds, []any and map[string]any. Formatting rules:
//
//   - true is written as an empty attribute, false and nil omit it;
//   - numbers use their shortest decimal form;
//   - arrays are joined with spaces, skipping nil and false elements;
//   - maps are written as "key:value;key:value" declarations in key order.
//
// The "value" attribute on select and textarea is special: it selects the
// matching option descendants, or becomes the text content, and is never
// written as an attribute.
package domattrs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vango-dev/vtree/pkg/dom"
)

// Handler applies one attribute to live nodes and formats it for markup.
type Handler interface {
	// Set replaces the whole value.
	Set(n *dom.Node, name string, v any) error
	// Patch merges a map delta; nil delta values remove keys.
	Patch(n *dom.Node, name string, delta map[string]any) error
	// Remove removes the attribute.
	Remove(n *dom.Node, name string) error
	// String returns the attribute text for an element with the given tag,
	// and false when the attribute is not written.
	String(tag, name string, v any) (string, bool)
}

var (
	mu       sync.RWMutex
	handlers = map[string]Handler{
		"value": valueHandler{},
	}
	fallback Handler = defaultHandler{}
)

// Register installs h for the attribute name, replacing any previous one.
func Register(name string, h Handler) {
	mu.Lock()
	handlers[name] = h
	mu.Unlock()
}

// Lookup returns the handler for name.
func Lookup(name string) Handler {
	mu.RLock()
	h, ok := handlers[name]
	mu.RUnlock()
	if ok {
		return h
	}
	return fallback
}

// Set applies v as the whole value of name on n.
func Set(n *dom.Node, name string, v any) error {
	if err := Lookup(name).Set(n, name, v); err != nil {
		return fmt.Errorf("set %s on <%s>: %w", name, n.Tag, err)
	}
	return nil
}

// Patch merges delta into the map value of name on n.
func Patch(n *dom.Node, name string, delta map[string]any) error {
	if err := Lookup(name).Patch(n, name, delta); err != nil {
		return fmt.Errorf("patch %s on <%s>: %w", name, n.Tag, err)
	}
	return nil
}

// Remove removes name from n.
func Remove(n *dom.Node, name string) error {
	if err := Lookup(name).Remove(n, name); err != nil {
		return fmt.Errorf("remove %s on <%s>: %w", name, n.Tag, err)
	}
	return nil
}

// String formats name for markup on an element with the given tag.
func String(tag, name string, v any) (string, bool) {
	return Lookup(name).String(tag, name, v)
}

type defaultHandler struct{}

func (defaultHandler) Set(n *dom.Node, name string, v any) error {
	s, ok, err := Format(v)
	if err != nil {
		return err
	}
	if !ok {
		n.RemoveAttribute(name)
		return nil
	}
	n.SetAttribute(name, s)
	return nil
}

func (defaultHandler) Patch(n *dom.Node, name string, delta map[string]any) error {
	cur, _ := n.Attribute(name)
	decls := dom.ParseDeclarations(cur)
	for k, v := range delta {
		s, ok, err := Format(v)
		if err != nil {
			return err
		}
		if !ok {
			delete(decls, k)
			continue
		}
		decls[k] = s
	}
	if len(decls) == 0 {
		n.RemoveAttribute(name)
		return nil
	}
	n.SetAttribute(name, dom.FormatDeclarations(decls))
	return nil
}

func (defaultHandler) Remove(n *dom.Node, name string) error {
	n.RemoveAttribute(name)
	return nil
}

func (defaultHandler) String(_, _ string, v any) (string, bool) {
	s, ok, err := Format(v)
	if err != nil {
		return fmt.Sprint(v), true
	}
	return s, ok
}

// Format converts a normalized value to attribute text. The bool result is
// false when the attribute should be absent.
func Format(v any) (string, bool, error) {
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case bool:
		return "", x, nil
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			s, ok, err := formatScalar(e)
			if err != nil {
				return "", false, err
			}
			if ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " "), true, nil
	case map[string]any:
		decls := make(map[string]string, len(x))
		for k, e := range x {
			s, ok, err := formatScalar(e)
			if err != nil {
				return "", false, err
			}
			if ok {
				decls[k] = s
			}
		}
		if len(decls) == 0 {
			return "", false, nil
		}
		return dom.FormatDeclarations(decls), true, nil
	case dom.Listener:
		return "", false, fmt.Errorf("listener value is not an attribute")
	}
	return formatScalar(v)
}

func formatScalar(v any) (string, bool, error) {
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	case bool:
		if x {
			return "true", true, nil
		}
		return "", false, nil
	case float32:
		return formatFloat(float64(x)), true, nil
	case float64:
		return formatFloat(x), true, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), true, nil
	case dom.Listener:
		return "", false, fmt.Errorf("listener value is not an attribute")
	}
	return fmt.Sprint(v), true, nil
}
