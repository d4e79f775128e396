package domattrs

import (
	"math"
	"strconv"

	"github.com/vango-dev/vtree/pkg/dom"
)

// valueHandler implements the form-control rules for "value".
type valueHandler struct{}

func (valueHandler) Set(n *dom.Node, name string, v any) error {
	switch formControl(n.Tag, n.Namespace) {
	case "select":
		ApplySelection(n, Selection(v))
		return nil
	case "textarea":
		s, _, err := Format(v)
		if err != nil {
			return err
		}
		n.SetTextContent(s)
		return nil
	}
	return defaultHandler{}.Set(n, name, v)
}

func (valueHandler) Patch(n *dom.Node, name string, delta map[string]any) error {
	return defaultHandler{}.Patch(n, name, delta)
}

func (valueHandler) Remove(n *dom.Node, name string) error {
	switch formControl(n.Tag, n.Namespace) {
	case "select":
		ApplySelection(n, nil)
		return nil
	case "textarea":
		n.SetTextContent("")
		return nil
	}
	return defaultHandler{}.Remove(n, name)
}

func (valueHandler) String(tag, name string, v any) (string, bool) {
	if tag == "select" || tag == "textarea" {
		return "", false
	}
	return defaultHandler{}.String(tag, name, v)
}

func formControl(tag, ns string) string {
	if ns != dom.NamespaceHTML {
		return ""
	}
	return tag
}

// Selection converts a select value to the set of option values it selects.
// An array selects each of its elements.
func Selection(v any) map[string]bool {
	var vals []any
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		vals = x
	default:
		vals = []any{x}
	}
	set := make(map[string]bool, len(vals))
	for _, e := range vals {
		if s, ok, err := formatScalar(e); err == nil && ok {
			set[s] = true
		}
	}
	return set
}

// ApplySelection marks the option descendants of sel whose value is in set
// as selected and clears the rest.
func ApplySelection(sel *dom.Node, set map[string]bool) {
	for i := 0; i < sel.ChildCount(); i++ {
		c := sel.Child(i)
		if c.Type != dom.ElementNode {
			continue
		}
		if c.Tag == "option" {
			if set[OptionValue(c)] {
				c.SetAttribute("selected", "")
			} else {
				c.RemoveAttribute("selected")
			}
			continue
		}
		ApplySelection(c, set)
	}
}

// OptionValue returns the value an option submits: its value attribute, or
// its text when it has none.
func OptionValue(opt *dom.Node) string {
	if v, ok := opt.Attribute("value"); ok {
		return v
	}
	return opt.TextContent()
}

func formatFloat(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
