package dom

import (
	"sort"
	"strings"
)

// Attr is a single name/value attribute.
type Attr struct {
	Name  string
	Value string
}

// SetAttribute sets an attribute on an element.
func (n *Node) SetAttribute(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttribute removes an attribute.
func (n *Node) RemoveAttribute(name string) {
	delete(n.attrs, name)
}

// Attribute returns an attribute value.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// Attributes returns all attributes sorted by name.
func (n *Node) Attributes() []Attr {
	if len(n.attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(n.attrs))
	for k, v := range n.attrs {
		out = append(out, Attr{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseDeclarations parses "a:b;c:d" into a map. Entries without a colon are
// skipped.
func ParseDeclarations(s string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// FormatDeclarations is the inverse of ParseDeclarations with sorted keys.
func FormatDeclarations(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(m[k])
	}
	return b.String()
}
