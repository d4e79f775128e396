package vdom

import (
	"fmt"
	"strings"
)

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Classes sets the class attribute as an array value.
func Classes(classes ...string) Attr { return attr("class", classes) }

// Style sets the style attribute from a declaration map. Changing one
// declaration patches only that declaration in the live node.
func Style(decls map[string]any) Attr { return attr("style", decls) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key string, value any) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Links and media

func Href(url string) Attr { return attr("href", url) }
func Src(url string) Attr  { return attr("src", url) }
func Alt(text string) Attr { return attr("alt", text) }

// Form attributes

// Value sets the value of an input. On select it chooses the matching
// option, an array value selects several; on textarea it becomes the text.
func Value(v any) Attr { return attr("value", v) }

func Name(name string) Attr             { return attr("name", name) }
func Type(t string) Attr                { return attr("type", t) }
func Placeholder(text string) Attr      { return attr("placeholder", text) }
func Disabled(disabled bool) Attr       { return attr("disabled", disabled) }
func Checked(checked bool) Attr         { return attr("checked", checked) }
func Selected(selected bool) Attr       { return attr("selected", selected) }
func Multiple(multiple bool) Attr       { return attr("multiple", multiple) }
func Required(required bool) Attr       { return attr("required", required) }
func ReadOnly(readOnly bool) Attr       { return attr("readonly", readOnly) }
func TabIndex(index int) Attr           { return attr("tabindex", index) }
func Hidden(hidden bool) Attr           { return attr("hidden", hidden) }
func For(id string) Attr                { return attr("for", id) }
func Attribute(name string, v any) Attr { return attr(name, v) }

// SVG attributes

func ViewBox(box string) Attr { return attr("viewBox", box) }
func D(path string) Attr      { return attr("d", path) }
func Fill(color string) Attr  { return attr("fill", color) }

// Reconciliation

// Key sets the identity hint used to match siblings across passes.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr { return attr("key", fmt.Sprintf("%v", key)) }

// WithRef attaches a reference capability.
func WithRef(r *Ref) Attr { return attr("ref", r) }

// Xmlns declares the namespace of an element.
func Xmlns(ns string) Attr { return attr("xmlns", ns) }

// If returns a if cond is true, otherwise the empty Attr, which factories
// ignore.
func If[T any](cond bool, v T) T {
	if cond {
		return v
	}
	var zero T
	return zero
}
