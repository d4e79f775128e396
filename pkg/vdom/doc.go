// Package vdom provides the declarative tree that vtree reconciles.
//
// A tree is built in two phases that are distinct types. A *Builder is the
// Building phase: tag and variant are fixed at creation and key, ref,
// namespace, attributes and children are assigned once each. Seal turns it
// into a *Node, the Sealed phase, which has no mutators for attributes or
// children. Attribute sets and child lists sit behind pointers so the
// reconciler can skip work when a previous and next node share them.
//
// # Variants
//
// Node.Kind is one of KindTag, KindText, KindComment, KindFragment and
// KindComponent. Tag children are absent (nil *Children), text, or a node
// sequence, never a mix.
//
// # Element API
//
// Trees are usually written with variadic factories:
//
//	Div(Class("card"), Key("c1"),
//	    H1(InnerText("Title")),
//	    Ul(Range(items, func(it Item, _ int) *Node {
//	        return Li(Key(it.ID), InnerText(it.Name))
//	    })),
//	    Button(OnClick(handler), InnerText("Save")),
//	)
//
// # Attribute diffing
//
// DiffAttrs compares two sealed attribute sets and returns the changes in
// name order. Listener attributes (names in the event table) are reported
// separately from ordinary values. Scalars compare with LooseEqual.
//
// # Dev mode
//
// SetDevMode(true) enables structural validation: unknown on* attribute
// names, bad attribute values and builder reuse after Seal panic with a
// coded *errors.Error, and repeated assignments log a warning.
package vdom
