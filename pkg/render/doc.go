// Package render implements the three backends that turn a sealed vdom tree
// into something real:
//
//   - BuildLive creates live dom nodes directly;
//   - RenderToString serializes to markup;
//   - Adopt binds a tree to live nodes that already exist, typically parsed
//     from markup produced by RenderToString.
//
// For the same tree the backends agree: dom.Serialize of the BuildLive
// result equals RenderToString, and adopting parsed markup yields the same
// bindings a fresh build would. Raw HTML children are the exception, since
// they are serialized verbatim but parsed when built live.
//
// # Basic Usage
//
//	html, err := render.RenderToString(node)
//
//	live, err := render.BuildLive(node, dom.NamespaceHTML)
//
//	b := render.Builder{Strategy: render.StrategyMarkup}
//	live, err := b.Build(node, dom.NamespaceHTML)
//
// # Markup Rules
//
// Void HTML elements self-close (<br/>). Fragments are bracketed with
// <!--[--> and <!--]--> comments. An element whose namespace differs from
// its parent's carries an xmlns attribute. A select's value marks the
// matching option descendants selected, and a textarea's value becomes its
// escaped content.
//
// # Security
//
// Text and attribute values are escaped. Raw HTML children are written as
// is and should only carry trusted content.
package render
