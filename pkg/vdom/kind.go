package vdom

// Kind is the node variant discriminator.
type Kind uint8

const (
	KindTag       Kind = iota // <div>, <button>, etc.
	KindText                  // Text node
	KindComment               // Comment node
	KindFragment              // Grouping without wrapper
	KindComponent             // Component placeholder
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindTag:
		return "Tag"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}
