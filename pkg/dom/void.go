package dom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":    true,
	"base":    true,
	"br":      true,
	"col":     true,
	"command": true,
	"embed":   true,
	"hr":      true,
	"img":     true,
	"input":   true,
	"keygen":  true,
	"link":    true,
	"meta":    true,
	"param":   true,
	"source":  true,
	"track":   true,
	"wbr":     true,
}

// IsVoid reports whether an element with this tag and namespace is written
// without a closing tag.
func IsVoid(tag, ns string) bool {
	return ns == NamespaceHTML && voidElements[tag]
}
