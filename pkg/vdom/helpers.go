package vdom

import "fmt"

// Text creates a sealed text node.
func Text(content string) *Node {
	return NewText(content).Seal()
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a sealed comment node.
func Comment(content string) *Node {
	return NewComment(content).Seal()
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node {
	return NewFragment().Children(children...).Seal()
}

// Comp creates a component placeholder.
func Comp(c Component) *Node {
	return NewComponent(c).Seal()
}

// KeyedComp creates a keyed component placeholder.
func KeyedComp(key string, c Component) *Node {
	return NewComponent(c).Key(key).Seal()
}

// Range maps a slice to nodes, skipping nil results.
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	result := make([]*Node, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *Node) []*Node {
	if n <= 0 {
		return nil
	}
	result := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Either returns first if it's not nil, otherwise second.
func Either(first, second *Node) *Node {
	if first != nil {
		return first
	}
	return second
}
