// Provides a declarative description of SVG content.
// A tree of Node values is built by plain constructor functions,
// and then consumed by a rendering host (see svgmount/svghost)
// or by painting drivers (see svgmount/svgshape).
package svgnode

import (
	"strconv"
)

// Attr is one attribute of an element. Attributes keep
// the order in which they were given.
type Attr struct {
	Name, Value string
}

// Float returns a numeric attribute, formatted with the shortest
// representation which parses back to exactly `v`.
func Float(name string, v float64) Attr {
	return Attr{Name: name, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

// String returns a textual attribute.
func String(name, v string) Attr {
	return Attr{Name: name, Value: v}
}

// Node describes an element (or a text run when Tag is empty).
// Nodes are values: building a tree never mutates its parts.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []Node
	Text     string // only used when Tag is empty
}

// Component is anything which can be rendered as a node tree.
type Component interface {
	Render() Node
}

var _ Component = Node{} // a Node renders to itself

// Render implements Component.
func (n Node) Render() Node { return n }

// Element returns a new element node. `attrs` and `children` are copied,
// so that the caller may reuse its slices.
func Element(tag string, attrs []Attr, children ...Node) Node {
	out := Node{Tag: tag}
	if len(attrs) != 0 {
		out.Attrs = append([]Attr(nil), attrs...)
	}
	if len(children) != 0 {
		out.Children = append([]Node(nil), children...)
	}
	return out
}

// Text returns a text node.
func Text(s string) Node { return Node{Text: s} }

// IsText returns true for text nodes.
func (n Node) IsText() bool { return n.Tag == "" }

// Attr returns the value of the attribute `name`, and
// false if it is not set.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Float parses the attribute `name` as a number.
// It returns false if the attribute is missing or not numeric.
func (n Node) Float(name string) (float64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Walk calls `fn` on `n` and its descendants, in document order.
// Returning false from `fn` skips the children of the current node.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
