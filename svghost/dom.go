package svghost

import (
	"github.com/benoitkugler/svgmount/svgnode"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// namespace of the foreign elements, as used by the html package
const svgSpace = "svg"

// toDOM converts a node tree to DOM nodes in the SVG namespace.
func toDOM(n svgnode.Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{
		Type:      html.ElementNode,
		Data:      n.Tag,
		DataAtom:  atom.Lookup([]byte(n.Tag)),
		Namespace: svgSpace,
	}
	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	for _, c := range n.Children {
		out.AppendChild(toDOM(c))
	}
	return out
}

// fromDOM is the inverse of toDOM. Comments are skipped; text,
// including whitespace, is kept as is.
func fromDOM(n *html.Node) (svgnode.Node, bool) {
	switch n.Type {
	case html.TextNode:
		return svgnode.Text(n.Data), true
	case html.ElementNode:
		out := svgnode.Node{Tag: n.Data}
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			out.Attrs = append(out.Attrs, svgnode.Attr{Name: name, Value: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child, ok := fromDOM(c); ok {
				out.Children = append(out.Children, child)
			}
		}
		return out, true
	default:
		return svgnode.Node{}, false
	}
}
