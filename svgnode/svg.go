package svgnode

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace is the SVG XML namespace, added on the root
// of standalone documents.
const Namespace = "http://www.w3.org/2000/svg"

var errNoRoot = errors.New("invalid svg xml: no root element")

// WriteSVG writes `root` as a standalone SVG document.
func WriteSVG(w io.Writer, root Node) error {
	if root.IsText() {
		return errors.New("invalid svg root: text node")
	}
	if _, ok := root.Attr("xmlns"); !ok && root.Tag == "svg" {
		root.Attrs = append([]Attr{String("xmlns", Namespace)}, root.Attrs...)
	}
	enc := xml.NewEncoder(w)
	if err := encodeNode(enc, root); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeNode(enc *xml.Encoder, n Node) error {
	if n.IsText() {
		return enc.EncodeToken(xml.CharData(n.Text))
	}
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// ParseSVG reads SVG markup into a node tree.
// Comments, processing instructions and blank text are dropped.
func ParseSVG(stream io.Reader) (Node, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		stack    []Node
		root     Node
		seen     bool
		prefixes = map[string]string{xlinkSpace: "xlink", xmlSpace: "xml"}
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Node{}, fmt.Errorf("parsing svg: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			n := Node{Tag: se.Name.Local}
			for _, attr := range se.Attr {
				if attr.Name.Space == "xmlns" {
					prefixes[attr.Value] = attr.Name.Local
				}
			}
			for _, attr := range se.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: attrName(attr.Name, prefixes), Value: attr.Value})
			}
			stack = append(stack, n)
		case xml.EndElement:
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root, seen = n, true
			} else {
				parent := &stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
		case xml.CharData:
			if len(stack) == 0 || strings.TrimSpace(string(se)) == "" {
				continue
			}
			parent := &stack[len(stack)-1]
			parent.Children = append(parent.Children, Text(string(se)))
		}
	}
	if !seen {
		return Node{}, errNoRoot
	}
	return root, nil
}

const (
	xlinkSpace = "http://www.w3.org/1999/xlink"
	xmlSpace   = "http://www.w3.org/XML/1998/namespace"
)

// attrName restores the prefix of a qualified attribute name,
// which the decoder resolves to the namespace URL.
// Undeclared prefixes are kept by the decoder in `name.Space`.
func attrName(name xml.Name, prefixes map[string]string) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	}
	if prefix, ok := prefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	return name.Space + ":" + name.Local
}
