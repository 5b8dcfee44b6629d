// Implements the rendering host: an HTML page in which
// node trees are mounted, at elements identified by their id.
package svghost

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/svgmount/svgnode"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// ErrMountNotFound is returned when the page has no element
// with the requested id.
var ErrMountNotFound = errors.New("mount point not found")

//go:embed page.html
var defaultPage string

// Host holds a parsed page.
// It is not safe for concurrent use.
type Host struct {
	doc    *html.Node
	logger *zap.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger used to trace mount operations.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Parse reads an HTML page. `contentType` is used to detect
// the encoding of the page (it may be empty, in which case the
// content is sniffed).
func Parse(r io.Reader, contentType string, opts ...Option) (*Host, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	doc, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	h := &Host{doc: doc, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Default returns a host over a minimal page exposing
// a single empty <div id="container">.
func Default(opts ...Option) *Host {
	h, err := Parse(strings.NewReader(defaultPage), "text/html; charset=utf-8", opts...)
	if err != nil { // the embedded page is valid
		panic(err)
	}
	return h
}

// Render renders `c` and mounts the resulting tree at the element `mountID`,
// replacing its previous content.
func (h *Host) Render(c svgnode.Component, mountID string) error {
	mount := findByID(h.doc, mountID)
	if mount == nil {
		return fmt.Errorf("%w: %q", ErrMountNotFound, mountID)
	}
	tree := c.Render()

	for child := mount.FirstChild; child != nil; child = mount.FirstChild {
		mount.RemoveChild(child)
	}
	mount.AppendChild(toDOM(tree))

	h.logger.Debug("tree mounted",
		zap.String("mount", mountID),
		zap.String("root", tree.Tag),
		zap.Int("children", len(tree.Children)))
	return nil
}

// Mounted returns the content currently attached at `mountID`.
func (h *Host) Mounted(mountID string) ([]svgnode.Node, error) {
	mount := findByID(h.doc, mountID)
	if mount == nil {
		return nil, fmt.Errorf("%w: %q", ErrMountNotFound, mountID)
	}
	var out []svgnode.Node
	for child := mount.FirstChild; child != nil; child = child.NextSibling {
		if n, ok := fromDOM(child); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// WriteTo serializes the page.
func (h *Host) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := html.Render(cw, h.doc)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// findByID performs a depth first search for the element with the given id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
