// Compiles node trees into an abstract representation
// made of styled paths, which can then be consumed by
// painting drivers.
// See for example svgmount/svgraster or svgmount/svgpdf .
package svgshape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgmount/svgnode"
	"go.uber.org/zap"
)

// ErrorMode determines how elements and style values which can't be
// painted are handled.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unsupported elements.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs unsupported elements.
	WarnErrorMode
	// StrictErrorMode fails on unsupported elements.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "ignore":
		return IgnoreErrorMode, nil
	case "warn", "":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("unknown error mode %q", s)
}

var (
	// ErrNotSVG is returned when compiling a tree whose root is not an svg element.
	ErrNotSVG = errors.New("root element is not svg")
	// ErrUnsupported is returned in StrictErrorMode for elements or
	// style values (such as gradient paints) which can't be painted.
	ErrUnsupported = errors.New("unsupported element")
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// StyledPath binds a style to a path
type StyledPath struct {
	Path  Path
	Style PathStyle
}

// Icon holds the painting instructions of a node tree.
// See the `Draw` methods to use it.
type Icon struct {
	ViewBox       Bounds
	Width, Height float64 // top level width and height attributes
	Paths         []StyledPath
	Transform     Matrix2D
}

// Options configures Compile.
type Options struct {
	Mode   ErrorMode
	Logger *zap.Logger // used in WarnErrorMode, optional
}

// elements carrying no painting, skipped in every mode
var metadataTags = map[string]bool{
	"title": true, "desc": true, "metadata": true,
}

type compiler struct {
	Options
	icon *Icon
}

// Compile walks the tree rooted at `root`, which must be an svg element,
// and returns its painting instructions, in document order.
// The icon transform maps the view box onto the width and height of the root.
func Compile(root svgnode.Node, opts Options) (*Icon, error) {
	if root.Tag != "svg" {
		return nil, ErrNotSVG
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	icon := &Icon{Transform: Identity}
	if err := icon.readViewport(root); err != nil {
		return nil, err
	}
	c := compiler{Options: opts, icon: icon}
	if err := c.compileNode(root, DefaultStyle); err != nil {
		return nil, err
	}
	return icon, nil
}

func parseLength(v string) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	return strconv.ParseFloat(v, 64)
}

func (icon *Icon) readViewport(root svgnode.Node) error {
	var err error
	if v, ok := root.Attr("width"); ok {
		if icon.Width, err = parseLength(v); err != nil {
			return fmt.Errorf("invalid svg width: %w", err)
		}
	}
	if v, ok := root.Attr("height"); ok {
		if icon.Height, err = parseLength(v); err != nil {
			return fmt.Errorf("invalid svg height: %w", err)
		}
	}
	if v, ok := root.Attr("viewBox"); ok {
		points, err := parseFloats(v)
		if err != nil {
			return fmt.Errorf("invalid svg viewBox: %w", err)
		}
		if len(points) != 4 {
			return fmt.Errorf("invalid svg viewBox: %w", errParamMismatch)
		}
		icon.ViewBox = Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
	}
	if icon.ViewBox.W == 0 {
		icon.ViewBox.W = icon.Width
	}
	if icon.ViewBox.H == 0 {
		icon.ViewBox.H = icon.Height
	}
	if icon.Width == 0 {
		icon.Width = icon.ViewBox.W
	}
	if icon.Height == 0 {
		icon.Height = icon.ViewBox.H
	}
	icon.SetTarget(0, 0, icon.Width, icon.Height)
	return nil
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments
func (icon *Icon) SetTarget(x, y, w, h float64) {
	scaleW, scaleH := 1., 1.
	if icon.ViewBox.W != 0 {
		scaleW = w / icon.ViewBox.W
	}
	if icon.ViewBox.H != 0 {
		scaleH = h / icon.ViewBox.H
	}
	icon.Transform = Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-icon.ViewBox.X, -icon.ViewBox.Y)
}

func (c *compiler) compileChildren(n svgnode.Node, style PathStyle) error {
	for _, child := range n.Children {
		if err := c.compileNode(child, style); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) unsupported(tag string) error {
	switch c.Mode {
	case StrictErrorMode:
		return fmt.Errorf("%w: %s", ErrUnsupported, tag)
	case WarnErrorMode:
		c.Logger.Warn("cannot paint svg element", zap.String("element", tag))
	}
	return nil
}

// invalidStyle handles the style attributes of `tag` which were skipped.
// Outside StrictErrorMode, they are inherited from the parent.
func (c *compiler) invalidStyle(tag string, err error) error {
	switch c.Mode {
	case StrictErrorMode:
		return fmt.Errorf("element %s: %w: %w", tag, ErrUnsupported, err)
	case WarnErrorMode:
		c.Logger.Warn("cannot read svg style", zap.String("element", tag), zap.Error(err))
	}
	return nil
}

func (c *compiler) compileNode(n svgnode.Node, parent PathStyle) error {
	if n.IsText() || metadataTags[n.Tag] {
		return nil
	}

	attrs := make(map[string]string, len(n.Attrs))
	for _, a := range n.Attrs {
		attrs[a.Name] = a.Value
	}
	style, err := pushStyle(parent, attrs, attrs["style"])
	if err != nil {
		if err := c.invalidStyle(n.Tag, err); err != nil {
			return err
		}
	}

	var path Path
	switch n.Tag {
	case "g", "svg":
		return c.compileChildren(n, style)
	case "rect":
		err = rectF(&path, attrs)
	case "circle", "ellipse":
		err = ellipseF(&path, attrs)
	case "line":
		err = lineF(&path, attrs)
	default:
		return c.unsupported(n.Tag)
	}
	if err != nil {
		return fmt.Errorf("element %s: %w", n.Tag, err)
	}
	if len(path) > 0 {
		c.icon.Paths = append(c.icon.Paths, StyledPath{Path: path, Style: style})
	}
	return nil
}

// readNumbers parses the given attributes, defaulting to 0
func readNumbers(attrs map[string]string, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := attrs[name]
		if !ok {
			continue
		}
		f, err := parseLength(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		out[i] = f
	}
	return out, nil
}

func rectF(p *Path, attrs map[string]string) error {
	v, err := readNumbers(attrs, "x", "y", "width", "height", "rx", "ry")
	if err != nil {
		return err
	}
	x, y, w, h, rx, ry := v[0], v[1], v[2], v[3], v[4], v[5]
	if w <= 0 || h <= 0 { // not drawn, but not an error
		return nil
	}
	_, hasRx := attrs["rx"]
	_, hasRy := attrs["ry"]
	if hasRx && !hasRy {
		ry = rx
	} else if hasRy && !hasRx {
		rx = ry
	}
	p.addRoundRect(x, y, x+w, y+h, rx, ry)
	return nil
}

func ellipseF(p *Path, attrs map[string]string) error {
	v, err := readNumbers(attrs, "cx", "cy", "r", "rx", "ry")
	if err != nil {
		return err
	}
	cx, cy, rx, ry := v[0], v[1], v[3], v[4]
	if _, ok := attrs["r"]; ok {
		rx, ry = v[2], v[2]
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil
	}
	p.addEllipse(cx, cy, rx, ry)
	return nil
}

func lineF(p *Path, attrs map[string]string) error {
	v, err := readNumbers(attrs, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	p.addLine(v[0], v[1], v[2], v[3])
	return nil
}
