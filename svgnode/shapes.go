package svgnode

// RectProps describes a rectangle. Empty paints and a zero
// stroke width are left out of the element, so that they are inherited.
type RectProps struct {
	X, Y, Width, Height float64
	Fill, Stroke        string
	StrokeWidth         float64
}

// Rect returns a rect element.
func Rect(p RectProps) Node {
	attrs := []Attr{
		Float("x", p.X),
		Float("y", p.Y),
		Float("width", p.Width),
		Float("height", p.Height),
	}
	return Element("rect", appendPaint(attrs, p.Fill, p.Stroke, p.StrokeWidth))
}

// CircleProps describes a circle.
type CircleProps struct {
	CX, CY, R    float64
	Fill, Stroke string
	StrokeWidth  float64
}

// Circle returns a circle element.
func Circle(p CircleProps) Node {
	attrs := []Attr{Float("cx", p.CX), Float("cy", p.CY), Float("r", p.R)}
	return Element("circle", appendPaint(attrs, p.Fill, p.Stroke, p.StrokeWidth))
}

// EllipseProps describes an axis aligned ellipse.
type EllipseProps struct {
	CX, CY, RX, RY float64
	Fill, Stroke   string
	StrokeWidth    float64
}

// Ellipse returns an ellipse element.
func Ellipse(p EllipseProps) Node {
	attrs := []Attr{Float("cx", p.CX), Float("cy", p.CY), Float("rx", p.RX), Float("ry", p.RY)}
	return Element("ellipse", appendPaint(attrs, p.Fill, p.Stroke, p.StrokeWidth))
}

// LineProps describes a segment.
type LineProps struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
}

// Line returns a line element.
func Line(p LineProps) Node {
	attrs := []Attr{Float("x1", p.X1), Float("y1", p.Y1), Float("x2", p.X2), Float("y2", p.Y2)}
	return Element("line", appendPaint(attrs, "", p.Stroke, p.StrokeWidth))
}

// Group returns a g element, whose attributes are inherited
// by its children.
func Group(attrs []Attr, children ...Node) Node {
	return Element("g", attrs, children...)
}

func appendPaint(attrs []Attr, fill, stroke string, strokeWidth float64) []Attr {
	if fill != "" {
		attrs = append(attrs, String("fill", fill))
	}
	if stroke != "" {
		attrs = append(attrs, String("stroke", stroke))
	}
	if strokeWidth != 0 {
		attrs = append(attrs, Float("stroke-width", strokeWidth))
	}
	return attrs
}
