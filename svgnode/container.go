package svgnode

// ContainerProps are the dimensions forwarded onto the svg root.
type ContainerProps struct {
	Height, Width float64
}

func (p ContainerProps) attrs() []Attr {
	return []Attr{Float("height", p.Height), Float("width", p.Width)}
}

// Container wraps `children` into an svg root element carrying
// the given dimensions. The children are kept unchanged, in order.
func Container(props ContainerProps, children ...Node) Node {
	return Element("svg", props.attrs(), children...)
}

// SvgContainer is the component form of Container.
type SvgContainer struct {
	Props    ContainerProps
	Children []Node
}

var _ Component = SvgContainer{}

// Render implements Component.
func (s SvgContainer) Render() Node {
	return Container(s.Props, s.Children...)
}
