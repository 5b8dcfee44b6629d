package svgshape

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/math/fixed"
)

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Bevel JoinMode = iota
	Miter
	Round
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line
	MiterLimit fixed.Int26_6
	LineJoin   JoinMode
	LineCap    CapMode
	Dash       DashOptions
}

// PathStyle holds the presentation attributes applying to a path.
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	MiterLimit               float64
	UseNonZeroWinding        bool
	LineJoin                 JoinMode
	LineCap                  CapMode
	Dash                     DashOptions

	// nil disables filling (resp. stroking)
	FillerColor, LinerColor color.Color

	transform Matrix2D // current user space
}

// DefaultStyle is the initial style of SVG documents: fill black,
// non zero winding rule, full opacity, no stroke, butt line ends,
// miter joins and a line width of 1.
var DefaultStyle = PathStyle{
	FillOpacity:       1,
	LineOpacity:       1,
	LineWidth:         1,
	MiterLimit:        4,
	UseNonZeroWinding: true,
	LineJoin:          Miter,
	LineCap:           ButtCap,
	FillerColor:       color.NRGBA{A: 0xff},
	transform:         Identity,
}

var errParamMismatch = errors.New("param mismatch")

// ParseColor parses an SVG paint value. "none" (and "transparent") return a nil color.
// Supported forms are #rgb, #rrggbb, rgb(r, g, b) with integers or percentages,
// and the SVG color keywords.
func ParseColor(v string) (color.Color, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "none", v == "transparent":
		return nil, nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v[1:])
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseRGBColor(v[4 : len(v)-1])
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("invalid color %q", v)
}

func parseHexColor(v string) (color.Color, error) {
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return nil, fmt.Errorf("invalid hex color #%s", v)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color #%s: %s", v, err)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

func parseRGBColor(v string) (color.Color, error) {
	parts := splitOnCommaOrSpace(v)
	if len(parts) != 3 {
		return nil, errParamMismatch
	}
	var comps [3]uint8
	for i, p := range parts {
		var (
			f   float64
			err error
		)
		if strings.HasSuffix(p, "%") {
			f, err = strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			f = f * 255 / 100
		} else {
			f, err = strconv.ParseFloat(p, 64)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid rgb color: %s", err)
		}
		if f < 0 {
			f = 0
		} else if f > 255 {
			f = 255
		}
		comps[i] = uint8(f + 0.5)
	}
	return color.NRGBA{R: comps[0], G: comps[1], B: comps[2], A: 0xff}, nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func parseFloats(v string) ([]float64, error) {
	fields := splitOnCommaOrSpace(v)
	out := make([]float64, len(fields))
	for i, f := range fields {
		var err error
		out[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// readStyleAttr updates `curStyle` with the attribute `k`.
// Unknown attributes are ignored.
func readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		curStyle.FillerColor = col
	case "stroke":
		col, err := ParseColor(v)
		if err != nil {
			return err
		}
		curStyle.LinerColor = col
	case "fill-rule":
		curStyle.UseNonZeroWinding = v != "evenodd"
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.LineCap = ButtCap
		case "round":
			curStyle.LineCap = RoundCap
		case "square":
			curStyle.LineCap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.LineJoin = Miter
		case "round":
			curStyle.LineJoin = Round
		case "bevel":
			curStyle.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		curStyle.MiterLimit = mLimit
	case "stroke-width":
		width, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dList, err := parseFloats(v)
		if err != nil {
			return err
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := parseTransform(curStyle.transform, v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln != 6 {
			return m1, errParamMismatch
		}
		m1 = m1.Mult(Matrix2D{A: points[0], B: points[1], C: points[2], D: points[3], E: points[4], F: points[5]})
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform composes the transformation list `v` with `m1`.
func parseTransform(m1 Matrix2D, v string) (Matrix2D, error) {
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		points, err := parseFloats(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.Trim(d[0], " ,")), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// pushStyle reads the presentation attributes of `attrs` (including the
// content of a style attribute) on top of `parent`. Attributes in the
// style attribute take precedence.
// An attribute which can't be read keeps the value of `parent`; the
// returned style is always usable and the error lists the skipped attributes.
func pushStyle(parent PathStyle, attrs map[string]string, style string) (PathStyle, error) {
	curStyle := parent
	var errs []error
	for _, k := range presentationAttrs {
		v, ok := attrs[k]
		if !ok {
			continue
		}
		if err := readStyleAttr(&curStyle, k, strings.TrimSpace(v)); err != nil {
			errs = append(errs, fmt.Errorf("attribute %s: %w", k, err))
		}
	}
	for _, pair := range strings.Split(style, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		if k == "transform" {
			continue
		}
		if err := readStyleAttr(&curStyle, k, strings.TrimSpace(kv[1])); err != nil {
			errs = append(errs, fmt.Errorf("style %s: %w", k, err))
		}
	}
	return curStyle, errors.Join(errs...)
}

// presentationAttrs lists the supported attributes, in the
// order they are applied.
var presentationAttrs = [...]string{
	"transform",
	"fill", "fill-rule", "fill-opacity",
	"stroke", "stroke-width", "stroke-linecap", "stroke-linejoin",
	"stroke-miterlimit", "stroke-dasharray", "stroke-dashoffset", "stroke-opacity",
	"opacity",
}
