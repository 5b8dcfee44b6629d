// Implements a PDF backend to paint node trees,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"fmt"
	"image/color"
	"io"

	"github.com/benoitkugler/svgmount/svgnode"
	"github.com/benoitkugler/svgmount/svgshape"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgshape.Driver  = Renderer{}
	_ svgshape.Filler  = filler{}
	_ svgshape.Stroker = stroker{}
)

// Renderer writes the paths on the current page of a pdf.
// The same path is emitted twice when it is both filled and stroked.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding *bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (svgshape.Filler, svgshape.Stroker) {
	var (
		f svgshape.Filler
		s svgshape.Stroker
	)
	if willFill {
		f = filler{pather: pather{r.pdf}, useNonZeroWinding: new(bool)}
	}
	if willStroke {
		s = stroker{pather{r.pdf}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Clear() {}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// toNRGBA returns the components of `c` and its alpha in [0, 1]
func toNRGBA(c color.Color) (r, g, b int, alpha float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B), float64(n.A) / 255
}

func (f filler) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := toNRGBA(c)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(alpha*opacity, "Normal")
}

func (f filler) Draw() {
	styleStr := "f*"
	if *f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f filler) SetWinding(useNonZeroWinding bool) {
	*f.useNonZeroWinding = useNonZeroWinding
}

func (s stroker) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := toNRGBA(c)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(alpha*opacity, "Normal")
}

var (
	capStyles  = [...]string{svgshape.ButtCap: "butt", svgshape.RoundCap: "round", svgshape.SquareCap: "square"}
	joinStyles = [...]string{svgshape.Miter: "miter", svgshape.Round: "round", svgshape.Bevel: "bevel"}
)

func (s stroker) SetStrokeOptions(options svgshape.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyles[options.LineCap])
	s.pdf.SetLineJoinStyle(joinStyles[options.LineJoin])
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s stroker) Draw() {
	s.pdf.DrawPath("D")
}

// Document returns a one page pdf, whose page has size `width` x `height` points,
// with `icon` painted on it.
func Document(icon *svgshape.Icon, width, height float64, compress bool) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCompression(compress)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	icon.SetTarget(0, 0, width, height)
	icon.Draw(NewRenderer(pdf), 1)
	return pdf, pdf.Error()
}

// WritePDF compiles `root` and writes it as a one page pdf, whose size
// is the size of the root, multiplied by `scale`.
func WritePDF(out io.Writer, root svgnode.Node, scale float64, opts svgshape.Options) error {
	if scale <= 0 {
		return fmt.Errorf("invalid scale %g", scale)
	}
	icon, err := svgshape.Compile(root, opts)
	if err != nil {
		return err
	}
	w, h := icon.Width*scale, icon.Height*scale
	if w <= 0 || h <= 0 {
		return fmt.Errorf("empty page size %gx%g", w, h)
	}
	pdf, err := Document(icon, w, h, true)
	if err != nil {
		return fmt.Errorf("painting pdf: %w", err)
	}
	return pdf.Output(out)
}
