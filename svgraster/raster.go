// Implements a raster backend to paint node trees,
// by wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/svgmount/svgnode"
	"github.com/benoitkugler/svgmount/svgshape"
	"github.com/srwiley/rasterx"
)

var _ svgshape.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer paints on an image through a rasterx.Scanner.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// SetupDrawers implements svgshape.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgshape.Filler, svgshape.Stroker) {
	var (
		f svgshape.Filler
		s svgshape.Stroker
	)
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c color.Color, opacity float64) {
	f.Filler.SetColor(rasterx.ApplyOpacity(c, opacity))
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(c color.Color, opacity float64) {
	s.Dasher.SetColor(rasterx.ApplyOpacity(c, opacity))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgshape.Round: rasterx.Round,
		svgshape.Bevel: rasterx.Bevel,
		svgshape.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgshape.ButtCap:   rasterx.ButtCap,
		svgshape.SquareCap: rasterx.SquareCap,
		svgshape.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options svgshape.StrokeOptions) {
	s.Dasher.SetStroke(
		options.LineWidth, options.MiterLimit, capToFunc[options.LineCap],
		capToFunc[options.LineCap], rasterx.FlatGap,
		joinToJoin[options.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// RasterIcon paints `icon` on a new transparent image of size `width` x `height`,
// after fitting its view box to the whole image.
func RasterIcon(icon *svgshape.Icon, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	renderer := NewRenderer(width, height, scanner)
	icon.Draw(renderer, 1.0)
	return img
}

// RasterNode compiles `root` and paints it at its own dimensions,
// multiplied by `scale`.
func RasterNode(root svgnode.Node, scale float64, opts svgshape.Options) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %g", scale)
	}
	icon, err := svgshape.Compile(root, opts)
	if err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(icon.Width*scale)), int(math.Ceil(icon.Height*scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image size %dx%d", w, h)
	}
	return RasterIcon(icon, w, h), nil
}

// WritePNG paints `root` and writes it as a PNG image.
func WritePNG(out io.Writer, root svgnode.Node, scale float64, opts svgshape.Options) error {
	img, err := RasterNode(root, scale, opts)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}
