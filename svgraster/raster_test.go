package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/benoitkugler/svgmount/svgnode"
	"github.com/benoitkugler/svgmount/svgshape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func sampleTree() svgnode.Node {
	return svgnode.Container(svgnode.ContainerProps{Height: 100, Width: 100},
		svgnode.Rect(svgnode.RectProps{X: 25, Y: 25, Width: 50, Height: 50, Fill: "mediumorchid", Stroke: "crimson", StrokeWidth: 3}))
}

// assertColor compares with a small tolerance, to accommodate
// anti-aliasing roundoff.
func assertColor(t *testing.T, img image.Image, x, y int, want color.Color) {
	t.Helper()
	r1, g1, b1, a1 := img.At(x, y).RGBA()
	r2, g2, b2, a2 := want.RGBA()
	const tol = 3 * 0x101
	for i, p := range [4][2]uint32{{r1, r2}, {g1, g2}, {b1, b2}, {a1, a2}} {
		d := int64(p[0]) - int64(p[1])
		if d < -tol || d > tol {
			t.Errorf("pixel (%d, %d), channel %d: expected %v, got %v", x, y, i, want, img.At(x, y))
			return
		}
	}
}

func TestRasterSample(t *testing.T) {
	img, err := RasterNode(sampleTree(), 1, svgshape.Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())

	assertColor(t, img, 50, 50, colornames.Mediumorchid)
	assertColor(t, img, 25, 50, colornames.Crimson) // stroke covers [23.5, 26.5]
	assertColor(t, img, 74, 50, colornames.Crimson)
	assertColor(t, img, 5, 5, color.Transparent)
	assertColor(t, img, 95, 95, color.Transparent)
}

func TestRasterScale(t *testing.T) {
	img, err := RasterNode(sampleTree(), 2, svgshape.Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())

	assertColor(t, img, 100, 100, colornames.Mediumorchid)
	assertColor(t, img, 50, 100, colornames.Crimson) // stroke covers [47, 53]
	assertColor(t, img, 45, 100, color.Transparent)
}

func TestRasterShapes(t *testing.T) {
	tree := svgnode.Container(svgnode.ContainerProps{Height: 40, Width: 40},
		svgnode.Circle(svgnode.CircleProps{CX: 10, CY: 10, R: 8, Fill: "#00ff00"}),
		svgnode.Element("rect", []svgnode.Attr{
			svgnode.Float("x", 20), svgnode.Float("y", 20),
			svgnode.Float("width", 18), svgnode.Float("height", 18),
			svgnode.Float("rx", 4), svgnode.String("fill", "blue"),
		}),
		svgnode.Line(svgnode.LineProps{X1: 0, Y1: 35, X2: 15, Y2: 35, Stroke: "red", StrokeWidth: 4}),
	)
	img, err := RasterNode(tree, 1, svgshape.Options{Mode: svgshape.StrictErrorMode})
	require.NoError(t, err)

	assertColor(t, img, 10, 10, color.NRGBA{G: 0xff, A: 0xff})
	assertColor(t, img, 29, 29, colornames.Blue)
	assertColor(t, img, 20, 20, color.Transparent) // rounded corner
	assertColor(t, img, 7, 35, colornames.Red)
}

func TestRasterErrors(t *testing.T) {
	_, err := RasterNode(sampleTree(), 0, svgshape.Options{})
	assert.Error(t, err)

	_, err = RasterNode(svgnode.Container(svgnode.ContainerProps{}), 1, svgshape.Options{})
	assert.Error(t, err)

	_, err = RasterNode(svgnode.Text("x"), 1, svgshape.Options{})
	assert.ErrorIs(t, err, svgshape.ErrNotSVG)
}

func TestWritePNG(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WritePNG(&b, sampleTree(), 1, svgshape.Options{}))

	img, err := png.Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	assertColor(t, img, 50, 50, colornames.Mediumorchid)
}
