package svgpdf

import (
	"bytes"
	"testing"

	"github.com/benoitkugler/svgmount/svgnode"
	"github.com/benoitkugler/svgmount/svgshape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() svgnode.Node {
	return svgnode.Container(svgnode.ContainerProps{Height: 100, Width: 100},
		svgnode.Rect(svgnode.RectProps{X: 25, Y: 25, Width: 50, Height: 50, Fill: "mediumorchid", Stroke: "crimson", StrokeWidth: 3}))
}

func TestWritePDF(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WritePDF(&b, sampleTree(), 1, svgshape.Options{}))
	assert.True(t, bytes.HasPrefix(b.Bytes(), []byte("%PDF-")))
	assert.Contains(t, b.String(), "%%EOF")
}

func TestDocumentContent(t *testing.T) {
	icon, err := svgshape.Compile(sampleTree(), svgshape.Options{})
	require.NoError(t, err)

	pdf, err := Document(icon, 200, 200, false)
	require.NoError(t, err)
	w, h := pdf.GetPageSize()
	assert.Equal(t, 200., w)
	assert.Equal(t, 200., h)

	var b bytes.Buffer
	require.NoError(t, pdf.Output(&b))
	content := b.String()
	assert.Contains(t, content, " rg")  // fill color
	assert.Contains(t, content, " RG")  // stroke color
	assert.Contains(t, content, "\nf\n") // non zero fill
	assert.Contains(t, content, "\nS\n") // stroke
}

func TestWritePDFErrors(t *testing.T) {
	var b bytes.Buffer
	assert.Error(t, WritePDF(&b, sampleTree(), -1, svgshape.Options{}))
	assert.Error(t, WritePDF(&b, svgnode.Container(svgnode.ContainerProps{}), 1, svgshape.Options{}))
	assert.ErrorIs(t, WritePDF(&b, svgnode.Rect(svgnode.RectProps{}), 1, svgshape.Options{}), svgshape.ErrNotSVG)
}
