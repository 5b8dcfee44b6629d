package sample

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benoitkugler/svgmount/svghost"
	"github.com/benoitkugler/svgmount/svgnode"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeShape(t *testing.T) {
	root := Tree()
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, []svgnode.Attr{{Name: "height", Value: "100"}, {Name: "width", Value: "100"}}, root.Attrs)

	require.Len(t, root.Children, 1)
	rect := root.Children[0]
	assert.Equal(t, "rect", rect.Tag)
	assert.Empty(t, rect.Children)
	for name, want := range map[string]float64{"x": 25, "y": 25, "width": 50, "height": 50, "stroke-width": 3} {
		got, ok := rect.Float(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	fill, _ := rect.Attr("fill")
	stroke, _ := rect.Attr("stroke")
	assert.Equal(t, "mediumorchid", fill)
	assert.Equal(t, "crimson", stroke)
}

func TestTreeIdempotent(t *testing.T) {
	if diff := cmp.Diff(Tree(), Tree()); diff != "" {
		t.Errorf("trees differ (-first +second):\n%s", diff)
	}
}

func TestMountEndToEnd(t *testing.T) {
	host := svghost.Default()
	require.NoError(t, Mount(host))

	var page bytes.Buffer
	_, err := host.WriteTo(&page)
	require.NoError(t, err)
	assert.Contains(t, page.String(),
		`<div id="container"><svg height="100" width="100">`+
			`<rect x="25" y="25" width="50" height="50" fill="mediumorchid" stroke="crimson" stroke-width="3"></rect>`+
			`</svg></div>`)

	// what a browser would see
	reloaded, err := svghost.Parse(&page, "text/html; charset=utf-8")
	require.NoError(t, err)
	mounted, err := reloaded.Mounted(MountID)
	require.NoError(t, err)
	if diff := cmp.Diff([]svgnode.Node{Tree()}, mounted); diff != "" {
		t.Errorf("mounted tree mismatch (-want +got):\n%s", diff)
	}
}

func TestMountMissingContainer(t *testing.T) {
	host, err := svghost.Parse(strings.NewReader(`<html><body><div id="app"></div></body></html>`), "")
	require.NoError(t, err)
	assert.ErrorIs(t, Mount(host), svghost.ErrMountNotFound)
}
