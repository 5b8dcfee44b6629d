// Package sample builds the demonstration tree: a 100x100 svg container
// holding one stroked square, mounted at the "container" element.
package sample

import (
	"github.com/benoitkugler/svgmount/svgnode"
)

// MountID is the id of the page element receiving the tree.
const MountID = "container"

// Tree returns a new copy of the demonstration tree.
func Tree() svgnode.Node {
	return svgnode.SvgContainer{
		Props: svgnode.ContainerProps{Height: 100, Width: 100},
		Children: []svgnode.Node{
			svgnode.Rect(svgnode.RectProps{
				Height:      50,
				Width:       50,
				X:           25,
				Y:           25,
				Fill:        "mediumorchid",
				Stroke:      "crimson",
				StrokeWidth: 3,
			}),
		},
	}.Render()
}

// Renderer is the rendering host receiving the tree.
type Renderer interface {
	Render(c svgnode.Component, mountID string) error
}

// Mount renders the demonstration tree into `host`, at MountID.
func Mount(host Renderer) error {
	return MountAt(host, MountID)
}

// MountAt is like Mount, for pages using another id.
func MountAt(host Renderer, mountID string) error {
	return host.Render(Tree(), mountID)
}
