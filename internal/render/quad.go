package render

import "github.com/hajimehoshi/ebiten/v2"

// Quad is a rectangle covering the whole destination, built from two
// triangles. Source coordinates span the full texture, so the top-left
// corner samples UV (0, 0) and the bottom-right UV (1, 1).
type Quad struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewQuad returns a quad covering a dstW x dstH target and mapping a srcW x
// srcH texture onto it.
func NewQuad(dstW, dstH, srcW, srcH int) *Quad {
	dw, dh := float32(dstW), float32(dstH)
	sw, sh := float32(srcW), float32(srcH)
	corner := func(u, v float32) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: u * dw, DstY: v * dh,
			SrcX: u * sw, SrcY: v * sh,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	return &Quad{
		vertices: []ebiten.Vertex{
			corner(0, 0),
			corner(1, 0),
			corner(0, 1),
			corner(1, 1),
		},
		indices: []uint16{0, 1, 2, 1, 3, 2},
	}
}

// Vertices returns the four corners: top-left, top-right, bottom-left,
// bottom-right.
func (q *Quad) Vertices() []ebiten.Vertex {
	return q.vertices
}

// Indices returns the six indices of the two triangles.
func (q *Quad) Indices() []uint16 {
	return q.indices
}

// Delete drops the vertex and index data.
func (q *Quad) Delete() {
	q.vertices = nil
	q.indices = nil
}
