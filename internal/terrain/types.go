// Package terrain builds and refines the primal icosphere mesh: an indexed
// node/edge/face graph that is subdivided, distorted by edge flips and relaxed
// toward evenly spaced nodes before being turned into a tile planet.
package terrain

import (
	"fmt"

	m "github.com/jostly/terragen/pkg/math"
)

// Node is a mesh vertex on the unit sphere.
// Edges and Faces are back-links rebuilt after every structural change.
type Node struct {
	Point     m.Vec3
	Elevation float32
	Edges     []uint32
	Faces     []uint32
}

// NewNode creates a node without links.
func NewNode(point m.Vec3, elevation float32) Node {
	return Node{Point: point, Elevation: elevation}
}

// Edge connects two nodes. A <= B always holds so an edge is identified by its
// endpoint pair regardless of construction order.
type Edge struct {
	A, B  uint32
	Faces []uint32
}

// NewEdge creates an edge with canonically ordered endpoints.
func NewEdge(a, b uint32) Edge {
	a, b = m.SortedPair(a, b)
	return Edge{A: a, B: b}
}

// Key returns the canonical endpoint pair.
func (e Edge) Key() [2]uint32 {
	return [2]uint32{e.A, e.B}
}

// OtherFace returns the face across the edge from faceIndex.
// Panics when the edge does not border faceIndex.
func (e Edge) OtherFace(faceIndex uint32) uint32 {
	switch {
	case len(e.Faces) != 2:
		panic(fmt.Sprintf("terrain: edge (%d, %d) has %d faces, want 2", e.A, e.B, len(e.Faces)))
	case e.Faces[0] == faceIndex:
		return e.Faces[1]
	case e.Faces[1] == faceIndex:
		return e.Faces[0]
	}
	panic(fmt.Sprintf("terrain: edge (%d, %d) does not border face %d (faces %v)", e.A, e.B, faceIndex, e.Faces))
}

// Face is a triangle. Edges[i] connects Points[i] and Points[(i+1)%3].
type Face struct {
	Points [3]uint32
	Edges  [3]uint32
}

// NewFace creates a face from positionally aligned point and edge triples.
func NewFace(points, edges [3]uint32) Face {
	return Face{Points: points, Edges: edges}
}

// PositionOf returns the slot (0..2) holding node, or -1.
func (f Face) PositionOf(node uint32) int {
	for i, p := range f.Points {
		if p == node {
			return i
		}
	}
	return -1
}

// OppositeNodeIndex returns the slot of the point that is neither a nor b.
// Panics when a and b are not both points of the face.
func (f Face) OppositeNodeIndex(a, b uint32) int {
	for i, p := range f.Points {
		if p != a && p != b {
			next, prev := f.Points[(i+1)%3], f.Points[(i+2)%3]
			if (next == a && prev == b) || (next == b && prev == a) {
				return i
			}
			break
		}
	}
	panic(fmt.Sprintf("terrain: face %v does not contain edge (%d, %d)", f.Points, a, b))
}

// wrap maps a possibly overflowing slot offset back into 0..2.
func wrap(i int) int {
	return i % 3
}
