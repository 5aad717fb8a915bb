// Package planet holds the dual tile graph derived from a primal mesh: one
// polygonal tile per mesh node, borders between tiles, and the tectonic
// plates grown over them.
package planet

import (
	"slices"

	m "github.com/jostly/terragen/pkg/math"
)

// Index types into the planet's arenas.
type (
	VertexIndex = uint32
	TileIndex   = uint32
	BorderIndex = uint32
)

// Tile is the polygon around one primal node.
type Tile struct {
	// Vertices is the cyclic ring of corner vertex indices.
	Vertices []VertexIndex
	// Midpoint is the index of the tile's centre vertex.
	Midpoint VertexIndex
	Borders  []BorderIndex
	// PlateID is 1-based; 0 means unassigned.
	PlateID        uint32
	MovementVector m.Vec3
}

// NewTile creates an unassigned tile.
func NewTile(vertices []VertexIndex, midpoint VertexIndex) Tile {
	return Tile{Vertices: vertices, Midpoint: midpoint}
}

// HasEdge reports whether a and b are adjacent in the vertex ring.
func (t *Tile) HasEdge(a, b VertexIndex) bool {
	idx := slices.Index(t.Vertices, a)
	if idx < 0 {
		return false
	}
	n := len(t.Vertices)
	before := t.Vertices[(idx+n-1)%n]
	after := t.Vertices[(idx+1)%n]
	return before == b || after == b
}
