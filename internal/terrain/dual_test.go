package terrain

import (
	"testing"

	"github.com/jostly/terragen/internal/planet"
	m "github.com/jostly/terragen/pkg/math"
)

func TestToPlanet(t *testing.T) {
	g := newTestGenerator(11)
	g.Subdivide()
	g.Subdivide()
	g.Distort(30)
	g.Relax(0.5)

	p := g.ToPlanet()

	if p.NumTiles() != int(g.NumNodes()) {
		t.Fatalf("NumTiles() = %d, want %d", p.NumTiles(), g.NumNodes())
	}
	if p.NumCorners != int(g.NumFaces()) {
		t.Errorf("NumCorners = %d, want %d", p.NumCorners, g.NumFaces())
	}
	if len(p.Vertices) != p.NumCorners+p.NumTiles() {
		t.Errorf("len(Vertices) = %d, want %d", len(p.Vertices), p.NumCorners+p.NumTiles())
	}
	if len(p.Borders) != int(g.NumEdges()) {
		t.Errorf("len(Borders) = %d, want %d", len(p.Borders), g.NumEdges())
	}

	for i, tile := range p.Tiles {
		node := g.Nodes[i]
		if len(tile.Vertices) != len(node.Faces) {
			t.Errorf("tile %d ring has %d corners, want %d", i, len(tile.Vertices), len(node.Faces))
		}
		if tile.Midpoint != planet.VertexIndex(p.NumCorners+i) {
			t.Errorf("tile %d midpoint = %d, want %d", i, tile.Midpoint, p.NumCorners+i)
		}
		// The centre is the plain corner average, so it sits inside the sphere.
		var sum m.Vec3
		for _, c := range tile.Vertices {
			sum = sum.Add(p.Vertices[c])
		}
		want := sum.Div(float32(len(tile.Vertices)))
		if got := p.Vertices[tile.Midpoint]; got.Distance(want) > 1e-5 {
			t.Errorf("tile %d midpoint position = %v, want %v", i, got, want)
		}
		if l := p.Vertices[tile.Midpoint].Length(); l >= 1 {
			t.Errorf("tile %d midpoint length = %v, want < 1", i, l)
		}
		if !sameSet(tile.Vertices, node.Faces) {
			t.Errorf("tile %d ring = %v, want faces %v", i, tile.Vertices, node.Faces)
		}
		// Consecutive corners come from faces sharing an edge.
		for k, c := range tile.Vertices {
			next := tile.Vertices[(k+1)%len(tile.Vertices)]
			if !facesAdjacent(g, c, next) {
				t.Errorf("tile %d corners %d and %d are not adjacent faces", i, c, next)
			}
		}
	}
}

func facesAdjacent(g *Generator, a, b uint32) bool {
	for _, e := range g.Faces[a].Edges {
		for _, f := range g.Edges[e].Faces {
			if f == b {
				return true
			}
		}
	}
	return false
}

func TestToPlanetDeterministic(t *testing.T) {
	build := func() *planet.Planet {
		g := newTestGenerator(12)
		g.Subdivide()
		return g.ToPlanet()
	}
	a, b := build(), build()
	for i := range a.Elevations {
		if a.Elevations[i] != b.Elevations[i] {
			t.Fatalf("corner %d elevation differs between equally seeded runs", i)
		}
	}
}
