package terrain

import (
	"testing"

	m "github.com/jostly/terragen/pkg/math"
)

func TestDistortBaseMeshSaturates(t *testing.T) {
	// Every icosahedron node has five faces, so no flip is allowed.
	g := newTestGenerator(6)
	if g.Distort(1) {
		t.Error("Distort(1) on the base mesh = true, want false")
	}
}

func TestDistortPreservesTopology(t *testing.T) {
	g := newTestGenerator(7)
	g.Subdivide()
	g.Subdivide()
	g.Subdivide()

	nodes, edges, faces := g.NumNodes(), g.NumEdges(), g.NumFaces()
	if !g.Distort(50) {
		t.Fatal("Distort(50) = false, want true")
	}

	if g.NumNodes() != nodes || g.NumEdges() != edges || g.NumFaces() != faces {
		t.Errorf("counts after Distort = (%d, %d, %d), want (%d, %d, %d)",
			g.NumNodes(), g.NumEdges(), g.NumFaces(), nodes, edges, faces)
	}
	checkLinks(t, g)

	for i, n := range g.Nodes {
		if len(n.Faces) < 5 || len(n.Faces) > 7 {
			t.Errorf("node %d has %d faces after Distort, want 5..7", i, len(n.Faces))
		}
	}
}

func TestConditionalRotateEdge(t *testing.T) {
	g := newTestGenerator(8)
	g.Subdivide()
	g.Subdivide()

	for i := range g.Edges {
		e := g.Edges[i]
		f0, f1 := g.Faces[e.Faces[0]], g.Faces[e.Faces[1]]
		far0 := f0.Points[f0.OppositeNodeIndex(e.A, e.B)]
		far1 := f1.Points[f1.OppositeNodeIndex(e.A, e.B)]

		if !g.ConditionalRotateEdge(uint32(i)) {
			continue
		}

		want := NewEdge(far0, far1)
		if got := g.Edges[i]; got.Key() != want.Key() {
			t.Errorf("rotated edge = (%d, %d), want (%d, %d)", got.A, got.B, want.A, want.B)
		}
		checkLinks(t, g)
		return
	}
	t.Fatal("no edge could be rotated")
}

func TestRotationPredicate(t *testing.T) {
	node := func(p m.Vec3, faces int) *Node {
		return &Node{Point: p, Faces: make([]uint32, faces)}
	}
	// A unit rhombus: old edge along x, new edge along y.
	old0 := m.Vec3{X: -0.5}
	old1 := m.Vec3{X: 0.5}
	new0 := m.Vec3{Y: 0.6}
	new1 := m.Vec3{Y: -0.6}

	tests := []struct {
		name           string
		o0, o1, n0, n1 int
		new0Point      m.Vec3
		want           bool
	}{
		{"regular", 6, 6, 6, 6, new0, true},
		{"far node saturated", 6, 6, 7, 6, new0, false},
		{"near node at minimum", 5, 6, 6, 6, new0, false},
		{"new edge too long", 6, 6, 6, 6, m.Vec3{Y: 1.5}, false},
		{"skewed quad", 6, 6, 6, 6, m.Vec3{X: 0.6, Y: 0.3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rotationPredicate(node(old0, tt.o0), node(old1, tt.o1), node(tt.new0Point, tt.n0), node(new1, tt.n1))
			if got != tt.want {
				t.Errorf("rotationPredicate() = %v, want %v", got, tt.want)
			}
		})
	}
}
