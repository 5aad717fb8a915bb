package terrain

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/logger"
	m "github.com/jostly/terragen/pkg/math"
)

const (
	// initialRandomPower is the elevation perturbation magnitude before the first subdivision.
	initialRandomPower = 3.0
	// randomPowerDecay scales the perturbation magnitude at every subdivision.
	randomPowerDecay = 0.75
	// baseElevationRange bounds the uniform elevation of the 12 icosahedron nodes.
	baseElevationRange = 0.5
)

// Generator owns the primal mesh. Nodes, edges and faces live in flat arrays
// and refer to each other by index only; Subdivide replaces the edge and face
// arrays wholesale, so never hold on to element pointers across calls.
type Generator struct {
	Nodes []Node
	Edges []Edge
	Faces []Face

	rng    *rand.Rand
	rndPow float32
	level  uint8
}

// icosahedronEdges lists the 30 canonical edges of the base mesh.
var icosahedronEdges = [30][2]uint32{
	{0, 1}, {0, 4}, {0, 5}, {0, 8}, {0, 10},
	{1, 6}, {1, 7}, {1, 8}, {1, 10},
	{2, 3}, {2, 4}, {2, 5}, {2, 9}, {2, 11},
	{3, 6}, {3, 7}, {3, 9}, {3, 11},
	{4, 5}, {4, 8}, {4, 9},
	{5, 10}, {5, 11},
	{6, 7}, {6, 8}, {6, 9},
	{7, 10}, {7, 11},
	{8, 9},
	{10, 11},
}

// icosahedronFaces lists point and edge triples with Edges[i] spanning
// Points[i]..Points[i+1]. All faces share one winding; the tile walk in
// ToPlanet depends on it.
var icosahedronFaces = [20]struct{ points, edges [3]uint32 }{
	{[3]uint32{0, 8, 1}, [3]uint32{3, 7, 0}},
	{[3]uint32{0, 5, 4}, [3]uint32{2, 18, 1}},
	{[3]uint32{0, 10, 5}, [3]uint32{4, 21, 2}},
	{[3]uint32{0, 4, 8}, [3]uint32{1, 19, 3}},
	{[3]uint32{0, 1, 10}, [3]uint32{0, 8, 4}},
	{[3]uint32{1, 8, 6}, [3]uint32{7, 24, 5}},
	{[3]uint32{1, 6, 7}, [3]uint32{5, 23, 6}},
	{[3]uint32{1, 7, 10}, [3]uint32{6, 26, 8}},
	{[3]uint32{2, 11, 3}, [3]uint32{13, 17, 9}},
	{[3]uint32{2, 9, 4}, [3]uint32{12, 20, 10}},
	{[3]uint32{2, 4, 5}, [3]uint32{10, 18, 11}},
	{[3]uint32{2, 3, 9}, [3]uint32{9, 16, 12}},
	{[3]uint32{2, 5, 11}, [3]uint32{11, 22, 13}},
	{[3]uint32{3, 7, 6}, [3]uint32{15, 23, 14}},
	{[3]uint32{3, 11, 7}, [3]uint32{17, 27, 15}},
	{[3]uint32{3, 6, 9}, [3]uint32{14, 25, 16}},
	{[3]uint32{4, 9, 8}, [3]uint32{20, 28, 19}},
	{[3]uint32{5, 10, 11}, [3]uint32{21, 29, 22}},
	{[3]uint32{6, 8, 9}, [3]uint32{24, 28, 25}},
	{[3]uint32{7, 11, 10}, [3]uint32{27, 29, 26}},
}

// New builds the base icosahedron: 12 nodes, 30 edges and 20 faces. The rng
// drives every stochastic operation of the generator.
func New(rng *rand.Rand) *Generator {
	phi := float32((math.Sqrt(5) + 1) / 2)
	du := float32(1 / math.Sqrt(float64(phi*phi+1)))
	dv := phi * du

	points := [12]m.Vec3{
		{X: 0, Y: dv, Z: du},
		{X: 0, Y: dv, Z: -du},
		{X: 0, Y: -dv, Z: du},
		{X: 0, Y: -dv, Z: -du},
		{X: du, Y: 0, Z: dv},
		{X: -du, Y: 0, Z: dv},
		{X: du, Y: 0, Z: -dv},
		{X: -du, Y: 0, Z: -dv},
		{X: dv, Y: du, Z: 0},
		{X: dv, Y: -du, Z: 0},
		{X: -dv, Y: du, Z: 0},
		{X: -dv, Y: -du, Z: 0},
	}

	nodes := make([]Node, len(points))
	for i, p := range points {
		nodes[i] = NewNode(p, rng.Float32()*baseElevationRange)
	}

	edges := make([]Edge, len(icosahedronEdges))
	for i, e := range icosahedronEdges {
		edges[i] = NewEdge(e[0], e[1])
	}

	faces := make([]Face, len(icosahedronFaces))
	for i, f := range icosahedronFaces {
		faces[i] = NewFace(f.points, f.edges)
	}

	g := &Generator{
		Nodes:  nodes,
		Edges:  edges,
		Faces:  faces,
		rng:    rng,
		rndPow: initialRandomPower,
	}
	g.applyLinks(RebuildLinks(len(nodes), edges, faces))
	return g
}

// CurrentLevel returns the number of subdivisions applied.
func (g *Generator) CurrentLevel() uint8 {
	return g.level
}

// NumNodes returns the node count.
func (g *Generator) NumNodes() uint32 {
	return uint32(len(g.Nodes))
}

// NumEdges returns the edge count.
func (g *Generator) NumEdges() uint32 {
	return uint32(len(g.Edges))
}

// NumFaces returns the face count.
func (g *Generator) NumFaces() uint32 {
	return uint32(len(g.Faces))
}

// FaceMidpoint returns the centroid of a face. It lies inside the sphere.
func (g *Generator) FaceMidpoint(f Face) m.Vec3 {
	p0 := g.Nodes[f.Points[0]].Point
	p1 := g.Nodes[f.Points[1]].Point
	p2 := g.Nodes[f.Points[2]].Point
	return p0.Add(p1).Add(p2).Div(3)
}

// ElevationRange returns the smallest and largest node elevation.
func (g *Generator) ElevationRange() (lo, hi float32) {
	elevations := make([]float32, len(g.Nodes))
	for i := range g.Nodes {
		elevations[i] = g.Nodes[i].Elevation
	}
	return m.MinMax(elevations)
}

// Clone returns a deep copy. The copy gets its own rng seeded from this one.
func (g *Generator) Clone() *Generator {
	c := &Generator{
		Nodes:  make([]Node, len(g.Nodes)),
		Edges:  make([]Edge, len(g.Edges)),
		Faces:  append([]Face(nil), g.Faces...),
		rng:    rand.New(rand.NewPCG(g.rng.Uint64(), g.rng.Uint64())),
		rndPow: g.rndPow,
		level:  g.level,
	}
	for i, n := range g.Nodes {
		n.Edges = append([]uint32(nil), n.Edges...)
		n.Faces = append([]uint32(nil), n.Faces...)
		c.Nodes[i] = n
	}
	for i, e := range g.Edges {
		e.Faces = append([]uint32(nil), e.Faces...)
		c.Edges[i] = e
	}
	return c
}

// Links holds freshly computed back-references for a node/edge/face set.
type Links struct {
	NodeEdges [][]uint32
	NodeFaces [][]uint32
	EdgeFaces [][]uint32
}

// RebuildLinks recomputes every back-reference from the edge and face arrays.
// Recomputing is simpler than patching because subdivision replaces both arrays.
func RebuildLinks(numNodes int, edges []Edge, faces []Face) Links {
	l := Links{
		NodeEdges: make([][]uint32, numNodes),
		NodeFaces: make([][]uint32, numNodes),
		EdgeFaces: make([][]uint32, len(edges)),
	}
	for i := range numNodes {
		l.NodeEdges[i] = make([]uint32, 0, 6)
		l.NodeFaces[i] = make([]uint32, 0, 6)
	}
	for i, e := range edges {
		idx := uint32(i)
		l.NodeEdges[e.A] = append(l.NodeEdges[e.A], idx)
		l.NodeEdges[e.B] = append(l.NodeEdges[e.B], idx)
		l.EdgeFaces[i] = make([]uint32, 0, 2)
	}
	for i, f := range faces {
		idx := uint32(i)
		for _, p := range f.Points {
			l.NodeFaces[p] = append(l.NodeFaces[p], idx)
		}
		for _, e := range f.Edges {
			l.EdgeFaces[e] = append(l.EdgeFaces[e], idx)
		}
	}
	return l
}

func (g *Generator) applyLinks(l Links) {
	for i := range g.Nodes {
		g.Nodes[i].Edges = l.NodeEdges[i]
		g.Nodes[i].Faces = l.NodeFaces[i]
	}
	for i := range g.Edges {
		g.Edges[i].Faces = l.EdgeFaces[i]
	}
}

// randomOffset returns a uniform value in [-limit, limit).
func (g *Generator) randomOffset(limit float32) float32 {
	return g.rng.Float32()*2*limit - limit
}

// Subdivide splits every face into four. Every edge gets a midpoint node on
// the sphere whose elevation is the endpoint average plus a perturbation that
// shrinks with each level.
func (g *Generator) Subdivide() {
	g.level++
	g.rndPow *= randomPowerDecay

	numEdges := len(g.Edges)
	numFaces := len(g.Faces)
	firstNewNode := uint32(len(g.Nodes))

	logger.Debug("subdividing", zap.Uint8("level", g.level), zap.Float32("rndPow", g.rndPow))

	newEdges := make([]Edge, 0, numEdges*2+numFaces*3)
	edgeIndex := make(map[[2]uint32]uint32, cap(newEdges))

	addEdge := func(e Edge) uint32 {
		idx := uint32(len(newEdges))
		edgeIndex[e.Key()] = idx
		newEdges = append(newEdges, e)
		return idx
	}

	for _, e := range g.Edges {
		n0, n1 := g.Nodes[e.A], g.Nodes[e.B]
		mid := m.Slerp(n0.Point, n1.Point, 0.5)
		elevation := (n0.Elevation+n1.Elevation)/2 + g.randomOffset(0.5)*g.rndPow

		vidx := uint32(len(g.Nodes))
		g.Nodes = append(g.Nodes, NewNode(mid, elevation))

		addEdge(NewEdge(e.A, vidx))
		addEdge(NewEdge(e.B, vidx))
	}

	findEdge := func(a, b uint32) uint32 {
		e := NewEdge(a, b)
		if idx, ok := edgeIndex[e.Key()]; ok {
			return idx
		}
		return addEdge(e)
	}

	newFaces := make([]Face, 0, numFaces*4)
	for _, f := range g.Faces {
		p0, p1, p2 := f.Points[0], f.Points[1], f.Points[2]

		// Midpoint node of old edge i was appended at firstNewNode+i.
		n0 := firstNewNode + f.Edges[0]
		n1 := firstNewNode + f.Edges[1]
		n2 := firstNewNode + f.Edges[2]

		e00 := findEdge(p0, n0)
		e01 := findEdge(n0, p1)
		e10 := findEdge(p1, n1)
		e11 := findEdge(n1, p2)
		e20 := findEdge(p2, n2)
		e21 := findEdge(n2, p0)

		ne0 := findEdge(n0, n1)
		ne1 := findEdge(n1, n2)
		ne2 := findEdge(n2, n0)

		newFaces = append(newFaces,
			NewFace([3]uint32{p0, n0, n2}, [3]uint32{e00, ne2, e21}),
			NewFace([3]uint32{n0, p1, n1}, [3]uint32{e01, e10, ne0}),
			NewFace([3]uint32{p2, n2, n1}, [3]uint32{e20, ne1, e11}),
			NewFace([3]uint32{n0, n1, n2}, [3]uint32{ne0, ne1, ne2}),
		)
	}

	g.Edges = newEdges
	g.Faces = newFaces
	g.applyLinks(RebuildLinks(len(g.Nodes), g.Edges, g.Faces))

	logger.Info("subdivided",
		zap.Uint8("level", g.level),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
		zap.Int("faces", len(g.Faces)))
}
