package terrain

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/logger"
	"github.com/jostly/terragen/internal/planet"
	m "github.com/jostly/terragen/pkg/math"
)

// ToPlanet builds the dual tile graph. Face centroids become corner vertices
// 0..NumFaces-1, and each node becomes a tile whose ring is the faces around it
// in winding order; tile midpoints follow the corners. Panics when the walk
// around a node does not close, which means the mesh links are broken.
func (g *Generator) ToPlanet() *planet.Planet {
	numFaces := len(g.Faces)
	vertices := make([]m.Vec3, numFaces, numFaces+len(g.Nodes))
	for i, f := range g.Faces {
		vertices[i] = g.FaceMidpoint(f)
	}

	rings := make([][]planet.VertexIndex, len(g.Nodes))
	for i := range g.Nodes {
		ring := g.tileRing(uint32(i))
		var midpoint m.Vec3
		for _, f := range ring {
			midpoint = midpoint.Add(vertices[f])
		}
		vertices = append(vertices, midpoint.Div(float32(len(ring))))
		rings[i] = ring
	}

	logger.Named("terrain").Debug("dual built",
		zap.Int("corners", numFaces),
		zap.Int("tiles", len(rings)))

	rng := rand.New(rand.NewPCG(g.rng.Uint64(), g.rng.Uint64()))
	return planet.New(vertices, rings, rng)
}

// tileRing walks the faces around node. Leaving each face through the edge
// that precedes the node's slot keeps the walk turning the same way.
func (g *Generator) tileRing(nodeIndex uint32) []uint32 {
	node := &g.Nodes[nodeIndex]
	if len(node.Faces) == 0 {
		panic(fmt.Sprintf("terrain: node %d has no faces", nodeIndex))
	}

	start := node.Faces[0]
	ring := make([]uint32, 0, len(node.Faces))
	face := start
	for {
		ring = append(ring, face)
		if len(ring) > len(node.Faces) {
			panic(fmt.Sprintf("terrain: walk around node %d did not close after %d faces", nodeIndex, len(ring)))
		}

		f := g.Faces[face]
		slot := f.PositionOf(nodeIndex)
		if slot < 0 {
			panic(fmt.Sprintf("terrain: face %d %v does not contain node %d", face, f.Points, nodeIndex))
		}
		face = g.Edges[f.Edges[wrap(slot+2)]].OtherFace(face)
		if face == start {
			break
		}
	}
	return ring
}
