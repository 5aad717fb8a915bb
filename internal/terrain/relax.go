package terrain

import (
	"math"

	m "github.com/jostly/terragen/pkg/math"
)

// relaxUnderShoot keeps the target distance below the ideal one for stability.
const relaxUnderShoot = 0.9

// IdealCentroidDistance returns the corner-to-centroid distance of a face in a
// regular tiling of the unit sphere with numFaces faces.
func IdealCentroidDistance(numFaces int) float32 {
	idealFaceArea := 4 * math.Pi / float64(numFaces)
	return float32(2*math.Sqrt(math.Sqrt(3)*idealFaceArea)/3) * relaxUnderShoot
}

// Relax moves every node one step toward a configuration where each face
// corner sits at the ideal distance from the face centroid. Nodes whose edges
// would swing around sharply are damped. Returns the summed node displacement.
func (g *Generator) Relax(multiplier float32) float32 {
	ideal := IdealCentroidDistance(len(g.Faces))

	shifted := make([]m.Vec3, len(g.Nodes))

	for _, f := range g.Faces {
		centroid := m.Zero
		for _, p := range f.Points {
			centroid = centroid.Add(g.Nodes[p].Point)
		}
		centroid = centroid.Normalize()

		for _, p := range f.Points {
			v := centroid.Sub(g.Nodes[p].Point)
			shifted[p] = shifted[p].Add(v.Scale(multiplier * (1 - ideal/v.Length())))
		}
	}

	// Keep only the tangential part of each shift and put the result back on the sphere.
	for i := range shifted {
		normal := g.Nodes[i].Point
		projected := shifted[i].Sub(normal.Scale(shifted[i].Dot(normal)))
		shifted[i] = normal.Add(projected).Normalize()
	}

	suppression := make([]float32, len(g.Nodes))
	for _, e := range g.Edges {
		ov := g.Nodes[e.B].Point.Sub(g.Nodes[e.A].Point).Normalize()
		nv := shifted[e.B].Sub(shifted[e.A]).Normalize()
		s := (1 - ov.Dot(nv)) * 0.5
		suppression[e.A] = max(suppression[e.A], s)
		suppression[e.B] = max(suppression[e.B], s)
	}

	var total float32
	for i := range g.Nodes {
		point := g.Nodes[i].Point
		t := 1 - float32(math.Sqrt(float64(suppression[i])))
		next := m.Lerp(point, shifted[i], t).Normalize()
		total += next.Sub(point).Length()
		g.Nodes[i].Point = next
	}
	return total
}
