package terrain

import (
	"slices"

	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/logger"
)

// Edge rotation acceptance thresholds. They shape how irregular a distorted
// mesh becomes and are kept as-is rather than derived.
const (
	// MaxFacesBeforeGain rejects a flip when a far node already has this many faces.
	MaxFacesBeforeGain = 6
	// MinFacesBeforeLoss rejects a flip when an edge endpoint has this many faces or fewer.
	MinFacesBeforeLoss = 5
	// MinLengthRatio and MaxLengthRatio bound old/new edge length.
	MinLengthRatio = 0.5
	MaxLengthRatio = 2.0
	// NearDotThreshold is the minimum projection of the far nodes onto the old
	// edge direction as seen from its first endpoint.
	NearDotThreshold = 0.2
	// FarDotThreshold is the maximum projection as seen from the second endpoint.
	FarDotThreshold = -0.2
)

// rotationPredicate decides whether edge old0-old1 may be replaced by new0-new1.
func rotationPredicate(old0, old1, new0, new1 *Node) bool {
	if len(new0.Faces) > MaxFacesBeforeGain || len(new1.Faces) > MaxFacesBeforeGain ||
		len(old0.Faces) <= MinFacesBeforeLoss || len(old1.Faces) <= MinFacesBeforeLoss {
		return false
	}

	oldLen := old0.Point.Distance(old1.Point)
	newLen := new0.Point.Distance(new1.Point)
	ratio := oldLen / newLen
	if ratio >= MaxLengthRatio || ratio <= MinLengthRatio {
		return false
	}

	v0 := old1.Point.Sub(old0.Point).Div(oldLen)
	v1 := new0.Point.Sub(old0.Point).Normalize()
	v2 := new1.Point.Sub(old0.Point).Normalize()
	if v0.Dot(v1) < NearDotThreshold || v0.Dot(v2) < NearDotThreshold {
		return false
	}

	v3 := new0.Point.Sub(old1.Point).Normalize()
	v4 := new1.Point.Sub(old1.Point).Normalize()
	if v0.Dot(v3) > FarDotThreshold || v0.Dot(v4) > FarDotThreshold {
		return false
	}
	return true
}

// ConditionalRotateEdge flips the edge to connect the two nodes opposite it in
// its adjacent faces, if rotationPredicate accepts the new shape. Node, edge
// and face links are updated in place. Returns false when rejected.
func (g *Generator) ConditionalRotateEdge(edgeIndex uint32) bool {
	edge := &g.Edges[edgeIndex]
	if len(edge.Faces) != 2 {
		panic("terrain: rotating edge without exactly two faces")
	}
	fi0, fi1 := edge.Faces[0], edge.Faces[1]
	face0, face1 := &g.Faces[fi0], &g.Faces[fi1]

	far0 := face0.OppositeNodeIndex(edge.A, edge.B)
	far1 := face1.OppositeNodeIndex(edge.A, edge.B)

	// Faces share a winding, so the edge runs old0->old1 in face0 and
	// old1->old0 in face1.
	newIdx0 := face0.Points[far0]
	oldIdx0 := face0.Points[wrap(far0+1)]
	newIdx1 := face1.Points[far1]
	oldIdx1 := face1.Points[wrap(far1+1)]

	old0, old1 := &g.Nodes[oldIdx0], &g.Nodes[oldIdx1]
	new0, new1 := &g.Nodes[newIdx0], &g.Nodes[newIdx1]

	if !rotationPredicate(old0, old1, new0, new1) {
		return false
	}

	// Edge old0-new1 moves from face1 to face0, old1-new0 from face0 to face1.
	movedEdge0 := face1.Edges[wrap(far1+2)]
	movedEdge1 := face0.Edges[wrap(far0+2)]

	old0.Edges = remove(old0.Edges, edgeIndex)
	old1.Edges = remove(old1.Edges, edgeIndex)
	old0.Faces = remove(old0.Faces, fi1)
	old1.Faces = remove(old1.Faces, fi0)

	new0.Edges = append(new0.Edges, edgeIndex)
	new1.Edges = append(new1.Edges, edgeIndex)
	new0.Faces = append(new0.Faces, fi1)
	new1.Faces = append(new1.Faces, fi0)

	me0, me1 := &g.Edges[movedEdge0], &g.Edges[movedEdge1]
	me0.Faces = append(remove(me0.Faces, fi1), fi0)
	me1.Faces = append(remove(me1.Faces, fi0), fi1)

	face0.Points[wrap(far0+2)] = newIdx1
	face1.Points[wrap(far1+2)] = newIdx0
	face0.Edges[wrap(far0+1)] = movedEdge0
	face1.Edges[wrap(far1+1)] = movedEdge1
	face0.Edges[wrap(far0+2)] = edgeIndex
	face1.Edges[wrap(far1+2)] = edgeIndex

	rotated := NewEdge(newIdx0, newIdx1)
	edge.A, edge.B = rotated.A, rotated.B
	return true
}

// Distort performs degree accepted edge rotations. Each rotation starts at a
// random edge and probes forward, wrapping around. Returns false when a full
// pass over all edges finds nothing to rotate.
func (g *Generator) Distort(degree uint32) bool {
	logger.Debug("distorting", zap.Uint32("degree", degree))
	numEdges := uint32(len(g.Edges))
	for i := uint32(0); i < degree; i++ {
		edgeIndex := uint32(g.rng.IntN(int(numEdges)))
		attempts := uint32(0)
		for !g.ConditionalRotateEdge(edgeIndex) {
			attempts++
			if attempts >= numEdges {
				logger.Debug("distortion saturated", zap.Uint32("rotated", i), zap.Uint32("requested", degree))
				return false
			}
			edgeIndex = (edgeIndex + 1) % numEdges
		}
	}
	return true
}

func remove(s []uint32, v uint32) []uint32 {
	return slices.DeleteFunc(s, func(x uint32) bool { return x == v })
}
