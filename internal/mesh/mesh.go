package mesh

import (
	"math"

	"github.com/jostly/terragen/internal/planet"
	"github.com/jostly/terragen/internal/terrain"
)

// elevationExponent shapes the ramp so lowlands take more of it.
const elevationExponent = 1.5

// FromGenerator emits the primal mesh with unshared vertices: three per face,
// all carrying the face normal.
func FromGenerator(g *terrain.Generator, wireframe bool) *Mesh {
	lo, hi := g.ElevationRange()
	span := hi - lo

	vertices := make([]Vertex, 0, len(g.Faces)*3)
	indices := make([]uint32, 0, len(g.Faces)*3)
	var lines []uint32
	if wireframe {
		lines = make([]uint32, 0, len(g.Faces)*6)
	}
	bounds := emptyBounds()

	for _, f := range g.Faces {
		normal := g.FaceMidpoint(f).Normalize().Array()
		baseIdx := uint32(len(vertices))
		for _, p := range f.Points {
			node := &g.Nodes[p]
			pos := node.Point.Array()
			updateBounds(&bounds, pos)
			vertices = append(vertices, Vertex{
				Position: pos,
				Normal:   normal,
				TexCoord: [2]float32{rampU(node.Elevation, lo, span), InteriorRow},
			})
		}
		indices = append(indices, baseIdx, baseIdx+1, baseIdx+2)
		if wireframe {
			lines = append(lines,
				baseIdx, baseIdx+1,
				baseIdx+1, baseIdx+2,
				baseIdx+2, baseIdx,
			)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices, Lines: lines, Bounds: bounds}
}

// FromPlanet emits every tile as a triangle fan: the ring corners first, then
// the tile midpoint as the fan centre. Corners on a plate boundary use the
// border row of the ramp.
func FromPlanet(p *planet.Planet, wireframe bool) *Mesh {
	lo, span := p.ElevationScale()

	vertices := make([]Vertex, 0, len(p.Tiles)*7)
	indices := make([]uint32, 0, len(p.Tiles)*18)
	var lines []uint32
	bounds := emptyBounds()

	for i := range p.Tiles {
		tile := planet.TileIndex(i)
		ring := p.Tiles[i].Vertices
		points := p.TileBorderPoints(tile)
		normal := p.TileNormal(tile).Array()
		u := rampU(p.TileElevation(tile), lo, span)

		first := uint32(len(vertices))
		for k, pt := range points {
			v := InteriorRow
			if p.IsPlateBoundary(ring[k]) {
				v = BorderRow
			}
			pos := pt.Array()
			updateBounds(&bounds, pos)
			vertices = append(vertices, Vertex{Position: pos, Normal: normal, TexCoord: [2]float32{u, v}})
		}
		center := uint32(len(vertices))
		vertices = append(vertices, Vertex{
			Position: p.TileMidpoint(tile).Array(),
			Normal:   normal,
			TexCoord: [2]float32{u, InteriorRow},
		})

		n := uint32(len(points))
		for j := range n {
			indices = append(indices, center, first+j, first+(j+1)%n)
			if wireframe {
				lines = append(lines, first+j, first+(j+1)%n)
			}
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices, Lines: lines, Bounds: bounds}
}

// rampU maps an elevation to the ramp's U axis: high ground toward 0.
func rampU(elevation, lo, span float32) float32 {
	if span <= 0 {
		return 1
	}
	e := (elevation - lo) / span
	return 1 - float32(math.Pow(float64(e), elevationExponent))
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, pos [3]float32) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], pos[i])
		b.Max[i] = max(b.Max[i], pos[i])
	}
}
