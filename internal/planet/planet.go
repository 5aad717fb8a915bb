package planet

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/logger"
	m "github.com/jostly/terragen/pkg/math"
)

// DefaultScale is the radius tile geometry is scaled to for display.
const DefaultScale = 10.0

// Planet is the dual tile graph. Vertices 0..NumCorners-1 are corners (primal
// face centroids); the rest are tile midpoints in tile order.
type Planet struct {
	Vertices []m.Vec3
	Tiles    []Tile
	Borders  []Border

	// Elevations holds the noise field value per corner vertex.
	Elevations    []float32
	VertexToTiles [][]TileIndex
	TileNeighbors [][]TileIndex

	NumCorners int
	Scale      float32

	plates []*Plate
	rng    *rand.Rand
}

// New builds a planet from the dual vertex array and one corner ring per tile.
// Tile i's midpoint must be vertex NumCorners+i. Panics unless every border is
// shared by exactly two tiles.
func New(vertices []m.Vec3, rings [][]VertexIndex, rng *rand.Rand) *Planet {
	numTiles := len(rings)
	numCorners := len(vertices) - numTiles

	tiles := make([]Tile, numTiles)
	for i, ring := range rings {
		tiles[i] = NewTile(ring, VertexIndex(numCorners+i))
	}

	borders := buildBorders(tiles)

	vertexToTiles := make([][]TileIndex, numCorners)
	for i := range tiles {
		for _, v := range tiles[i].Vertices {
			vertexToTiles[v] = append(vertexToTiles[v], TileIndex(i))
		}
	}

	neighbors := make([][]TileIndex, numTiles)
	for i := range tiles {
		neighbors[i] = make([]TileIndex, 0, len(tiles[i].Borders))
		for _, b := range tiles[i].Borders {
			other, ok := borders[b].OtherTile(TileIndex(i))
			if !ok {
				panic(fmt.Sprintf("planet: tile %d lists border %d it is not part of", i, b))
			}
			neighbors[i] = append(neighbors[i], other)
		}
	}

	noise := NewRidgedMulti(rng.Int64())

	p := &Planet{
		Vertices:      vertices,
		Tiles:         tiles,
		Borders:       borders,
		Elevations:    elevationField(noise, vertices[:numCorners]),
		VertexToTiles: vertexToTiles,
		TileNeighbors: neighbors,
		NumCorners:    numCorners,
		Scale:         DefaultScale,
		rng:           rng,
	}

	logger.Named("planet").Debug("planet built",
		zap.Int("tiles", numTiles),
		zap.Int("corners", numCorners),
		zap.Int("borders", len(borders)))
	return p
}

// buildBorders walks each tile ring pairwise and creates one border per
// distinct corner pair, linking it into both adjacent tiles.
func buildBorders(tiles []Tile) []Border {
	type pending struct {
		a, b  VertexIndex
		tiles []TileIndex
	}
	index := make(map[[2]VertexIndex]int)
	var found []pending

	for ti := range tiles {
		ring := tiles[ti].Vertices
		prev := ring[len(ring)-1]
		for _, curr := range ring {
			a, b := m.SortedPair(curr, prev)
			key := [2]VertexIndex{a, b}
			idx, ok := index[key]
			if !ok {
				idx = len(found)
				index[key] = idx
				found = append(found, pending{a: a, b: b})
			}
			found[idx].tiles = append(found[idx].tiles, TileIndex(ti))
			prev = curr
		}
	}

	borders := make([]Border, len(found))
	for i, f := range found {
		if len(f.tiles) != 2 {
			panic(fmt.Sprintf("planet: border (%d, %d) has tiles %v, want exactly 2", f.a, f.b, f.tiles))
		}
		borders[i] = NewBorder(f.a, f.b, f.tiles[0], f.tiles[1])
		bi := BorderIndex(i)
		tiles[f.tiles[0]].Borders = append(tiles[f.tiles[0]].Borders, bi)
		tiles[f.tiles[1]].Borders = append(tiles[f.tiles[1]].Borders, bi)
	}
	return borders
}

// NumTiles returns the tile count.
func (p *Planet) NumTiles() int {
	return len(p.Tiles)
}

// Plates returns the current plates; plate id i is at index i-1.
func (p *Planet) Plates() []*Plate {
	return p.plates
}

// Plate returns the plate with the given 1-based id, or nil.
func (p *Planet) Plate(id uint32) *Plate {
	if id == 0 || int(id) > len(p.plates) {
		return nil
	}
	return p.plates[id-1]
}

// TileNormal returns the unit surface normal at a tile's centre.
func (p *Planet) TileNormal(tile TileIndex) m.Vec3 {
	return p.Vertices[p.Tiles[tile].Midpoint].Normalize()
}

// TileMidpoint returns the tile centre at display scale.
func (p *Planet) TileMidpoint(tile TileIndex) m.Vec3 {
	return p.Vertices[p.Tiles[tile].Midpoint].Scale(p.Scale)
}

// TileBorderPoints returns the tile's corner ring at display scale.
func (p *Planet) TileBorderPoints(tile TileIndex) []m.Vec3 {
	ring := p.Tiles[tile].Vertices
	out := make([]m.Vec3, len(ring))
	for i, v := range ring {
		out[i] = p.Vertices[v].Scale(p.Scale)
	}
	return out
}

// TileElevation averages the noise over the tile's corners and adds the
// owning plate's baseline. Unassigned tiles get no baseline.
func (p *Planet) TileElevation(tile TileIndex) float32 {
	t := &p.Tiles[tile]
	var sum float32
	for _, v := range t.Vertices {
		sum += p.Elevations[v]
	}
	elevation := sum / float32(len(t.Vertices))
	if plate := p.Plate(t.PlateID); plate != nil {
		elevation += plate.BaseElevation
	}
	return elevation
}

// ElevationScale returns the lowest tile elevation and the elevation span.
func (p *Planet) ElevationScale() (lowest, span float32) {
	elevations := make([]float32, len(p.Tiles))
	for i := range p.Tiles {
		elevations[i] = p.TileElevation(TileIndex(i))
	}
	lo, hi := m.MinMax(elevations)
	return lo, hi - lo
}

// IsPlateBoundary reports whether the tiles meeting at a corner belong to
// more than one plate.
func (p *Planet) IsPlateBoundary(corner VertexIndex) bool {
	tiles := p.VertexToTiles[corner]
	for _, t := range tiles[1:] {
		if p.Tiles[t].PlateID != p.Tiles[tiles[0]].PlateID {
			return true
		}
	}
	return false
}
