package planet

import (
	"math/rand/v2"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	m "github.com/jostly/terragen/pkg/math"
)

// Plate generation parameters.
const (
	oceanRatio         = 0.6
	oceanElevationMin  = -500
	oceanElevationMax  = -100
	landElevationMin   = -50
	landElevationMax   = 250
	minAngularVelocity = 0.1
	maxAngularVelocity = 0.4
)

// Plate is a connected group of tiles sharing a rigid rotation and an
// elevation baseline.
type Plate struct {
	ID              uint32
	Tiles           []TileIndex
	BaseElevation   float32
	Axis            m.Vec3
	AngularVelocity float32

	// borders holds the plate perimeter: borders owned by exactly one of its tiles.
	borders *treeset.Set
}

// NewPlate creates an empty plate with a random ocean or continent baseline
// and a random rotation.
func NewPlate(id uint32, rng *rand.Rand) *Plate {
	var base float32
	if rng.Float32() < oceanRatio {
		base = uniform(rng, oceanElevationMin, oceanElevationMax)
	} else {
		base = uniform(rng, landElevationMin, landElevationMax)
	}

	var axis m.Vec3
	for axis.Length() < 0.01 {
		axis = m.Vec3{X: uniform(rng, -1, 1), Y: uniform(rng, -1, 1), Z: uniform(rng, -1, 1)}
	}

	return &Plate{
		ID:              id,
		BaseElevation:   base,
		Axis:            axis.Normalize(),
		AngularVelocity: uniform(rng, minAngularVelocity, maxAngularVelocity),
		borders:         treeset.NewWith(utils.UInt32Comparator),
	}
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

// AddTile appends a tile and toggles each of its borders in the perimeter set.
// A border shared with a tile already on the plate becomes interior and drops out.
func (p *Plate) AddTile(tile TileIndex, borders []BorderIndex) {
	p.Tiles = append(p.Tiles, tile)
	for _, b := range borders {
		p.toggleBorder(b)
	}
}

func (p *Plate) toggleBorder(b BorderIndex) {
	if p.borders.Contains(b) {
		p.borders.Remove(b)
	} else {
		p.borders.Add(b)
	}
}

// Borders returns the perimeter border indices in ascending order.
func (p *Plate) Borders() []BorderIndex {
	values := p.borders.Values()
	out := make([]BorderIndex, len(values))
	for i, v := range values {
		out[i] = v.(BorderIndex)
	}
	return out
}

// Size returns the number of tiles on the plate.
func (p *Plate) Size() int {
	return len(p.Tiles)
}

// Absorb moves every tile of other onto p. Perimeters combine by symmetric
// difference, so the borders the two plates shared become interior.
func (p *Plate) Absorb(other *Plate) {
	p.Tiles = append(p.Tiles, other.Tiles...)
	for _, v := range other.borders.Values() {
		p.toggleBorder(v.(BorderIndex))
	}
	other.Tiles = nil
	other.borders.Clear()
}

// MovementAt returns the rigid-body velocity of the plate at point: the
// rotation axis crossed with the point's offset from the axis, scaled by the
// angular velocity.
func (p *Plate) MovementAt(point m.Vec3) m.Vec3 {
	onAxis := p.Axis.Scale(point.Dot(p.Axis))
	perpendicular := point.Sub(onAxis)
	return p.Axis.Cross(perpendicular).Scale(p.AngularVelocity)
}
