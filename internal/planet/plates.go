package planet

import (
	"cmp"
	"slices"

	"github.com/emirpasic/gods/lists/arraylist"
	"go.uber.org/zap"

	"github.com/jostly/terragen/internal/logger"
	m "github.com/jostly/terragen/pkg/math"
)

// Plate growth parameters.
const (
	// TargetPlates is the number of plates seeded before growth.
	TargetPlates = 27
	// maxSeedFailures bounds consecutive seed attempts that land next to an
	// existing plate.
	maxSeedFailures = 10000
	// mergeDivisor sets the minimum plate size to NumTiles/mergeDivisor.
	mergeDivisor = 30
)

// assignment is a pending (tile, plate) entry in the growth queue.
type assignment struct {
	tile  TileIndex
	plate uint32
}

// GrowPlates clears all plate assignments, seeds up to TargetPlates plates at
// random corners and floods them outward until every tile is assigned.
// Queue entries are drawn biased toward older entries, so plates grow in
// ragged fronts rather than rings.
func (p *Planet) GrowPlates() {
	queue := p.initializePlates(TargetPlates)

	for !queue.Empty() {
		r := p.rng.Float32()
		idx := int(r * r * float32(queue.Size()))
		value, _ := queue.Get(idx)
		queue.Remove(idx)
		next := value.(assignment)

		if p.Tiles[next.tile].PlateID != 0 {
			continue
		}
		p.assignTile(p.plates[next.plate-1], next.tile)
		p.enqueueNeighbors(queue, next.tile, next.plate)
	}

	logger.Named("planet").Info("plates grown", zap.Int("plates", len(p.plates)))
}

// initializePlates seeds plates on the three tiles around randomly chosen
// corners, skipping corners touching an already assigned tile. It returns the
// initial growth queue of unassigned neighbours.
func (p *Planet) initializePlates(numPlates int) *arraylist.List {
	for i := range p.Tiles {
		p.Tiles[i].PlateID = 0
		p.Tiles[i].MovementVector = m.Zero
	}
	p.plates = nil
	queue := arraylist.New()

	if p.NumCorners == 0 {
		return queue
	}

	failed := 0
	for len(p.plates) < numPlates && failed < maxSeedFailures {
		corner := p.VertexToTiles[p.rng.IntN(p.NumCorners)]
		taken := slices.ContainsFunc(corner, func(t TileIndex) bool {
			return p.Tiles[t].PlateID != 0
		})
		if taken {
			failed++
			continue
		}
		failed = 0

		plate := NewPlate(uint32(len(p.plates)+1), p.rng)
		p.plates = append(p.plates, plate)
		for _, t := range corner {
			p.assignTile(plate, t)
		}
		for _, t := range corner {
			p.enqueueNeighbors(queue, t, plate.ID)
		}
	}

	if len(p.plates) < numPlates {
		logger.Named("planet").Warn("could not seed all plates",
			zap.Int("seeded", len(p.plates)),
			zap.Int("wanted", numPlates))
	}
	return queue
}

func (p *Planet) enqueueNeighbors(queue *arraylist.List, tile TileIndex, plate uint32) {
	for _, n := range p.TileNeighbors[tile] {
		if p.Tiles[n].PlateID == 0 {
			queue.Add(assignment{tile: n, plate: plate})
		}
	}
}

func (p *Planet) assignTile(plate *Plate, tile TileIndex) {
	t := &p.Tiles[tile]
	plate.AddTile(tile, t.Borders)
	t.PlateID = plate.ID
	t.MovementVector = plate.MovementAt(p.Vertices[t.Midpoint])
}

// MergePlates repeatedly folds the smallest plate into its smallest
// neighbouring plate until every plate holds at least NumTiles/30 tiles.
// Surviving plates are renumbered 1..n and every tile's plate id and
// movement vector are refreshed from its final plate.
func (p *Planet) MergePlates() {
	log := logger.Named("planet")
	minSize := len(p.Tiles) / mergeDivisor
	log.Debug("merging plates", zap.Int("min_size", minSize))

	plates := slices.Clone(p.plates)
	for len(plates) > 1 {
		slices.SortStableFunc(plates, func(a, b *Plate) int {
			return cmp.Or(cmp.Compare(a.Size(), b.Size()), cmp.Compare(a.ID, b.ID))
		})
		smallest := plates[0]
		if smallest.Size() >= minSize {
			break
		}

		target := p.smallestNeighbor(smallest, plates[1:])
		if target == nil {
			log.Warn("plate has no neighbours", zap.Uint32("plate", smallest.ID))
			break
		}

		log.Debug("merging plate",
			zap.Uint32("plate", smallest.ID),
			zap.Int("size", smallest.Size()),
			zap.Uint32("into", target.ID),
			zap.Int("into_size", target.Size()))

		for _, t := range smallest.Tiles {
			p.Tiles[t].PlateID = target.ID
		}
		target.Absorb(smallest)
		plates = plates[1:]
	}

	slices.SortFunc(plates, func(a, b *Plate) int { return cmp.Compare(a.ID, b.ID) })
	for i, plate := range plates {
		plate.ID = uint32(i + 1)
		for _, t := range plate.Tiles {
			tile := &p.Tiles[t]
			tile.PlateID = plate.ID
			tile.MovementVector = plate.MovementAt(p.Vertices[tile.Midpoint])
		}
	}
	p.plates = plates

	log.Info("plates merged", zap.Int("plates", len(plates)))
}

// smallestNeighbor returns the first plate in candidates, which are sorted by
// size, that owns a tile adjacent to plate.
func (p *Planet) smallestNeighbor(plate *Plate, candidates []*Plate) *Plate {
	adjacent := make(map[uint32]bool)
	for _, t := range plate.Tiles {
		for _, n := range p.TileNeighbors[t] {
			if id := p.Tiles[n].PlateID; id != plate.ID {
				adjacent[id] = true
			}
		}
	}
	for _, c := range candidates {
		if adjacent[c.ID] {
			return c
		}
	}
	return nil
}

// PlateStats summarises plate sizes.
type PlateStats struct {
	Count    int
	MinSize  int
	MaxSize  int
	MeanSize float32
	// SizeVariance is the population variance of plate sizes, NaN below two plates.
	SizeVariance float32
}

// PlateStats returns size statistics over the current plates.
func (p *Planet) PlateStats() PlateStats {
	sizes := make([]float32, len(p.plates))
	for i, plate := range p.plates {
		sizes[i] = float32(plate.Size())
	}
	lo, hi := m.MinMax(sizes)
	stats := PlateStats{
		Count:        len(p.plates),
		MeanSize:     m.Mean(sizes),
		SizeVariance: m.Variance(sizes),
	}
	if len(sizes) > 0 {
		stats.MinSize, stats.MaxSize = int(lo), int(hi)
	}
	return stats
}
