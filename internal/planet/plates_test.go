package planet_test

import (
	"math/rand/v2"
	"testing"

	"github.com/jostly/terragen/internal/planet"
	"github.com/jostly/terragen/internal/terrain"
)

func buildPlanet(t *testing.T, seed uint64, level int) *planet.Planet {
	t.Helper()
	g := terrain.New(rand.New(rand.NewPCG(seed, seed*31+7)))
	for range level {
		g.Subdivide()
	}
	return g.ToPlanet()
}

func checkCoverage(t *testing.T, p *planet.Planet) {
	t.Helper()

	owner := make([]uint32, p.NumTiles())
	for i, plate := range p.Plates() {
		if plate.ID != uint32(i+1) {
			t.Errorf("Plates()[%d].ID = %d, want %d", i, plate.ID, i+1)
		}
		for _, tile := range plate.Tiles {
			if owner[tile] != 0 {
				t.Errorf("tile %d is on plates %d and %d", tile, owner[tile], plate.ID)
			}
			owner[tile] = plate.ID
		}
	}
	for i, tile := range p.Tiles {
		if tile.PlateID == 0 {
			t.Errorf("tile %d has no plate", i)
			continue
		}
		if owner[i] != tile.PlateID {
			t.Errorf("tile %d PlateID = %d, but plate %d owns it", i, tile.PlateID, owner[i])
		}
		want := p.Plate(tile.PlateID).MovementAt(p.Vertices[tile.Midpoint])
		if tile.MovementVector != want {
			t.Errorf("tile %d movement = %v, want %v", i, tile.MovementVector, want)
		}
	}
}

func TestGrowPlates(t *testing.T) {
	p := buildPlanet(t, 1, 3)
	p.GrowPlates()

	if n := len(p.Plates()); n == 0 || n > planet.TargetPlates {
		t.Fatalf("len(Plates()) = %d, want 1..%d", n, planet.TargetPlates)
	}
	checkCoverage(t, p)
}

func TestGrowPlatesResets(t *testing.T) {
	p := buildPlanet(t, 2, 2)
	p.GrowPlates()
	p.GrowPlates()
	checkCoverage(t, p)
}

func TestMergePlates(t *testing.T) {
	p := buildPlanet(t, 3, 3)
	p.GrowPlates()
	before := len(p.Plates())

	p.MergePlates()

	plates := p.Plates()
	if len(plates) > before {
		t.Errorf("MergePlates() grew plate count from %d to %d", before, len(plates))
	}
	minSize := p.NumTiles() / 30
	if len(plates) > 1 {
		for _, plate := range plates {
			if plate.Size() < minSize {
				t.Errorf("plate %d has %d tiles, want >= %d", plate.ID, plate.Size(), minSize)
			}
		}
	}
	checkCoverage(t, p)
}

func TestMergePlatesPerimeter(t *testing.T) {
	p := buildPlanet(t, 4, 2)
	p.GrowPlates()
	p.MergePlates()

	for _, plate := range p.Plates() {
		for _, b := range plate.Borders() {
			border := p.Borders[b]
			a, c := p.Tiles[border.Tiles[0]].PlateID, p.Tiles[border.Tiles[1]].PlateID
			if a == c {
				t.Errorf("plate %d perimeter border %d is interior", plate.ID, b)
			}
			if a != plate.ID && c != plate.ID {
				t.Errorf("plate %d perimeter border %d does not touch it", plate.ID, b)
			}
		}
	}
}

func TestNeighborsSymmetric(t *testing.T) {
	p := buildPlanet(t, 5, 2)

	for i, neighbors := range p.TileNeighbors {
		for _, n := range neighbors {
			found := false
			for _, back := range p.TileNeighbors[n] {
				if back == planet.TileIndex(i) {
					found = true
				}
			}
			if !found {
				t.Errorf("tile %d lists neighbour %d, but not the reverse", i, n)
			}
		}
	}
	for i, b := range p.Borders {
		for _, ti := range b.Tiles {
			if !p.Tiles[ti].HasEdge(b.Vertices[0], b.Vertices[1]) {
				t.Errorf("border %d %v is not an edge of tile %d", i, b.Vertices, ti)
			}
		}
	}
}

func TestPlateStats(t *testing.T) {
	p := buildPlanet(t, 6, 2)
	p.GrowPlates()

	stats := p.PlateStats()
	if stats.Count != len(p.Plates()) {
		t.Errorf("Count = %d, want %d", stats.Count, len(p.Plates()))
	}
	total := 0
	for _, plate := range p.Plates() {
		total += plate.Size()
	}
	if want := float32(total) / float32(stats.Count); stats.MeanSize != want {
		t.Errorf("MeanSize = %v, want %v", stats.MeanSize, want)
	}
	if stats.MinSize > stats.MaxSize {
		t.Errorf("MinSize %d > MaxSize %d", stats.MinSize, stats.MaxSize)
	}
}
