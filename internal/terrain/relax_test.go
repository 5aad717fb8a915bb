package terrain

import (
	"math"
	"testing"
)

func TestIdealCentroidDistance(t *testing.T) {
	// 20 faces: 4π/20 area per face.
	area := 4 * math.Pi / 20
	want := float32(2*math.Sqrt(math.Sqrt(3)*area)/3) * 0.9
	if got := IdealCentroidDistance(20); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("IdealCentroidDistance(20) = %v, want %v", got, want)
	}
	if IdealCentroidDistance(80) >= IdealCentroidDistance(20) {
		t.Error("IdealCentroidDistance() should shrink as faces increase")
	}
}

func TestRelaxKeepsNodesOnSphere(t *testing.T) {
	g := newTestGenerator(9)
	g.Subdivide()
	g.Subdivide()
	g.Distort(40)

	if shift := g.Relax(0.5); shift <= 0 {
		t.Errorf("Relax() = %v, want > 0", shift)
	}
	for i, n := range g.Nodes {
		if l := n.Point.Length(); math.Abs(float64(l)-1) > 1e-4 {
			t.Errorf("node %d length after Relax = %v, want 1", i, l)
		}
	}
	checkLinks(t, g)
}

func TestRelaxConverges(t *testing.T) {
	g := newTestGenerator(10)
	g.Subdivide()
	g.Subdivide()
	g.Subdivide()
	g.Distort(uint32(g.NumEdges() / 10))

	shifts := make([]float32, 40)
	for i := range shifts {
		shifts[i] = g.Relax(0.5)
	}

	early := (shifts[0] + shifts[1] + shifts[2]) / 3
	late := (shifts[37] + shifts[38] + shifts[39]) / 3
	if late >= early {
		t.Errorf("Relax() shift went from %v to %v, want decreasing", early, late)
	}
}

func TestRelaxConvergesAtLevel6(t *testing.T) {
	if testing.Short() {
		t.Skip("level 6 relaxation is slow")
	}

	g := newTestGenerator(11)
	for range 6 {
		g.Subdivide()
	}
	g.Distort(uint32(g.NumEdges() / 10))

	shifts := make([]float32, 300)
	for i := range shifts {
		shifts[i] = g.Relax(0.5)
	}

	var late float32
	for _, s := range shifts[len(shifts)-10:] {
		late += s
	}
	late /= 10
	if late > 0.1*shifts[0] {
		t.Errorf("Relax() shift went from %v to %v after 300 passes, want at most %v",
			shifts[0], late, 0.1*shifts[0])
	}
	checkLinks(t, g)
}
