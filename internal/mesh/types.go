// Package mesh flattens the primal mesh or the tile planet into renderable
// vertex, index and wireframe buffers, and exports them.
package mesh

// Vertex represents an emitted mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	// TexCoord addresses the elevation ramp: U is elevation, V selects the row.
	TexCoord [2]float32
}

// Mesh holds triangle and line buffers ready for upload or export.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	// Lines holds wireframe index pairs into Vertices. Empty unless requested.
	Lines  []uint32
	Bounds Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Flat is the mesh split into tightly packed attribute arrays.
type Flat struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	TexCoords []float32 `json:"texcoords"`
	Indices   []uint32  `json:"indices"`
	Lines     []uint32  `json:"lines,omitempty"`
}

// Ramp rows addressed by TexCoord V.
const (
	InteriorRow float32 = 0.25
	BorderRow   float32 = 0.75
)

// NumTriangles returns the triangle count.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Flatten packs the vertex attributes into separate arrays.
func (m *Mesh) Flatten() Flat {
	f := Flat{
		Positions: make([]float32, 0, len(m.Vertices)*3),
		Normals:   make([]float32, 0, len(m.Vertices)*3),
		TexCoords: make([]float32, 0, len(m.Vertices)*2),
		Indices:   m.Indices,
		Lines:     m.Lines,
	}
	for _, v := range m.Vertices {
		f.Positions = append(f.Positions, v.Position[:]...)
		f.Normals = append(f.Normals, v.Normal[:]...)
		f.TexCoords = append(f.TexCoords, v.TexCoord[:]...)
	}
	return f
}
