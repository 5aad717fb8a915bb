package planet

import m "github.com/jostly/terragen/pkg/math"

// Border is a dual edge separating exactly two tiles. Both pairs are sorted.
type Border struct {
	Vertices [2]VertexIndex
	Tiles    [2]TileIndex
}

// NewBorder creates a border with canonically ordered pairs.
func NewBorder(va, vb VertexIndex, ta, tb TileIndex) Border {
	va, vb = m.SortedPair(va, vb)
	ta, tb = m.SortedPair(ta, tb)
	return Border{
		Vertices: [2]VertexIndex{va, vb},
		Tiles:    [2]TileIndex{ta, tb},
	}
}

// OtherTile returns the tile on the far side of the border from tile.
// ok is false when tile is not one of the border's tiles.
func (b Border) OtherTile(tile TileIndex) (other TileIndex, ok bool) {
	switch tile {
	case b.Tiles[0]:
		return b.Tiles[1], true
	case b.Tiles[1]:
		return b.Tiles[0], true
	}
	return 0, false
}
