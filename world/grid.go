package world

import (
	"sort"

	"github.com/milk9111/worldbuilder/common"
)

// Grid stores at most one artifact per cell of a width x height footprint.
// Depth is unbounded: each distinct quantized z is its own plane.
type Grid struct {
	width  int
	height int
	tiles  map[TileKey]Artifact
}

// NewGrid creates an empty grid. Dimensions below one are raised to one.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  max(width, 1),
		height: max(height, 1),
		tiles:  make(map[TileKey]Artifact),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// ClampKey returns the in-bounds key that SetTile would mutate for loc.
func (g *Grid) ClampKey(loc Vector3) TileKey {
	k := KeyOf(loc)
	k.X = common.ClampInt(k.X, 0, g.width-1)
	k.Y = common.ClampInt(k.Y, 0, g.height-1)
	return k
}

// SetTile installs a at the clamped cell under loc, replacing any occupant.
// Setting None clears the cell. It returns the key that was mutated and the
// previous occupant (None if the cell was empty).
func (g *Grid) SetTile(loc Vector3, a Artifact) (TileKey, Artifact) {
	k := g.ClampKey(loc)
	return k, g.SetKey(k, a)
}

// SetKey is SetTile for a key already known to be in bounds.
func (g *Grid) SetKey(k TileKey, a Artifact) Artifact {
	prev := g.tiles[k]
	delete(g.tiles, k)
	if !a.Empty() {
		g.tiles[k] = a
	}
	return prev
}

// Tile looks up the exact cell under loc. No clamping is applied.
func (g *Grid) Tile(loc Vector3) (Artifact, bool) {
	a, ok := g.tiles[KeyOf(loc)]
	return a, ok
}

// ClearTile removes the occupant of the clamped cell under loc.
func (g *Grid) ClearTile(loc Vector3) (TileKey, Artifact) {
	return g.SetTile(loc, None)
}

// Len is the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.tiles)
}

// Each visits every occupied cell in unspecified order until fn returns false.
func (g *Grid) Each(fn func(TileKey, Artifact) bool) {
	for k, a := range g.tiles {
		if !fn(k, a) {
			return
		}
	}
}

// Keys returns occupied keys ordered by plane, then row, then column.
func (g *Grid) Keys() []TileKey {
	keys := make([]TileKey, 0, len(g.tiles))
	for k := range g.tiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return keys
}
