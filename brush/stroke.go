package brush

import "github.com/milk9111/worldbuilder/world"

// CellChange is the occupant a cell held before a stroke touched it.
type CellChange struct {
	Key  world.TileKey
	Prev world.Artifact
}

// Stroke records everything one brush application changed so it can be
// reverted.
type Stroke struct {
	Cells []CellChange

	Moved world.Movable
	From  world.Vector3

	Resized *world.Zone
	Extent  world.Vector3
}

// Empty reports whether the stroke changed nothing.
func (s Stroke) Empty() bool {
	return len(s.Cells) == 0 && s.Moved == nil && s.Resized == nil
}

// Merge appends o's changes after s's.
func (s *Stroke) Merge(o Stroke) {
	s.Cells = append(s.Cells, o.Cells...)
	if o.Moved != nil && s.Moved == nil {
		s.Moved, s.From = o.Moved, o.From
	}
	if o.Resized != nil && s.Resized == nil {
		s.Resized, s.Extent = o.Resized, o.Extent
	}
}

// Revert restores the recorded state, newest change first.
func (s Stroke) Revert(w *world.World) {
	for i := len(s.Cells) - 1; i >= 0; i-- {
		c := s.Cells[i]
		w.Grid().SetKey(c.Key, c.Prev)
	}
	if s.Moved != nil {
		s.Moved.SetPosition(s.From)
	}
	if s.Resized != nil {
		s.Resized.SetExtent(s.Extent)
	}
}
