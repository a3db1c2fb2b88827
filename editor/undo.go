package editor

import (
	"github.com/milk9111/worldbuilder/brush"
	"github.com/milk9111/worldbuilder/world"
)

// undoEntry is the inverse of one command.
type undoEntry struct {
	stroke brush.Stroke

	added       []*world.Entity
	addedZones  []*world.Zone
	removed     *world.Entity
	removedZone *world.Zone
	rotated     *world.Entity
	prevFacing  world.Direction
}

func (u undoEntry) empty() bool {
	return u.stroke.Empty() && len(u.added) == 0 && len(u.addedZones) == 0 &&
		u.removed == nil && u.removedZone == nil && u.rotated == nil
}

func (s *Session) pushUndo(u undoEntry) {
	if u.empty() {
		return
	}
	s.dirty = true
	if s.cfg.UndoDepth <= 0 {
		return
	}
	s.undo = append(s.undo, u)
	if len(s.undo) > s.cfg.UndoDepth {
		// drop oldest
		s.undo = s.undo[1:]
	}
}

// UndoDepth is the number of commands that can currently be undone.
func (s *Session) UndoDepth() int { return len(s.undo) }

// Undo reverts the most recent command. It reports false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	n := len(s.undo)
	if n == 0 {
		return false
	}
	u := s.undo[n-1]
	s.undo = s.undo[:n-1]

	u.stroke.Revert(s.world)
	for i := len(u.added) - 1; i >= 0; i-- {
		if u.added[i].World() == s.world {
			s.world.RemoveEntity(u.added[i])
		}
	}
	for i := len(u.addedZones) - 1; i >= 0; i-- {
		if u.addedZones[i].World() == s.world {
			s.world.RemoveZone(u.addedZones[i])
		}
	}
	if u.removed != nil && u.removed.World() == nil {
		s.world.AddEntity(u.removed)
	}
	if u.removedZone != nil && u.removedZone.World() == nil {
		s.world.AddZone(u.removedZone)
	}
	if u.rotated != nil {
		u.rotated.SetDirection(u.prevFacing)
	}

	// A move or resize bound to a record that no longer exists must not linger.
	if t := s.brush.Behavior().Target(); t != nil && !s.attached(t) {
		s.brush.SetBehavior(brush.Null())
	}
	s.dirty = true
	s.log.WithField("remaining", len(s.undo)).Debug("Undo")
	return true
}

func (s *Session) attached(m world.Movable) bool {
	switch t := m.(type) {
	case *world.Entity:
		return t.World() == s.world
	case *world.Zone:
		return t.World() == s.world
	}
	return false
}
