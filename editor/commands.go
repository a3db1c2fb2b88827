package editor

import (
	"fmt"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/worldbuilder/brush"
	"github.com/milk9111/worldbuilder/common"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/world"
)

// Apply runs the brush at the cursor and records the change for undo. It
// reports whether anything changed.
func (s *Session) Apply() bool {
	stroke := s.brush.Apply(s.world)
	if stroke.Empty() {
		return false
	}
	s.pushUndo(undoEntry{stroke: stroke})
	return true
}

// SelectArtifact arms the brush with a palette artifact.
func (s *Session) SelectArtifact(name string) error {
	a, err := s.palette.Artifact(name)
	if err != nil {
		return err
	}
	s.brush.SetBehavior(brush.Place(a))
	return nil
}

// SelectArtifactValue arms the brush with arbitrary content.
func (s *Session) SelectArtifactValue(a world.Artifact) {
	if a.Empty() {
		s.brush.SetBehavior(brush.Null())
		return
	}
	s.brush.SetBehavior(brush.Place(a))
}

func (s *Session) SelectClear() { s.brush.SetBehavior(brush.Clear()) }

func (s *Session) SelectNull() { s.brush.SetBehavior(brush.Null()) }

// SelectSample arms a sampler; sampling a tile switches the brush to placing
// that tile.
func (s *Session) SelectSample() {
	s.brush.SetBehavior(brush.Sample(func(a world.Artifact) {
		s.log.WithField("model", a.Model).Debug("Sampled artifact")
		s.brush.SetBehavior(brush.Place(a))
	}))
}

// SelectMove binds the move brush to an existing entity.
func (s *Session) SelectMove(name string) error {
	e := s.world.EntityByName(name)
	if e == nil {
		return fmt.Errorf("%w: entity %q", ErrNotFound, name)
	}
	s.brush.SetBehavior(brush.MoveEntity(e, nil))
	return nil
}

// SelectMoveZone binds the move brush to a zone origin.
func (s *Session) SelectMoveZone(name string) error {
	z := s.world.ZoneByName(name)
	if z == nil {
		return fmt.Errorf("%w: zone %q", ErrNotFound, name)
	}
	s.brush.SetBehavior(brush.MoveEntity(z, nil))
	return nil
}

// SelectResize binds the resize brush to a zone.
func (s *Session) SelectResize(name string) error {
	z := s.world.ZoneByName(name)
	if z == nil {
		return fmt.Errorf("%w: zone %q", ErrNotFound, name)
	}
	s.brush.SetBehavior(brush.ResizeZone(z, nil))
	return nil
}

// Pick selects whatever sits under (x, y) for moving.
func (s *Session) Pick(x, y float64) world.Picked {
	picked := s.world.Pick(x, y)
	switch {
	case picked.Entity != nil:
		s.brush.SetBehavior(brush.MoveEntity(picked.Entity, nil))
	case picked.Zone != nil:
		s.brush.SetBehavior(brush.MoveEntity(picked.Zone, nil))
	}
	return picked
}

// CreateEntity adds an entity from a palette template at the cursor and arms
// a one-shot move brush for it. The brush goes idle once it has been placed.
func (s *Session) CreateEntity(template string) (*world.Entity, error) {
	name := world.UnusedName(s.world.EntityNames())
	e, err := s.palette.NewEntity(template, name, s.world.Cursor())
	if err != nil {
		return nil, err
	}
	s.world.AddEntity(e)
	if err := s.world.BindEntityModel(e); err != nil {
		s.log.WithError(err).WithField("entity", name).Warn("Using placeholder model")
	}
	s.pushUndo(undoEntry{added: []*world.Entity{e}})
	s.brush.SetBehavior(brush.MoveEntity(e, func() { s.brush.SetBehavior(brush.Null()) }))
	s.log.WithFields(logrus.Fields{"entity": name, "type": e.Type}).Info("Created entity")
	return e, nil
}

// CreateZone adds a unit zone at the cursor and arms a one-shot move brush.
func (s *Session) CreateZone() *world.Zone {
	name := world.UnusedName(s.world.ZoneNames())
	z := world.NewZone(name, s.world.Cursor(), world.Vector3{X: 1, Y: 1, Z: 1})
	s.world.AddZone(z)
	s.pushUndo(undoEntry{addedZones: []*world.Zone{z}})
	s.brush.SetBehavior(brush.MoveEntity(z, func() { s.brush.SetBehavior(brush.Null()) }))
	s.log.WithField("zone", name).Info("Created zone")
	return z
}

// DeleteEntity removes the named entity.
func (s *Session) DeleteEntity(name string) error {
	e := s.world.EntityByName(name)
	if e == nil {
		return fmt.Errorf("%w: entity %q", ErrNotFound, name)
	}
	s.world.RemoveEntity(e)
	s.pushUndo(undoEntry{removed: e})
	if s.brush.Behavior().Target() == world.Movable(e) {
		s.brush.SetBehavior(brush.Null())
	}
	return nil
}

// DeleteZone removes the named zone.
func (s *Session) DeleteZone(name string) error {
	z := s.world.ZoneByName(name)
	if z == nil {
		return fmt.Errorf("%w: zone %q", ErrNotFound, name)
	}
	s.world.RemoveZone(z)
	s.pushUndo(undoEntry{removedZone: z})
	if s.brush.Behavior().Target() == world.Movable(z) {
		s.brush.SetBehavior(brush.Null())
	}
	return nil
}

// RenameEntity changes an entity name. Duplicates are allowed here and
// rejected on save.
func (s *Session) RenameEntity(from, to string) error {
	e := s.world.EntityByName(from)
	if e == nil {
		return fmt.Errorf("%w: entity %q", ErrNotFound, from)
	}
	e.Name = to
	s.dirty = true
	return nil
}

// Rotate turns the brush facing. While moving an entity the entity itself
// turns.
func (s *Session) Rotate(clockwise bool) {
	bh := s.brush.Behavior()
	if e, ok := bh.Target().(*world.Entity); ok && bh.Kind() == brush.KindMoveEntity {
		prev := e.Direction
		e.SetDirection(prev.Rotate(clockwise))
		s.pushUndo(undoEntry{rotated: e, prevFacing: prev})
		return
	}
	s.brush.Rotate(clockwise)
}

// GrowBrush and ShrinkBrush step the brush size by two within the configured
// maximum.
func (s *Session) GrowBrush() {
	s.brush.SetSize(min(s.brush.Size()+2, s.cfg.Brush.MaxSize))
}

func (s *Session) ShrinkBrush() {
	s.brush.SetSize(s.brush.Size() - 2)
}

// MoveCursor shifts the cursor by whole cells.
func (s *Session) MoveCursor(dx, dy int) {
	c := s.world.Cursor()
	s.SetCursor(c.X+float64(dx), c.Y+float64(dy))
}

// SetCursor moves the cursor within the current layer.
func (s *Session) SetCursor(x, y float64) {
	c := s.world.Cursor()
	s.world.SetCursor(world.Vector3{X: x, Y: y, Z: c.Z})
}

// SnapCursor moves the cursor to the centre of the cell under (x, y).
func (s *Session) SnapCursor(x, y float64) {
	s.SetCursor(float64(common.Round(x)), float64(common.Round(y)))
}

// Layer is the selected layer name.
func (s *Session) Layer() string { return s.layer }

// SelectLayer moves the cursor to the depth of a configured layer.
func (s *Session) SelectLayer(name string) error {
	depth, ok := s.cfg.LayerDepth(name)
	if !ok {
		return fmt.Errorf("%w: layer %q", ErrNotFound, name)
	}
	c := s.world.Cursor()
	c.Z = depth
	s.world.SetCursor(c)
	s.layer = name
	return nil
}

// CopyArtifact encodes the brush artifact as a palette entry.
func (s *Session) CopyArtifact() ([]byte, error) {
	a, ok := s.brush.Behavior().Artifact()
	if !ok {
		return nil, fmt.Errorf("%w: brush holds no artifact", ErrNotFound)
	}
	name := path.Base(a.Model)
	for _, spec := range s.palette.Artifacts {
		if spec.Model == a.Model {
			name = spec.Name
			break
		}
	}
	return palette.MarshalArtifact(name, a)
}

// PasteArtifact arms the brush with a palette entry produced by CopyArtifact.
func (s *Session) PasteArtifact(data []byte) error {
	_, a, err := palette.UnmarshalArtifact(data)
	if err != nil {
		return err
	}
	s.SelectArtifactValue(a)
	return nil
}
