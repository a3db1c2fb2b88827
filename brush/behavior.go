package brush

import "github.com/milk9111/worldbuilder/world"

// MinEntityDistance is how close a moved entity may come to another one.
const MinEntityDistance = 1e-4

// Kind selects what a Behavior does when applied.
type Kind int

const (
	KindNull Kind = iota
	KindPlace
	KindClear
	KindSample
	KindMoveEntity
	KindResizeZone
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindPlace:
		return "Place"
	case KindClear:
		return "Clear"
	case KindSample:
		return "Sample"
	case KindMoveEntity:
		return "Move"
	case KindResizeZone:
		return "Resize"
	default:
		return "Unknown"
	}
}

// Behavior is one brush mode. Only the fields matching Kind are used.
type Behavior struct {
	kind Kind

	artifact world.Artifact
	target   world.Movable
	zone     *world.Zone

	sampled func(world.Artifact)
	done    func()
}

// Null does nothing when applied.
func Null() Behavior {
	return Behavior{kind: KindNull}
}

// Place installs a on each cell the brush covers.
func Place(a world.Artifact) Behavior {
	return Behavior{kind: KindPlace, artifact: a}
}

// Clear empties each cell the brush covers.
func Clear() Behavior {
	return Behavior{kind: KindClear}
}

// Sample reports the artifact under the cursor to fn. Empty cells are not
// reported.
func Sample(fn func(world.Artifact)) Behavior {
	return Behavior{kind: KindSample, sampled: fn}
}

// MoveEntity relocates target to the cursor and calls moved on success. The
// move is refused while another entity sits within MinEntityDistance.
func MoveEntity(target world.Movable, moved func()) Behavior {
	return Behavior{kind: KindMoveEntity, target: target, done: moved}
}

// ResizeZone stretches z so its far corner follows the cursor, then calls
// resized.
func ResizeZone(z *world.Zone, resized func()) Behavior {
	return Behavior{kind: KindResizeZone, zone: z, done: resized}
}

func (b Behavior) Kind() Kind { return b.kind }

// Sizable reports whether the behavior is repeated over the brush area.
func (b Behavior) Sizable() bool {
	return b.kind == KindPlace || b.kind == KindClear
}

// Artifact returns the artifact a Place behavior installs.
func (b Behavior) Artifact() (world.Artifact, bool) {
	return b.artifact, b.kind == KindPlace
}

// Target returns the record bound to a move or resize behavior.
func (b Behavior) Target() world.Movable {
	switch b.kind {
	case KindMoveEntity:
		return b.target
	case KindResizeZone:
		if b.zone != nil {
			return b.zone
		}
	}
	return nil
}

func (b Behavior) Direction() world.Direction {
	switch b.kind {
	case KindPlace:
		return b.artifact.Direction
	case KindMoveEntity:
		if e, ok := b.target.(*world.Entity); ok {
			return e.Direction
		}
	}
	return world.Zero
}

// SetDirection only affects Place. Other behaviors have no facing of their own.
func (b *Behavior) SetDirection(d world.Direction) {
	if b.kind == KindPlace {
		b.artifact.Direction = d
	}
}

// Apply runs the behavior once at loc and returns what it changed.
func (b *Behavior) Apply(w *world.World, loc world.Vector3) Stroke {
	var s Stroke
	switch b.kind {
	case KindPlace:
		key, prev := w.SetTile(loc, b.artifact)
		if prev != b.artifact {
			s.Cells = append(s.Cells, CellChange{Key: key, Prev: prev})
		}
	case KindClear:
		key, prev := w.ClearTile(loc)
		if !prev.Empty() {
			s.Cells = append(s.Cells, CellChange{Key: key, Prev: prev})
		}
	case KindSample:
		if a, ok := w.Tile(loc); ok && b.sampled != nil {
			b.sampled(a)
		}
	case KindMoveEntity:
		if b.target == nil || w.EntityNear(loc, MinEntityDistance, b.target) != nil {
			return s
		}
		s.Moved, s.From = b.target, b.target.Position()
		b.target.SetPosition(loc)
		if b.done != nil {
			b.done()
		}
	case KindResizeZone:
		if b.zone == nil {
			return s
		}
		s.Resized, s.Extent = b.zone, b.zone.Extent()
		b.zone.SetExtent(loc.Sub(b.zone.Origin))
		if b.done != nil {
			b.done()
		}
	}
	return s
}
