package brush

import "github.com/milk9111/worldbuilder/world"

const (
	NoteNotStatic      = "NT_ST"
	NoteNotTraversable = "NT_TRV"
)

// Preview is what the view draws under the cursor for a behavior.
type Preview struct {
	Kind        Kind
	Model       string
	Direction   world.Direction
	Annotations []string
}

func (b Behavior) Preview() Preview {
	p := Preview{Kind: b.kind, Direction: b.Direction()}
	switch b.kind {
	case KindPlace:
		p.Model = b.artifact.Model
		if !b.artifact.Static {
			p.Annotations = append(p.Annotations, NoteNotStatic)
		}
		if !b.artifact.Traversable {
			p.Annotations = append(p.Annotations, NoteNotTraversable)
		}
	case KindMoveEntity:
		switch t := b.target.(type) {
		case *world.Entity:
			p.Model = t.Type
		case *world.Zone:
			p.Model = "zone:" + t.Name
		}
	case KindResizeZone:
		if b.zone != nil {
			p.Model = "zone:" + b.zone.Name
		}
	}
	return p
}
