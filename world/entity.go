package world

import (
	"maps"

	"github.com/milk9111/worldbuilder/levels"
)

// Movable is anything the move brush can relocate.
type Movable interface {
	Position() Vector3
	SetPosition(Vector3)
}

// Entity is a free-form object placed in the world. A World owns its
// entities; the fields are the single source of truth for export and picking.
type Entity struct {
	Name      string
	Type      string
	Config    string
	Direction Direction
	Location  Vector3
	Aux       map[string]any

	model Model
	world *World
}

func (e *Entity) Position() Vector3 { return e.Location }

func (e *Entity) SetPosition(v Vector3) { e.Location = v }

// SetDirection updates the facing and forwards it to the model handle.
func (e *Entity) SetDirection(d Direction) {
	e.Direction = d
	if e.model != nil {
		e.model.SetDirection(d)
	}
}

// Model is the renderable handle resolved at construction time.
func (e *Entity) Model() Model {
	if e.model == nil {
		return &NullModel{}
	}
	return e.model
}

// SetModel attaches a renderable handle and aligns its facing.
func (e *Entity) SetModel(m Model) {
	e.model = m
	if m != nil {
		m.SetDirection(e.Direction)
	}
}

// World returns the owning world, or nil if the entity is detached.
func (e *Entity) World() *World { return e.world }

func (e *Entity) record() levels.EntityRecord {
	rec := levels.EntityRecord{
		Name:     e.Name,
		Type:     e.Type,
		Config:   e.Config,
		Location: e.Location.location(),
	}
	if e.Direction != Zero {
		rec.Direction = e.Direction.String()
	}
	if len(e.Aux) > 0 {
		rec.Aux = maps.Clone(e.Aux)
	}
	return rec
}

func entityFromRecord(r levels.EntityRecord) (*Entity, error) {
	dir, err := ParseDirection(r.Direction)
	if err != nil {
		return nil, err
	}
	return &Entity{
		Name:      r.Name,
		Type:      r.Type,
		Config:    r.Config,
		Direction: dir,
		Location:  vectorFromLocation(r.Location),
		Aux:       maps.Clone(r.Aux),
	}, nil
}
