package world

import (
	"errors"
	"slices"

	"github.com/jakecoffman/cp"
)

// Metadata is the world-level configuration carried through save and load.
type Metadata struct {
	Friction      float64
	Weather       string
	Script        string
	MetersPerUnit float64
	LogicPerUnit  float64
}

// World is the editable model: the tile grid, entity and zone registries,
// the cursor and world metadata. It is not safe for concurrent mutation.
type World struct {
	grid     *Grid
	meta     Metadata
	cursor   Vector3
	elapsed  float64
	entities []*Entity
	zones    []*Zone

	provider ModelProvider
	models   map[Artifact]Model
}

// New creates an empty world.
func New(width, height int) (*World, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	return &World{
		grid:   NewGrid(width, height),
		models: make(map[Artifact]Model),
	}, nil
}

func (w *World) Width() int  { return w.grid.Width() }
func (w *World) Height() int { return w.grid.Height() }

// Grid exposes the tile store.
func (w *World) Grid() *Grid { return w.grid }

func (w *World) Metadata() Metadata     { return w.meta }
func (w *World) SetMetadata(m Metadata) { w.meta = m }

// SetTile installs a on the clamped cell under loc. See Grid.SetTile.
func (w *World) SetTile(loc Vector3, a Artifact) (TileKey, Artifact) {
	return w.grid.SetTile(loc, a)
}

// Tile is an exact lookup, without clamping.
func (w *World) Tile(loc Vector3) (Artifact, bool) {
	return w.grid.Tile(loc)
}

func (w *World) ClearTile(loc Vector3) (TileKey, Artifact) {
	return w.grid.ClearTile(loc)
}

// Cursor is the location brushes act on.
func (w *World) Cursor() Vector3 { return w.cursor }

// SetCursor moves the cursor, clamping x and y into the world footprint.
func (w *World) SetCursor(v Vector3) {
	v.X = cp.Clamp(v.X, 0, float64(w.Width()-1))
	v.Y = cp.Clamp(v.Y, 0, float64(w.Height()-1))
	w.cursor = v
}

// Tick advances editor time. The model itself is time independent.
func (w *World) Tick(dt float64) {
	if dt > 0 {
		w.elapsed += dt
	}
}

// Elapsed is the total time passed to Tick.
func (w *World) Elapsed() float64 { return w.elapsed }

// AddEntity attaches e. Attaching an entity that already has an owner panics.
func (w *World) AddEntity(e *Entity) {
	if e.world != nil {
		panic(&AssociationError{Op: "add", Kind: "entity", Name: e.Name})
	}
	e.world = w
	w.entities = append(w.entities, e)
}

// RemoveEntity detaches e. Removing an entity owned elsewhere panics.
func (w *World) RemoveEntity(e *Entity) {
	if e.world != w {
		panic(&AssociationError{Op: "remove", Kind: "entity", Name: e.Name})
	}
	e.world = nil
	w.entities = slices.DeleteFunc(w.entities, func(o *Entity) bool { return o == e })
}

// Entities returns a snapshot of the registry.
func (w *World) Entities() []*Entity {
	return slices.Clone(w.entities)
}

// EntityByName returns the first entity named name.
func (w *World) EntityByName(name string) *Entity {
	for _, e := range w.entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// EntityNames lists entity names in registry order.
func (w *World) EntityNames() []string {
	names := make([]string, 0, len(w.entities))
	for _, e := range w.entities {
		names = append(names, e.Name)
	}
	return names
}

// EntityNear returns an entity other than skip closer than eps to loc.
func (w *World) EntityNear(loc Vector3, eps float64, skip Movable) *Entity {
	for _, e := range w.entities {
		if Movable(e) == skip {
			continue
		}
		if e.Location.Distance(loc) < eps {
			return e
		}
	}
	return nil
}

// AddZone attaches z. Attaching a zone that already has an owner panics.
func (w *World) AddZone(z *Zone) {
	if z.world != nil {
		panic(&AssociationError{Op: "add", Kind: "zone", Name: z.Name})
	}
	z.world = w
	w.zones = append(w.zones, z)
}

// RemoveZone detaches z. Removing a zone owned elsewhere panics.
func (w *World) RemoveZone(z *Zone) {
	if z.world != w {
		panic(&AssociationError{Op: "remove", Kind: "zone", Name: z.Name})
	}
	z.world = nil
	w.zones = slices.DeleteFunc(w.zones, func(o *Zone) bool { return o == z })
}

func (w *World) Zones() []*Zone {
	return slices.Clone(w.zones)
}

func (w *World) ZoneByName(name string) *Zone {
	for _, z := range w.zones {
		if z.Name == name {
			return z
		}
	}
	return nil
}

func (w *World) ZoneNames() []string {
	names := make([]string, 0, len(w.zones))
	for _, z := range w.zones {
		names = append(names, z.Name)
	}
	return names
}

// Pick returns the entity or zone under the point (x, y). Entities win over
// zones when both are hit.
func (w *World) Pick(x, y float64) Picked {
	return NewPickIndex(w.entities, w.zones).Pick(x, y)
}

// SetProvider installs the model provider used by ArtifactModel and
// EntityModel. Cached handles are dropped.
func (w *World) SetProvider(p ModelProvider) {
	w.provider = p
	clear(w.models)
}

// ArtifactModel returns a clone of the cached handle for a, building it on
// first use. On failure the placeholder is returned with the error.
func (w *World) ArtifactModel(a Artifact) (Model, error) {
	if m, ok := w.models[a]; ok {
		return m.Clone(), nil
	}
	if w.provider == nil {
		return &NullModel{Facing: a.Direction}, nil
	}
	m, err := w.provider.ArtifactModel(a)
	if err != nil || m == nil {
		m = &NullModel{}
		m.SetDirection(a.Direction)
		w.models[a] = m
		return m.Clone(), &ConstructionError{Kind: "artifact", Ref: a.Model, Err: orMissing(err)}
	}
	m.SetDirection(a.Direction)
	w.models[a] = m
	return m.Clone(), nil
}

// BindEntityModel resolves and attaches e's model, falling back to the
// placeholder on failure.
func (w *World) BindEntityModel(e *Entity) error {
	if w.provider == nil {
		e.SetModel(&NullModel{})
		return nil
	}
	m, err := w.provider.EntityModel(e)
	if err != nil || m == nil {
		e.SetModel(&NullModel{})
		return &ConstructionError{Kind: "entity", Ref: e.Type, Err: orMissing(err)}
	}
	e.SetModel(m)
	return nil
}

var errNoModel = errors.New("provider returned no model")

func orMissing(err error) error {
	if err != nil {
		return err
	}
	return errNoModel
}
