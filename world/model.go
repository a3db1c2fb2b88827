package world

// Model is an opaque renderable handle. The world only ever sets its facing.
type Model interface {
	SetDirection(Direction)
	Clone() Model
}

// ModelProvider resolves renderable handles for artifacts and entities.
type ModelProvider interface {
	ArtifactModel(a Artifact) (Model, error)
	EntityModel(e *Entity) (Model, error)
}

// NullModel is the placeholder used when a provider cannot build a model.
type NullModel struct {
	Facing Direction
}

func (m *NullModel) SetDirection(d Direction) { m.Facing = d }

func (m *NullModel) Clone() Model {
	c := *m
	return &c
}
