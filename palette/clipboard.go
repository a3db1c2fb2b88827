package palette

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/worldbuilder/world"
)

// MarshalArtifact renders a as a single palette entry, the format used for
// copying brush content between editors.
func MarshalArtifact(name string, a world.Artifact) ([]byte, error) {
	spec := ArtifactSpec{
		Name:        name,
		Model:       a.Model,
		Direction:   a.Direction.String(),
		Traversable: a.Traversable,
		Static:      a.Static,
	}
	return yaml.Marshal(spec)
}

// UnmarshalArtifact parses one palette entry produced by MarshalArtifact.
func UnmarshalArtifact(data []byte) (string, world.Artifact, error) {
	var spec ArtifactSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return "", world.None, fmt.Errorf("palette: unmarshal artifact: %w", err)
	}
	if spec.Model == "" {
		return "", world.None, fmt.Errorf("%w: entry has no model", ErrUnknownArtifact)
	}
	a, err := spec.Artifact()
	if err != nil {
		return "", world.None, fmt.Errorf("palette: unmarshal artifact: %w", err)
	}
	return spec.Name, a, nil
}
