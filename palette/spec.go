package palette

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/worldbuilder/world"
)

// ErrUnknownArtifact is returned for palette lookups that match nothing.
var ErrUnknownArtifact = errors.New("palette: unknown artifact")

// ErrUnknownEntity is returned for entity templates that match nothing.
var ErrUnknownEntity = errors.New("palette: unknown entity")

// Palette lists what the editor offers for placement.
type Palette struct {
	Name      string         `yaml:"name"`
	Artifacts []ArtifactSpec `yaml:"artifacts"`
	Entities  []EntitySpec   `yaml:"entities"`
}

type ArtifactSpec struct {
	Name        string     `yaml:"name"`
	Model       string     `yaml:"model"`
	Direction   string     `yaml:"direction,omitempty"`
	Traversable bool       `yaml:"traversable"`
	Static      bool       `yaml:"static"`
	Color       *YAMLColor `yaml:"color,omitempty"`
}

type EntitySpec struct {
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Config    string         `yaml:"config,omitempty"`
	Direction string         `yaml:"direction,omitempty"`
	Color     *YAMLColor     `yaml:"color,omitempty"`
	Aux       map[string]any `yaml:"aux,omitempty"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("palette: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("palette: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadPalette reads a palette file, or the embedded default when filename is
// empty, and checks that every artifact can be converted.
func LoadPalette(filename string) (*Palette, error) {
	if filename == "" {
		filename = DefaultName
	}
	p, err := LoadSpec[Palette](filename)
	if err != nil {
		return nil, err
	}
	var errs []error
	for i, a := range p.Artifacts {
		if a.Name == "" || a.Model == "" {
			errs = append(errs, fmt.Errorf("artifacts[%d]: name and model are required", i))
			continue
		}
		if _, err := a.Artifact(); err != nil {
			errs = append(errs, fmt.Errorf("artifacts[%d] %q: %w", i, a.Name, err))
		}
	}
	for i, e := range p.Entities {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("entities[%d]: name is required", i))
			continue
		}
		if _, err := world.ParseDirection(e.Direction); err != nil {
			errs = append(errs, fmt.Errorf("entities[%d] %q: %w", i, e.Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("palette: %s: %w", filename, err)
	}
	return &p, nil
}

// Artifact converts the spec into world content.
func (s ArtifactSpec) Artifact() (world.Artifact, error) {
	dir, err := world.ParseDirection(s.Direction)
	if err != nil {
		return world.None, err
	}
	return world.Artifact{
		Model:       s.Model,
		Direction:   dir,
		Traversable: s.Traversable,
		Static:      s.Static,
	}, nil
}

// Artifact finds an artifact by palette name.
func (p *Palette) Artifact(name string) (world.Artifact, error) {
	for _, s := range p.Artifacts {
		if s.Name == name {
			return s.Artifact()
		}
	}
	return world.None, fmt.Errorf("%w: %q", ErrUnknownArtifact, name)
}

// ColorFor returns the preview colour of the first artifact or entity using
// model (artifacts) or type (entities).
func (p *Palette) ColorFor(ref string) (color.Color, bool) {
	for _, s := range p.Artifacts {
		if s.Model == ref && s.Color != nil {
			return s.Color.Color, true
		}
	}
	for _, s := range p.Entities {
		if s.Type == ref && s.Color != nil {
			return s.Color.Color, true
		}
	}
	return nil, false
}

// NewEntity builds a detached entity from the named template.
func (p *Palette) NewEntity(template, name string, at world.Vector3) (*world.Entity, error) {
	for _, s := range p.Entities {
		if s.Name != template {
			continue
		}
		dir, err := world.ParseDirection(s.Direction)
		if err != nil {
			return nil, err
		}
		return &world.Entity{
			Name:      name,
			Type:      s.Type,
			Config:    s.Config,
			Direction: dir,
			Location:  at,
			Aux:       maps.Clone(s.Aux),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, template)
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return err
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
