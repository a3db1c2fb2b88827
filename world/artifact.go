package world

import "github.com/milk9111/worldbuilder/levels"

// Artifact is the content of one tile. It is comparable, so two placements
// with equal fields are the same catalog entry.
type Artifact struct {
	Model       string
	Direction   Direction
	Traversable bool
	Static      bool
}

// None is the empty artifact; setting it on a cell clears the cell.
var None Artifact

// Empty reports whether a has no model and therefore names no content.
func (a Artifact) Empty() bool {
	return a.Model == ""
}

// WithDirection returns a copy facing d.
func (a Artifact) WithDirection(d Direction) Artifact {
	a.Direction = d
	return a
}

func (a Artifact) record() levels.ArtifactRecord {
	return levels.ArtifactRecord{
		Model:       a.Model,
		Direction:   a.Direction.String(),
		Traversable: a.Traversable,
		Static:      a.Static,
	}
}

func artifactFromRecord(r levels.ArtifactRecord) (Artifact, error) {
	dir, err := ParseDirection(r.Direction)
	if err != nil {
		return None, err
	}
	return Artifact{
		Model:       r.Model,
		Direction:   dir,
		Traversable: r.Traversable,
		Static:      r.Static,
	}, nil
}
