package world

import (
	"errors"
	"fmt"

	"github.com/milk9111/worldbuilder/levels"
)

// Validate reports every duplicate entity name and, separately, every
// duplicate zone name.
func (w *World) Validate() error {
	var conflicts []NameConflict
	conflicts = append(conflicts, duplicates("entity", w.EntityNames())...)
	conflicts = append(conflicts, duplicates("zone", w.ZoneNames())...)
	if len(conflicts) > 0 {
		return &ValidationError{Conflicts: conflicts}
	}
	return nil
}

func duplicates(kind string, names []string) []NameConflict {
	seen := make(map[string][]int, len(names))
	var order []string
	for i, n := range names {
		if _, ok := seen[n]; !ok {
			order = append(order, n)
		}
		seen[n] = append(seen[n], i)
	}
	var out []NameConflict
	for _, n := range order {
		if idx := seen[n]; len(idx) > 1 {
			out = append(out, NameConflict{Kind: kind, Name: n, Indices: idx})
		}
	}
	return out
}

// Export builds the persisted document. Name conflicts abort the export and
// leave the world untouched.
func (w *World) Export() (*levels.Configuration, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	artifacts, planes := Compact(w.grid)

	cfg := &levels.Configuration{
		Width:          w.Width(),
		Height:         w.Height(),
		Friction:       w.meta.Friction,
		MetersPerUnit:  w.meta.MetersPerUnit,
		LogicPerUnit:   w.meta.LogicPerUnit,
		Weather:        w.meta.Weather,
		Script:         w.meta.Script,
		Entities:       make([]levels.EntityRecord, 0, len(w.entities)),
		Zones:          make([]levels.ZoneRecord, 0, len(w.zones)),
		Artifacts:      make([]levels.ArtifactRecord, 0, len(artifacts)),
		ArtifactPlanes: planes,
	}
	if cfg.ArtifactPlanes == nil {
		cfg.ArtifactPlanes = []levels.PlaneRecord{}
	}
	for _, e := range w.entities {
		cfg.Entities = append(cfg.Entities, e.record())
	}
	for _, z := range w.zones {
		cfg.Zones = append(cfg.Zones, z.record())
	}
	for _, a := range artifacts {
		cfg.Artifacts = append(cfg.Artifacts, a.record())
	}
	return cfg, nil
}

// Import builds a world from a document. Structural problems fail the
// import. Models the provider cannot build are replaced by placeholders and
// listed in the report; provider may be nil.
func Import(cfg *levels.Configuration, provider ModelProvider) (*World, *ImportReport, error) {
	if cfg == nil {
		return nil, nil, &DecodeError{Section: "document", Reason: "nil configuration"}
	}
	w, err := New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, nil, err
	}
	w.meta = Metadata{
		Friction:      cfg.Friction,
		Weather:       cfg.Weather,
		Script:        cfg.Script,
		MetersPerUnit: cfg.MetersPerUnit,
		LogicPerUnit:  cfg.LogicPerUnit,
	}

	artifacts := make([]Artifact, 0, len(cfg.Artifacts))
	for i, rec := range cfg.Artifacts {
		a, err := artifactFromRecord(rec)
		if err != nil {
			return nil, nil, &DecodeError{Section: "artifacts", Index: i, Reason: err.Error()}
		}
		if a.Empty() {
			return nil, nil, &DecodeError{Section: "artifacts", Index: i, Reason: "empty model reference"}
		}
		artifacts = append(artifacts, a)
	}
	if err := expandInto(w.grid, artifacts, cfg.ArtifactPlanes); err != nil {
		return nil, nil, err
	}
	// Declaration form: explicit placements listed on the catalog entry.
	for i, rec := range cfg.Artifacts {
		for _, loc := range rec.Locations {
			k := KeyOf(vectorFromLocation(loc))
			if k.X < 0 || k.X >= w.Width() || k.Y < 0 || k.Y >= w.Height() {
				return nil, nil, &DecodeError{Section: "artifacts", Index: i,
					Reason: fmt.Sprintf("location (%g, %g) outside %dx%d", loc.X, loc.Y, w.Width(), w.Height())}
			}
			w.grid.SetKey(k, artifacts[i])
		}
	}

	for i, rec := range cfg.Entities {
		e, err := entityFromRecord(rec)
		if err != nil {
			return nil, nil, &DecodeError{Section: "entities", Index: i, Reason: err.Error()}
		}
		w.AddEntity(e)
	}
	for _, rec := range cfg.Zones {
		w.AddZone(zoneFromRecord(rec))
	}

	report := &ImportReport{}
	w.SetProvider(provider)
	for _, a := range artifacts {
		if _, err := w.ArtifactModel(a); err != nil {
			report.add(err)
		}
	}
	for _, e := range w.entities {
		if err := w.BindEntityModel(e); err != nil {
			report.add(err)
		}
	}
	return w, report, nil
}

func (r *ImportReport) add(err error) {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		r.Construction = append(r.Construction, ce)
	}
}
