package levels

// Configuration is the persisted form of an editor world. It is derived from
// the live model on save and never mutated in place by the editor.
type Configuration struct {
	Width          int              `json:"width"`
	Height         int              `json:"height"`
	Friction       float64          `json:"friction"`
	MetersPerUnit  float64          `json:"meters_per_unit,omitempty"`
	LogicPerUnit   float64          `json:"logic_per_unit,omitempty"`
	Weather        string           `json:"weather,omitempty"`
	Script         string           `json:"script,omitempty"`
	Entities       []EntityRecord   `json:"entities"`
	Zones          []ZoneRecord     `json:"zones"`
	Artifacts      []ArtifactRecord `json:"artifacts"`
	ArtifactPlanes []PlaneRecord    `json:"artifact_planes"`
}

// ArtifactRecord is one catalog entry. Locations is only read on import and
// holds explicit placements for documents written in declaration form.
type ArtifactRecord struct {
	Model       string     `json:"model"`
	Direction   string     `json:"direction,omitempty"`
	Traversable bool       `json:"traversable"`
	Static      bool       `json:"static"`
	Locations   []Location `json:"locations,omitempty"`
}

// PlaneRecord holds the skip-encoded catalog indices of one depth plane.
// Negative values advance the raster cursor without placing a tile.
type PlaneRecord struct {
	Depth   float64 `json:"depth"`
	Indices []int   `json:"indices"`
}

type EntityRecord struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Config    string         `json:"config,omitempty"`
	Direction string         `json:"direction,omitempty"`
	Location  Location       `json:"location"`
	Aux       map[string]any `json:"aux,omitempty"`
}

type ZoneRecord struct {
	Name   string `json:"name"`
	Region Region `json:"region"`
}

type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Region is an axis-aligned box: origin plus extent.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}
