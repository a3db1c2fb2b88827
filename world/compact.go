package world

import (
	"fmt"

	"github.com/milk9111/worldbuilder/levels"
)

// Stride is the raster row length used by the plane encoding. Using the
// larger dimension keeps every in-bounds cell on a distinct raster index.
func Stride(width, height int) int {
	return max(width, height, 1)
}

// catalog assigns indices to distinct artifacts in first-seen order.
type catalog struct {
	index map[Artifact]int
	items []Artifact
}

func (c *catalog) resolve(a Artifact) int {
	if i, ok := c.index[a]; ok {
		return i
	}
	i := len(c.items)
	c.index[a] = i
	c.items = append(c.items, a)
	return i
}

// Compact walks the grid plane by plane in ascending depth and raster order.
// It returns the deduplicated catalog and one skip-encoded stream per
// occupied plane. Empty planes produce no record.
func Compact(g *Grid) ([]Artifact, []levels.PlaneRecord) {
	cat := catalog{index: make(map[Artifact]int)}
	stride := Stride(g.Width(), g.Height())

	var planes []levels.PlaneRecord
	var current *levels.PlaneRecord
	var plane int64
	expected := 0

	for _, k := range g.Keys() {
		if current == nil || k.Z != plane {
			planes = append(planes, levels.PlaneRecord{Depth: k.Depth()})
			current = &planes[len(planes)-1]
			plane = k.Z
			expected = 0
		}
		r := k.X + k.Y*stride
		if r != expected {
			current.Indices = append(current.Indices, -(r - expected))
		}
		current.Indices = append(current.Indices, cat.resolve(g.tiles[k]))
		expected = r + 1
	}
	return cat.items, planes
}

// Expand rebuilds a grid from a catalog and its plane streams.
func Expand(width, height int, artifacts []Artifact, planes []levels.PlaneRecord) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	g := NewGrid(width, height)
	if err := expandInto(g, artifacts, planes); err != nil {
		return nil, err
	}
	return g, nil
}

func expandInto(g *Grid, artifacts []Artifact, planes []levels.PlaneRecord) error {
	stride := Stride(g.Width(), g.Height())
	raster := stride * g.Height()
	for pi, plane := range planes {
		z := Quantize(plane.Depth)
		cursor := 0
		for _, token := range plane.Indices {
			if token < 0 {
				// -token overflows for MinInt; compare before negating.
				if token < cursor-raster {
					return &DecodeError{Section: "artifact_planes", Index: pi,
						Reason: fmt.Sprintf("skip %d runs past the %d-cell raster", token, raster)}
				}
				cursor -= token
				continue
			}
			if token >= len(artifacts) {
				return &DecodeError{Section: "artifact_planes", Index: pi,
					Reason: fmt.Sprintf("catalog index %d out of range (catalog has %d entries)", token, len(artifacts))}
			}
			x, y := cursor%stride, cursor/stride
			if cursor < 0 || x < 0 || y < 0 || x >= g.Width() || y >= g.Height() {
				return &DecodeError{Section: "artifact_planes", Index: pi,
					Reason: fmt.Sprintf("raster index %d lands outside %dx%d", cursor, g.Width(), g.Height())}
			}
			g.SetKey(TileKey{X: x, Y: y, Z: z}, artifacts[token])
			cursor++
		}
	}
	return nil
}

// Stats summarizes a compacted document.
type Stats struct {
	Tiles   int
	Planes  int
	Catalog int
	Tokens  int
	Skips   int
}

// StatsOf counts tiles, planes and tokens of a compacted document.
func StatsOf(artifacts []Artifact, planes []levels.PlaneRecord) Stats {
	s := Stats{Planes: len(planes), Catalog: len(artifacts)}
	for _, p := range planes {
		s.Tokens += len(p.Indices)
		for _, t := range p.Indices {
			if t < 0 {
				s.Skips++
			} else {
				s.Tiles++
			}
		}
	}
	return s
}

// Stats compacts the current grid and summarizes the result.
func (w *World) Stats() Stats {
	artifacts, planes := Compact(w.grid)
	return StatsOf(artifacts, planes)
}
