package world

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/milk9111/worldbuilder/levels"
)

func TestCompactExample(t *testing.T) {
	a := Artifact{Model: "a.png", Direction: North, Static: true}
	b := Artifact{Model: "b.png", Direction: South, Traversable: true}
	g := NewGrid(10, 10)
	g.SetTile(Vector3{X: 0, Y: 0}, a)
	g.SetTile(Vector3{X: 1, Y: 0}, a)
	g.SetTile(Vector3{X: 0, Y: 1}, b)

	catalog, planes := Compact(g)
	if !reflect.DeepEqual(catalog, []Artifact{a, b}) {
		t.Fatalf("unexpected catalog %+v", catalog)
	}
	want := []levels.PlaneRecord{{Depth: 0, Indices: []int{0, 0, -8, 1}}}
	if !reflect.DeepEqual(planes, want) {
		t.Fatalf("unexpected planes %+v, want %+v", planes, want)
	}
}

func TestCompactWideWorldStride(t *testing.T) {
	a := Artifact{Model: "a.png", Direction: North}
	// 12 wide, 4 tall: rows are 12 cells apart, not 4.
	g := NewGrid(12, 4)
	g.SetTile(Vector3{X: 11, Y: 0}, a)
	g.SetTile(Vector3{X: 0, Y: 1}, a)
	g.SetTile(Vector3{X: 2, Y: 3}, a)

	if s := Stride(12, 4); s != 12 {
		t.Fatalf("Stride(12, 4) = %d, want 12", s)
	}
	_, planes := Compact(g)
	want := []levels.PlaneRecord{{Depth: 0, Indices: []int{-11, 0, 0, -25, 0}}}
	if !reflect.DeepEqual(planes, want) {
		t.Fatalf("unexpected planes %+v, want %+v", planes, want)
	}
}

func TestCompactDedup(t *testing.T) {
	g := NewGrid(20, 20)
	n := 0
	for y := 0; y < 20; y += 3 {
		for x := 0; x < 20; x += 2 {
			g.SetTile(Vector3{X: float64(x), Y: float64(y)}, Artifact{Model: "tiles/grass.png", Direction: North, Traversable: true, Static: true})
			n++
		}
	}
	catalog, planes := Compact(g)
	if len(catalog) != 1 {
		t.Fatalf("expected 1 catalog entry, got %d", len(catalog))
	}
	refs := 0
	for _, p := range planes {
		for _, tok := range p.Indices {
			if tok == 0 {
				refs++
			}
		}
	}
	if refs != n {
		t.Fatalf("expected %d references, got %d", n, refs)
	}
}

func TestCompactMinimality(t *testing.T) {
	t.Run("contiguous_plane_has_no_skips", func(t *testing.T) {
		g := NewGrid(3, 3)
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				g.SetTile(Vector3{X: float64(x), Y: float64(y), Z: 2}, grass)
			}
		}
		_, planes := Compact(g)
		if len(planes) != 1 {
			t.Fatalf("expected one plane, got %d", len(planes))
		}
		for _, tok := range planes[0].Indices {
			if tok < 0 {
				t.Fatalf("unexpected skip token in %v", planes[0].Indices)
			}
		}
		if planes[0].Depth != 2 {
			t.Fatalf("expected depth 2, got %v", planes[0].Depth)
		}
	})

	t.Run("empty_grid_has_no_planes", func(t *testing.T) {
		g := NewGrid(3, 3)
		g.SetTile(Vector3{X: 1, Y: 1}, grass)
		g.ClearTile(Vector3{X: 1, Y: 1})
		catalog, planes := Compact(g)
		if len(catalog) != 0 || len(planes) != 0 {
			t.Fatalf("expected nothing, got catalog=%v planes=%v", catalog, planes)
		}
	})
}

func TestCompactRoundTrip(t *testing.T) {
	dims := []struct{ w, h int }{{10, 10}, {7, 3}, {2, 9}, {1, 1}}
	palette := []Artifact{
		grass,
		wall,
		{Model: "props/crate.png", Direction: NorthWest},
		{Model: "props/crate.png", Direction: SouthEast},
	}
	depths := []float64{0, 0.5, -2, 1.25}
	for _, d := range dims {
		rng := rand.New(rand.NewSource(int64(d.w*100 + d.h)))
		g := NewGrid(d.w, d.h)
		for i := 0; i < d.w*d.h*2; i++ {
			loc := Vector3{
				X: float64(rng.Intn(d.w)),
				Y: float64(rng.Intn(d.h)),
				Z: depths[rng.Intn(len(depths))],
			}
			g.SetTile(loc, palette[rng.Intn(len(palette))])
		}

		catalog, planes := Compact(g)
		out, err := Expand(d.w, d.h, catalog, planes)
		if err != nil {
			t.Fatalf("%dx%d: Expand: %v", d.w, d.h, err)
		}
		if !reflect.DeepEqual(g.tiles, out.tiles) {
			t.Fatalf("%dx%d: round trip mismatch", d.w, d.h)
		}
	}
}

func TestExpandRejectsBadStreams(t *testing.T) {
	catalog := []Artifact{grass}
	cases := []struct {
		name   string
		planes []levels.PlaneRecord
	}{
		{"catalog_index_out_of_range", []levels.PlaneRecord{{Indices: []int{0, 1}}}},
		{"raster_past_last_row", []levels.PlaneRecord{{Indices: []int{-16, 0}}}},
		{"column_past_width", []levels.PlaneRecord{{Indices: []int{-3, 0}}}},
		{"min_int_skip", []levels.PlaneRecord{{Indices: []int{math.MinInt, 0}}}},
		{"skips_overflow_cursor", []levels.PlaneRecord{{Indices: []int{-(math.MaxInt / 2), -(math.MaxInt / 2), -10, 0}}}},
		{"skip_past_raster_end", []levels.PlaneRecord{{Indices: []int{-17}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// 3 wide, 4 tall: stride 4, so column 3 exists in the raster but not the world.
			_, err := Expand(3, 4, catalog, c.planes)
			if _, ok := err.(*DecodeError); !ok {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}
}

func TestStatsOf(t *testing.T) {
	s := StatsOf([]Artifact{grass, wall}, []levels.PlaneRecord{
		{Depth: 0, Indices: []int{0, 0, -8, 1}},
		{Depth: 1, Indices: []int{-3, 1}},
	})
	want := Stats{Tiles: 4, Planes: 2, Catalog: 2, Tokens: 6, Skips: 2}
	if s != want {
		t.Fatalf("got %+v want %+v", s, want)
	}
}
