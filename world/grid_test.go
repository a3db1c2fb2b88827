package world

import (
	"math/rand"
	"testing"
)

var (
	grass = Artifact{Model: "tiles/grass.png", Direction: North, Traversable: true, Static: true}
	wall  = Artifact{Model: "tiles/wall.png", Direction: East, Static: true}
)

func TestQuantize(t *testing.T) {
	cases := []struct {
		name  string
		a, b  float64
		equal bool
	}{
		{"identical", 3.25, 3.25, true},
		{"within_tolerance", 1.00001, 1.00004, true},
		{"negative_within_tolerance", -2.00001, -2.00003, true},
		{"one_tolerance_apart", 2.0, 2.0001, false},
		{"far_apart", 0, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Quantize(c.a) == Quantize(c.b)
			if got != c.equal {
				t.Fatalf("Quantize(%v)=%d Quantize(%v)=%d, want equal=%v", c.a, Quantize(c.a), c.b, Quantize(c.b), c.equal)
			}
		})
	}
	if Dequantize(Quantize(1.5)) != 1.5 {
		t.Fatalf("expected 1.5 to survive a quantize round trip")
	}
}

func TestKeyOfSnapsCells(t *testing.T) {
	cases := []struct {
		in   Vector3
		want TileKey
	}{
		{Vector3{X: 0.4, Y: 0.6, Z: 0}, TileKey{X: 0, Y: 1, Z: 0}},
		{Vector3{X: 2.5, Y: 1.4999, Z: 1}, TileKey{X: 3, Y: 1, Z: 10000}},
		{Vector3{X: 0.49996, Y: 0, Z: 0}, TileKey{X: 1, Y: 0, Z: 0}},
		{Vector3{X: -0.6, Y: -1.5, Z: -0.5}, TileKey{X: -1, Y: -1, Z: -5000}},
	}
	for _, c := range cases {
		if got := KeyOf(c.in); got != c.want {
			t.Fatalf("KeyOf(%+v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestGridSetReplacesOccupant(t *testing.T) {
	g := NewGrid(10, 10)
	loc := Vector3{X: 3, Y: 4}

	if _, prev := g.SetTile(loc, grass); !prev.Empty() {
		t.Fatalf("expected empty previous occupant, got %+v", prev)
	}
	_, prev := g.SetTile(Vector3{X: 3.00001, Y: 4.2}, wall)
	if prev != grass {
		t.Fatalf("expected grass to be replaced, got %+v", prev)
	}
	if got, ok := g.Tile(loc); !ok || got != wall {
		t.Fatalf("expected wall at %v, got %+v ok=%v", loc, got, ok)
	}
	if g.Len() != 1 {
		t.Fatalf("expected one occupied cell, got %d", g.Len())
	}

	g.ClearTile(loc)
	if _, ok := g.Tile(loc); ok || g.Len() != 0 {
		t.Fatalf("expected cell cleared")
	}
	g.SetTile(loc, grass)
	g.SetTile(loc, None)
	if g.Len() != 0 {
		t.Fatalf("setting None should clear, len=%d", g.Len())
	}
}

func TestGridExclusivity(t *testing.T) {
	g := NewGrid(6, 4)
	rng := rand.New(rand.NewSource(7))
	artifacts := []Artifact{grass, wall, None}
	for i := 0; i < 2000; i++ {
		loc := Vector3{X: rng.Float64()*10 - 2, Y: rng.Float64()*8 - 2, Z: float64(rng.Intn(3))}
		g.SetTile(loc, artifacts[rng.Intn(len(artifacts))])
	}
	seen := make(map[TileKey]bool)
	g.Each(func(k TileKey, a Artifact) bool {
		if seen[k] {
			t.Fatalf("cell %+v occupied twice", k)
		}
		seen[k] = true
		if k.X < 0 || k.X >= 6 || k.Y < 0 || k.Y >= 4 {
			t.Fatalf("out of range key %+v", k)
		}
		if a.Empty() {
			t.Fatalf("empty artifact stored at %+v", k)
		}
		return true
	})
	if len(seen) > 6*4*3 {
		t.Fatalf("more cells than the grid holds: %d", len(seen))
	}
}

func TestGridClampsOutOfRange(t *testing.T) {
	g := NewGrid(10, 10)
	cases := []struct {
		in   Vector3
		want TileKey
	}{
		{Vector3{X: -3, Y: 15}, TileKey{X: 0, Y: 9}},
		{Vector3{X: 42, Y: -0.7, Z: 2}, TileKey{X: 9, Y: 0, Z: 20000}},
		{Vector3{X: 9.4, Y: 9.4}, TileKey{X: 9, Y: 9}},
	}
	for _, c := range cases {
		k, _ := g.SetTile(c.in, grass)
		if k != c.want {
			t.Fatalf("SetTile(%+v) mutated %+v, want %+v", c.in, k, c.want)
		}
		if _, ok := g.Tile(c.want.Location()); !ok {
			t.Fatalf("expected tile at clamped cell %+v", c.want)
		}
	}
	if _, ok := g.Tile(Vector3{X: -3, Y: 15}); ok {
		t.Fatalf("Tile must not clamp")
	}
}

func TestGridKeysOrder(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetTile(Vector3{X: 1, Y: 1, Z: 1}, grass)
	g.SetTile(Vector3{X: 4, Y: 0, Z: 0}, grass)
	g.SetTile(Vector3{X: 0, Y: 2, Z: 0}, grass)
	g.SetTile(Vector3{X: 3, Y: 0, Z: -1}, grass)

	want := []TileKey{{X: 3, Y: 0, Z: -10000}, {X: 4, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}, {X: 1, Y: 1, Z: 10000}}
	got := g.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}
