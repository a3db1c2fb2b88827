package brush

import (
	"reflect"
	"testing"

	"github.com/milk9111/worldbuilder/world"
)

var stone = world.Artifact{Model: "tiles/stone.png", Direction: world.North, Traversable: true, Static: true}

func newWorld(t *testing.T, w, h int) *world.World {
	t.Helper()
	wd, err := world.New(w, h)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return wd
}

func occupied(w *world.World) map[[2]int]bool {
	out := make(map[[2]int]bool)
	w.Grid().Each(func(k world.TileKey, _ world.Artifact) bool {
		out[[2]int{k.X, k.Y}] = true
		return true
	})
	return out
}

func square(x0, x1, y0, y1 int) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out[[2]int{x, y}] = true
		}
	}
	return out
}

func TestBrushSizing(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		size   int
		cursor world.Vector3
		want   map[[2]int]bool
	}{
		{"centre", 10, 10, 3, world.Vector3{X: 5, Y: 5}, square(4, 6, 4, 6)},
		{"corner", 10, 10, 3, world.Vector3{X: 0, Y: 0}, square(0, 1, 0, 1)},
		{"far_corner", 10, 10, 3, world.Vector3{X: 9, Y: 9}, square(8, 9, 8, 9)},
		{"rounded_cursor", 10, 10, 3, world.Vector3{X: 4.6, Y: 5.4}, square(4, 6, 4, 6)},
		{"size_one", 10, 10, 1, world.Vector3{X: 2, Y: 7}, square(2, 2, 7, 7)},
		// Width and height differ so a swapped bound would leak or cut cells.
		{"wide_world", 12, 4, 5, world.Vector3{X: 10, Y: 3}, square(8, 11, 1, 3)},
		{"tall_world", 4, 12, 5, world.Vector3{X: 3, Y: 10}, square(1, 3, 8, 11)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newWorld(t, c.w, c.h)
			w.SetCursor(c.cursor)
			b := New()
			b.SetSize(c.size)
			b.SetBehavior(Place(stone))
			b.Apply(w)
			if got := occupied(w); !reflect.DeepEqual(got, c.want) {
				t.Fatalf("painted %v, want %v", got, c.want)
			}
		})
	}
}

func TestSetSizeKeepsOdd(t *testing.T) {
	b := New()
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 2: 3, 5: 5, 8: 9} {
		b.SetSize(in)
		if b.Size() != want {
			t.Fatalf("SetSize(%d) -> %d, want %d", in, b.Size(), want)
		}
	}
}

func TestNonSizableAppliesOnce(t *testing.T) {
	w := newWorld(t, 10, 10)
	w.SetTile(world.Vector3{X: 3, Y: 3}, stone)
	w.SetCursor(world.Vector3{X: 3, Y: 3})

	var samples []world.Artifact
	b := New()
	b.SetSize(5)
	b.SetBehavior(Sample(func(a world.Artifact) { samples = append(samples, a) }))
	b.Apply(w)
	if len(samples) != 1 || samples[0] != stone {
		t.Fatalf("expected one sample of stone, got %v", samples)
	}

	w.SetCursor(world.Vector3{X: 6, Y: 6})
	b.Apply(w)
	if len(samples) != 1 {
		t.Fatalf("empty cells must not be reported")
	}
}

func TestClearAndRevert(t *testing.T) {
	w := newWorld(t, 10, 10)
	b := New()
	b.SetSize(3)
	w.SetCursor(world.Vector3{X: 5, Y: 5})
	b.SetBehavior(Place(stone))
	first := b.Apply(w)
	if len(first.Cells) != 9 {
		t.Fatalf("expected 9 changed cells, got %d", len(first.Cells))
	}
	if again := b.Apply(w); !again.Empty() {
		t.Fatalf("repainting identical tiles should change nothing")
	}

	b.SetBehavior(Clear())
	b.SetSize(1)
	cleared := b.Apply(w)
	if w.Grid().Len() != 8 || len(cleared.Cells) != 1 {
		t.Fatalf("expected one cleared cell, grid=%d stroke=%d", w.Grid().Len(), len(cleared.Cells))
	}
	cleared.Revert(w)
	if w.Grid().Len() != 9 {
		t.Fatalf("revert should restore the cell")
	}
	first.Revert(w)
	if w.Grid().Len() != 0 {
		t.Fatalf("revert should empty the grid, have %d", w.Grid().Len())
	}
}

func TestMoveEntity(t *testing.T) {
	w := newWorld(t, 10, 10)
	guard := &world.Entity{Name: "guard", Type: "npc", Direction: world.West, Location: world.Vector3{X: 1, Y: 1}}
	other := &world.Entity{Name: "other", Location: world.Vector3{X: 4, Y: 4}}
	w.AddEntity(guard)
	w.AddEntity(other)

	moves := 0
	b := New()
	b.SetBehavior(MoveEntity(guard, func() { moves++ }))
	if b.Behavior().Sizable() {
		t.Fatalf("move must not be sizable")
	}
	if b.Direction() != world.West {
		t.Fatalf("move reports the entity facing, got %v", b.Direction())
	}

	w.SetCursor(world.Vector3{X: 4, Y: 4})
	if s := b.Apply(w); !s.Empty() || moves != 0 || guard.Location != (world.Vector3{X: 1, Y: 1}) {
		t.Fatalf("move onto another entity must be refused")
	}

	w.SetCursor(world.Vector3{X: 1, Y: 1})
	if b.Apply(w); moves != 1 {
		t.Fatalf("moving onto its own location should succeed")
	}

	w.SetCursor(world.Vector3{X: 6.5, Y: 2.25, Z: 1})
	s := b.Apply(w)
	if moves != 2 || guard.Location != (world.Vector3{X: 6.5, Y: 2.25, Z: 1}) {
		t.Fatalf("expected move, got %+v after %d moves", guard.Location, moves)
	}
	s.Revert(w)
	if guard.Location != (world.Vector3{X: 1, Y: 1}) {
		t.Fatalf("revert should restore location, got %+v", guard.Location)
	}
}

func TestMoveZone(t *testing.T) {
	w := newWorld(t, 10, 10)
	w.AddEntity(&world.Entity{Name: "e", Location: world.Vector3{X: 2, Y: 2}})
	z := world.NewZone("spawn", world.Vector3{}, world.Vector3{X: 1, Y: 1})
	w.AddZone(z)

	b := New()
	b.SetBehavior(MoveEntity(z, nil))
	w.SetCursor(world.Vector3{X: 2, Y: 2})
	b.Apply(w)
	if z.Origin != (world.Vector3{}) {
		t.Fatalf("zone must not land on an entity")
	}
	w.SetCursor(world.Vector3{X: 3, Y: 2})
	b.Apply(w)
	if z.Origin != (world.Vector3{X: 3, Y: 2}) {
		t.Fatalf("zone not moved: %+v", z.Origin)
	}
}

func TestResizeZone(t *testing.T) {
	w := newWorld(t, 10, 10)
	z := world.NewZone("pit", world.Vector3{X: 2, Y: 3, Z: 1}, world.Vector3{X: 1, Y: 1, Z: 1})
	w.AddZone(z)

	resized := 0
	b := New()
	b.SetBehavior(ResizeZone(z, func() { resized++ }))

	w.SetCursor(world.Vector3{X: 6, Y: 4, Z: 3})
	s := b.Apply(w)
	if z.Extent() != (world.Vector3{X: 4, Y: 1, Z: 2}) || resized != 1 {
		t.Fatalf("unexpected extent %+v", z.Extent())
	}

	w.SetCursor(world.Vector3{X: 0, Y: 7, Z: 0})
	b.Apply(w)
	if z.Extent() != (world.Vector3{X: 0, Y: 4, Z: 0}) || resized != 2 {
		t.Fatalf("extent axes must clamp at zero, got %+v", z.Extent())
	}
	s.Revert(w)
	if z.Extent() != (world.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("revert restores the first recorded extent, got %+v", z.Extent())
	}
}

func TestBehaviorChangedObserver(t *testing.T) {
	b := New()
	var seen []Kind
	b.OnBehaviorChanged(func(bh Behavior) { seen = append(seen, bh.Kind()) })
	b.SetBehavior(Place(stone))
	b.SetBehavior(Clear())
	b.SetBehavior(Null())
	want := []Kind{KindPlace, KindClear, KindNull}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("observed %v, want %v", seen, want)
	}
}

func TestDirectionAndPreview(t *testing.T) {
	b := New()
	crate := world.Artifact{Model: "props/crate.png", Direction: world.North}
	b.SetBehavior(Place(crate))
	b.Rotate(true)
	if b.Direction() != world.NorthEast {
		t.Fatalf("expected northeast, got %v", b.Direction())
	}
	p := b.Preview()
	want := Preview{Kind: KindPlace, Model: "props/crate.png", Direction: world.NorthEast, Annotations: []string{NoteNotStatic, NoteNotTraversable}}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("preview %+v, want %+v", p, want)
	}

	w := newWorld(t, 3, 3)
	b.Apply(w)
	if a, _ := w.Tile(world.Vector3{}); a.Direction != world.NorthEast {
		t.Fatalf("placed tile should carry the brush facing, got %v", a.Direction)
	}

	b.SetBehavior(Clear())
	b.Rotate(true)
	if b.Direction() != world.Zero {
		t.Fatalf("clear has no facing")
	}
	if p := b.Preview(); p.Kind != KindClear || p.Model != "" || len(p.Annotations) != 0 {
		t.Fatalf("unexpected clear preview %+v", p)
	}
}
