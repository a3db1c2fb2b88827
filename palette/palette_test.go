package palette

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/worldbuilder/world"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	p, err := LoadPalette("")
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	if p.Name != "default" || len(p.Artifacts) == 0 || len(p.Entities) == 0 {
		t.Fatalf("unexpected palette %+v", p)
	}
	wall, err := p.Artifact("wall")
	if err != nil {
		t.Fatalf("Artifact(wall): %v", err)
	}
	want := world.Artifact{Model: "tiles/wall.png", Direction: world.East, Static: true}
	if wall != want {
		t.Fatalf("wall = %+v, want %+v", wall, want)
	}
	if _, err := p.Artifact("lava"); !errors.Is(err, ErrUnknownArtifact) {
		t.Fatalf("expected ErrUnknownArtifact, got %v", err)
	}
}

func TestLoadPaletteFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	src := `
name: custom
artifacts:
  - name: ice
    model: tiles/ice.png
    direction: west
    traversable: true
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPalette(path)
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	ice, _ := p.Artifact("ice")
	if ice.Direction != world.West || ice.Static {
		t.Fatalf("unexpected ice %+v", ice)
	}
}

func TestLoadPaletteRejectsBadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	src := `
artifacts:
  - name: ice
  - name: lava
    model: tiles/lava.png
    direction: up
entities:
  - type: npc
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadPalette(path)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"artifacts[0]", "artifacts[1]", "entities[0]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestNewEntity(t *testing.T) {
	p, err := LoadPalette("")
	if err != nil {
		t.Fatal(err)
	}
	at := world.Vector3{X: 2, Y: 3}
	e, err := p.NewEntity("keeper", "Unnamed0", at)
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	if e.Type != "npc" || e.Direction != world.South || e.Location != at || e.Aux["dialog"] != "greeting" {
		t.Fatalf("unexpected entity %+v", e)
	}
	e.Aux["dialog"] = "changed"
	again, _ := p.NewEntity("keeper", "Unnamed1", at)
	if again.Aux["dialog"] != "greeting" {
		t.Fatalf("template aux must not be shared")
	}
	if _, err := p.NewEntity("dragon", "x", at); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
		fail bool
	}{
		{`"#5a9e3a"`, color.NRGBA{R: 0x5a, G: 0x9e, B: 0x3a, A: 255}, false},
		{`"f2c14e80"`, color.NRGBA{R: 0xf2, G: 0xc1, B: 0x4e, A: 0x80}, false},
		{`"#123"`, color.NRGBA{}, true},
		{`"#zzzzzz"`, color.NRGBA{}, true},
		{`[1, 2]`, color.NRGBA{}, true},
	}
	for _, c := range cases {
		var got YAMLColor
		err := yaml.Unmarshal([]byte(c.in), &got)
		if c.fail {
			if err == nil {
				t.Fatalf("%s: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if got.Color != c.want {
			t.Fatalf("%s: got %v want %v", c.in, got.Color, c.want)
		}
		out, _ := yaml.Marshal(got)
		var back YAMLColor
		if err := yaml.Unmarshal(out, &back); err != nil || back.Color != c.want {
			t.Fatalf("%s: marshal round trip gave %v (%v)", c.in, back.Color, err)
		}
	}

	p, _ := LoadPalette("")
	if c, ok := p.ColorFor("npc"); !ok || c != (color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 255}) {
		t.Fatalf("ColorFor(npc) = %v ok=%v", c, ok)
	}
	if _, ok := p.ColorFor("nothing"); ok {
		t.Fatalf("expected no colour")
	}
}

func TestClipboardArtifact(t *testing.T) {
	a := world.Artifact{Model: "props/crate.png", Direction: world.SouthWest, Static: true}
	data, err := MarshalArtifact("crate", a)
	if err != nil {
		t.Fatalf("MarshalArtifact: %v", err)
	}
	name, back, err := UnmarshalArtifact(data)
	if err != nil || name != "crate" || back != a {
		t.Fatalf("got %q %+v err=%v", name, back, err)
	}
	if _, _, err := UnmarshalArtifact([]byte("hello world")); err == nil {
		t.Fatalf("expected error for non-palette text")
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(50*time.Millisecond, dir, dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fill.tengo"), []byte("x := 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events:
		if filepath.Base(ev.Path) != "fill.tengo" || ev.Kind != MacroChanged {
			t.Fatalf("unexpected event %+v", ev)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for macro change")
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		kind ChangeKind
		ok   bool
	}{
		"a/palette.YAML": {PaletteChanged, true},
		"b.yml":          {PaletteChanged, true},
		"m/fill.tengo":   {MacroChanged, true},
		"x.json":         {0, false},
	}
	for path, want := range cases {
		kind, ok := classify(path)
		if kind != want.kind || ok != want.ok {
			t.Fatalf("classify(%q) = %v,%v", path, kind, ok)
		}
	}
}
