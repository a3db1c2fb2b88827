package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/worldbuilder/config"
)

func TestLoadFromReaderDefaults(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty document: %v", err)
	}
	if cfg.World.Width != 40 || cfg.UndoDepth != 100 || len(cfg.Layers) != 3 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if d, ok := cfg.LayerDepth("objects"); !ok || d != 1 {
		t.Fatalf("objects layer depth = %v ok=%v", d, ok)
	}
}

func TestLoadFromReaderOverrides(t *testing.T) {
	yaml := `
palette: art/palette.yaml
layers:
  - name: floor
    depth: 0
  - name: roof
    depth: 3.5
world:
  width: 12
  height: 8
brush:
  max_size: 5
log:
  level: debug
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.World.Width != 12 || cfg.World.Height != 8 || cfg.World.Friction != 0.5 {
		t.Fatalf("unexpected world %+v", cfg.World)
	}
	if d, ok := cfg.LayerDepth("roof"); !ok || d != 3.5 {
		t.Fatalf("roof depth = %v ok=%v", d, ok)
	}
	if _, ok := cfg.LayerDepth("objects"); ok {
		t.Fatalf("layers list should replace the defaults")
	}
	if cfg.Brush.MaxSize != 5 || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected brush/log %+v %+v", cfg.Brush, cfg.Log)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	yaml := `
layers:
  - name: a
  - name: a
  - depth: 2
world:
  width: 0
  height: -1
brush:
  max_size: 4
undo_depth: -1
log:
  level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"world.width", "world.height", "brush.max_size", "undo_depth", "log.level", "duplicate", "layers[2].name is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	_, err := config.LoadFromReader(strings.NewReader("wrold:\n  width: 3\n"))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestLoadResolvesBaseDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editor.yaml")
	if err := os.WriteFile(path, []byte("palette: palette.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Resolve(cfg.Palette); got != filepath.Join(dir, "palette.yaml") {
		t.Fatalf("Resolve = %q", got)
	}
	if got := cfg.Resolve("/abs/p.yaml"); got != "/abs/p.yaml" {
		t.Fatalf("absolute path changed: %q", got)
	}

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
