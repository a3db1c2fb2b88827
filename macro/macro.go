package macro

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/worldbuilder/brush"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/world"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// maxAllocs bounds the objects a single macro run may allocate.
const maxAllocs = 5_000_000

// Result is what a macro run changed.
type Result struct {
	Stroke   brush.Stroke
	Entities []*world.Entity
	Logs     []string
}

// LoadScript reads name from dir when dir is set and holds it, otherwise from
// the embedded scripts. The .tengo extension is optional.
func LoadScript(dir, name string) ([]byte, error) {
	if path.Ext(name) == "" {
		name += ".tengo"
	}
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, filepath.Base(name))); err == nil {
			return data, nil
		}
	}
	data, err := ScriptsFS.ReadFile("scripts/" + path.Base(filepath.ToSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("macro: load %s: %w", name, err)
	}
	return data, nil
}

// List returns macro names available from dir and the embedded set.
func List(dir string) ([]string, error) {
	seen := map[string]bool{}
	entries, err := ScriptsFS.ReadDir("scripts")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		seen[strings.TrimSuffix(e.Name(), ".tengo")] = true
	}
	if dir != "" {
		matches, err := filepath.Glob(filepath.Join(dir, "*.tengo"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			seen[strings.TrimSuffix(filepath.Base(m), ".tengo")] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Run executes src against w. Scripts see width, height, cursor_x, cursor_y,
// cursor_z and params, and may call place, clear, tile, entity and log.
// Changes already made when the script fails are kept in the returned
// result so the caller can revert them.
func Run(ctx context.Context, w *world.World, pal *palette.Palette, src []byte, params map[string]any) (*Result, error) {
	if w == nil || pal == nil {
		return nil, errors.New("macro: world and palette are required")
	}
	rt := &runtime{world: w, palette: pal, result: &Result{}}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	script.SetMaxAllocs(maxAllocs)

	cursor := w.Cursor()
	if params == nil {
		params = map[string]any{}
	}
	vars := map[string]any{
		"width":    w.Width(),
		"height":   w.Height(),
		"cursor_x": cursor.X,
		"cursor_y": cursor.Y,
		"cursor_z": cursor.Z,
		"params":   params,
	}
	for name, v := range vars {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("macro: bind %s: %w", name, err)
		}
	}
	for name, fn := range rt.builtins() {
		if err := script.Add(name, &tengo.UserFunction{Name: name, Value: fn}); err != nil {
			return nil, fmt.Errorf("macro: bind %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("macro: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return rt.result, fmt.Errorf("macro: run: %w", err)
	}
	return rt.result, nil
}

// RunNamed loads a script with LoadScript and runs it.
func RunNamed(ctx context.Context, w *world.World, pal *palette.Palette, dir, name string, params map[string]any) (*Result, error) {
	src, err := LoadScript(dir, name)
	if err != nil {
		return nil, err
	}
	return Run(ctx, w, pal, src, params)
}
