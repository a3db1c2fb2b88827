package macro

import (
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/worldbuilder/brush"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/world"
)

type runtime struct {
	world   *world.World
	palette *palette.Palette
	result  *Result
}

func (rt *runtime) builtins() map[string]tengo.CallableFunc {
	return map[string]tengo.CallableFunc{
		"place":  rt.place,
		"clear":  rt.clear,
		"tile":   rt.tile,
		"entity": rt.entity,
		"log":    rt.log,
	}
}

// place(x, y, name[, z]) installs the named palette artifact.
func (rt *runtime) place(args ...tengo.Object) (tengo.Object, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, tengo.ErrWrongNumArguments
	}
	loc, err := locationArgs(args[0], args[1], args[3:])
	if err != nil {
		return nil, err
	}
	name := objectAsString(args[2])
	a, err := rt.palette.Artifact(name)
	if err != nil {
		return nil, err
	}
	key, prev := rt.world.SetTile(loc, a)
	if prev != a {
		rt.result.Stroke.Cells = append(rt.result.Stroke.Cells, brush.CellChange{Key: key, Prev: prev})
	}
	return tengo.TrueValue, nil
}

// clear(x, y[, z]) empties a cell and reports whether it held anything.
func (rt *runtime) clear(args ...tengo.Object) (tengo.Object, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, tengo.ErrWrongNumArguments
	}
	loc, err := locationArgs(args[0], args[1], args[2:])
	if err != nil {
		return nil, err
	}
	key, prev := rt.world.ClearTile(loc)
	if prev.Empty() {
		return tengo.FalseValue, nil
	}
	rt.result.Stroke.Cells = append(rt.result.Stroke.Cells, brush.CellChange{Key: key, Prev: prev})
	return tengo.TrueValue, nil
}

// tile(x, y[, z]) returns the model at a cell or undefined.
func (rt *runtime) tile(args ...tengo.Object) (tengo.Object, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, tengo.ErrWrongNumArguments
	}
	loc, err := locationArgs(args[0], args[1], args[2:])
	if err != nil {
		return nil, err
	}
	a, ok := rt.world.Tile(loc)
	if !ok {
		return tengo.UndefinedValue, nil
	}
	return &tengo.String{Value: a.Model}, nil
}

// entity(template, x, y[, z]) creates an entity from a palette template and
// returns its generated name.
func (rt *runtime) entity(args ...tengo.Object) (tengo.Object, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, tengo.ErrWrongNumArguments
	}
	loc, err := locationArgs(args[1], args[2], args[3:])
	if err != nil {
		return nil, err
	}
	name := world.UnusedName(rt.world.EntityNames())
	e, err := rt.palette.NewEntity(objectAsString(args[0]), name, loc)
	if err != nil {
		return nil, err
	}
	rt.world.AddEntity(e)
	_ = rt.world.BindEntityModel(e)
	rt.result.Entities = append(rt.result.Entities, e)
	return &tengo.String{Value: name}, nil
}

func (rt *runtime) log(args ...tengo.Object) (tengo.Object, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, objectAsString(a))
	}
	rt.result.Logs = append(rt.result.Logs, strings.Join(parts, " "))
	return tengo.UndefinedValue, nil
}

func locationArgs(x, y tengo.Object, rest []tengo.Object) (world.Vector3, error) {
	var loc world.Vector3
	var ok bool
	if loc.X, ok = objectAsFloat(x); !ok {
		return loc, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int/float", Found: x.TypeName()}
	}
	if loc.Y, ok = objectAsFloat(y); !ok {
		return loc, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int/float", Found: y.TypeName()}
	}
	if len(rest) > 0 {
		if loc.Z, ok = objectAsFloat(rest[0]); !ok {
			return loc, tengo.ErrInvalidArgumentType{Name: "z", Expected: "int/float", Found: rest[0].TypeName()}
		}
	}
	return loc, nil
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Int:
		return float64(v.Value), true
	case *tengo.Float:
		return v.Value, true
	default:
		return 0, false
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

