package script

import (
	"fmt"

	"github.com/chazu/clipplanes/pkg/solid"
	zygo "github.com/glycerine/zygomys/zygo"
)

// registerSolids installs the builtins that build solids and declare them as
// named volumes. A solid is culled through its bounding box.
func registerSolids(env *zygo.Zlisp, b *builder) {

	// (cuboid 100 50 25) with its minimum corner at the origin
	env.AddFunction("cuboid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("cuboid", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := solid.Box(f[0], f[1], f[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cuboid: %w", err)
		}
		return &sexpSolid{solid: s, desc: "cuboid"}, nil
	})

	// (cylinder 50 10) is a cylinder of height 50 and radius 10 along Z
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("cylinder", args, "height", "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := solid.Cylinder(f[0], f[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpSolid{solid: s, desc: "cylinder"}, nil
	})

	// (ball 3)
	env.AddFunction("ball", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("ball", args, "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := solid.Ball(f[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ball: %w", err)
		}
		return &sexpSolid{solid: s, desc: "ball"}, nil
	})

	// (union a b ...)
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("union requires at least one solid")
		}
		solids := make([]solid.Solid, len(args))
		for i, a := range args {
			s, err := toSolid(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("union: argument %d: %w", i+1, err)
			}
			solids[i] = s
		}
		return &sexpSolid{solid: solid.Union(solids...), desc: "union"}, nil
	})

	// (difference a b) and (intersection a b)
	binary := map[string]func(a, b solid.Solid) solid.Solid{
		"difference":   solid.Difference,
		"intersection": solid.Intersection,
	}
	for fn, op := range binary {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 solids, got %d", fn, len(args))
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: first: %w", fn, err)
			}
			c, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: second: %w", fn, err)
			}
			return &sexpSolid{solid: op(a, c), desc: fn}, nil
		})
	}

	// (place s :rotate (vec3 0 0 90) :at (vec3 10 0 0)) rotates first, then
	// translates.
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a solid as first argument")
		}
		s, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}
		if v, ok := pa.kw["rotate"]; ok {
			r, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			s = s.Rotate(r.X, r.Y, r.Z)
		}
		if v, ok := pa.kw["at"]; ok {
			at, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			s = s.Translate(at.X, at.Y, at.Z)
		}
		if v, ok := pa.kw["transform"]; ok {
			m, err := toMatrix(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: transform: %w", err)
			}
			s = s.Transform(m)
		}
		return &sexpSolid{solid: s, desc: "place"}, nil
	})

	// (volume "shelf" (cuboid 600 300 19))
	env.AddFunction("volume", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("volume requires a name and a solid")
		}
		volName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("volume: name: %w", err)
		}
		s, err := toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("volume: %w", err)
		}
		if err := b.addVolume(volName, s.Bounds()); err != nil {
			return zygo.SexpNull, fmt.Errorf("volume: %w", err)
		}
		return &sexpVolume{name: volName}, nil
	})
}
