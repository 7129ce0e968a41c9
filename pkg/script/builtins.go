package script

import (
	"fmt"
	"strings"

	"github.com/chazu/clipplanes/pkg/bounds"
	"github.com/chazu/clipplanes/pkg/clipping"
	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/chazu/clipplanes/pkg/solid"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values between builtins
// ---------------------------------------------------------------------------

type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpPlane struct {
	plane geom.Plane
}

func (p *sexpPlane) SexpString(ps *zygo.PrintState) string { return p.plane.String() }
func (p *sexpPlane) Type() *zygo.RegisteredType            { return nil }

type sexpColor struct {
	color clipping.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(color %g %g %g %g)", c.color.R, c.color.G, c.color.B, c.color.A)
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpMatrix wraps an affine transform built by translate, rotate, scale
// and compose.
type sexpMatrix struct {
	m sdf.M44
}

func (m *sexpMatrix) SexpString(ps *zygo.PrintState) string { return "(transform)" }
func (m *sexpMatrix) Type() *zygo.RegisteredType            { return nil }

type sexpSolid struct {
	solid solid.Solid
	desc  string
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string { return "(" + s.desc + ")" }
func (s *sexpSolid) Type() *zygo.RegisteredType            { return nil }

// sexpVolume is returned by the builtins that declare a named volume.
type sexpVolume struct {
	name string
}

func (v *sexpVolume) SexpString(ps *zygo.PrintState) string { return fmt.Sprintf("(volume %q)", v.name) }
func (v *sexpVolume) Type() *zygo.RegisteredType            { return nil }

type sexpCollection struct {
	planes int
}

func (c *sexpCollection) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(clipping-planes %d)", c.planes)
}
func (c *sexpCollection) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments. A
// trailing keyword without a value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func toColor(s zygo.Sexp) (clipping.Color, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.color, nil
	}
	return clipping.Color{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

func toMatrix(s zygo.Sexp) (sdf.M44, error) {
	if m, ok := s.(*sexpMatrix); ok {
		return m.m, nil
	}
	return sdf.M44{}, fmt.Errorf("expected transform, got %T (%s)", s, s.SexpString(nil))
}

func toSolid(s zygo.Sexp) (solid.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.solid, nil
	}
	return solid.Solid{}, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toPlanes flattens planes and lists of planes.
func toPlanes(s zygo.Sexp) ([]geom.Plane, error) {
	if p, ok := s.(*sexpPlane); ok {
		return []geom.Plane{p.plane}, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected plane or list of planes, got %T (%s)", s, s.SexpString(nil))
	}
	var planes []geom.Plane
	for _, item := range items {
		p, err := toPlanes(item)
		if err != nil {
			return nil, err
		}
		planes = append(planes, p...)
	}
	return planes, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// floatArgs converts exactly n positional number arguments.
func floatArgs(fn string, args []zygo.Sexp, names ...string) ([]float64, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, len(names), len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the clip-set builtins into env. Declarations are
// recorded in b.
//
// Source must be preprocessed with preprocessSource so that :keyword tokens
// are recognizable and kebab-case names match the registered underscore
// names.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("vec3", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: v3.Vec{X: f[0], Y: f[1], Z: f[2]}}, nil
	})

	// (plane (vec3 1 0 0) -2)
	// (plane (vec3 1 0 0) :through (vec3 2 0 0))
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("plane requires a normal")
		}
		normal, err := toVec3(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: normal: %w", err)
		}
		l := normal.Length()
		if l == 0 {
			return zygo.SexpNull, fmt.Errorf("plane: normal must not be zero")
		}
		normal = normal.MulScalar(1 / l)

		if v, ok := pa.kw["through"]; ok {
			point, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane: through: %w", err)
			}
			return &sexpPlane{plane: geom.PlaneFromPointNormal(point, normal)}, nil
		}

		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("plane requires a distance or :through point")
		}
		d, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: distance: %w", err)
		}
		return &sexpPlane{plane: geom.NewPlane(normal, d)}, nil
	})

	// (color 1 0 0) or (color 1 0 0 0.5)
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		names := []string{"r", "g", "b", "a"}
		if len(args) == 3 {
			names = names[:3]
		}
		f, err := floatArgs("color", args, names...)
		if err != nil {
			return zygo.SexpNull, err
		}
		c := clipping.Color{R: f[0], G: f[1], B: f[2], A: 1}
		if len(f) == 4 {
			c.A = f[3]
		}
		return &sexpColor{color: c}, nil
	})

	// (translate 1 3 2), (rotate 0 0 90), (scale 2 2 2)
	transforms := map[string]func(x, y, z float64) sdf.M44{
		"translate": geom.Translation,
		"rotate":    geom.Rotation,
		"scale":     geom.Scale,
	}
	for fn, build := range transforms {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			f, err := floatArgs(fn, args, "x", "y", "z")
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpMatrix{m: build(f[0], f[1], f[2])}, nil
		})
	}

	// (compose (translate 1 0 0) (rotate 0 0 90)) applies the last transform
	// first.
	env.AddFunction("compose", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m := geom.Identity()
		for i, a := range args {
			next, err := toMatrix(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("compose: argument %d: %w", i+1, err)
			}
			m = geom.ComposeTransforms(m, next)
		}
		return &sexpMatrix{m: m}, nil
	})

	// (sphere "probe" (vec3 0 0 0) 1)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("sphere requires a name, a center and a radius")
		}
		volName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: name: %w", err)
		}
		center, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: center: %w", err)
		}
		r, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		if r < 0 {
			return zygo.SexpNull, fmt.Errorf("sphere: radius must not be negative")
		}
		if err := b.addVolume(volName, bounds.NewSphere(center, r)); err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpVolume{name: volName}, nil
	})

	// (box "crate" (vec3 -1 -1 -1) (vec3 1 1 1))
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("box requires a name, a min corner and a max corner")
		}
		volName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: name: %w", err)
		}
		lo, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: min: %w", err)
		}
		hi, err := toVec3(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: max: %w", err)
		}
		if hi.X < lo.X || hi.Y < lo.Y || hi.Z < lo.Z {
			return zygo.SexpNull, fmt.Errorf("box: max corner below min corner")
		}
		if err := b.addVolume(volName, bounds.NewBox(lo, hi)); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &sexpVolume{name: volName}, nil
	})

	registerSolids(env, b)

	// (clipping-planes :union false :enabled true :edge-width 2
	//                  :edge-color (color 1 0 0) :model (translate 1 3 2)
	//                  (plane (vec3 1 0 0) 1) ...)
	env.AddFunction("clipping_planes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var opts []clipping.Option

		for _, p := range pa.positional {
			planes, err := toPlanes(p)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clipping-planes: %w", err)
			}
			opts = append(opts, clipping.WithPlanes(planes...))
		}
		if v, ok := pa.kw["union"]; ok {
			u, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clipping-planes: union: %w", err)
			}
			opts = append(opts, clipping.WithUnionClippingRegions(u))
		}
		if v, ok := pa.kw["enabled"]; ok {
			e, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clipping-planes: enabled: %w", err)
			}
			opts = append(opts, clipping.WithEnabled(e))
		}
		if v, ok := pa.kw["edge-width"]; ok {
			w, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clipping-planes: edge-width: %w", err)
			}
			opts = append(opts, clipping.WithEdgeWidth(w))
		}
		if v, ok := pa.kw["edge-color"]; ok {
			c, err := toColor(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clipping-planes: edge-color: %w", err)
			}
			opts = append(opts, clipping.WithEdgeColor(c))
		}
		if v, ok := pa.kw["model"]; ok {
			m, err := toMatrix(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("clipping-planes: model: %w", err)
			}
			opts = append(opts, clipping.WithModelMatrix(m))
		}

		c, err := clipping.New(opts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("clipping-planes: %w", err)
		}
		if err := b.setCollection(c); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpCollection{planes: c.Len()}, nil
	})
}
