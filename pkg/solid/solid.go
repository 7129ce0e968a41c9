// Package solid builds placed solids with the github.com/deadsy/sdfx SDF
// library. Clip-set scripts use solids to describe the geometry that is
// culled; only their bounding boxes reach the classifier.
package solid

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/clipplanes/pkg/bounds"
	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrTypeInvalid is returned when a primitive is given invalid dimensions.
const ErrTypeInvalid = "solid-invalid"

// Solid wraps an sdf.SDF3.
type Solid struct {
	s sdf.SDF3
}

// FromSDF3 wraps an existing sdfx solid.
func FromSDF3(s sdf.SDF3) Solid {
	return Solid{s: s}
}

// SDF3 returns the wrapped sdfx solid.
func (s Solid) SDF3() sdf.SDF3 {
	return s.s
}

// Bounds returns the axis-aligned bounding box of the solid.
func (s Solid) Bounds() bounds.Box {
	return bounds.BoxFromSDF3(s.s)
}

// Box returns an x by y by z box with its minimum corner at the origin, so
// that a translation places the corner.
func Box(x, y, z float64) (Solid, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return Solid{}, invalid("box", err)
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return Solid{s: sdf.Transform3D(s, m)}, nil
}

// Cylinder returns a cylinder along Z centered on the origin.
func Cylinder(height, radius float64) (Solid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return Solid{}, invalid("cylinder", err)
	}
	return Solid{s: s}, nil
}

// Ball returns a sphere centered on the origin.
func Ball(radius float64) (Solid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return Solid{}, invalid("ball", err)
	}
	return Solid{s: s}, nil
}

// Union returns the union of the given solids.
func Union(solids ...Solid) Solid {
	return Solid{s: sdf.Union3D(unwrap(solids)...)}
}

// Difference returns a minus b.
func Difference(a, b Solid) Solid {
	return Solid{s: sdf.Difference3D(a.s, b.s)}
}

// Intersection returns the intersection of a and b.
func Intersection(a, b Solid) Solid {
	return Solid{s: sdf.Intersect3D(a.s, b.s)}
}

// Translate moves the solid by (x, y, z).
func (s Solid) Translate(x, y, z float64) Solid {
	return s.Transform(geom.Translation(x, y, z))
}

// Rotate rotates the solid by Euler angles in degrees around X, Y and Z.
func (s Solid) Rotate(x, y, z float64) Solid {
	return s.Transform(geom.Rotation(x, y, z))
}

// Transform applies m to the solid.
func (s Solid) Transform(m sdf.M44) Solid {
	return Solid{s: sdf.Transform3D(s.s, m)}
}

func unwrap(solids []Solid) []sdf.SDF3 {
	out := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		out[i] = s.s
	}
	return out
}

func invalid(kind string, err error) error {
	return errors.New("invalid " + kind).
		WithType(ErrTypeInvalid).
		WithTag("kind", kind).
		Wrap(err)
}
