package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Identity returns the identity transform.
func Identity() sdf.M44 {
	return sdf.Identity3d()
}

// ComposeTransforms returns a*b: the transform that applies b first and then a.
func ComposeTransforms(a, b sdf.M44) sdf.M44 {
	return a.Mul(b)
}

// Translation returns a pure translation transform.
func Translation(x, y, z float64) sdf.M44 {
	return sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
}

// Rotation returns a rotation by Euler angles in degrees, applied X, then Y,
// then Z.
func Rotation(x, y, z float64) sdf.M44 {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0
	return sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
}

// Scale returns a non-uniform scaling transform.
func Scale(x, y, z float64) sdf.M44 {
	return sdf.Scale3d(v3.Vec{X: x, Y: y, Z: z})
}

// TransformPlane maps p through the affine transform m. The normal is
// transformed by the inverse transpose of m's linear part and renormalized;
// the distance is recomputed from the transformed point on the plane.
func TransformPlane(p Plane, m sdf.M44) Plane {
	point := m.MulPosition(p.Point())

	// The linear part of m^-1, read column by column.
	inv := m.Inverse()
	origin := inv.MulPosition(v3.Vec{})
	c0 := inv.MulPosition(UnitX).Sub(origin)
	c1 := inv.MulPosition(UnitY).Sub(origin)
	c2 := inv.MulPosition(UnitZ).Sub(origin)

	// (m^-T n)_j = dot(column j of m^-1, n)
	normal := v3.Vec{
		X: c0.Dot(p.Normal),
		Y: c1.Dot(p.Normal),
		Z: c2.Dot(p.Normal),
	}
	if l := normal.Length(); l > 0 {
		normal = normal.MulScalar(1 / l)
	}
	return PlaneFromPointNormal(point, normal)
}
