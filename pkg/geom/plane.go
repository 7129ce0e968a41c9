package geom

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Plane is a plane in Hessian normal form: dot(Normal, x) + Distance = 0.
// Normal is expected to be unit length; it is never renormalized on store.
// Points with dot(Normal, x) + Distance >= 0 lie on the retained side.
type Plane struct {
	Normal   v3.Vec
	Distance float64
}

// NewPlane returns the plane with the given normal and distance.
func NewPlane(normal v3.Vec, distance float64) Plane {
	return Plane{Normal: normal, Distance: distance}
}

// PlaneFromPointNormal returns the plane through point with the given normal.
func PlaneFromPointNormal(point, normal v3.Vec) Plane {
	return Plane{Normal: normal, Distance: -normal.Dot(point)}
}

// Equals reports whether both planes have exactly the same normal and
// distance. No tolerance is applied.
func (p Plane) Equals(o Plane) bool {
	return p.Normal == o.Normal && p.Distance == o.Distance
}

// SignedDistance returns the signed distance from point to the plane.
func (p Plane) SignedDistance(point v3.Vec) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// Point returns the point on the plane closest to the origin.
func (p Plane) Point() v3.Vec {
	return p.Normal.MulScalar(-p.Distance)
}

func (p Plane) String() string {
	return fmt.Sprintf("(plane (%g %g %g) %g)", p.Normal.X, p.Normal.Y, p.Normal.Z, p.Distance)
}

// Unit axis normals.
var (
	UnitX = v3.Vec{X: 1}
	UnitY = v3.Vec{Y: 1}
	UnitZ = v3.Vec{Z: 1}
)
