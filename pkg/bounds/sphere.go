package bounds

import (
	"github.com/chazu/clipplanes/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ Volume = Sphere{}

// Sphere is a bounding sphere.
type Sphere struct {
	Center v3.Vec
	Radius float64
}

// NewSphere returns a sphere with the given center and radius.
func NewSphere(center v3.Vec, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// IntersectPlane classifies the sphere against p. A sphere that touches
// the plane from the retained side counts as Inside.
func (s Sphere) IntersectPlane(p geom.Plane) Intersect {
	return classify(p.SignedDistance(s.Center), s.Radius)
}
