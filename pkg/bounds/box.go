package bounds

import (
	"math"

	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ Volume = Box{}

// Box is an axis-aligned bounding box.
type Box struct {
	sdf.Box3
}

// NewBox returns the box spanning min to max.
func NewBox(min, max v3.Vec) Box {
	return Box{sdf.Box3{Min: min, Max: max}}
}

// BoxFromSDF3 returns the bounding box of an sdfx solid.
func BoxFromSDF3(s sdf.SDF3) Box {
	return Box{s.BoundingBox()}
}

// IntersectPlane classifies the box against p using the projection of the
// half extents onto the plane normal.
func (b Box) IntersectPlane(p geom.Plane) Intersect {
	center := b.Min.Add(b.Max).MulScalar(0.5)
	half := b.Max.Sub(b.Min).MulScalar(0.5)
	n := p.Normal
	extent := half.X*math.Abs(n.X) + half.Y*math.Abs(n.Y) + half.Z*math.Abs(n.Z)

	s := p.SignedDistance(center)
	if s-extent > 0 {
		return Inside
	}
	if s+extent < 0 {
		return Outside
	}
	return Intersecting
}
