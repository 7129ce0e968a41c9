package clipping

import (
	"github.com/chazu/clipplanes/pkg/bounds"
	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
)

// ComputeIntersectionWithBoundingVolume classifies v against the combined
// clip region. Planes are taken to v's space by ModelMatrix, preceded by
// transform when it is not nil.
//
// In intersection mode the result starts Outside and the first plane that
// fully retains v ends the scan with Inside. In union mode the result starts
// Inside and the first plane that fully clips v ends the scan with Outside.
// An Intersecting plane sets the result and the scan continues.
func (c *Collection) ComputeIntersectionWithBoundingVolume(v bounds.Volume, transform *sdf.M44) bounds.Intersect {
	m := c.ModelMatrix
	if transform != nil {
		m = geom.ComposeTransforms(*transform, c.ModelMatrix)
	}

	union := c.unionClippingRegions
	result := bounds.Outside
	if union || len(c.planes) == 0 {
		result = bounds.Inside
	}

	for _, p := range c.planes {
		switch v.IntersectPlane(geom.TransformPlane(p, m)) {
		case bounds.Intersecting:
			result = bounds.Intersecting
		case bounds.Outside:
			if union {
				return bounds.Outside
			}
		case bounds.Inside:
			if !union {
				return bounds.Inside
			}
		}
	}
	return result
}
