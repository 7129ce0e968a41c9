// Package bounds defines the bounding volumes that can be classified
// against a clipping plane. A volume reports which side of a plane it
// lies on; combining the per-plane answers is left to the caller.
package bounds

import (
	"github.com/chazu/clipplanes/pkg/geom"
)

// Intersect is the result of classifying a volume against a plane or a
// set of planes.
type Intersect int

const (
	// Outside means the volume lies entirely on the clipped side.
	Outside Intersect = -1
	// Intersecting means the volume straddles the boundary.
	Intersecting Intersect = 0
	// Inside means the volume lies entirely on the retained side.
	Inside Intersect = 1
)

func (i Intersect) String() string {
	switch i {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// Volume is a bounding volume that can classify itself against a plane
// expressed in the volume's own coordinate space.
type Volume interface {
	IntersectPlane(p geom.Plane) Intersect
}

// classify maps a signed center distance and a projected extent onto an
// Intersect value.
func classify(distance, extent float64) Intersect {
	if distance < -extent {
		return Outside
	}
	if distance < extent {
		return Intersecting
	}
	return Inside
}
