package clipping

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/clipplanes/pkg/geom"
)

// Len returns the number of planes.
func (c *Collection) Len() int {
	return len(c.planes)
}

// Add appends p. It fails with ErrTypeCapacityExceeded when the collection
// already holds MaxClippingPlanes planes, leaving the collection unchanged.
func (c *Collection) Add(p geom.Plane) error {
	if len(c.planes) >= MaxClippingPlanes {
		capacityRejectionsTotal.Inc()
		logs.WithTag("plane", p.String()).
			WithTag("max", MaxClippingPlanes).
			Debug("clipping plane rejected")
		return capacityError(len(c.planes) + 1)
	}
	c.planes = append(c.planes, p)
	c.Dirty = true
	return nil
}

// Get returns the plane at index i. The boolean is false when i is out of
// range.
func (c *Collection) Get(i int) (geom.Plane, bool) {
	if i < 0 || i >= len(c.planes) {
		return geom.Plane{}, false
	}
	return c.planes[i], true
}

// Contains reports whether a plane equal to p is stored.
func (c *Collection) Contains(p geom.Plane) bool {
	return c.indexOf(p) >= 0
}

// Remove deletes the first plane equal to p and reports whether one was
// found.
func (c *Collection) Remove(p geom.Plane) bool {
	i := c.indexOf(p)
	if i < 0 {
		return false
	}
	c.planes = append(c.planes[:i], c.planes[i+1:]...)
	c.Dirty = true
	return true
}

// Planes returns a copy of the stored planes in insertion order.
func (c *Collection) Planes() []geom.Plane {
	return append([]geom.Plane(nil), c.planes...)
}

func (c *Collection) indexOf(p geom.Plane) int {
	for i, q := range c.planes {
		if q.Equals(p) {
			return i
		}
	}
	return -1
}

func capacityError(requested int) error {
	return errors.New("clipping plane capacity exceeded").
		WithType(ErrTypeCapacityExceeded).
		WithTag("max", MaxClippingPlanes).
		WithTag("requested", requested)
}
