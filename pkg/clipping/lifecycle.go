package clipping

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// Clone copies the planes and rendering settings of c into dst and returns
// it. A new collection is allocated when dst is nil or destroyed; a
// destroyed dst is left untouched. The plane array of dst is reused when
// large enough. Any texture dst held is released and the result is dirty.
// Owner is not copied.
func (c *Collection) Clone(dst *Collection) *Collection {
	if dst == nil || dst.destroyed {
		dst = newDefault()
	}

	dst.planes = append(dst.planes[:0], c.planes...)
	dst.Enabled = c.Enabled
	dst.ModelMatrix = c.ModelMatrix
	dst.EdgeColor = c.EdgeColor
	dst.EdgeWidth = c.EdgeWidth
	dst.unionClippingRegions = c.unionClippingRegions

	if dst.texture != nil {
		if err := dst.texture.Destroy(); err != nil {
			logs.Warn(errors.New("releasing clone destination texture failed").
				WithType(ErrTypeTexture).
				Wrap(err))
		}
	}
	dst.texture = nil
	dst.packed = nil
	dst.packedLen = 0
	dst.uploadRows = 0
	dst.rangeStats = RangeStats{}
	dst.rangeUnionStats = RangeStats{}
	dst.Dirty = true
	return dst
}

// CheckDestroy destroys the collection when it has no owner or when caller
// is its owner. Otherwise it does nothing.
func (c *Collection) CheckDestroy(caller uuid.UUID) error {
	if c.Owner != uuid.Nil && caller != c.Owner {
		return nil
	}
	return c.destroy()
}

// IsDestroyed reports whether the collection was destroyed.
func (c *Collection) IsDestroyed() bool {
	return c.destroyed
}

func (c *Collection) destroy() error {
	if c.destroyed {
		return nil
	}
	c.destroyed = true
	c.packed = nil

	if c.texture == nil {
		return nil
	}
	tex := c.texture
	c.texture = nil
	if err := tex.Destroy(); err != nil {
		return errors.New("destroying clipping plane texture failed").
			WithType(ErrTypeTexture).
			Wrap(err)
	}

	logs.WithTag("owner", c.Owner.String()).
		Debug("clipping plane texture destroyed")
	return nil
}
