package clipping

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/clipplanes/pkg/codec"
	"github.com/chazu/clipplanes/pkg/texture"
	"gonum.org/v1/gonum/floats"
)

// RangeStats summarizes the plane distances of the last packed plane set.
// The shader uses MinDistance and MaxDistance to decode the fixed point
// distance bytes.
type RangeStats struct {
	Count         int
	MinDistance   float64
	MaxDistance   float64
	UnionModeFlag int
}

// Range returns the distance range the planes were packed with.
func (s RangeStats) Range() codec.Range {
	return codec.Range{Min: s.MinDistance, Max: s.MaxDistance}
}

// RangeStats returns the statistics published by the last Update.
func (c *Collection) RangeStats() RangeStats {
	return c.rangeStats
}

// RangeUnionStats returns the statistics published by the last Update with
// UnionModeFlag set to 1 in union mode.
func (c *Collection) RangeUnionStats() RangeStats {
	return c.rangeUnionStats
}

// Update brings the plane texture up to date. The texture is created on the
// first call. Nothing is recomputed or uploaded unless the collection is
// dirty.
func (c *Collection) Update(dev texture.Device) error {
	if c.destroyed {
		return errors.New("clipping collection is destroyed").
			WithType(ErrTypeDestroyed)
	}

	if c.texture == nil {
		tex, err := dev.CreateTexture(textureDescriptor())
		if err != nil {
			return errors.New("creating clipping plane texture failed").
				WithType(ErrTypeTexture).
				Wrap(err)
		}
		c.texture = tex
		c.packed = make([]byte, textureDescriptor().ByteSize())

		logs.WithTag("width", TextureWidth).
			WithTag("height", TextureWidth).
			Debug("clipping plane texture created")
	}

	if !c.Dirty {
		return nil
	}

	c.computeRangeStats()
	r := c.rangeStats.Range()

	n := len(c.planes) * codec.BytesPerPlane
	for i, p := range c.planes {
		codec.EncodePlane(c.packed[i*codec.BytesPerPlane:], p, r)
	}
	clear(c.packed[n:max(n, c.packedLen)])
	c.packedLen = n
	packsTotal.Inc()

	rows := max((n+rowBytes-1)/rowBytes, c.uploadRows)
	if rows > 0 {
		region := texture.Region{Width: TextureWidth, Height: rows}
		data := c.packed[:rows*rowBytes]
		if err := c.texture.Upload(region, data); err != nil {
			return errors.New("uploading clipping planes failed").
				WithType(ErrTypeTexture).
				WithTag("rows", rows).
				Wrap(err)
		}
		uploadsTotal.Inc()
		uploadBytesTotal.Add(float64(len(data)))
	}
	c.uploadRows = (n + rowBytes - 1) / rowBytes

	c.Dirty = false
	return nil
}

func (c *Collection) computeRangeStats() {
	flag := 0
	if c.unionClippingRegions {
		flag = 1
	}

	stats := RangeStats{Count: len(c.planes)}
	if len(c.planes) > 0 {
		distances := make([]float64, len(c.planes))
		for i, p := range c.planes {
			distances[i] = p.Distance
		}
		stats.MinDistance = floats.Min(distances)
		stats.MaxDistance = floats.Max(distances)
	}

	c.rangeStats = stats
	stats.UnionModeFlag = flag
	c.rangeUnionStats = stats
}
