package clipping

import (
	"github.com/chazu/clipplanes/pkg/codec"
	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/chazu/clipplanes/pkg/texture"
	"github.com/deadsy/sdfx/sdf"
	"github.com/google/uuid"
)

const (
	// MaxClippingPlanes is the capacity of a collection.
	MaxClippingPlanes = 2048

	// TextureWidth is the width and height of the packed plane texture. It
	// holds codec.TexelsPerPlane texels for each of MaxClippingPlanes planes.
	TextureWidth = 64
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Red   = Color{R: 1, A: 1}
)

// Collection is an ordered, capacity-bounded set of clipping planes together
// with the texture the planes are packed into.
type Collection struct {
	planes []geom.Plane

	// Enabled tells the renderer whether to apply the planes at all. It does
	// not change packing or classification.
	Enabled bool

	// ModelMatrix maps plane space into the space bounding volumes are
	// expressed in.
	ModelMatrix sdf.M44

	// EdgeColor and EdgeWidth style the clipped edge. They are passed
	// through to the renderer untouched.
	EdgeColor Color
	EdgeWidth float64

	unionClippingRegions bool

	// Dirty is set whenever the packed texture is out of date. Owners that
	// know the texture is already current may clear it to skip the next
	// rebuild.
	Dirty bool

	// Owner, when set, is the only caller allowed to destroy the collection.
	Owner uuid.UUID

	texture    texture.Texture
	packed     []byte
	packedLen  int
	uploadRows int

	rangeStats      RangeStats
	rangeUnionStats RangeStats

	destroyed bool
}

// Option configures a Collection created by New.
type Option func(*Collection)

// WithPlanes sets the initial planes.
func WithPlanes(planes ...geom.Plane) Option {
	return func(c *Collection) {
		c.planes = append(c.planes, planes...)
	}
}

// WithEnabled sets whether the planes are applied by the renderer.
func WithEnabled(enabled bool) Option {
	return func(c *Collection) {
		c.Enabled = enabled
	}
}

// WithModelMatrix sets the plane-to-volume transform.
func WithModelMatrix(m sdf.M44) Option {
	return func(c *Collection) {
		c.ModelMatrix = m
	}
}

// WithEdgeColor sets the clipped edge color.
func WithEdgeColor(color Color) Option {
	return func(c *Collection) {
		c.EdgeColor = color
	}
}

// WithEdgeWidth sets the clipped edge width.
func WithEdgeWidth(width float64) Option {
	return func(c *Collection) {
		c.EdgeWidth = width
	}
}

// WithUnionClippingRegions selects union mode instead of intersection mode.
func WithUnionClippingRegions(union bool) Option {
	return func(c *Collection) {
		c.unionClippingRegions = union
	}
}

// WithOwner registers the owner allowed to destroy the collection.
func WithOwner(owner uuid.UUID) Option {
	return func(c *Collection) {
		c.Owner = owner
	}
}

// New returns a collection configured by opts. It fails with
// ErrTypeCapacityExceeded when more than MaxClippingPlanes planes are given.
func New(opts ...Option) (*Collection, error) {
	c := newDefault()
	for _, opt := range opts {
		opt(c)
	}
	if len(c.planes) > MaxClippingPlanes {
		capacityRejectionsTotal.Add(float64(len(c.planes) - MaxClippingPlanes))
		return nil, capacityError(len(c.planes))
	}
	return c, nil
}

func newDefault() *Collection {
	return &Collection{
		Enabled:     true,
		ModelMatrix: geom.Identity(),
		EdgeColor:   White,
		Dirty:       true,
	}
}

// UnionClippingRegions reports whether planes combine in union mode.
func (c *Collection) UnionClippingRegions() bool {
	return c.unionClippingRegions
}

// SetUnionClippingRegions selects union (true) or intersection (false)
// mode. Changing the mode marks the collection dirty so the packed
// statistics are refreshed on the next Update.
func (c *Collection) SetUnionClippingRegions(union bool) {
	if c.unionClippingRegions == union {
		return
	}
	c.unionClippingRegions = union
	c.Dirty = true
}

// Texture returns the packed plane texture, or nil before the first Update.
func (c *Collection) Texture() texture.Texture {
	return c.texture
}

// PackedBytes returns a copy of the packed plane buffer, or nil before the
// first Update.
func (c *Collection) PackedBytes() []byte {
	if c.packed == nil {
		return nil
	}
	return append([]byte(nil), c.packed...)
}

// textureDescriptor is the descriptor every plane texture is created with.
func textureDescriptor() texture.Descriptor {
	return texture.Descriptor{
		Label:         "clipping-planes",
		Width:         TextureWidth,
		Height:        TextureWidth,
		PixelFormat:   texture.PixelFormatRGBA,
		PixelDatatype: texture.PixelDatatypeUnsignedByte,
		Sampler:       texture.NearestClamp,
	}
}

// rowBytes is the size of one texture row.
const rowBytes = TextureWidth * codec.BytesPerTexel
