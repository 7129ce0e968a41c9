// Package texture defines the abstract GPU texture interface the clipping
// core uploads its packed buffer through. Implementations (memory, gpu)
// provide the actual resource behind this interface, so the core never
// depends on a specific rendering API.
package texture

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Error types reported by devices and textures.
const (
	ErrTypeInvalidRegion = "texture-invalid-region"
	ErrTypeInvalidSize   = "texture-invalid-size"
	ErrTypeDestroyed     = "texture-destroyed"
)

// PixelFormat is the channel layout of a texel.
type PixelFormat int

const (
	PixelFormatRGBA PixelFormat = iota
)

func (f PixelFormat) String() string {
	if f == PixelFormatRGBA {
		return "rgba"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// PixelDatatype is the storage type of one channel.
type PixelDatatype int

const (
	PixelDatatypeUnsignedByte PixelDatatype = iota
)

func (d PixelDatatype) String() string {
	if d == PixelDatatypeUnsignedByte {
		return "unsigned-byte"
	}
	return fmt.Sprintf("PixelDatatype(%d)", int(d))
}

// Filter selects how texels are sampled.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Wrap selects how out-of-range coordinates are addressed.
type Wrap int

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
	WrapMirroredRepeat
)

// Sampler describes how a shader reads the texture.
type Sampler struct {
	MinFilter Filter
	MagFilter Filter
	WrapS     Wrap
	WrapT     Wrap
}

// NearestClamp is a point-sampling, edge-clamped sampler for textures that
// store discrete codes instead of images.
var NearestClamp = Sampler{
	MinFilter: FilterNearest,
	MagFilter: FilterNearest,
	WrapS:     WrapClampToEdge,
	WrapT:     WrapClampToEdge,
}

// Descriptor describes a texture to create.
type Descriptor struct {
	Label         string
	Width         int
	Height        int
	PixelFormat   PixelFormat
	PixelDatatype PixelDatatype
	Sampler       Sampler
}

// BytesPerTexel returns the byte size of one texel.
func (d Descriptor) BytesPerTexel() int {
	return 4
}

// ByteSize returns the size of the full texture in bytes.
func (d Descriptor) ByteSize() int {
	return d.Width * d.Height * d.BytesPerTexel()
}

// Region is a rectangular sub-region of a texture, in texels.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Validate checks that the region lies within the texture and that data
// holds exactly one tightly packed row-major copy of it.
func (d Descriptor) Validate(r Region, data []byte) error {
	if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 ||
		r.X+r.Width > d.Width || r.Y+r.Height > d.Height {
		return errors.New("region outside texture").
			WithType(ErrTypeInvalidRegion).
			WithTag("region", fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)).
			WithTag("texture", fmt.Sprintf("%dx%d", d.Width, d.Height))
	}
	if want := r.Width * r.Height * d.BytesPerTexel(); len(data) != want {
		return errors.New("region data has the wrong size").
			WithType(ErrTypeInvalidRegion).
			WithTag("want", want).
			WithTag("got", len(data))
	}
	return nil
}

// Texture is a GPU texture owned by exactly one holder.
type Texture interface {
	// Descriptor returns the descriptor the texture was created with.
	Descriptor() Descriptor

	// Upload replaces the texels of region r with data.
	Upload(r Region, data []byte) error

	// Destroy releases the texture. The texture must not be used afterwards.
	Destroy() error
}

// Device creates textures.
type Device interface {
	CreateTexture(d Descriptor) (Texture, error)
}
