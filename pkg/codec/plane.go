package codec

import (
	"github.com/chazu/clipplanes/pkg/geom"
)

const (
	// BytesPerTexel is the size of one RGBA8 texel.
	BytesPerTexel = 4
	// TexelsPerPlane is the number of texels one encoded plane occupies.
	TexelsPerPlane = 2
	// BytesPerPlane is the size of one encoded plane.
	BytesPerPlane = BytesPerTexel * TexelsPerPlane
)

// EncodePlane writes the two texels for p into dst[:BytesPerPlane].
func EncodePlane(dst []byte, p geom.Plane, r Range) {
	_ = dst[BytesPerPlane-1]

	x, y := OctEncodeInRange(p.Normal, OctRange16)
	dst[0] = byte(x >> 8)
	dst[1] = byte(x)
	dst[2] = byte(y >> 8)
	dst[3] = byte(y)

	d := EncodeUnorm(r.Normalize(p.Distance))
	copy(dst[4:8], d[:])
}

// DecodePlane reads a plane written by EncodePlane from src[:BytesPerPlane].
func DecodePlane(src []byte, r Range) geom.Plane {
	_ = src[BytesPerPlane-1]

	x := int(src[0])*256 + int(src[1])
	y := int(src[2])*256 + int(src[3])
	normal := OctDecodeInRange(x, y, OctRange16)

	var d [4]byte
	copy(d[:], src[4:8])
	return geom.Plane{Normal: normal, Distance: r.Denormalize(DecodeUnorm(d))}
}
