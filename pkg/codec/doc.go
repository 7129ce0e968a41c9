// Package codec packs clipping planes into RGBA8 texels.
//
// Each plane occupies two adjacent texels. The first holds the unit normal,
// octahedral-encoded into two 16-bit values split into high and low bytes:
//
//	[xHigh, xLow, yHigh, yLow]
//
// The second holds the distance, normalized into a shared [min, max] range
// and stored as four base-255 fixed-point digits, most significant first.
// A shader reconstructs it as
//
//	t = dot(texel/255, vec4(1, 1/255, 1/65025, 1/16581375))
//	distance = min + t*(max-min)
//
// All functions are pure and safe for concurrent use.
package codec
