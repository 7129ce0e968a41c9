package codec

import "math"

// unpackWeights are the per-digit weights applied after dividing each byte
// by 255.
var unpackWeights = [4]float64{1, 1.0 / 255, 1.0 / 65025, 1.0 / 16581375}

// EncodeUnorm stores t, clamped to [0, 1], as four base-255 digits, most
// significant first. The last digit is rounded, so the round-trip error is
// at most half of 1/255^4.
func EncodeUnorm(t float64) [4]byte {
	var b [4]byte
	x := clamp(t, 0, 1)
	for i := range b {
		x *= 255
		d := math.Floor(x)
		if i == len(b)-1 {
			d = math.Round(x)
		}
		d = clamp(d, 0, 255)
		b[i] = byte(d)
		x -= d
	}
	return b
}

// DecodeUnorm is the inverse of EncodeUnorm.
func DecodeUnorm(b [4]byte) float64 {
	var t float64
	for i, v := range b {
		t += float64(v) / 255 * unpackWeights[i]
	}
	return t
}

// Range is the shared distance range all planes of a buffer are normalized
// into.
type Range struct {
	Min float64
	Max float64
}

// Normalize maps d into [0, 1]. A degenerate range maps everything to 0.
func (r Range) Normalize(d float64) float64 {
	span := r.Max - r.Min
	if span == 0 {
		return 0
	}
	return clamp((d-r.Min)/span, 0, 1)
}

// Denormalize maps t from [0, 1] back into the range.
func (r Range) Denormalize(t float64) float64 {
	return r.Min + t*(r.Max-r.Min)
}
