package codec

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// OctRange16 is the range used for 16-bit octahedral components.
const OctRange16 = 65535

// OctEncodeInRange maps a unit vector onto two integers in [0, rangeMax]
// using octahedral projection.
func OctEncodeInRange(n v3.Vec, rangeMax int) (x, y int) {
	l1 := math.Abs(n.X) + math.Abs(n.Y) + math.Abs(n.Z)
	ox := n.X / l1
	oy := n.Y / l1
	if n.Z < 0 {
		// Fold the lower hemisphere over the diagonals.
		ox, oy = (1-math.Abs(oy))*signNotZero(ox), (1-math.Abs(ox))*signNotZero(oy)
	}
	return toSNorm(ox, rangeMax), toSNorm(oy, rangeMax)
}

// OctDecodeInRange is the inverse of OctEncodeInRange. The result is
// normalized.
func OctDecodeInRange(x, y, rangeMax int) v3.Vec {
	ox := fromSNorm(x, rangeMax)
	oy := fromSNorm(y, rangeMax)
	oz := 1 - (math.Abs(ox) + math.Abs(oy))
	if oz < 0 {
		ox, oy = (1-math.Abs(oy))*signNotZero(ox), (1-math.Abs(ox))*signNotZero(oy)
	}
	return v3.Vec{X: ox, Y: oy, Z: oz}.Normalize()
}

func signNotZero(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// toSNorm maps [-1, 1] onto [0, rangeMax].
func toSNorm(v float64, rangeMax int) int {
	return int(math.Round((clamp(v, -1, 1)*0.5 + 0.5) * float64(rangeMax)))
}

// fromSNorm maps [0, rangeMax] back onto [-1, 1].
func fromSNorm(v, rangeMax int) float64 {
	r := float64(rangeMax)
	return clamp(float64(v), 0, r)/r*2 - 1
}
