package solid

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func vecNear(a, b v3.Vec) bool {
	const tol = 1e-6
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestBoxBounds(t *testing.T) {
	box, err := Box(100, 50, 25)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	bb := box.Bounds()
	if !vecNear(bb.Min, v3.Vec{}) {
		t.Errorf("min = %v, want origin", bb.Min)
	}
	if !vecNear(bb.Max, v3.Vec{X: 100, Y: 50, Z: 25}) {
		t.Errorf("max = %v, want (100, 50, 25)", bb.Max)
	}
}

func TestTranslate(t *testing.T) {
	box, err := Box(10, 10, 10)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	bb := box.Translate(5, -5, 2).Bounds()
	if !vecNear(bb.Min, v3.Vec{X: 5, Y: -5, Z: 2}) {
		t.Errorf("min = %v, want (5, -5, 2)", bb.Min)
	}
	if !vecNear(bb.Max, v3.Vec{X: 15, Y: 5, Z: 12}) {
		t.Errorf("max = %v, want (15, 5, 12)", bb.Max)
	}
}

func TestRotate(t *testing.T) {
	box, err := Box(10, 2, 2)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	bb := box.Rotate(0, 0, 90).Bounds()
	size := bb.Max.Sub(bb.Min)
	if math.Abs(size.X-2) > 1e-6 || math.Abs(size.Y-10) > 1e-6 {
		t.Errorf("rotated size = %v, want (2, 10, 2)", size)
	}
}

func TestCylinderAndBall(t *testing.T) {
	cyl, err := Cylinder(50, 10)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	bb := cyl.Bounds()
	if !vecNear(bb.Max, v3.Vec{X: 10, Y: 10, Z: 25}) {
		t.Errorf("cylinder max = %v, want (10, 10, 25)", bb.Max)
	}

	ball, err := Ball(3)
	if err != nil {
		t.Fatalf("Ball failed: %v", err)
	}
	if bb := ball.Bounds(); !vecNear(bb.Min, v3.Vec{X: -3, Y: -3, Z: -3}) {
		t.Errorf("ball min = %v, want (-3, -3, -3)", bb.Min)
	}
}

func TestUnionBounds(t *testing.T) {
	a, _ := Box(10, 10, 10)
	b, _ := Box(10, 10, 10)
	u := Union(a, b.Translate(20, 0, 0))

	bb := u.Bounds()
	if !vecNear(bb.Max, v3.Vec{X: 30, Y: 10, Z: 10}) {
		t.Errorf("union max = %v, want (30, 10, 10)", bb.Max)
	}
}

func TestDifferenceKeepsBounds(t *testing.T) {
	box, _ := Box(100, 100, 100)
	cyl, _ := Cylinder(120, 20)
	diff := Difference(box, cyl.Translate(50, 50, 50))

	if got, want := diff.Bounds(), box.Bounds(); !vecNear(got.Min, want.Min) || !vecNear(got.Max, want.Max) {
		t.Errorf("difference bounds = %v, want %v", got, want)
	}
}

func TestInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		make func() (Solid, error)
	}{
		{"box", func() (Solid, error) { return Box(-1, 1, 1) }},
		{"cylinder", func() (Solid, error) { return Cylinder(1, -1) }},
		{"ball", func() (Solid, error) { return Ball(-2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.make()
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Type(err) != ErrTypeInvalid {
				t.Errorf("error type = %q, want %q", errors.Type(err), ErrTypeInvalid)
			}
		})
	}
}
