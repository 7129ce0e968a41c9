package clipping

import (
	"testing"

	"github.com/chazu/clipplanes/pkg/bounds"
	"github.com/chazu/clipplanes/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/require"
)

var unitSphere = bounds.NewSphere(v3.Vec{}, 1)

func TestIntersectionMode(t *testing.T) {
	c := newTestCollection(t)
	require.Equal(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))

	steps := []struct {
		plane geom.Plane
		want  bounds.Intersect
	}{
		{plane: geom.NewPlane(geom.UnitX, -2), want: bounds.Outside},
		{plane: geom.NewPlane(geom.UnitY, 0), want: bounds.Intersecting},
		{plane: geom.NewPlane(geom.UnitZ, 1), want: bounds.Inside},
		{plane: geom.NewPlane(geom.UnitZ, 0), want: bounds.Inside},
	}

	for _, s := range steps {
		require.NoError(t, c.Add(s.plane))
		require.Equal(t, s.want, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil), s.plane.String())
	}
}

func TestUnionMode(t *testing.T) {
	c := newTestCollection(t, WithUnionClippingRegions(true))
	require.Equal(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))

	require.NoError(t, c.Add(geom.NewPlane(geom.UnitZ, 1)))
	require.Equal(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))

	temp := geom.NewPlane(geom.UnitY, -2)
	require.NoError(t, c.Add(temp))
	require.Equal(t, bounds.Outside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))

	require.NoError(t, c.Add(geom.NewPlane(geom.UnitX, 0)))
	require.Equal(t, bounds.Outside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))

	require.True(t, c.Remove(temp))
	require.Equal(t, bounds.Intersecting, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))
}

func TestModeSwitchChangesResult(t *testing.T) {
	c := newTestCollection(t, WithPlanes(
		geom.NewPlane(geom.UnitX, -2),
		geom.NewPlane(geom.UnitZ, 1),
	))
	require.Equal(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))

	c.SetUnionClippingRegions(true)
	require.Equal(t, bounds.Outside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))
}

func TestIntersectionWithTransform(t *testing.T) {
	c := newTestCollection(t)
	transform := geom.Translation(1, 3, 2)
	require.Equal(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(unitSphere, &transform))

	require.NoError(t, c.Add(geom.NewPlane(geom.UnitX, -1)))
	require.NotEqual(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(unitSphere, &transform))
	require.Equal(t, bounds.Outside, c.ComputeIntersectionWithBoundingVolume(unitSphere, &transform))
	require.Equal(t, bounds.Intersecting, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))
}

func TestIntersectionWithModelMatrix(t *testing.T) {
	c := newTestCollection(t,
		WithPlanes(geom.NewPlane(geom.UnitX, -1)),
		WithModelMatrix(geom.Translation(1, 3, 2)),
	)
	require.Equal(t, bounds.Outside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))

	back := geom.Translation(-4, 0, 0)
	require.Equal(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(unitSphere, &back))
}

func TestIntersectionWithBox(t *testing.T) {
	box := bounds.NewBox(v3.Vec{X: -1, Y: -1, Z: -1}, v3.Vec{X: 1, Y: 1, Z: 1})

	c := newTestCollection(t, WithPlanes(geom.NewPlane(geom.UnitX, 0)))
	require.Equal(t, bounds.Intersecting, c.ComputeIntersectionWithBoundingVolume(box, nil))

	c = newTestCollection(t, WithPlanes(geom.NewPlane(geom.UnitX, 3)))
	require.Equal(t, bounds.Inside, c.ComputeIntersectionWithBoundingVolume(box, nil))
}

func TestIntersectionIgnoresEnabledAndUpdate(t *testing.T) {
	c := newTestCollection(t, WithPlanes(geom.NewPlane(geom.UnitX, -2)), WithEnabled(false))
	require.Equal(t, bounds.Outside, c.ComputeIntersectionWithBoundingVolume(unitSphere, nil))
	require.Nil(t, c.Texture())
}
