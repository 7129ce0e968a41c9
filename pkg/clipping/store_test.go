package clipping

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/chazu/clipplanes/pkg/texture/memory"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var testPlanes = []geom.Plane{
	geom.NewPlane(geom.UnitX, 1),
	geom.NewPlane(geom.UnitY, 2),
}

func newTestCollection(t *testing.T, opts ...Option) *Collection {
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func TestNewDefaults(t *testing.T) {
	c := newTestCollection(t)
	require.Zero(t, c.Len())
	require.True(t, c.Enabled)
	require.Equal(t, geom.Identity(), c.ModelMatrix)
	require.Equal(t, White, c.EdgeColor)
	require.Zero(t, c.EdgeWidth)
	require.False(t, c.UnionClippingRegions())
	require.Equal(t, uuid.Nil, c.Owner)
	require.Nil(t, c.Texture())
	require.Nil(t, c.PackedBytes())
	require.False(t, c.IsDestroyed())
}

func TestNewWithOptions(t *testing.T) {
	owner := uuid.New()
	m := geom.Translation(1, 3, 2)

	c := newTestCollection(t,
		WithPlanes(testPlanes...),
		WithEnabled(false),
		WithModelMatrix(m),
		WithEdgeColor(Red),
		WithEdgeWidth(2),
		WithUnionClippingRegions(true),
		WithOwner(owner),
	)
	require.Equal(t, testPlanes, c.Planes())
	require.False(t, c.Enabled)
	require.Equal(t, m, c.ModelMatrix)
	require.Equal(t, Red, c.EdgeColor)
	require.Equal(t, 2.0, c.EdgeWidth)
	require.True(t, c.UnionClippingRegions())
	require.Equal(t, owner, c.Owner)
}

func TestNewTooManyPlanes(t *testing.T) {
	planes := make([]geom.Plane, MaxClippingPlanes+1)
	c, err := New(WithPlanes(planes...))
	require.Nil(t, c)
	require.Error(t, err)
	require.Equal(t, ErrTypeCapacityExceeded, errors.Type(err))
}

func TestAdd(t *testing.T) {
	c := newTestCollection(t)
	c.Dirty = false

	require.NoError(t, c.Add(testPlanes[0]))
	require.Equal(t, 1, c.Len())
	require.True(t, c.Dirty)
}

func TestAddBeyondCapacity(t *testing.T) {
	c := newTestCollection(t)
	for i := 0; i < MaxClippingPlanes; i++ {
		require.NoError(t, c.Add(geom.NewPlane(geom.UnitX, float64(i))))
	}

	before := testutil.ToFloat64(capacityRejectionsTotal)
	err := c.Add(geom.NewPlane(geom.UnitY, 1))
	require.Error(t, err)
	require.Equal(t, ErrTypeCapacityExceeded, errors.Type(err))
	require.Equal(t, MaxClippingPlanes, c.Len())
	require.False(t, c.Contains(geom.NewPlane(geom.UnitY, 1)))
	require.Equal(t, before+1, testutil.ToFloat64(capacityRejectionsTotal))

	last, ok := c.Get(MaxClippingPlanes - 1)
	require.True(t, ok)
	require.Equal(t, float64(MaxClippingPlanes-1), last.Distance)
}

func TestGet(t *testing.T) {
	c := newTestCollection(t, WithPlanes(testPlanes...))

	t.Run("in range", func(t *testing.T) {
		p, ok := c.Get(0)
		require.True(t, ok)
		require.Equal(t, testPlanes[0], p)

		p, ok = c.Get(1)
		require.True(t, ok)
		require.Equal(t, testPlanes[1], p)
	})

	t.Run("out of range", func(t *testing.T) {
		_, ok := c.Get(2)
		require.False(t, ok)

		_, ok = c.Get(-1)
		require.False(t, ok)
	})
}

func TestContains(t *testing.T) {
	c := newTestCollection(t, WithPlanes(testPlanes[0]))

	require.True(t, c.Contains(geom.NewPlane(geom.UnitX, 1)))
	require.False(t, c.Contains(geom.NewPlane(geom.UnitX, 1.5)))
	require.False(t, c.Contains(testPlanes[1]))
}

func TestRemove(t *testing.T) {
	t.Run("removes first equal plane", func(t *testing.T) {
		c := newTestCollection(t, WithPlanes(testPlanes[0], testPlanes[1], testPlanes[0]))
		c.Dirty = false

		require.True(t, c.Remove(geom.NewPlane(geom.UnitX, 1)))
		require.Equal(t, []geom.Plane{testPlanes[1], testPlanes[0]}, c.Planes())
		require.True(t, c.Dirty)
	})

	t.Run("missing plane is a no-op", func(t *testing.T) {
		c := newTestCollection(t, WithPlanes(testPlanes...))
		c.Dirty = false

		require.False(t, c.Remove(geom.NewPlane(geom.UnitZ, 1)))
		require.Equal(t, 2, c.Len())
		require.False(t, c.Dirty)
	})
}

func TestPlanesIsCopy(t *testing.T) {
	c := newTestCollection(t, WithPlanes(testPlanes...))

	planes := c.Planes()
	planes[0] = geom.NewPlane(geom.UnitZ, 9)

	p, _ := c.Get(0)
	require.Equal(t, testPlanes[0], p)
}

func TestStoredPlaneDoesNotAliasCaller(t *testing.T) {
	c := newTestCollection(t)
	p := geom.NewPlane(geom.UnitX, 1)
	require.NoError(t, c.Add(p))

	p.Distance = 5
	require.True(t, c.Contains(geom.NewPlane(geom.UnitX, 1)))
}

func TestSetUnionClippingRegionsMarksDirty(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Update(memory.New()))
	require.False(t, c.Dirty)

	c.SetUnionClippingRegions(false)
	require.False(t, c.Dirty)

	c.SetUnionClippingRegions(true)
	require.True(t, c.Dirty)
	require.True(t, c.UnionClippingRegions())
}
