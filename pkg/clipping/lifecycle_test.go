package clipping

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/chazu/clipplanes/pkg/texture/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCloneWithoutDestination(t *testing.T) {
	c := newTestCollection(t,
		WithPlanes(testPlanes...),
		WithEnabled(false),
		WithModelMatrix(geom.Translation(1, 3, 2)),
		WithEdgeColor(Red),
		WithEdgeWidth(5),
		WithOwner(uuid.New()),
	)

	clone := c.Clone(nil)
	require.NotSame(t, c, clone)
	require.Equal(t, c.Planes(), clone.Planes())
	require.Equal(t, c.Enabled, clone.Enabled)
	require.Equal(t, c.ModelMatrix, clone.ModelMatrix)
	require.Equal(t, c.EdgeColor, clone.EdgeColor)
	require.Equal(t, c.EdgeWidth, clone.EdgeWidth)
	require.False(t, clone.UnionClippingRegions())
	require.Equal(t, uuid.Nil, clone.Owner)
	require.True(t, clone.Dirty)
	require.Nil(t, clone.Texture())

	require.NoError(t, clone.Add(geom.NewPlane(geom.UnitZ, 3)))
	require.Equal(t, 2, c.Len())
	require.Equal(t, 3, clone.Len())
}

func TestCloneIntoDestination(t *testing.T) {
	c := newTestCollection(t,
		WithPlanes(testPlanes...),
		WithUnionClippingRegions(true),
		WithEdgeColor(Red),
	)

	dst := newTestCollection(t, WithPlanes(
		geom.NewPlane(geom.UnitZ, 1),
		geom.NewPlane(geom.UnitZ, 2),
		geom.NewPlane(geom.UnitZ, 3),
	))
	storage := &dst.planes[0]

	result := c.Clone(dst)
	require.Same(t, dst, result)
	require.Equal(t, testPlanes, dst.Planes())
	require.True(t, dst.UnionClippingRegions())
	require.Equal(t, Red, dst.EdgeColor)
	require.Same(t, storage, &dst.planes[0])

	require.True(t, c.Remove(testPlanes[0]))
	require.Equal(t, 2, dst.Len())

	result = c.Clone(dst)
	require.Same(t, dst, result)
	require.Equal(t, c.Planes(), dst.Planes())
	require.Same(t, storage, &dst.planes[0])
}

func TestCloneIntoDestroyedDestination(t *testing.T) {
	c := newTestCollection(t, WithPlanes(testPlanes...))

	dst := newTestCollection(t, WithPlanes(geom.NewPlane(geom.UnitZ, 1)))
	require.NoError(t, dst.CheckDestroy(uuid.Nil))

	result := c.Clone(dst)
	require.NotSame(t, dst, result)
	require.False(t, result.IsDestroyed())
	require.Equal(t, testPlanes, result.Planes())

	require.True(t, dst.IsDestroyed())
	require.Equal(t, 1, dst.Len())
	require.Equal(t, ErrTypeDestroyed, errors.Type(dst.Update(memory.New())))
}

func TestCloneReleasesDestinationTexture(t *testing.T) {
	dev := memory.New()
	c := newTestCollection(t, WithPlanes(testPlanes...))

	dst := newTestCollection(t, WithPlanes(geom.NewPlane(geom.UnitZ, 1)))
	require.NoError(t, dst.Update(dev))
	tex := dst.Texture().(*memory.Texture)

	c.Clone(dst)
	require.True(t, tex.IsDestroyed())
	require.Nil(t, dst.Texture())
	require.Nil(t, dst.PackedBytes())
	require.True(t, dst.Dirty)

	require.NoError(t, dst.Update(dev))
	require.Equal(t, 2, dev.Created())
	require.Equal(t, 2, dst.RangeStats().Count)
}

func TestCheckDestroy(t *testing.T) {
	t.Run("without owner", func(t *testing.T) {
		dev := memory.New()
		c := newTestCollection(t, WithPlanes(testPlanes...))
		require.NoError(t, c.Update(dev))

		require.NoError(t, c.CheckDestroy(uuid.New()))
		require.True(t, c.IsDestroyed())
		require.Nil(t, c.Texture())
		require.Equal(t, 1, dev.Destroyed())
	})

	t.Run("by owner", func(t *testing.T) {
		owner := uuid.New()
		c := newTestCollection(t, WithOwner(owner))
		require.NoError(t, c.Update(memory.New()))

		require.NoError(t, c.CheckDestroy(owner))
		require.True(t, c.IsDestroyed())
	})

	t.Run("by someone else", func(t *testing.T) {
		dev := memory.New()
		c := newTestCollection(t, WithOwner(uuid.New()))
		require.NoError(t, c.Update(dev))

		require.NoError(t, c.CheckDestroy(uuid.New()))
		require.False(t, c.IsDestroyed())
		require.NotNil(t, c.Texture())
		require.Zero(t, dev.Destroyed())
	})

	t.Run("before first update", func(t *testing.T) {
		c := newTestCollection(t)
		require.NoError(t, c.CheckDestroy(uuid.Nil))
		require.True(t, c.IsDestroyed())
	})

	t.Run("twice", func(t *testing.T) {
		dev := memory.New()
		c := newTestCollection(t)
		require.NoError(t, c.Update(dev))
		require.NoError(t, c.CheckDestroy(uuid.Nil))
		require.NoError(t, c.CheckDestroy(uuid.Nil))
		require.Equal(t, 1, dev.Destroyed())
	})
}

func TestUpdateAfterDestroy(t *testing.T) {
	c := newTestCollection(t, WithPlanes(testPlanes...))
	require.NoError(t, c.CheckDestroy(uuid.Nil))

	err := c.Update(memory.New())
	require.Error(t, err)
	require.Equal(t, ErrTypeDestroyed, errors.Type(err))
}

func TestDestroyTextureError(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Update(failingDevice{}))

	err := c.CheckDestroy(uuid.Nil)
	require.Error(t, err)
	require.Equal(t, ErrTypeTexture, errors.Type(err))
	require.True(t, c.IsDestroyed())
}
