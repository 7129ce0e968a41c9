// Package clipping manages a bounded collection of clipping planes.
//
// A Collection serves two consumers. The shading stage reads the planes
// from a packed RGBA8 texture that Update rebuilds whenever the planes
// change. The culling stage calls ComputeIntersectionWithBoundingVolume to
// decide, before any per-pixel clipping runs, whether a bounding volume is
// fully kept, fully clipped or needs per-pixel work.
//
// Planes combine in one of two modes. In intersection mode the retained
// region is the intersection of every plane's retained half-space. In union
// mode the clipped region is the union of every plane's clipped half-space.
//
// A Collection is not safe for concurrent use. It is meant to be driven
// from a single render loop.
package clipping
