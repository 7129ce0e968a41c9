package clipping

// Error types reported through errors.Type.
const (
	// ErrTypeCapacityExceeded is returned when adding a plane to a full
	// collection. Remove a plane first.
	ErrTypeCapacityExceeded = "clipping-capacity-exceeded"

	// ErrTypeDestroyed is returned when updating a destroyed collection.
	ErrTypeDestroyed = "clipping-collection-destroyed"

	// ErrTypeTexture wraps failures reported by the texture device.
	ErrTypeTexture = "clipping-texture"
)
