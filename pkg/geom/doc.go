// Package geom defines the clipping plane value type and the affine
// transform helpers used to move planes between coordinate spaces.
// Matrices and vectors come from the sdfx library.
package geom
