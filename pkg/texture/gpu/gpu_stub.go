//go:build !wgpu

// Package gpu implements the texture.Device interface on WebGPU. When the
// "wgpu" build tag is not set, this stub package is compiled instead,
// returning an error from New().
//
// Build with: go build -tags=wgpu
package gpu

import (
	"errors"

	"github.com/chazu/clipplanes/pkg/texture"
)

// New returns an error indicating WebGPU is not available.
// Build with -tags=wgpu to enable.
func New() (texture.Device, error) {
	return nil, errors.New("gpu texture backend not available: build with -tags=wgpu")
}
