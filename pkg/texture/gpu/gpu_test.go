//go:build wgpu

package gpu

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/chazu/clipplanes/pkg/texture"
)

// These tests require a WebGPU capable adapter.

func TestCreateAndUpload(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Skipf("no WebGPU device: %v", err)
	}

	tex, err := d.CreateTexture(texture.Descriptor{
		Label:   "test",
		Width:   64,
		Height:  64,
		Sampler: texture.NearestClamp,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	data := make([]byte, 64*2*4)
	if err := tex.Upload(texture.Region{Width: 64, Height: 2}, data); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if err := tex.Upload(texture.Region{Width: 65, Height: 1}, data); errors.Type(err) != ErrTypeGPU {
		t.Fatalf("wide region: error type = %q, want %q", errors.Type(err), ErrTypeGPU)
	}
	if err := tex.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if err := tex.Destroy(); errors.Type(err) != ErrTypeGPU {
		t.Fatalf("second destroy: error type = %q, want %q", errors.Type(err), ErrTypeGPU)
	}
	if err := tex.Upload(texture.Region{Width: 64, Height: 1}, data); errors.Type(err) != ErrTypeGPU {
		t.Fatalf("upload after destroy: error type = %q, want %q", errors.Type(err), ErrTypeGPU)
	}
}

func TestCreateTextureRejectsPixelFormat(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Skipf("no WebGPU device: %v", err)
	}

	_, err = d.CreateTexture(texture.Descriptor{
		Label:         "float",
		Width:         4,
		Height:        4,
		PixelDatatype: texture.PixelDatatype(99),
	})
	if errors.Type(err) != ErrTypeGPU {
		t.Fatalf("error type = %q, want %q", errors.Type(err), ErrTypeGPU)
	}
}
