//go:build !wgpu

package gpu

import "testing"

func TestNewReturnsError(t *testing.T) {
	d, err := New()
	if err == nil {
		t.Fatal("New() error = nil, want non-nil error when wgpu tag is not set")
	}
	if d != nil {
		t.Fatal("New() returned non-nil device, want nil when wgpu tag is not set")
	}

	want := "gpu texture backend not available: build with -tags=wgpu"
	if err.Error() != want {
		t.Errorf("New() error = %q, want %q", err.Error(), want)
	}
}
