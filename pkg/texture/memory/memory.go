// Package memory implements the texture.Device interface with textures
// held in process memory. It records every upload, which makes it the
// backend of choice for tests and headless drivers.
package memory

import (
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/clipplanes/pkg/texture"
)

// Compile-time interface checks.
var _ texture.Device = (*Device)(nil)
var _ texture.Texture = (*Texture)(nil)

// Upload records one call to Texture.Upload.
type Upload struct {
	Region texture.Region
	Bytes  int
}

// Device creates memory textures and keeps count of what happens to them.
type Device struct {
	mu        sync.Mutex
	created   int
	destroyed int
	uploads   []Upload
}

// New returns a new Device.
func New() *Device {
	return &Device{}
}

// CreateTexture allocates a zeroed texture.
func (d *Device) CreateTexture(desc texture.Descriptor) (texture.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, errors.New("invalid texture size").
			WithType(texture.ErrTypeInvalidSize).
			WithTag("width", desc.Width).
			WithTag("height", desc.Height)
	}

	d.mu.Lock()
	d.created++
	d.mu.Unlock()

	return &Texture{
		device: d,
		desc:   desc,
		pixels: make([]byte, desc.ByteSize()),
	}, nil
}

// Created returns the number of textures created.
func (d *Device) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}

// Destroyed returns the number of textures destroyed.
func (d *Device) Destroyed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}

// Uploads returns every upload made to textures of this device, oldest
// first.
func (d *Device) Uploads() []Upload {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Upload(nil), d.uploads...)
}

// UploadCount returns the number of uploads made to textures of this device.
func (d *Device) UploadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.uploads)
}

// Texture is a texture stored in a byte slice, row-major, tightly packed.
type Texture struct {
	device    *Device
	desc      texture.Descriptor
	pixels    []byte
	destroyed bool
}

// Descriptor returns the descriptor the texture was created with.
func (t *Texture) Descriptor() texture.Descriptor {
	return t.desc
}

// Upload copies data into region r.
func (t *Texture) Upload(r texture.Region, data []byte) error {
	if t.destroyed {
		return errors.New("upload to destroyed texture").
			WithType(texture.ErrTypeDestroyed).
			WithTag("label", t.desc.Label)
	}
	if err := t.desc.Validate(r, data); err != nil {
		return err
	}

	bpt := t.desc.BytesPerTexel()
	rowBytes := r.Width * bpt
	stride := t.desc.Width * bpt
	for row := 0; row < r.Height; row++ {
		dst := (r.Y+row)*stride + r.X*bpt
		copy(t.pixels[dst:dst+rowBytes], data[row*rowBytes:(row+1)*rowBytes])
	}

	t.device.mu.Lock()
	t.device.uploads = append(t.device.uploads, Upload{Region: r, Bytes: len(data)})
	t.device.mu.Unlock()
	return nil
}

// Destroy marks the texture destroyed and frees its pixels. Destroying
// twice is an error.
func (t *Texture) Destroy() error {
	if t.destroyed {
		return errors.New("texture already destroyed").
			WithType(texture.ErrTypeDestroyed).
			WithTag("label", t.desc.Label)
	}
	t.destroyed = true
	t.pixels = nil

	t.device.mu.Lock()
	t.device.destroyed++
	t.device.mu.Unlock()
	return nil
}

// IsDestroyed reports whether Destroy has been called.
func (t *Texture) IsDestroyed() bool {
	return t.destroyed
}

// Pixels returns a copy of the texture contents.
func (t *Texture) Pixels() []byte {
	return append([]byte(nil), t.pixels...)
}
