//go:build wgpu

// Package gpu implements the texture.Device interface on WebGPU through
// the wgpu-native bindings. It requires the wgpu-native library at link
// time.
//
// Build with: go build -tags=wgpu
package gpu

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/clipplanes/pkg/texture"
	"github.com/openfluke/webgpu/wgpu"
)

// ErrTypeGPU is the type of every error returned by this package.
const ErrTypeGPU = "gpu-texture"

// Compile-time interface checks.
var _ texture.Device = (*Device)(nil)
var _ texture.Texture = (*gpuTexture)(nil)

// Device creates textures on a WebGPU device.
type Device struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

// New acquires a WebGPU adapter and device, preferring a high performance
// adapter and falling back to low power and then to the default.
func New() (texture.Device, error) {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, errors.New("creating webgpu instance failed").WithType(ErrTypeGPU)
	}

	var adapter *wgpu.Adapter
	var err error
	for _, opts := range []*wgpu.RequestAdapterOptions{
		{PowerPreference: wgpu.PowerPreferenceHighPerformance},
		{PowerPreference: wgpu.PowerPreferenceLowPower},
		nil,
	} {
		adapter, err = instance.RequestAdapter(opts)
		if err == nil && adapter != nil {
			break
		}
	}
	if adapter == nil {
		e := errors.New("requesting gpu adapter failed").WithType(ErrTypeGPU)
		if err != nil {
			return nil, e.Wrap(err)
		}
		return nil, e
	}

	info := adapter.GetInfo()
	logs.WithTag("adapter", info.Name).
		WithTag("vendor", info.VendorName).
		Debug("using gpu adapter")

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, errors.New("requesting gpu device failed").
			WithType(ErrTypeGPU).
			WithTag("adapter", info.Name).
			Wrap(err)
	}
	return NewFromDevice(device, device.GetQueue()), nil
}

// NewFromDevice wraps a device and queue owned by the caller's renderer.
func NewFromDevice(device *wgpu.Device, queue *wgpu.Queue) *Device {
	return &Device{device: device, queue: queue}
}

// CreateTexture creates a 2D RGBA8 texture, a view and a sampler.
func (d *Device) CreateTexture(desc texture.Descriptor) (texture.Texture, error) {
	if desc.PixelFormat != texture.PixelFormatRGBA || desc.PixelDatatype != texture.PixelDatatypeUnsignedByte {
		return nil, errors.New("unsupported pixel format").
			WithType(ErrTypeGPU).
			WithTag("format", desc.PixelFormat.String()).
			WithTag("datatype", desc.PixelDatatype.String())
	}

	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              uint32(desc.Width),
			Height:             uint32(desc.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, errors.New("creating gpu texture failed").
			WithType(ErrTypeGPU).
			WithTag("label", desc.Label).
			Wrap(err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, errors.New("creating gpu texture view failed").
			WithType(ErrTypeGPU).
			WithTag("label", desc.Label).
			Wrap(err)
	}

	sampler, err := d.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  addressMode(desc.Sampler.WrapS),
		AddressModeV:  addressMode(desc.Sampler.WrapT),
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filterMode(desc.Sampler.MagFilter),
		MinFilter:     filterMode(desc.Sampler.MinFilter),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0.,
		LodMaxClamp:   1.,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, errors.New("creating gpu sampler failed").
			WithType(ErrTypeGPU).
			WithTag("label", desc.Label).
			Wrap(err)
	}

	return &gpuTexture{
		desc:    desc,
		queue:   d.queue,
		texture: tex,
		view:    view,
		sampler: sampler,
	}, nil
}

func addressMode(w texture.Wrap) wgpu.AddressMode {
	switch w {
	case texture.WrapRepeat:
		return wgpu.AddressModeRepeat
	case texture.WrapMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	}
	return wgpu.AddressModeClampToEdge
}

func filterMode(f texture.Filter) wgpu.FilterMode {
	if f == texture.FilterLinear {
		return wgpu.FilterModeLinear
	}
	return wgpu.FilterModeNearest
}

// gpuTexture wraps a wgpu texture with the view and sampler shaders bind.
type gpuTexture struct {
	desc    texture.Descriptor
	queue   *wgpu.Queue
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func (t *gpuTexture) Descriptor() texture.Descriptor {
	return t.desc
}

// View returns the texture view for bind groups.
func (t *gpuTexture) View() *wgpu.TextureView {
	return t.view
}

// Sampler returns the sampler for bind groups.
func (t *gpuTexture) Sampler() *wgpu.Sampler {
	return t.sampler
}

// Upload writes region r through the queue.
func (t *gpuTexture) Upload(r texture.Region, data []byte) error {
	if t.texture == nil {
		return errors.New("upload to destroyed texture").
			WithType(ErrTypeGPU).
			WithTag("label", t.desc.Label)
	}
	if err := t.desc.Validate(r, data); err != nil {
		return errors.New("invalid upload region").
			WithType(ErrTypeGPU).
			WithTag("label", t.desc.Label).
			Wrap(err)
	}

	t.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: uint32(r.X), Y: uint32(r.Y), Z: 0},
			Aspect:   wgpu.TextureAspectAll,
		},
		data,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(r.Width * t.desc.BytesPerTexel()),
			RowsPerImage: uint32(r.Height),
		},
		&wgpu.Extent3D{
			Width:              uint32(r.Width),
			Height:             uint32(r.Height),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// Destroy releases the sampler, view and texture.
func (t *gpuTexture) Destroy() error {
	if t.texture == nil {
		return errors.New("texture already destroyed").
			WithType(ErrTypeGPU).
			WithTag("label", t.desc.Label)
	}
	t.sampler.Release()
	t.view.Release()
	t.texture.Destroy()
	t.texture.Release()
	t.texture, t.view, t.sampler = nil, nil, nil
	return nil
}
