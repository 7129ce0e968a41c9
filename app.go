package main

import (
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/clipplanes/pkg/clipping"
	"github.com/chazu/clipplanes/pkg/codec"
	clipconfig "github.com/chazu/clipplanes/pkg/config"
	"github.com/chazu/clipplanes/pkg/cull"
	"github.com/chazu/clipplanes/pkg/script"
	"github.com/chazu/clipplanes/pkg/texture"
	"github.com/chazu/clipplanes/pkg/texture/memory"
	"github.com/google/uuid"
)

// App runs clip sets through the full pipeline: parse, pack, classify.
type App struct {
	engine *script.Engine
	device texture.Device
	owner  uuid.UUID
}

// PlaneData is a stored plane next to the plane decoded from the packed
// texture.
type PlaneData struct {
	Normal   [3]float64 `json:"normal"`
	Distance float64    `json:"distance"`
	Decoded  [4]float64 `json:"decoded"`
}

// StatsData mirrors clipping.RangeStats.
type StatsData struct {
	Count         int     `json:"count"`
	MinDistance   float64 `json:"minDistance"`
	MaxDistance   float64 `json:"maxDistance"`
	UnionModeFlag int     `json:"unionModeFlag"`
}

// TextureData describes the packed plane texture.
type TextureData struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	UsedTexels  int `json:"usedTexels"`
	Uploads     int `json:"uploads"`
	UploadBytes int `json:"uploadBytes"`
}

// EvalErrorData is a JSON-serializable evaluation error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Report is the result of inspecting one clip set.
type Report struct {
	Union      bool                  `json:"union"`
	Enabled    bool                  `json:"enabled"`
	EdgeWidth  float64               `json:"edgeWidth"`
	EdgeColor  [4]float64            `json:"edgeColor"`
	Planes     []PlaneData           `json:"planes"`
	Stats      StatsData             `json:"stats"`
	UnionStats StatsData             `json:"unionStats"`
	Texture    TextureData           `json:"texture"`
	Volumes    []cull.Classification `json:"volumes"`
	Visible    int                   `json:"visible"`
	Errors     []EvalErrorData       `json:"errors"`

	// Packed is the full packed plane buffer.
	Packed []byte `json:"-"`
}

// NewApp creates an App that packs planes into memory textures.
func NewApp() *App {
	return NewAppWithDevice(memory.New())
}

// NewAppWithDevice creates an App that packs planes into textures created by
// dev.
func NewAppWithDevice(dev texture.Device) *App {
	return &App{
		engine: script.NewEngine(),
		device: dev,
		owner:  uuid.New(),
	}
}

// Inspect reads a clip set and reports its planes, packing and volume
// classification. name selects the format: .yaml and .yml files are clip-set
// documents, everything else is a script.
func (a *App) Inspect(name string, source []byte) Report {
	report := Report{
		Planes:  []PlaneData{},
		Volumes: []cull.Classification{},
		Errors:  []EvalErrorData{},
	}

	c, items, evalErrs, err := a.load(name, source)
	if err != nil {
		logs.WithTag("input", name).Error(err)
		report.Errors = append(report.Errors, EvalErrorData{Message: err.Error()})
		return report
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			report.Errors = append(report.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return report
	}

	c.Owner = a.owner
	defer func() {
		if err := c.CheckDestroy(a.owner); err != nil {
			logs.Warn(errors.New("releasing clipping planes failed").Wrap(err))
		}
	}()

	uploads, uploadBytes := a.uploadTotals()
	if err := c.Update(a.device); err != nil {
		logs.WithTag("input", name).Error(err)
		report.Errors = append(report.Errors, EvalErrorData{Message: err.Error()})
		return report
	}

	a.describe(&report, c)
	n, b := a.uploadTotals()
	report.Texture.Uploads = n - uploads
	report.Texture.UploadBytes = b - uploadBytes

	partition := cull.Partition(c, items, nil)
	report.Volumes = append(report.Volumes, partition.Items...)
	report.Visible = partition.Visible()

	logs.WithTag("input", name).
		WithTag("planes", c.Len()).
		WithTag("volumes", len(items)).
		WithTag("visible", report.Visible).
		Info("clip set inspected")
	return report
}

func (a *App) load(name string, source []byte) (*clipping.Collection, []cull.Item, []script.EvalError, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		doc, err := clipconfig.Parse(source)
		if err != nil {
			return nil, nil, nil, err
		}
		c, err := doc.Collection()
		if err != nil {
			return nil, nil, nil, err
		}
		items, err := doc.Items()
		if err != nil {
			return nil, nil, nil, err
		}
		return c, items, nil, nil

	default:
		res, evalErrs, err := a.engine.Evaluate(string(source))
		if err != nil || len(evalErrs) > 0 {
			return nil, nil, evalErrs, err
		}
		return res.Collection, res.Items, nil, nil
	}
}

func (a *App) describe(r *Report, c *clipping.Collection) {
	r.Union = c.UnionClippingRegions()
	r.Enabled = c.Enabled
	r.EdgeWidth = c.EdgeWidth
	r.EdgeColor = [4]float64{c.EdgeColor.R, c.EdgeColor.G, c.EdgeColor.B, c.EdgeColor.A}
	r.Stats = statsData(c.RangeStats())
	r.UnionStats = statsData(c.RangeUnionStats())
	r.Packed = c.PackedBytes()

	rng := c.RangeStats().Range()
	for i, p := range c.Planes() {
		d := codec.DecodePlane(r.Packed[i*codec.BytesPerPlane:], rng)
		r.Planes = append(r.Planes, PlaneData{
			Normal:   [3]float64{p.Normal.X, p.Normal.Y, p.Normal.Z},
			Distance: p.Distance,
			Decoded:  [4]float64{d.Normal.X, d.Normal.Y, d.Normal.Z, d.Distance},
		})
	}

	desc := c.Texture().Descriptor()
	r.Texture = TextureData{
		Width:      desc.Width,
		Height:     desc.Height,
		UsedTexels: c.Len() * codec.TexelsPerPlane,
	}
}

// uploadTotals returns the uploads recorded by a memory device so far.
// Other devices report zero.
func (a *App) uploadTotals() (n, bytes int) {
	dev, ok := a.device.(*memory.Device)
	if !ok {
		return 0, 0
	}
	for _, u := range dev.Uploads() {
		n++
		bytes += u.Bytes
	}
	return n, bytes
}

func statsData(s clipping.RangeStats) StatsData {
	return StatsData{
		Count:         s.Count,
		MinDistance:   s.MinDistance,
		MaxDistance:   s.MaxDistance,
		UnionModeFlag: s.UnionModeFlag,
	}
}
