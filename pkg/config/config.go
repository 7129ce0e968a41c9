// Package config loads clip-set documents written in YAML.
package config

import (
	"os"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/chazu/clipplanes/pkg/bounds"
	"github.com/chazu/clipplanes/pkg/clipping"
	"github.com/chazu/clipplanes/pkg/cull"
	"github.com/chazu/clipplanes/pkg/geom"
	"github.com/chazu/clipplanes/pkg/solid"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gopkg.in/yaml.v3"
)

// ErrTypeInvalid is returned for documents that parse but describe an
// invalid clip set.
const ErrTypeInvalid = "config-invalid"

// Document is a clip-set document.
type Document struct {
	Union     *bool        `yaml:"union,omitempty"`
	Enabled   *bool        `yaml:"enabled,omitempty"`
	EdgeWidth float64      `yaml:"edge_width,omitempty"`
	EdgeColor []float64    `yaml:"edge_color,omitempty"`
	Model     *Transform   `yaml:"model,omitempty"`
	Planes    []PlaneSpec  `yaml:"planes"`
	Volumes   []VolumeSpec `yaml:"volumes,omitempty"`
}

// Transform is applied as scale, then rotate, then translate.
type Transform struct {
	Translate []float64 `yaml:"translate,omitempty"`
	Rotate    []float64 `yaml:"rotate,omitempty"`
	Scale     []float64 `yaml:"scale,omitempty"`
}

// PlaneSpec describes a plane either by distance or by a point on it.
type PlaneSpec struct {
	Normal   []float64 `yaml:"normal"`
	Distance float64   `yaml:"distance,omitempty"`
	Through  []float64 `yaml:"through,omitempty"`
}

// VolumeSpec is a named volume. Exactly one of Sphere, Box and Cuboid must
// be set.
type VolumeSpec struct {
	Name   string      `yaml:"name"`
	Sphere *SphereSpec `yaml:"sphere,omitempty"`
	Box    *BoxSpec    `yaml:"box,omitempty"`
	Cuboid *CuboidSpec `yaml:"cuboid,omitempty"`
}

type SphereSpec struct {
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
}

type BoxSpec struct {
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

// CuboidSpec is a solid box with its minimum corner at At, optionally
// rotated around that corner.
type CuboidSpec struct {
	Size   []float64 `yaml:"size"`
	At     []float64 `yaml:"at,omitempty"`
	Rotate []float64 `yaml:"rotate,omitempty"`
}

// Load reads and validates the document at path.
func Load(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.New("reading clip set failed").
			WithTag("path", path).
			Wrap(err)
	}
	doc, err := Parse(b)
	if err != nil {
		return doc, errors.New("loading clip set failed").
			WithType(errors.Type(err)).
			WithTag("path", path).
			Wrap(err)
	}
	return doc, nil
}

// Parse decodes and validates a YAML document.
func Parse(b []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return doc, errors.New("decoding yaml failed").
			WithType(ErrTypeInvalid).
			Wrap(err)
	}
	if err := doc.Validate(); err != nil {
		return doc, err
	}
	return doc, nil
}

// Validate checks vector lengths and volume definitions.
func (d Document) Validate() error {
	if n := len(d.EdgeColor); n != 0 && n != 3 && n != 4 {
		return invalidf("edge_color needs 3 or 4 components, got %d", n)
	}
	if d.Model != nil {
		for field, v := range map[string][]float64{
			"model.translate": d.Model.Translate,
			"model.rotate":    d.Model.Rotate,
			"model.scale":     d.Model.Scale,
		} {
			if err := checkVec(field, v, true); err != nil {
				return err
			}
		}
	}
	if len(d.Planes) > clipping.MaxClippingPlanes {
		return invalidf("%d planes exceed the maximum of %d", len(d.Planes), clipping.MaxClippingPlanes)
	}
	for i, p := range d.Planes {
		if err := checkVec("plane normal", p.Normal, false); err != nil {
			return errors.New("invalid plane").WithType(ErrTypeInvalid).WithTag("index", i).Wrap(err)
		}
		if v, _ := vec(p.Normal); v.Length() == 0 {
			return invalidf("plane %d: normal must not be zero", i)
		}
		if err := checkVec("plane through", p.Through, true); err != nil {
			return errors.New("invalid plane").WithType(ErrTypeInvalid).WithTag("index", i).Wrap(err)
		}
	}

	seen := make(map[string]bool)
	for _, v := range d.Volumes {
		if v.Name == "" {
			return invalidf("volume name must not be empty")
		}
		if seen[v.Name] {
			return invalidf("duplicate volume name %q", v.Name)
		}
		seen[v.Name] = true

		set := 0
		for _, ok := range []bool{v.Sphere != nil, v.Box != nil, v.Cuboid != nil} {
			if ok {
				set++
			}
		}
		if set != 1 {
			return invalidf("volume %q must define exactly one of sphere, box or cuboid", v.Name)
		}
		if err := v.validateShape(); err != nil {
			return errors.New("invalid volume").WithType(ErrTypeInvalid).WithTag("volume", v.Name).Wrap(err)
		}
	}
	return nil
}

func (v VolumeSpec) validateShape() error {
	var fields map[string][]float64
	var required []string

	switch {
	case v.Sphere != nil:
		if v.Sphere.Radius < 0 {
			return invalidf("radius must not be negative")
		}
		fields = map[string][]float64{"center": v.Sphere.Center}
		required = []string{"center"}
	case v.Box != nil:
		fields = map[string][]float64{"min": v.Box.Min, "max": v.Box.Max}
		required = []string{"min", "max"}
	case v.Cuboid != nil:
		fields = map[string][]float64{"size": v.Cuboid.Size, "at": v.Cuboid.At, "rotate": v.Cuboid.Rotate}
		required = []string{"size"}
	}

	for field, value := range fields {
		if err := checkVec(field, value, !slices.Contains(required, field)); err != nil {
			return err
		}
	}
	return nil
}

// Collection builds the clipping plane collection the document describes.
func (d Document) Collection() (*clipping.Collection, error) {
	opts := []clipping.Option{
		clipping.WithEdgeWidth(d.EdgeWidth),
	}
	if d.Union != nil {
		opts = append(opts, clipping.WithUnionClippingRegions(*d.Union))
	}
	if d.Enabled != nil {
		opts = append(opts, clipping.WithEnabled(*d.Enabled))
	}
	if len(d.EdgeColor) >= 3 {
		c := clipping.Color{R: d.EdgeColor[0], G: d.EdgeColor[1], B: d.EdgeColor[2], A: 1}
		if len(d.EdgeColor) == 4 {
			c.A = d.EdgeColor[3]
		}
		opts = append(opts, clipping.WithEdgeColor(c))
	}
	if d.Model != nil {
		opts = append(opts, clipping.WithModelMatrix(d.Model.Matrix()))
	}

	planes := make([]geom.Plane, 0, len(d.Planes))
	for _, p := range d.Planes {
		normal, _ := vec(p.Normal)
		normal = normal.Normalize()
		if through, ok := vec(p.Through); ok {
			planes = append(planes, geom.PlaneFromPointNormal(through, normal))
			continue
		}
		planes = append(planes, geom.NewPlane(normal, p.Distance))
	}
	opts = append(opts, clipping.WithPlanes(planes...))

	return clipping.New(opts...)
}

// Items returns the named volumes in document order.
func (d Document) Items() ([]cull.Item, error) {
	items := make([]cull.Item, 0, len(d.Volumes))
	for _, v := range d.Volumes {
		vol, err := v.volume()
		if err != nil {
			return nil, errors.New("building volume failed").
				WithType(ErrTypeInvalid).
				WithTag("volume", v.Name).
				Wrap(err)
		}
		items = append(items, cull.Item{Name: v.Name, Volume: vol})
	}
	return items, nil
}

func (v VolumeSpec) volume() (bounds.Volume, error) {
	switch {
	case v.Sphere != nil:
		center, _ := vec(v.Sphere.Center)
		if v.Sphere.Radius < 0 {
			return nil, invalidf("radius must not be negative")
		}
		return bounds.NewSphere(center, v.Sphere.Radius), nil

	case v.Box != nil:
		lo, okLo := vec(v.Box.Min)
		hi, okHi := vec(v.Box.Max)
		if !okLo || !okHi {
			return nil, invalidf("box needs min and max corners")
		}
		return bounds.NewBox(lo, hi), nil

	case v.Cuboid != nil:
		size, ok := vec(v.Cuboid.Size)
		if !ok {
			return nil, invalidf("cuboid needs a size")
		}
		s, err := solid.Box(size.X, size.Y, size.Z)
		if err != nil {
			return nil, err
		}
		if r, ok := vec(v.Cuboid.Rotate); ok {
			s = s.Rotate(r.X, r.Y, r.Z)
		}
		if at, ok := vec(v.Cuboid.At); ok {
			s = s.Translate(at.X, at.Y, at.Z)
		}
		return s.Bounds(), nil
	}
	return nil, invalidf("volume %q has no shape", v.Name)
}

// Matrix returns scale, then rotate, then translate as one transform.
func (t Transform) Matrix() sdf.M44 {
	m := geom.Identity()
	if s, ok := vec(t.Scale); ok {
		m = geom.Scale(s.X, s.Y, s.Z)
	}
	if r, ok := vec(t.Rotate); ok {
		m = geom.ComposeTransforms(geom.Rotation(r.X, r.Y, r.Z), m)
	}
	if tr, ok := vec(t.Translate); ok {
		m = geom.ComposeTransforms(geom.Translation(tr.X, tr.Y, tr.Z), m)
	}
	return m
}

func vec(v []float64) (v3.Vec, bool) {
	if len(v) != 3 {
		return v3.Vec{}, false
	}
	return v3.Vec{X: v[0], Y: v[1], Z: v[2]}, true
}

func checkVec(field string, v []float64, optional bool) error {
	if optional && len(v) == 0 {
		return nil
	}
	if len(v) != 3 {
		return invalidf("%s needs 3 components, got %d", field, len(v))
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return errors.Newf(format, args...).WithType(ErrTypeInvalid)
}
