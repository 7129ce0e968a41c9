package script

import (
	"fmt"

	"github.com/chazu/clipplanes/pkg/bounds"
	"github.com/chazu/clipplanes/pkg/clipping"
	"github.com/chazu/clipplanes/pkg/cull"
)

// builder collects what builtins declare during one evaluation.
type builder struct {
	collection *clipping.Collection
	items      []cull.Item
	names      map[string]bool
}

func newBuilder() *builder {
	return &builder{names: make(map[string]bool)}
}

func (b *builder) addVolume(name string, v bounds.Volume) error {
	if name == "" {
		return fmt.Errorf("volume name must not be empty")
	}
	if b.names[name] {
		return fmt.Errorf("duplicate volume name %q", name)
	}
	b.names[name] = true
	b.items = append(b.items, cull.Item{Name: name, Volume: v})
	return nil
}

func (b *builder) setCollection(c *clipping.Collection) error {
	if b.collection != nil {
		return fmt.Errorf("clipping-planes may only be declared once")
	}
	b.collection = c
	return nil
}

func (b *builder) result() (*Result, []EvalError, error) {
	c := b.collection
	if c == nil {
		var err error
		if c, err = clipping.New(); err != nil {
			return nil, nil, err
		}
	}
	return &Result{Collection: c, Items: b.items}, nil, nil
}
