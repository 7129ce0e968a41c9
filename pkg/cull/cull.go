// Package cull classifies a batch of named bounding volumes against a
// clipping plane collection. One classification is produced per volume.
package cull

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/chazu/clipplanes/pkg/bounds"
	"github.com/chazu/clipplanes/pkg/clipping"
	"github.com/deadsy/sdfx/sdf"
)

// Item is a named bounding volume.
type Item struct {
	Name   string
	Volume bounds.Volume
}

// Classification is the result for a single item.
type Classification struct {
	Name   string          `json:"name"`
	Result bounds.Intersect `json:"-"`
	State  string          `json:"state"`
}

// Result groups item names by classification. Names keep the order of the
// items they came from.
type Result struct {
	Inside       []string
	Intersecting []string
	Outside      []string

	// Items holds one entry per item, in input order.
	Items []Classification
}

// Visible reports the number of items that are not fully clipped.
func (r Result) Visible() int {
	return len(r.Inside) + len(r.Intersecting)
}

// Lookup returns the classification of the named item.
func (r Result) Lookup(name string) (bounds.Intersect, bool) {
	for _, c := range r.Items {
		if c.Name == name {
			return c.Result, true
		}
	}
	return bounds.Outside, false
}

// Partition classifies every item against c. The optional transform is
// passed through to Collection.ComputeIntersectionWithBoundingVolume. Items
// with a nil volume are skipped. Partition is read-only and never updates
// the collection.
func Partition(c *clipping.Collection, items []Item, transform *sdf.M44) Result {
	var res Result
	if c == nil {
		return res
	}

	for _, item := range items {
		if item.Volume == nil {
			logs.WithTag("item", item.Name).Warn("volume missing, skipping")
			continue
		}

		v := c.ComputeIntersectionWithBoundingVolume(item.Volume, transform)
		switch v {
		case bounds.Inside:
			res.Inside = append(res.Inside, item.Name)
		case bounds.Intersecting:
			res.Intersecting = append(res.Intersecting, item.Name)
		default:
			res.Outside = append(res.Outside, item.Name)
		}
		res.Items = append(res.Items, Classification{
			Name:   item.Name,
			Result: v,
			State:  v.String(),
		})
	}

	logs.WithTag("items", len(res.Items)).
		WithTag("visible", res.Visible()).
		WithTag("outside", len(res.Outside)).
		Debug("volumes partitioned")
	return res
}
