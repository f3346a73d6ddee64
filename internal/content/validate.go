// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"errors"
	"fmt"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// ErrIntegrity marks a content defect: a dangling reference, a duplicate ID
// or a value outside its allowed range.
var ErrIntegrity = errors.New("content integrity")

type problems []error

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Errorf("%w: "+format, append([]any{ErrIntegrity}, args...)...))
}

// Validate checks every cross-reference in b and returns all defects joined,
// or nil when the bundle is consistent.
func Validate(b Bundle) error {
	var p problems

	if b.Manifest.ID == "" {
		p.addf("bundle manifest has no id")
	}
	if b.Manifest.ShrinkageK < 0 {
		p.addf("bundle shrinkage_k %v is negative", b.Manifest.ShrinkageK)
	}

	domains := make(map[string]bool, len(b.Domains))
	for _, d := range b.Domains {
		if d.ID == "" {
			p.addf("domain with empty id")
			continue
		}
		if domains[d.ID] {
			p.addf("duplicate domain %q", d.ID)
		}
		domains[d.ID] = true
	}

	axes := make(map[string]bool, len(b.Axes))
	for _, a := range b.Axes {
		if a.ID == "" {
			p.addf("axis with empty id")
			continue
		}
		if axes[a.ID] {
			p.addf("duplicate axis %q", a.ID)
		}
		axes[a.ID] = true
		if !domains[a.Domain] {
			p.addf("axis %q: unknown domain %q", a.ID, a.Domain)
		}
		if a.PoleA == "" || a.PoleB == "" {
			p.addf("axis %q: both poles must be labelled", a.ID)
		}
	}

	items := make(map[string]bool, len(b.Items))
	for _, it := range b.Items {
		if it.ID == "" {
			p.addf("item with empty id")
			continue
		}
		if items[it.ID] {
			p.addf("duplicate item %q", it.ID)
		}
		items[it.ID] = true
		validateItem(&p, it, axes)
	}

	dims := make(map[string]bool, len(b.MetaDimensions))
	for _, d := range b.MetaDimensions {
		if d.ID == "" {
			p.addf("meta-dimension with empty id")
			continue
		}
		if dims[d.ID] {
			p.addf("duplicate meta-dimension %q", d.ID)
		}
		dims[d.ID] = true
		if len(d.Axes) == 0 {
			p.addf("meta-dimension %q maps no axes", d.ID)
		}
		for _, m := range d.Axes {
			if !axes[m.Axis] {
				p.addf("meta-dimension %q: unknown axis %q", d.ID, m.Axis)
			}
			if m.Weight < 0 {
				p.addf("meta-dimension %q: axis %q has negative weight", d.ID, m.Axis)
			}
		}
	}

	archetypes := make(map[string]bool, len(b.Archetypes))
	for _, a := range b.Archetypes {
		if a.ID == "" {
			p.addf("archetype with empty id")
			continue
		}
		if archetypes[a.ID] {
			p.addf("duplicate archetype %q", a.ID)
		}
		archetypes[a.ID] = true
		for dim := range a.Centroid {
			if !dims[dim] {
				p.addf("archetype %q: centroid names unknown meta-dimension %q", a.ID, dim)
			}
		}
		for _, d := range b.MetaDimensions {
			if _, ok := a.Centroid[d.ID]; !ok {
				p.addf("archetype %q: centroid missing meta-dimension %q", a.ID, d.ID)
			}
		}
	}

	entities := make(map[string]bool, len(b.Entities))
	for _, e := range b.Entities {
		if e.EntityID == "" {
			p.addf("entity with empty id")
			continue
		}
		if entities[e.EntityID] {
			p.addf("duplicate entity %q", e.EntityID)
		}
		entities[e.EntityID] = true
		if e.Kind != types.EntityCandidate && e.Kind != types.EntityMeasure {
			p.addf("entity %q: unknown kind %q", e.EntityID, e.Kind)
		}
		for axis, pos := range e.Positions {
			if !axes[axis] {
				p.addf("entity %q: unknown axis %q", e.EntityID, axis)
			}
			if pos < types.PositionMin || pos > types.PositionMax {
				p.addf("entity %q: position %v on %q outside 0-10", e.EntityID, pos, axis)
			}
		}
	}

	return errors.Join(p...)
}

func validateItem(p *problems, it types.AssessmentItem, axes map[string]bool) {
	switch it.Kind {
	case types.ItemBinary, types.ItemLikert, types.ItemSlider:
		if len(it.Effects) == 0 {
			p.addf("item %q maps no axes", it.ID)
		}
		for _, e := range it.Effects {
			if !axes[e.Axis] {
				p.addf("item %q: unknown axis %q", it.ID, e.Axis)
			}
			if e.Direction != 1 && e.Direction != -1 {
				p.addf("item %q: direction %d on %q must be -1 or +1", it.ID, e.Direction, e.Axis)
			}
		}
	case types.ItemVignette:
		if len(it.Options) < 2 {
			p.addf("vignette %q needs at least two options", it.ID)
		}
		seen := make(map[string]bool, len(it.Options))
		for _, o := range it.Options {
			if seen[o.ID] {
				p.addf("vignette %q: duplicate option %q", it.ID, o.ID)
			}
			seen[o.ID] = true
			for _, e := range o.Effects {
				if !axes[e.Axis] {
					p.addf("vignette %q option %q: unknown axis %q", it.ID, o.ID, e.Axis)
				}
			}
		}
	default:
		p.addf("item %q: unknown kind %q", it.ID, it.Kind)
	}
}
