// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"github.com/pdiddy/ballot-builder/pkg/types"
)

// Snapshot is a validated, read-only view of a bundle. It is safe for
// concurrent use; callers must not modify the slices it returns.
type Snapshot struct {
	manifest       Manifest
	domains        []types.Domain
	axes           []types.Axis
	items          []types.AssessmentItem
	metaDimensions []types.MetaDimension
	archetypes     []types.Archetype
	entities       []types.PositionVector

	axisIndex   map[string]int
	itemIndex   map[string]int
	entityIndex map[string]int
}

// New validates b and indexes it. Every defect found is returned, joined,
// each wrapping ErrIntegrity.
func New(b Bundle) (*Snapshot, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	s := &Snapshot{
		manifest:       b.Manifest,
		domains:        b.Domains,
		axes:           b.Axes,
		items:          b.Items,
		metaDimensions: b.MetaDimensions,
		archetypes:     b.Archetypes,
		entities:       b.Entities,
		axisIndex:      make(map[string]int, len(b.Axes)),
		itemIndex:      make(map[string]int, len(b.Items)),
		entityIndex:    make(map[string]int, len(b.Entities)),
	}
	for i, a := range b.Axes {
		s.axisIndex[a.ID] = i
	}
	for i, it := range b.Items {
		s.itemIndex[it.ID] = i
	}
	for i, e := range b.Entities {
		s.entityIndex[e.EntityID] = i
	}
	return s, nil
}

// Manifest returns the bundle manifest.
func (s *Snapshot) Manifest() Manifest { return s.manifest }

// Domains returns the domains in authored order.
func (s *Snapshot) Domains() []types.Domain { return s.domains }

// Axes returns the axes in authored order.
func (s *Snapshot) Axes() []types.Axis { return s.axes }

// Items returns the assessment items in authored order.
func (s *Snapshot) Items() []types.AssessmentItem { return s.items }

// MetaDimensions returns the meta-dimension definitions.
func (s *Snapshot) MetaDimensions() []types.MetaDimension { return s.metaDimensions }

// Archetypes returns the archetype catalog in catalog order.
func (s *Snapshot) Archetypes() []types.Archetype { return s.archetypes }

// Axis returns the axis with the given ID.
func (s *Snapshot) Axis(id string) (types.Axis, bool) {
	i, ok := s.axisIndex[id]
	if !ok {
		return types.Axis{}, false
	}
	return s.axes[i], true
}

// HasAxis reports whether id names an axis of the bundle.
func (s *Snapshot) HasAxis(id string) bool {
	_, ok := s.axisIndex[id]
	return ok
}

// Item returns the assessment item with the given ID.
func (s *Snapshot) Item(id string) (types.AssessmentItem, bool) {
	i, ok := s.itemIndex[id]
	if !ok {
		return types.AssessmentItem{}, false
	}
	return s.items[i], true
}

// Entity returns the candidate or measure with the given ID.
func (s *Snapshot) Entity(id string) (types.PositionVector, bool) {
	i, ok := s.entityIndex[id]
	if !ok {
		return types.PositionVector{}, false
	}
	return s.entities[i], true
}

// Entities returns the position vectors of the given kind in bundle order.
// An empty kind returns every entity.
func (s *Snapshot) Entities(kind types.EntityKind) []types.PositionVector {
	if kind == "" {
		return s.entities
	}
	var out []types.PositionVector
	for _, e := range s.entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// ScoringConfig applies the bundle's overrides to base.
func (s *Snapshot) ScoringConfig(base types.ScoringConfig) types.ScoringConfig {
	if s.manifest.ShrinkageK > 0 {
		base.ShrinkageK = s.manifest.ShrinkageK
	}
	return base.WithDefaults()
}
