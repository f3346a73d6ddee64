// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contenttest provides a small, fully valid content bundle for tests.
package contenttest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ballot-builder/internal/content"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

// Bundle returns a three-axis bundle:
//
//	b1 binary   a1 +1
//	b2 binary   a1 -1
//	b3 binary   a2 +1, a3 -1
//	l1 likert   a2 +1
//	s1 slider   a3 +1
//	v1 vignette x: a1 1.5, a3 -3 | y: a2 -1
//
// Meta-dimensions m1 (a1, a2) and m2 (a2 weight 2, a3); archetypes hi, lo,
// mix; entities c1, c2 (candidates) and p1 (measure).
func Bundle() content.Bundle {
	return content.Bundle{
		Manifest: content.Manifest{ID: "test", Name: "Test bundle", Version: "1"},
		Domains:  []types.Domain{{ID: "d1", Name: "Domain one"}},
		Axes: []types.Axis{
			{ID: "a1", Domain: "d1", Name: "Axis one", PoleA: "A1", PoleB: "B1"},
			{ID: "a2", Domain: "d1", Name: "Axis two", PoleA: "A2", PoleB: "B2"},
			{ID: "a3", Domain: "d1", Name: "Axis three", PoleA: "A3", PoleB: "B3"},
		},
		Items: []types.AssessmentItem{
			{ID: "b1", Kind: types.ItemBinary, Effects: []types.AxisEffect{{Axis: "a1", Direction: 1}}, Tags: []string{"quick"}, Level: "federal"},
			{ID: "b2", Kind: types.ItemBinary, Effects: []types.AxisEffect{{Axis: "a1", Direction: -1}}, Level: "local"},
			{ID: "b3", Kind: types.ItemBinary, Effects: []types.AxisEffect{{Axis: "a2", Direction: 1}, {Axis: "a3", Direction: -1}}, Tags: []string{"quick"}},
			{ID: "l1", Kind: types.ItemLikert, Effects: []types.AxisEffect{{Axis: "a2", Direction: 1}}, Level: "local"},
			{ID: "s1", Kind: types.ItemSlider, Effects: []types.AxisEffect{{Axis: "a3", Direction: 1}}},
			{ID: "v1", Kind: types.ItemVignette, Options: []types.VignetteOption{
				{ID: "x", Effects: []types.OptionEffect{{Axis: "a1", Weight: 1.5}, {Axis: "a3", Weight: -3}}},
				{ID: "y", Effects: []types.OptionEffect{{Axis: "a2", Weight: -1}}},
			}},
		},
		MetaDimensions: []types.MetaDimension{
			{
				ID: "m1", Name: "Meta one",
				Axes:     []types.MetaAxis{{Axis: "a1"}, {Axis: "a2"}},
				Positive: types.PoleFraming{CoreValueLabel: "togetherness", ShortPhrase: "working together"},
				Negative: types.PoleFraming{CoreValueLabel: "independence", ShortPhrase: "going it alone"},
			},
			{
				ID: "m2", Name: "Meta two",
				Axes:     []types.MetaAxis{{Axis: "a2", Weight: 2}, {Axis: "a3"}},
				Positive: types.PoleFraming{CoreValueLabel: "boldness", ShortPhrase: "moving fast"},
				Negative: types.PoleFraming{CoreValueLabel: "caution", ShortPhrase: "moving carefully"},
			},
		},
		Archetypes: []types.Archetype{
			{ID: "hi", Name: "High", Centroid: map[string]float64{"m1": 0.5, "m2": 0.5}},
			{ID: "lo", Name: "Low", Centroid: map[string]float64{"m1": -0.5, "m2": -0.5}},
			{ID: "mix", Name: "Mixed", Centroid: map[string]float64{"m1": 0.5, "m2": -0.5}},
		},
		Entities: []types.PositionVector{
			{EntityID: "c1", Name: "Candidate one", Kind: types.EntityCandidate, Positions: map[string]float64{"a1": 0, "a2": 5}},
			{EntityID: "c2", Name: "Candidate two", Kind: types.EntityCandidate, Positions: map[string]float64{"a1": 10}},
			{EntityID: "p1", Name: "Measure one", Kind: types.EntityMeasure, Positions: map[string]float64{"a3": 2}},
		},
	}
}

// Snapshot returns the validated snapshot of Bundle.
func Snapshot(t testing.TB) *content.Snapshot {
	t.Helper()
	snap, err := content.New(Bundle())
	require.NoError(t, err)
	return snap
}
