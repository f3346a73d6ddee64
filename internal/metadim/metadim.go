// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadim derives higher-order meta-dimension scores from axis
// scores, rates overall profile confidence and classifies the profile into
// the nearest catalog archetypes.
package metadim

import (
	"errors"
	"math"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// ErrEmptyCatalog is returned by ComputeArchetype when there are no archetypes.
var ErrEmptyCatalog = errors.New("archetype catalog is empty")

// Confidence label thresholds. Each band includes its lower bound.
const (
	MediumThreshold = 0.35
	HighThreshold   = 0.70
)

// DefaultConfidence is reported when no axis has been answered.
const DefaultConfidence = 0.5

// Derive returns one score per dimension, in dimension order. A dimension's
// score is the weighted mean stance of its answered axes; with none answered
// it is 0.
func Derive(scores []types.AxisScore, dims []types.MetaDimension) []types.MetaDimensionScore {
	byAxis := make(map[string]types.AxisScore, len(scores))
	for _, s := range scores {
		byAxis[s.AxisID] = s
	}

	out := make([]types.MetaDimensionScore, 0, len(dims))
	for _, d := range dims {
		var sum, weights float64
		var n int
		for _, m := range d.Axes {
			s, ok := byAxis[m.Axis]
			if !ok || !s.Answered() {
				continue
			}
			w := m.EffectiveWeight()
			sum += w * types.Stance(s.Position)
			weights += w
			n++
		}

		ms := types.MetaDimensionScore{ID: d.ID, Name: d.Name, Contributing: n}
		if weights > 0 {
			ms.Score = clamp(sum/weights, -1, 1)
		}
		out = append(out, ms)
	}
	return out
}

// ProfileConfidence is the mean confidence of the answered axes, or
// DefaultConfidence when nothing has been answered.
func ProfileConfidence(scores []types.AxisScore) float64 {
	var sum float64
	var n int
	for _, s := range scores {
		if !s.Answered() {
			continue
		}
		sum += s.Confidence
		n++
	}
	if n == 0 {
		return DefaultConfidence
	}
	return sum / float64(n)
}

// Label maps a confidence value to Low, Medium or High.
func Label(c float64) types.ConfidenceLabel {
	switch {
	case c < MediumThreshold:
		return types.ConfidenceLow
	case c < HighThreshold:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceHigh
	}
}

// ComputeArchetype finds the archetypes nearest to meta by Euclidean distance
// over the dimensions in meta. Ties go to the archetype earlier in the
// catalog. Secondary is nil when the catalog has a single entry.
func ComputeArchetype(meta []types.MetaDimensionScore, catalog []types.Archetype) (types.ArchetypeResult, error) {
	if len(catalog) == 0 {
		return types.ArchetypeResult{}, ErrEmptyCatalog
	}

	first, second := -1, -1
	dists := make([]float64, len(catalog))
	for i, a := range catalog {
		dists[i] = Distance(meta, a)
		switch {
		case first < 0 || dists[i] < dists[first]:
			second = first
			first = i
		case second < 0 || dists[i] < dists[second]:
			second = i
		}
	}

	res := types.ArchetypeResult{
		Primary: types.ArchetypeMatch{Archetype: catalog[first], Distance: dists[first]},
		Meta:    meta,
	}
	if second >= 0 {
		res.Secondary = &types.ArchetypeMatch{Archetype: catalog[second], Distance: dists[second]}
	}
	return res, nil
}

// Distance is the Euclidean distance between meta and the archetype's
// centroid. Missing centroid coordinates count as 0.
func Distance(meta []types.MetaDimensionScore, a types.Archetype) float64 {
	var sum float64
	for _, m := range meta {
		d := m.Score - a.Centroid[m.ID]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
