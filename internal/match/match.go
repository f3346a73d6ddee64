// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match aligns a user's axis scores with a candidate's or ballot
// measure's position vector.
//
// Only axes the entity takes a position on and the user has answered are
// compared. Per-axis difference is measured on the 0-10 position scale;
// the match percentage is the mean of (1 − difference/10) rescaled to 0-100.
// A support/oppose recommendation is only made when the user's mean
// confidence over the compared axes reaches MatchConfig.MinRecommendConfidence.
package match

import (
	"errors"
	"math"
	"sort"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

var (
	// ErrLengthMismatch is returned by CosineSimilarity for vectors of different lengths.
	ErrLengthMismatch = errors.New("vectors must be the same length")

	// ErrEmptyVector is returned by CosineSimilarity for empty vectors.
	ErrEmptyVector = errors.New("vectors cannot be empty")
)

// Engine matches users against entities using one content axis list.
type Engine struct {
	axes []types.Axis
	cfg  types.MatchConfig
}

// NewEngine returns an Engine comparing over axes, in their order. Zero
// config fields take their defaults.
func NewEngine(axes []types.Axis, cfg types.MatchConfig) *Engine {
	return &Engine{axes: axes, cfg: cfg.WithDefaults()}
}

// Config returns the effective match configuration.
func (e *Engine) Config() types.MatchConfig { return e.cfg }

// Category classifies a 0-10 position difference.
func (e *Engine) Category(difference float64) types.AlignmentCategory {
	switch {
	case difference <= e.cfg.StrongMaxDifference:
		return types.AlignmentStrong
	case difference <= e.cfg.ModerateMaxDifference:
		return types.AlignmentModerate
	default:
		return types.AlignmentDisagree
	}
}

// Match compares scores with entity. With no comparable axes the result has
// MatchPercent 0, InsufficientData set and no recommendation.
func (e *Engine) Match(scores []types.AxisScore, entity types.PositionVector) types.MatchResult {
	res := types.MatchResult{
		EntityID:         entity.EntityID,
		EntityName:       entity.Name,
		EntityKind:       entity.Kind,
		Recommendation:   types.RecommendUnclear,
		Comparisons:      []types.AxisComparison{},
		KeyAgreements:    []string{},
		KeyDisagreements: []string{},
	}

	byAxis := make(map[string]types.AxisScore, len(scores))
	for _, s := range scores {
		byAxis[s.AxisID] = s
	}

	var userVec, entityVec []float64
	for _, a := range e.axes {
		pos, ok := entity.Positions[a.ID]
		if !ok {
			continue
		}
		s, ok := byAxis[a.ID]
		if !ok || !s.Answered() {
			continue
		}
		diff := math.Abs(s.Position - pos)
		name := a.Name
		if name == "" {
			name = a.ID
		}
		res.Comparisons = append(res.Comparisons, types.AxisComparison{
			AxisID:         a.ID,
			AxisName:       name,
			UserStance:     s.Position,
			EntityStance:   pos,
			Difference:     diff,
			Category:       e.Category(diff),
			UserConfidence: s.Confidence,
		})
		userVec = append(userVec, types.Stance(s.Position))
		entityVec = append(entityVec, types.Stance(pos))
	}

	if len(res.Comparisons) == 0 {
		res.InsufficientData = true
		return res
	}

	var alignment, confidence, weighted float64
	for i, c := range res.Comparisons {
		alignment += 1 - c.Difference/types.PositionMax
		confidence += c.UserConfidence
		weighted += c.UserConfidence * userVec[i] * entityVec[i]
	}
	n := float64(len(res.Comparisons))
	res.MatchPercent = math.Round(100 * alignment / n)
	res.Confidence = confidence / n

	if sim, err := CosineSimilarity(userVec, entityVec); err == nil {
		res.Similarity = sim
	}

	res.KeyAgreements = e.keyAxes(res.Comparisons, types.AlignmentStrong, e.cfg.MaxKeyAgreements, false)
	res.KeyDisagreements = e.keyAxes(res.Comparisons, types.AlignmentDisagree, e.cfg.MaxKeyDisagreements, true)
	res.Recommendation = e.recommend(res.Confidence, weighted, confidence)
	return res
}

// recommend gates the vote on confidence, then follows the sign of the
// confidence-weighted stance agreement Σ c·u·e / Σ c, where u and e are the
// user's and entity's stances in [-1, 1]. Same-side stances pull toward
// support, opposite sides toward oppose.
func (e *Engine) recommend(confidence, weighted, totalConfidence float64) types.Recommendation {
	if confidence < e.cfg.MinRecommendConfidence || totalConfidence == 0 {
		return types.RecommendUnclear
	}
	switch signal := weighted / totalConfidence; {
	case signal > 0:
		return types.RecommendSupport
	case signal < 0:
		return types.RecommendOppose
	default:
		return types.RecommendUnclear
	}
}

// keyAxes returns up to limit axis names in category cat, closest first, or
// farthest first when widest is set. Ties keep content order.
func (e *Engine) keyAxes(comps []types.AxisComparison, cat types.AlignmentCategory, limit int, widest bool) []string {
	var picked []types.AxisComparison
	for _, c := range comps {
		if c.Category == cat {
			picked = append(picked, c)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool {
		if widest {
			return picked[i].Difference > picked[j].Difference
		}
		return picked[i].Difference < picked[j].Difference
	})
	if limit < 0 {
		limit = 0
	}
	if len(picked) > limit {
		picked = picked[:limit]
	}
	names := make([]string, len(picked))
	for i, c := range picked {
		names[i] = c.AxisName
	}
	return names
}

// Rank matches every entity and orders the results by match percentage,
// highest first. Equal percentages keep the entities' order.
func (e *Engine) Rank(scores []types.AxisScore, entities []types.PositionVector) []types.MatchResult {
	results := make([]types.MatchResult, 0, len(entities))
	for _, ent := range entities {
		results = append(results, e.Match(scores, ent))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercent > results[j].MatchPercent
	})
	return results
}

// CosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. It returns 0 when either vector is all zeros.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	if len(a) == 0 {
		return 0, ErrEmptyVector
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	sim := dot / math.Sqrt(normA*normB)
	return math.Max(-1, math.Min(1, sim)), nil
}
