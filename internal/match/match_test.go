// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ballot-builder/internal/content/contenttest"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

const eps = 1e-9

func userScore(axis string, position, confidence float64) types.AxisScore {
	return types.AxisScore{
		AxisID:     axis,
		NAnswered:  1,
		Position:   position,
		Shrunk:     types.Stance(position),
		Confidence: confidence,
	}
}

func fixtureEngine(t *testing.T) (*Engine, map[string]types.PositionVector) {
	t.Helper()
	snap := contenttest.Snapshot(t)
	entities := make(map[string]types.PositionVector)
	for _, e := range snap.Entities("") {
		entities[e.EntityID] = e
	}
	return NewEngine(snap.Axes(), types.DefaultMatchConfig()), entities
}

func TestMatch(t *testing.T) {
	e, entities := fixtureEngine(t)
	scores := []types.AxisScore{
		userScore("a1", 1, 0.5),
		userScore("a2", 8, 0.5),
		{AxisID: "a3", Position: 5},
	}

	t.Run("mostly aligned", func(t *testing.T) {
		res := e.Match(scores, entities["c1"])
		assert.Equal(t, "c1", res.EntityID)
		assert.Equal(t, "Candidate one", res.EntityName)
		assert.Equal(t, types.EntityCandidate, res.EntityKind)
		assert.False(t, res.InsufficientData)
		assert.Equal(t, 80.0, res.MatchPercent)
		assert.InDelta(t, 0.5, res.Confidence, eps)
		assert.InDelta(t, 0.8, res.Similarity, eps)
		assert.Equal(t, types.RecommendSupport, res.Recommendation)

		require.Len(t, res.Comparisons, 2)
		assert.Equal(t, types.AxisComparison{
			AxisID: "a1", AxisName: "Axis one", UserStance: 1, EntityStance: 0,
			Difference: 1, Category: types.AlignmentStrong, UserConfidence: 0.5,
		}, res.Comparisons[0])
		assert.Equal(t, types.AlignmentModerate, res.Comparisons[1].Category)
		assert.Equal(t, 3.0, res.Comparisons[1].Difference)

		assert.Equal(t, []string{"Axis one"}, res.KeyAgreements)
		assert.Empty(t, res.KeyDisagreements)
	})

	t.Run("opposed", func(t *testing.T) {
		res := e.Match(scores, entities["c2"])
		assert.Equal(t, 10.0, res.MatchPercent)
		assert.InDelta(t, -1.0, res.Similarity, eps)
		assert.Equal(t, types.RecommendOppose, res.Recommendation)
		assert.Empty(t, res.KeyAgreements)
		assert.Equal(t, []string{"Axis one"}, res.KeyDisagreements)
	})

	t.Run("no comparable axes", func(t *testing.T) {
		res := e.Match(scores, entities["p1"])
		assert.True(t, res.InsufficientData)
		assert.Zero(t, res.MatchPercent)
		assert.Zero(t, res.Similarity)
		assert.Zero(t, res.Confidence)
		assert.Equal(t, types.RecommendUnclear, res.Recommendation)
		assert.NotNil(t, res.Comparisons)
		assert.Empty(t, res.Comparisons)
	})
}

func TestMatch_ConfidenceGating(t *testing.T) {
	e, entities := fixtureEngine(t)

	tests := []struct {
		name   string
		scores []types.AxisScore
		entity string
		want   types.Recommendation
	}{
		{
			name:   "below threshold never recommends",
			scores: []types.AxisScore{userScore("a1", 0, 0.1), userScore("a2", 5, 0.15)},
			entity: "c1",
			want:   types.RecommendUnclear,
		},
		{
			name:   "at threshold recommends",
			scores: []types.AxisScore{userScore("a1", 0, 0.2), userScore("a2", 5, 0.2)},
			entity: "c1",
			want:   types.RecommendSupport,
		},
		{
			name:   "at threshold against",
			scores: []types.AxisScore{userScore("a1", 0, 0.2)},
			entity: "c2",
			want:   types.RecommendOppose,
		},
		{
			name:   "zero weighted alignment is unclear",
			scores: []types.AxisScore{userScore("a1", 5, 0.9)},
			entity: "c1",
			want:   types.RecommendUnclear,
		},
		{
			name: "confidence weights the sign",
			// a1: 0.6 × 1 at c=0.9; a2: 1 × -1 at c=0.1
			scores: []types.AxisScore{userScore("a1", 2, 0.9), userScore("a2", 0, 0.1)},
			entity: "split",
			want:   types.RecommendSupport,
		},
		{
			name:   "same scores reversed confidence",
			scores: []types.AxisScore{userScore("a1", 2, 0.1), userScore("a2", 0, 0.9)},
			entity: "split",
			want:   types.RecommendOppose,
		},
	}
	entities["split"] = types.PositionVector{EntityID: "split", Positions: map[string]float64{"a1": 0, "a2": 10}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Match(tt.scores, entities[tt.entity])
			assert.Equal(t, tt.want, res.Recommendation)
		})
	}
}

func TestMatch_UnansweredAxesNotCompared(t *testing.T) {
	e, entities := fixtureEngine(t)
	scores := []types.AxisScore{
		userScore("a1", 2, 0.4),
		{AxisID: "a2", Position: 5, NUnsure: 2},
	}

	res := e.Match(scores, entities["c1"])
	require.Len(t, res.Comparisons, 1)
	assert.Equal(t, "a1", res.Comparisons[0].AxisID)
	assert.Equal(t, 80.0, res.MatchPercent)
}

func TestCategory(t *testing.T) {
	def := NewEngine(nil, types.DefaultMatchConfig())
	custom := NewEngine(nil, types.MatchConfig{StrongMaxDifference: 1, ModerateMaxDifference: 4})

	tests := []struct {
		diff    float64
		def     types.AlignmentCategory
		wantCus types.AlignmentCategory
	}{
		{0, types.AlignmentStrong, types.AlignmentStrong},
		{1, types.AlignmentStrong, types.AlignmentStrong},
		{2, types.AlignmentStrong, types.AlignmentModerate},
		{2.5, types.AlignmentModerate, types.AlignmentModerate},
		{3, types.AlignmentModerate, types.AlignmentModerate},
		{3.5, types.AlignmentDisagree, types.AlignmentModerate},
		{4, types.AlignmentDisagree, types.AlignmentModerate},
		{10, types.AlignmentDisagree, types.AlignmentDisagree},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.def, def.Category(tt.diff), "default, diff %v", tt.diff)
		assert.Equal(t, tt.wantCus, custom.Category(tt.diff), "custom, diff %v", tt.diff)
	}
}

func TestMatch_KeyAxisCaps(t *testing.T) {
	axes := []types.Axis{
		{ID: "x1", Name: "X1"}, {ID: "x2", Name: "X2"}, {ID: "x3", Name: "X3"},
		{ID: "x4", Name: "X4"}, {ID: "x5", Name: "X5"}, {ID: "x6"},
	}
	var scores []types.AxisScore
	for _, a := range axes {
		scores = append(scores, userScore(a.ID, 5, 0.5))
	}
	entity := types.PositionVector{EntityID: "e", Positions: map[string]float64{
		"x1": 6, "x2": 5, "x3": 7, "x4": 1, "x5": 10, "x6": 0,
	}}

	res := NewEngine(axes, types.DefaultMatchConfig()).Match(scores, entity)
	assert.Equal(t, []string{"X2", "X1"}, res.KeyAgreements)
	assert.Equal(t, []string{"X5"}, res.KeyDisagreements)

	cfg := types.DefaultMatchConfig()
	cfg.MaxKeyAgreements = 5
	cfg.MaxKeyDisagreements = 3
	res = NewEngine(axes, cfg).Match(scores, entity)
	assert.Equal(t, []string{"X2", "X1", "X3"}, res.KeyAgreements)
	assert.Equal(t, []string{"X5", "x6", "X4"}, res.KeyDisagreements, "unnamed axes fall back to their ID")

	cfg.MaxKeyAgreements = -1
	res = NewEngine(axes, cfg).Match(scores, entity)
	assert.Empty(t, res.KeyAgreements)
}

func TestNewEngine_PartialConfigKeepsDefaults(t *testing.T) {
	snap := contenttest.Snapshot(t)
	c1, ok := snap.Entity("c1")
	require.True(t, ok)
	partial := types.MatchConfig{StrongMaxDifference: 2, ModerateMaxDifference: 3}

	e := NewEngine(snap.Axes(), partial)
	assert.Equal(t, types.DefaultMatchConfig(), e.Config())

	low := []types.AxisScore{userScore("a1", 0, 0.05), userScore("a2", 5, 0.05)}
	res := e.Match(low, c1)
	assert.Equal(t, types.RecommendUnclear, res.Recommendation, "the confidence gate applies")

	axes := []types.Axis{
		{ID: "x1", Name: "X1"}, {ID: "x2", Name: "X2"}, {ID: "x3", Name: "X3"},
		{ID: "x4", Name: "X4"}, {ID: "x5", Name: "X5"},
	}
	var scores []types.AxisScore
	for _, a := range axes {
		scores = append(scores, userScore(a.ID, 5, 0.5))
	}
	entity := types.PositionVector{EntityID: "e", Positions: map[string]float64{
		"x1": 6, "x2": 5, "x3": 7, "x4": 1, "x5": 10,
	}}
	res = NewEngine(axes, types.MatchConfig{}).Match(scores, entity)
	assert.Equal(t, []string{"X2", "X1"}, res.KeyAgreements)
	assert.Equal(t, []string{"X5"}, res.KeyDisagreements)
}

func TestNewEngine_NegativeGateRecommendsAtAnyConfidence(t *testing.T) {
	snap := contenttest.Snapshot(t)
	c1, ok := snap.Entity("c1")
	require.True(t, ok)

	cfg := types.DefaultMatchConfig()
	cfg.MinRecommendConfidence = -1
	low := []types.AxisScore{userScore("a1", 0, 0.05), userScore("a2", 5, 0.05)}
	res := NewEngine(snap.Axes(), cfg).Match(low, c1)
	assert.Equal(t, types.RecommendSupport, res.Recommendation)
}

func TestRank(t *testing.T) {
	e, entities := fixtureEngine(t)
	scores := []types.AxisScore{userScore("a1", 1, 0.5), userScore("a2", 8, 0.5)}

	ranked := e.Rank(scores, []types.PositionVector{entities["p1"], entities["c2"], entities["c1"]})
	require.Len(t, ranked, 3)
	assert.Equal(t, "c1", ranked[0].EntityID)
	assert.Equal(t, "c2", ranked[1].EntityID)
	assert.Equal(t, "p1", ranked[2].EntityID)

	twinA := types.PositionVector{EntityID: "twin_a", Positions: map[string]float64{"a1": 3}}
	twinB := types.PositionVector{EntityID: "twin_b", Positions: map[string]float64{"a1": 3}}
	ranked = e.Rank(scores, []types.PositionVector{twinB, twinA})
	assert.Equal(t, "twin_b", ranked[0].EntityID)
	assert.Equal(t, "twin_a", ranked[1].EntityID)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"identical fractional", []float64{0.3, -0.7, 0.1}, []float64{0.3, -0.7, 0.1}, 1},
		{"opposite", []float64{1, -2, 0.5}, []float64{-1, 2, -0.5}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0, 0}, []float64{1, 2, 3}, 0},
		{"scaled", []float64{1, 1}, []float64{3, 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, eps)
		})
	}
}

func TestCosineSimilarity_Errors(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.EqualError(t, err, "vectors must be the same length")

	_, err = CosineSimilarity(nil, []float64{})
	require.ErrorIs(t, err, ErrEmptyVector)
	assert.EqualError(t, err, "vectors cannot be empty")
}
