// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

type axisSet map[string]bool

func (s axisSet) HasAxis(id string) bool { return s[id] }

var testAxes = axisSet{"a1": true, "a2": true}

func item(kind types.ItemKind, effects ...types.AxisEffect) types.AssessmentItem {
	return types.AssessmentItem{ID: "it", Kind: kind, Effects: effects}
}

func TestNormalize_Scales(t *testing.T) {
	plus := types.AxisEffect{Axis: "a1", Direction: 1}
	minus := types.AxisEffect{Axis: "a1", Direction: -1}

	tests := []struct {
		name  string
		item  types.AssessmentItem
		value types.ResponseValue
		want  float64
	}{
		{"binary agree", item(types.ItemBinary, plus), types.Binary(types.AnswerAgree), 2},
		{"binary disagree", item(types.ItemBinary, plus), types.Binary(types.AnswerDisagree), -2},
		{"binary agree reversed", item(types.ItemBinary, minus), types.Binary(types.AnswerAgree), -2},
		{"likert 5", item(types.ItemLikert, plus), types.Likert(5), 2},
		{"likert 4", item(types.ItemLikert, plus), types.Likert(4), 1},
		{"likert 3", item(types.ItemLikert, plus), types.Likert(3), 0},
		{"likert 1 reversed", item(types.ItemLikert, minus), types.Likert(1), 2},
		{"slider 10", item(types.ItemSlider, plus), types.Slider(10), 2},
		{"slider 0", item(types.ItemSlider, plus), types.Slider(0), -2},
		{"slider 7", item(types.ItemSlider, plus), types.Slider(7), 0.8},
		{"slider 5", item(types.ItemSlider, minus), types.Slider(5), 0},
	}

	n := New(testAxes, types.DefaultScoringConfig(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.item, tt.value)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "a1", got[0].Axis)
			assert.Equal(t, "it", got[0].ItemID)
			assert.False(t, got[0].Unsure)
			assert.InDelta(t, tt.want, got[0].Value, 1e-12)
		})
	}
}

func TestNormalize_MaxContributionScalesEveryModality(t *testing.T) {
	n := New(testAxes, types.ScoringConfig{MaxContribution: 1}, nil)
	plus := types.AxisEffect{Axis: "a1", Direction: 1}

	got, err := n.Normalize(item(types.ItemBinary, plus), types.Binary(types.AnswerAgree))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[0].Value)

	got, err = n.Normalize(item(types.ItemLikert, plus), types.Likert(5))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got[0].Value)

	got, err = n.Normalize(item(types.ItemSlider, plus), types.Slider(0))
	require.NoError(t, err)
	assert.Equal(t, -1.0, got[0].Value)
}

func TestNormalize_MultiAxisItem(t *testing.T) {
	n := New(testAxes, types.DefaultScoringConfig(), nil)
	it := item(types.ItemBinary,
		types.AxisEffect{Axis: "a1", Direction: 1},
		types.AxisEffect{Axis: "a2", Direction: -1},
	)

	got, err := n.Normalize(it, types.Binary(types.AnswerAgree))
	require.NoError(t, err)
	assert.Equal(t, []Contribution{
		{ItemID: "it", Axis: "a1", Value: 2},
		{ItemID: "it", Axis: "a2", Value: -2},
	}, got)
}

func TestNormalize_Unsure(t *testing.T) {
	n := New(testAxes, types.DefaultScoringConfig(), nil)
	it := item(types.ItemBinary,
		types.AxisEffect{Axis: "a1", Direction: 1},
		types.AxisEffect{Axis: "a2", Direction: 1},
	)

	got, err := n.Normalize(it, types.Binary(types.AnswerUnsure))
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.True(t, c.Unsure)
		assert.Zero(t, c.Value)
	}
}

func TestNormalize_Vignette(t *testing.T) {
	it := types.AssessmentItem{
		ID:   "v1",
		Kind: types.ItemVignette,
		Options: []types.VignetteOption{
			{ID: "x", Effects: []types.OptionEffect{{Axis: "a1", Weight: 1.5}, {Axis: "a2", Weight: -3}}},
			{ID: "y", Effects: []types.OptionEffect{{Axis: "a2", Weight: 0.5}}},
		},
	}

	t.Run("weights are authored and clamped", func(t *testing.T) {
		n := New(testAxes, types.DefaultScoringConfig(), nil)
		got, err := n.Normalize(it, types.Vignette("v1", "x"))
		require.NoError(t, err)
		assert.Equal(t, []Contribution{
			{ItemID: "v1", Axis: "a1", Value: 1.5},
			{ItemID: "v1", Axis: "a2", Value: -2},
		}, got)
	})

	t.Run("scale applies before clamping", func(t *testing.T) {
		n := New(testAxes, types.ScoringConfig{VignetteScale: 2}, nil)
		got, err := n.Normalize(it, types.Vignette("", "y"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1.0, got[0].Value)
	})

	t.Run("unknown option", func(t *testing.T) {
		n := New(testAxes, types.DefaultScoringConfig(), nil)
		_, err := n.Normalize(it, types.Vignette("v1", "z"))
		assert.ErrorIs(t, err, ErrUnknownOption)
	})

	t.Run("selection for another vignette", func(t *testing.T) {
		n := New(testAxes, types.DefaultScoringConfig(), nil)
		_, err := n.Normalize(it, types.Vignette("v2", "x"))
		assert.ErrorIs(t, err, ErrUnknownOption)
	})
}

func TestNormalize_Errors(t *testing.T) {
	n := New(testAxes, types.DefaultScoringConfig(), nil)
	plus := types.AxisEffect{Axis: "a1", Direction: 1}

	tests := []struct {
		name  string
		item  types.AssessmentItem
		value types.ResponseValue
		want  error
	}{
		{"kind mismatch", item(types.ItemBinary, plus), types.Likert(4), ErrKindMismatch},
		{"likert out of range", item(types.ItemLikert, plus), types.Likert(6), ErrInvalidValue},
		{"slider out of range", item(types.ItemSlider, plus), types.Slider(-1), ErrInvalidValue},
		{"bad binary answer", item(types.ItemBinary, plus), types.Binary("maybe"), ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.item, tt.value)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}

func TestNormalize_UnknownAxisSkippedAndLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := New(testAxes, types.DefaultScoringConfig(), zap.New(core))

	it := item(types.ItemBinary,
		types.AxisEffect{Axis: "ghost", Direction: 1},
		types.AxisEffect{Axis: "a2", Direction: 1},
	)
	got, err := n.Normalize(it, types.Binary(types.AnswerDisagree))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].Axis)
	assert.Equal(t, -2.0, got[0].Value)

	entries := logs.FilterMessage("skipping effect on unknown axis").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ghost", entries[0].ContextMap()["axis"])
}
