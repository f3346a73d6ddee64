// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ballot-builder/internal/content/contenttest"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

func ids(items []types.AssessmentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestSelect_Deterministic(t *testing.T) {
	items := contenttest.Bundle().Items

	first := Select(items, nil, 4, Filter{}, NewRand(42))
	second := Select(items, nil, 4, Filter{}, NewRand(42))
	require.Len(t, first, 4)
	assert.Equal(t, ids(first), ids(second))
}

func TestSelect_IsAPermutation(t *testing.T) {
	items := contenttest.Bundle().Items

	got := Select(items, nil, 100, Filter{}, NewRand(7))
	assert.ElementsMatch(t, ids(items), ids(got))
	assert.Equal(t, []string{"b1", "b2", "b3", "l1", "s1", "v1"}, ids(items), "input must not be reordered")
}

func TestSelect_NilRandKeepsOrder(t *testing.T) {
	items := contenttest.Bundle().Items
	got := Select(items, nil, 3, Filter{}, nil)
	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(got))
}

func TestSelect_SkipsAnswered(t *testing.T) {
	items := contenttest.Bundle().Items
	answered := Answered([]types.ResponseEvent{{ItemID: "b1"}, {ItemID: "v1"}, {ItemID: "b1"}})

	got := Select(items, answered, 10, Filter{}, NewRand(1))
	assert.ElementsMatch(t, []string{"b2", "b3", "l1", "s1"}, ids(got))
}

func TestSelect_Filters(t *testing.T) {
	items := contenttest.Bundle().Items

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"tag", Filter{Tags: []string{"quick"}}, []string{"b1", "b3"}},
		{"level", Filter{Level: "local"}, []string{"b2", "l1"}},
		{"kind", Filter{Kinds: []types.ItemKind{types.ItemSlider, types.ItemVignette}}, []string{"s1", "v1"}},
		{"tag and level", Filter{Tags: []string{"quick"}, Level: "federal"}, []string{"b1"}},
		{"nothing matches", Filter{Tags: []string{"absent"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(items, nil, 10, tt.filter, nil)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSelect_NonPositiveCount(t *testing.T) {
	items := contenttest.Bundle().Items
	assert.Empty(t, Select(items, nil, 0, Filter{}, NewRand(1)))
	assert.Empty(t, Select(items, nil, -3, Filter{}, NewRand(1)))
}
