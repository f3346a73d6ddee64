// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session picks which assessment items to present next. It is kept
// apart from scoring; the random source is supplied by the caller so a fixed
// seed always yields the same session.
package session

import (
	"math/rand/v2"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// Filter narrows the candidate items. Zero fields match everything.
type Filter struct {
	// Tags keeps items carrying at least one of the tags.
	Tags []string

	// Level keeps items classified at this government level.
	Level string

	// Kinds keeps items of these modalities.
	Kinds []types.ItemKind
}

// Match reports whether it passes the filter.
func (f Filter) Match(it types.AssessmentItem) bool {
	if f.Level != "" && it.Level != f.Level {
		return false
	}
	if len(f.Kinds) > 0 && !containsKind(f.Kinds, it.Kind) {
		return false
	}
	if len(f.Tags) == 0 {
		return true
	}
	for _, tag := range f.Tags {
		if it.HasTag(tag) {
			return true
		}
	}
	return false
}

func containsKind(kinds []types.ItemKind, k types.ItemKind) bool {
	for _, kk := range kinds {
		if kk == k {
			return true
		}
	}
	return false
}

// Select returns up to n unanswered items that pass f, in random order drawn
// from rng. items is not modified. A nil rng keeps content order.
func Select(items []types.AssessmentItem, answered map[string]bool, n int, f Filter, rng *rand.Rand) []types.AssessmentItem {
	if n <= 0 {
		return []types.AssessmentItem{}
	}

	pool := make([]types.AssessmentItem, 0, len(items))
	for _, it := range items {
		if answered[it.ID] || !f.Match(it) {
			continue
		}
		pool = append(pool, it)
	}

	if rng != nil {
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

// Answered returns the set of item IDs that appear in responses.
func Answered(responses []types.ResponseEvent) map[string]bool {
	set := make(map[string]bool, len(responses))
	for _, r := range responses {
		set[r.ItemID] = true
	}
	return set
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
