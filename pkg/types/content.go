// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ballot-builder values engine:
// assessment content (domains, axes, items, meta-dimensions, archetypes, entity
// position vectors), response events, and the derived score and match payloads.
//
// Content types carry json and yaml tags so bundles can be authored as YAML
// fixtures and results can be emitted as JSON.
package types

// Axis position scale. Position 0 is fully PoleA, 10 is fully PoleB and 5 is
// neutral. Stance maps a position onto [-1, 1] with PoleA positive.
const (
	PositionMin     = 0.0
	PositionMax     = 10.0
	PositionNeutral = 5.0
)

// Domain groups related axes (e.g. "climate", "economy").
type Domain struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Axis is a single policy dimension with two opposing poles.
type Axis struct {
	// ID is the stable axis key referenced by items, meta-dimensions and entities.
	ID string `json:"id" yaml:"id"`

	// Domain is the ID of the owning Domain. Every axis belongs to exactly one domain.
	Domain string `json:"domain" yaml:"domain"`

	// Name is the display name used in key agreement/disagreement lists.
	Name string `json:"name" yaml:"name"`

	// PoleA is the pole an "agree" on a +1 effect supports (position 0).
	PoleA string `json:"pole_a" yaml:"pole_a"`

	// PoleB is the opposite pole (position 10).
	PoleB string `json:"pole_b" yaml:"pole_b"`
}

// Stance converts a 0-10 axis position into an orientation in [-1, 1].
// Position 0 yields +1 (PoleA), 10 yields -1 (PoleB).
func Stance(position float64) float64 {
	return (PositionNeutral - position) / PositionNeutral
}

// PositionFromScore is the inverse of Stance: a signed score in [-1, 1]
// becomes a 0-10 position.
func PositionFromScore(score float64) float64 {
	return PositionNeutral * (1 - score)
}

// ItemKind identifies the assessment modality an item is answered with.
type ItemKind string

const (
	ItemBinary   ItemKind = "binary"
	ItemLikert   ItemKind = "likert"
	ItemSlider   ItemKind = "slider"
	ItemVignette ItemKind = "vignette"
)

// AxisEffect maps an item onto one axis. Direction is -1 or +1 and says which
// pole an "agree" (or high Likert/slider value) supports.
type AxisEffect struct {
	Axis      string `json:"axis" yaml:"axis"`
	Direction int    `json:"direction" yaml:"direction"`
}

// OptionEffect is an authored signed weight a vignette option applies to an axis.
type OptionEffect struct {
	Axis   string  `json:"axis" yaml:"axis"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// VignetteOption is one selectable answer of a forced-choice vignette.
type VignetteOption struct {
	ID      string         `json:"id" yaml:"id"`
	Text    string         `json:"text" yaml:"text"`
	Effects []OptionEffect `json:"effects" yaml:"effects"`
}

// AssessmentItem is a policy statement, slider prompt or vignette scenario.
type AssessmentItem struct {
	ID   string   `json:"id" yaml:"id"`
	Kind ItemKind `json:"kind" yaml:"kind"`
	Text string   `json:"text" yaml:"text"`

	// Effects lists the axes the item moves, in authored order.
	// Vignettes use per-option effects instead.
	Effects []AxisEffect `json:"effects,omitempty" yaml:"effects,omitempty"`

	// Options holds the choices of a vignette item.
	Options []VignetteOption `json:"options,omitempty" yaml:"options,omitempty"`

	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Level classifies the government level the item concerns (federal, state, local).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// Option returns the vignette option with the given ID.
func (it AssessmentItem) Option(id string) (VignetteOption, bool) {
	for _, o := range it.Options {
		if o.ID == id {
			return o, true
		}
	}
	return VignetteOption{}, false
}

// HasTag reports whether the item carries tag.
func (it AssessmentItem) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MetaAxis is one axis feeding a meta-dimension. A zero Weight counts as 1.
type MetaAxis struct {
	Axis   string  `json:"axis" yaml:"axis"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// EffectiveWeight returns Weight, defaulting to 1.
func (m MetaAxis) EffectiveWeight() float64 {
	if m.Weight == 0 {
		return 1
	}
	return m.Weight
}

// PoleFraming is the narrative copy for one pole of a meta-dimension.
type PoleFraming struct {
	CoreValueLabel   string `json:"core_value_label" yaml:"core_value_label"`
	ShortPhrase      string `json:"short_phrase" yaml:"short_phrase"`
	ResonanceFraming string `json:"resonance_framing" yaml:"resonance_framing"`
	TradeoffFraming  string `json:"tradeoff_framing" yaml:"tradeoff_framing"`
}

// MetaDimension is a higher-order personality axis averaged from policy axes.
// Positive scores lean toward Positive framing, negative toward Negative.
type MetaDimension struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Axes     []MetaAxis  `json:"axes" yaml:"axes"`
	Positive PoleFraming `json:"positive" yaml:"positive"`
	Negative PoleFraming `json:"negative" yaml:"negative"`
}

// Archetype is a catalog persona located at a centroid in meta-dimension space.
type Archetype struct {
	ID       string             `json:"id" yaml:"id"`
	Name     string             `json:"name" yaml:"name"`
	Traits   []string           `json:"traits" yaml:"traits"`
	Summary  string             `json:"summary" yaml:"summary"`
	Centroid map[string]float64 `json:"centroid" yaml:"centroid"`
}

// EntityKind distinguishes candidates from ballot measures.
type EntityKind string

const (
	EntityCandidate EntityKind = "candidate"
	EntityMeasure   EntityKind = "measure"
)

// PositionVector is a candidate's or measure's 0-10 position on a subset of axes.
type PositionVector struct {
	EntityID  string             `json:"entity_id" yaml:"entity_id"`
	Name      string             `json:"name" yaml:"name"`
	Kind      EntityKind         `json:"kind" yaml:"kind"`
	Positions map[string]float64 `json:"positions" yaml:"positions"`
}
