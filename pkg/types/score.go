// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AxisScore is the derived score of one axis for one set of responses.
// It is recomputed on demand and never stored apart from its inputs.
//
// Invariants: Shrunk == Normalized * Confidence,
// Confidence == NAnswered / (NAnswered + k), Normalized == RawSum / MaxPossible.
type AxisScore struct {
	AxisID string `json:"axis_id" yaml:"axis_id"`

	RawSum      float64 `json:"raw_sum" yaml:"raw_sum"`
	MaxPossible float64 `json:"max_possible" yaml:"max_possible"`
	NAnswered   int     `json:"n_answered" yaml:"n_answered"`
	NUnsure     int     `json:"n_unsure" yaml:"n_unsure"`

	// Normalized is RawSum / MaxPossible in [-1, 1].
	Normalized float64 `json:"normalized" yaml:"normalized"`

	// Shrunk is Normalized pulled toward neutral by Confidence.
	Shrunk float64 `json:"shrunk" yaml:"shrunk"`

	// Confidence is in [0, 1] and grows with the number of answered items.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Position is Shrunk expressed on the 0-10 axis scale.
	Position float64 `json:"position" yaml:"position"`

	// TopDriverItemIDs lists the items with the largest absolute contribution.
	TopDriverItemIDs []string `json:"top_driver_item_ids" yaml:"top_driver_item_ids"`
}

// Answered reports whether at least one non-unsure response touched the axis.
func (s AxisScore) Answered() bool {
	return s.NAnswered > 0
}

// MetaDimensionScore is one higher-order dimension of a user's profile.
type MetaDimensionScore struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`

	// Contributing counts the answered axes averaged into Score.
	Contributing int `json:"contributing" yaml:"contributing"`
}

// ArchetypeMatch is an archetype together with its distance from the user.
type ArchetypeMatch struct {
	Archetype Archetype `json:"archetype" yaml:"archetype"`
	Distance  float64   `json:"distance" yaml:"distance"`
}

// ArchetypeResult is the nearest-centroid classification of a profile.
type ArchetypeResult struct {
	Primary   ArchetypeMatch       `json:"primary" yaml:"primary"`
	Secondary *ArchetypeMatch      `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Meta      []MetaDimensionScore `json:"meta" yaml:"meta"`
}

// ConfidenceLabel is the coarse band shown next to a confidence value.
type ConfidenceLabel string

const (
	ConfidenceLow    ConfidenceLabel = "Low"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceHigh   ConfidenceLabel = "High"
)

// AlignmentCategory classifies the distance between two positions on an axis.
type AlignmentCategory string

const (
	AlignmentStrong   AlignmentCategory = "strong"
	AlignmentModerate AlignmentCategory = "moderate"
	AlignmentDisagree AlignmentCategory = "disagree"
)

// Recommendation is the vote guidance derived from a match.
type Recommendation string

const (
	RecommendSupport Recommendation = "support"
	RecommendOppose  Recommendation = "oppose"
	RecommendUnclear Recommendation = "no_clear_recommendation"
)

// AxisComparison is the per-axis part of a MatchResult.
type AxisComparison struct {
	AxisID         string            `json:"axis_id" yaml:"axis_id"`
	AxisName       string            `json:"axis_name" yaml:"axis_name"`
	UserStance     float64           `json:"user_stance" yaml:"user_stance"`
	EntityStance   float64           `json:"entity_stance" yaml:"entity_stance"`
	Difference     float64           `json:"difference" yaml:"difference"`
	Category       AlignmentCategory `json:"category" yaml:"category"`
	UserConfidence float64           `json:"user_confidence" yaml:"user_confidence"`
}

// MatchResult is the alignment of a user with one candidate or measure.
// UserStance and EntityStance in Comparisons are 0-10 positions.
type MatchResult struct {
	EntityID   string     `json:"entity_id" yaml:"entity_id"`
	EntityName string     `json:"entity_name" yaml:"entity_name"`
	EntityKind EntityKind `json:"entity_kind" yaml:"entity_kind"`

	MatchPercent float64 `json:"match_percent" yaml:"match_percent"`

	// Similarity is the cosine similarity of the two stance vectors.
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// Confidence is the mean user confidence over the compared axes.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	InsufficientData bool           `json:"insufficient_data" yaml:"insufficient_data"`
	Recommendation   Recommendation `json:"recommendation" yaml:"recommendation"`

	Comparisons      []AxisComparison `json:"comparisons" yaml:"comparisons"`
	KeyAgreements    []string         `json:"key_agreements" yaml:"key_agreements"`
	KeyDisagreements []string         `json:"key_disagreements" yaml:"key_disagreements"`
}

// FramingPole says which end of a meta-dimension a framing describes.
type FramingPole string

const (
	PoleNegative FramingPole = "negative"
	PolePositive FramingPole = "positive"
)

// ValueFraming is the narrative for one non-neutral meta-dimension.
type ValueFraming struct {
	Dimension        string      `json:"dimension" yaml:"dimension"`
	Score            float64     `json:"score" yaml:"score"`
	Pole             FramingPole `json:"pole" yaml:"pole"`
	CoreValueLabel   string      `json:"core_value_label" yaml:"core_value_label"`
	ShortPhrase      string      `json:"short_phrase" yaml:"short_phrase"`
	ResonanceFraming string      `json:"resonance_framing" yaml:"resonance_framing"`
	TradeoffFraming  string      `json:"tradeoff_framing" yaml:"tradeoff_framing"`

	// YouValue is a ready-made "You value ..." sentence.
	YouValue string `json:"you_value" yaml:"you_value"`
}

// Profile is the complete derived view of one user's responses.
type Profile struct {
	UserID string `json:"user_id,omitempty" yaml:"user_id,omitempty"`

	// ContentID names the bundle the profile was scored against.
	ContentID string `json:"content_id" yaml:"content_id"`

	Axes            []AxisScore          `json:"axes" yaml:"axes"`
	Meta            []MetaDimensionScore `json:"meta" yaml:"meta"`
	Confidence      float64              `json:"confidence" yaml:"confidence"`
	ConfidenceLabel ConfidenceLabel      `json:"confidence_label" yaml:"confidence_label"`

	// Archetype is nil when the bundle has no archetype catalog.
	Archetype *ArchetypeResult `json:"archetype,omitempty" yaml:"archetype,omitempty"`

	Framings []ValueFraming `json:"framings" yaml:"framings"`
	Summary  string         `json:"summary" yaml:"summary"`
}
