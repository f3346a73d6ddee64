// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns one raw response into signed per-axis contributions.
//
// All modalities share one unit: ±MaxContribution is the strongest effect a
// single item can have on an axis, so binary, Likert, slider and vignette
// items can feed the same axis.
package normalize

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/pdiddy/ballot-builder/internal/logging"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

var (
	// ErrKindMismatch is returned when a response's kind differs from its item's.
	ErrKindMismatch = errors.New("response kind does not match item kind")

	// ErrInvalidValue is returned for values outside their modality's range.
	ErrInvalidValue = errors.New("invalid response value")

	// ErrUnknownOption is returned when a vignette selection names no option of the item.
	ErrUnknownOption = errors.New("unknown vignette option")
)

// AxisSet reports which axis IDs exist.
type AxisSet interface {
	HasAxis(id string) bool
}

// Contribution is one item's effect on one axis. Unsure contributions carry
// no value and only count toward the axis's unsure tally.
type Contribution struct {
	ItemID string
	Axis   string
	Value  float64
	Unsure bool
}

// Normalizer converts responses into contributions.
type Normalizer struct {
	axes   AxisSet
	cfg    types.ScoringConfig
	logger *zap.Logger
}

// New returns a Normalizer. Zero config fields take their defaults.
func New(axes AxisSet, cfg types.ScoringConfig, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		axes:   axes,
		cfg:    cfg.WithDefaults(),
		logger: logging.OrNop(logger),
	}
}

// Normalize returns the contributions of value to the axes item maps.
// Effects on axes the content does not define are skipped and logged; the
// remaining axes still contribute.
func (n *Normalizer) Normalize(item types.AssessmentItem, value types.ResponseValue) ([]Contribution, error) {
	if value.Kind != item.Kind {
		return nil, fmt.Errorf("item %s: %w: got %s, want %s", item.ID, ErrKindMismatch, value.Kind, item.Kind)
	}
	if err := value.Validate(); err != nil {
		return nil, fmt.Errorf("item %s: %w: %v", item.ID, ErrInvalidValue, err)
	}

	if item.Kind == types.ItemVignette {
		return n.vignette(item, value)
	}

	if value.IsUnsure() {
		var out []Contribution
		for _, e := range item.Effects {
			if !n.known(item.ID, e.Axis) {
				continue
			}
			out = append(out, Contribution{ItemID: item.ID, Axis: e.Axis, Unsure: true})
		}
		return out, nil
	}

	magnitude := n.magnitude(value)
	var out []Contribution
	for _, e := range item.Effects {
		if !n.known(item.ID, e.Axis) {
			continue
		}
		out = append(out, Contribution{
			ItemID: item.ID,
			Axis:   e.Axis,
			Value:  float64(e.Direction) * magnitude,
		})
	}
	return out, nil
}

// magnitude returns the signed strength of a non-vignette value before the
// axis direction is applied, in [-MaxContribution, MaxContribution].
func (n *Normalizer) magnitude(v types.ResponseValue) float64 {
	limit := n.cfg.MaxContribution
	switch v.Kind {
	case types.ItemBinary:
		if v.Answer == types.AnswerAgree {
			return limit
		}
		return -limit
	case types.ItemLikert:
		half := float64(types.LikertMax - types.LikertMid)
		return float64(v.Likert-types.LikertMid) / half * limit
	case types.ItemSlider:
		half := float64(types.SliderMax - types.SliderMid)
		return float64(v.Tick-types.SliderMid) / half * limit
	}
	return 0
}

func (n *Normalizer) vignette(item types.AssessmentItem, v types.ResponseValue) ([]Contribution, error) {
	if v.VignetteID != "" && v.VignetteID != item.ID {
		return nil, fmt.Errorf("item %s: %w: selection is for vignette %s", item.ID, ErrUnknownOption, v.VignetteID)
	}
	opt, ok := item.Option(v.OptionID)
	if !ok {
		return nil, fmt.Errorf("item %s: %w %q", item.ID, ErrUnknownOption, v.OptionID)
	}

	limit := n.cfg.MaxContribution
	var out []Contribution
	for _, e := range opt.Effects {
		if !n.known(item.ID, e.Axis) {
			continue
		}
		w := math.Max(-limit, math.Min(limit, e.Weight*n.cfg.VignetteScale))
		out = append(out, Contribution{ItemID: item.ID, Axis: e.Axis, Value: w})
	}
	return out, nil
}

func (n *Normalizer) known(itemID, axis string) bool {
	if n.axes != nil && n.axes.HasAxis(axis) {
		return true
	}
	n.logger.Warn("skipping effect on unknown axis",
		zap.String("item", itemID),
		zap.String("axis", axis),
	)
	return false
}
