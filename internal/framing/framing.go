// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package framing turns meta-dimension scores into short narrative text.
// Copy comes from the content bundle; this package only selects and
// composes it.
package framing

import (
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// Frame returns one framing per dimension whose |score| exceeds the neutral
// band, strongest first. Equal magnitudes keep the order of meta. Scores for
// dimensions without copy in dims are skipped. A zero cfg uses the default
// band.
func Frame(meta []types.MetaDimensionScore, dims []types.MetaDimension, cfg types.FramingConfig) []types.ValueFraming {
	band := math.Max(cfg.WithDefaults().NeutralBand, 0)
	copyByID := make(map[string]types.MetaDimension, len(dims))
	for _, d := range dims {
		copyByID[d.ID] = d
	}

	out := []types.ValueFraming{}
	for _, m := range meta {
		if math.Abs(m.Score) <= band {
			continue
		}
		d, ok := copyByID[m.ID]
		if !ok {
			continue
		}

		pole, pf := types.PolePositive, d.Positive
		if m.Score < 0 {
			pole, pf = types.PoleNegative, d.Negative
		}
		label := pf.CoreValueLabel
		if label == "" {
			label = d.Name
		}

		out = append(out, types.ValueFraming{
			Dimension:        m.ID,
			Score:            m.Score,
			Pole:             pole,
			CoreValueLabel:   label,
			ShortPhrase:      pf.ShortPhrase,
			ResonanceFraming: pf.ResonanceFraming,
			TradeoffFraming:  pf.TradeoffFraming,
			YouValue:         youValue(label, pf.ShortPhrase),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Score) > math.Abs(out[j].Score)
	})
	return out
}

func youValue(label, phrase string) string {
	if phrase == "" {
		return fmt.Sprintf("You value %s.", label)
	}
	return fmt.Sprintf("You value %s: %s.", label, phrase)
}

// Summary composes a one-sentence overview from the framings Frame returns.
// It branches on how many dimensions are non-neutral: none, one, two, or
// three and more (the strongest three are named).
func Summary(meta []types.MetaDimensionScore, dims []types.MetaDimension, cfg types.FramingConfig) string {
	return Summarize(Frame(meta, dims, cfg))
}

// Summarize is Summary over framings that were already computed.
func Summarize(framings []types.ValueFraming) string {
	switch len(framings) {
	case 0:
		return "Your values are balanced, without a strong pull in any one direction."
	case 1:
		return fmt.Sprintf("Your outlook centers on %s.", framings[0].CoreValueLabel)
	case 2:
		return fmt.Sprintf("Your outlook combines %s and %s.",
			framings[0].CoreValueLabel, framings[1].CoreValueLabel)
	default:
		return fmt.Sprintf("Your outlook weaves together %s, %s, and %s.",
			framings[0].CoreValueLabel, framings[1].CoreValueLabel, framings[2].CoreValueLabel)
	}
}
