// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring aggregates a user's responses into one AxisScore per axis,
// shrinking sparse evidence toward neutral.
//
// For each axis:
//
//	normalized = rawSum / (nAnswered × MaxContribution)
//	confidence = nAnswered / (nAnswered + ShrinkageK)
//	shrunk     = normalized × confidence
//	position   = 5 × (1 − shrunk)
//
// Unsure answers increment nUnsure only. Scoring is deterministic.
package scoring

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/pdiddy/ballot-builder/internal/logging"
	"github.com/pdiddy/ballot-builder/internal/normalize"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

// Content is the read-only content the engine scores against.
type Content interface {
	normalize.AxisSet
	Axes() []types.Axis
	Item(id string) (types.AssessmentItem, bool)
}

// Engine scores response sets. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	content    Content
	cfg        types.ScoringConfig
	normalizer *normalize.Normalizer
	logger     *zap.Logger
}

// NewEngine returns an Engine. Zero config fields take their defaults.
func NewEngine(c Content, cfg types.ScoringConfig, logger *zap.Logger) *Engine {
	cfg = cfg.WithDefaults()
	logger = logging.OrNop(logger)
	return &Engine{
		content:    c,
		cfg:        cfg,
		normalizer: normalize.New(c, cfg, logger),
		logger:     logger,
	}
}

// Config returns the effective scoring configuration.
func (e *Engine) Config() types.ScoringConfig { return e.cfg }

type driver struct {
	itemID string
	value  float64
}

type accumulator struct {
	rawSum    float64
	nAnswered int
	nUnsure   int
	drivers   []driver
	byItem    map[string]int
}

func (a *accumulator) add(c normalize.Contribution) {
	if c.Unsure {
		a.nUnsure++
		return
	}
	a.rawSum += c.Value
	a.nAnswered++
	if i, ok := a.byItem[c.ItemID]; ok {
		a.drivers[i].value += c.Value
		return
	}
	a.byItem[c.ItemID] = len(a.drivers)
	a.drivers = append(a.drivers, driver{itemID: c.ItemID, value: c.Value})
}

// ScoreAxes returns one score per content axis, in content order. Axes with no
// responses come back neutral with zero confidence. Responses to unknown
// items and invalid values are skipped and logged.
func (e *Engine) ScoreAxes(responses []types.ResponseEvent) []types.AxisScore {
	axes := e.content.Axes()
	accs := make(map[string]*accumulator, len(axes))
	for _, a := range axes {
		accs[a.ID] = &accumulator{byItem: make(map[string]int)}
	}

	for _, r := range Dedupe(responses) {
		item, ok := e.content.Item(r.ItemID)
		if !ok {
			e.logger.Warn("skipping response to unknown item", zap.String("item", r.ItemID))
			continue
		}
		contributions, err := e.normalizer.Normalize(item, r.Value)
		if err != nil {
			e.logger.Warn("skipping invalid response",
				zap.String("item", r.ItemID),
				zap.Stringer("value", r.Value),
				zap.Error(err),
			)
			continue
		}
		for _, c := range contributions {
			if acc, ok := accs[c.Axis]; ok {
				acc.add(c)
			}
		}
	}

	scores := make([]types.AxisScore, 0, len(axes))
	for _, a := range axes {
		scores = append(scores, e.finish(a.ID, accs[a.ID]))
	}
	return scores
}

func (e *Engine) finish(axisID string, acc *accumulator) types.AxisScore {
	s := types.AxisScore{
		AxisID:      axisID,
		RawSum:      acc.rawSum,
		MaxPossible: float64(acc.nAnswered) * e.cfg.MaxContribution,
		NAnswered:   acc.nAnswered,
		NUnsure:     acc.nUnsure,
	}
	if s.MaxPossible > 0 {
		s.Normalized = s.RawSum / s.MaxPossible
	}
	s.Confidence = Confidence(acc.nAnswered, e.cfg.ShrinkageK)
	s.Shrunk = s.Normalized * s.Confidence
	s.Position = types.PositionFromScore(s.Shrunk)
	s.TopDriverItemIDs = topDrivers(acc.drivers, e.cfg.TopDrivers)
	return s
}

// Confidence is n / (n + k), or 0 when nothing was answered.
func Confidence(n int, k float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) / (float64(n) + k)
}

// topDrivers returns up to limit item IDs by descending absolute
// contribution. Ties keep response order; zero contributions are not drivers.
func topDrivers(drivers []driver, limit int) []string {
	ranked := make([]driver, 0, len(drivers))
	for _, d := range drivers {
		if d.value != 0 {
			ranked = append(ranked, d)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].value) > math.Abs(ranked[j].value)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	ids := make([]string, len(ranked))
	for i, d := range ranked {
		ids[i] = d.itemID
	}
	return ids
}

// Dedupe keeps only the latest response per item. On equal timestamps the
// response later in the input wins. Survivors keep their input order.
func Dedupe(responses []types.ResponseEvent) []types.ResponseEvent {
	winner := make(map[string]int, len(responses))
	for i, r := range responses {
		j, ok := winner[r.ItemID]
		if !ok || !r.AnsweredAt.Before(responses[j].AnsweredAt) {
			winner[r.ItemID] = i
		}
	}

	out := make([]types.ResponseEvent, 0, len(winner))
	for i, r := range responses {
		if winner[r.ItemID] == i {
			out = append(out, r)
		}
	}
	return out
}
