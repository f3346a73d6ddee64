// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile runs the full pipeline for one user: responses are scored
// per axis, aggregated into meta-dimensions and an archetype, framed as text,
// and matched against the bundle's candidates and measures.
package profile

import (
	"go.uber.org/zap"

	"github.com/pdiddy/ballot-builder/internal/content"
	"github.com/pdiddy/ballot-builder/internal/framing"
	"github.com/pdiddy/ballot-builder/internal/logging"
	"github.com/pdiddy/ballot-builder/internal/match"
	"github.com/pdiddy/ballot-builder/internal/metadim"
	"github.com/pdiddy/ballot-builder/internal/scoring"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

// Builder assembles profiles against one content snapshot. It is safe for
// concurrent use.
type Builder struct {
	snap    *content.Snapshot
	scorer  *scoring.Engine
	matcher *match.Engine
	framing types.FramingConfig
	logger  *zap.Logger
}

// NewBuilder returns a Builder. The bundle's scoring overrides are applied
// on top of cfg.Scoring.
func NewBuilder(snap *content.Snapshot, cfg types.EngineConfig, logger *zap.Logger) *Builder {
	logger = logging.OrNop(logger).With(zap.String("content", snap.Manifest().ID))
	return &Builder{
		snap:    snap,
		scorer:  scoring.NewEngine(snap, snap.ScoringConfig(cfg.Scoring), logger),
		matcher: match.NewEngine(snap.Axes(), cfg.Match),
		framing: cfg.Framing.WithDefaults(),
		logger:  logger,
	}
}

// Scores returns the axis scores for responses.
func (b *Builder) Scores(responses []types.ResponseEvent) []types.AxisScore {
	return b.scorer.ScoreAxes(responses)
}

// Build derives the full profile for userID from responses.
func (b *Builder) Build(userID string, responses []types.ResponseEvent) types.Profile {
	axes := b.scorer.ScoreAxes(responses)
	meta := metadim.Derive(axes, b.snap.MetaDimensions())
	confidence := metadim.ProfileConfidence(axes)
	framings := framing.Frame(meta, b.snap.MetaDimensions(), b.framing)

	p := types.Profile{
		UserID:          userID,
		ContentID:       b.snap.Manifest().ID,
		Axes:            axes,
		Meta:            meta,
		Confidence:      confidence,
		ConfidenceLabel: metadim.Label(confidence),
		Framings:        framings,
		Summary:         framing.Summarize(framings),
	}

	if arch, err := metadim.ComputeArchetype(meta, b.snap.Archetypes()); err == nil {
		p.Archetype = &arch
	} else {
		b.logger.Debug("no archetype", zap.Error(err))
	}

	b.logger.Debug("built profile",
		zap.String("user", userID),
		zap.Int("responses", len(responses)),
		zap.Float64("confidence", confidence),
	)
	return p
}

// Match ranks the bundle's entities of the given kind against p. An empty
// kind matches candidates and measures together.
func (b *Builder) Match(p types.Profile, kind types.EntityKind) []types.MatchResult {
	return b.matcher.Rank(p.Axes, b.snap.Entities(kind))
}

// MatchEntity matches p against a single entity by ID.
func (b *Builder) MatchEntity(p types.Profile, entityID string) (types.MatchResult, bool) {
	e, ok := b.snap.Entity(entityID)
	if !ok {
		return types.MatchResult{}, false
	}
	return b.matcher.Match(p.Axes, e), true
}
