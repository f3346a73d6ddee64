// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScoringConfig holds the constants of the normalizer and axis scoring engine.
// Different content bundles (civic axes, personal values) use different
// shrinkage constants, so none of these are baked into the engine.
type ScoringConfig struct {
	// ShrinkageK is the prior strength: confidence = n / (n + ShrinkageK) (default 5).
	ShrinkageK float64 `json:"shrinkage_k" yaml:"shrinkage_k"`

	// MaxContribution is the magnitude of the strongest single-item effect
	// for every modality (default 2, the binary agree/disagree magnitude).
	MaxContribution float64 `json:"max_contribution" yaml:"max_contribution"`

	// VignetteScale multiplies authored vignette option weights (default 1).
	VignetteScale float64 `json:"vignette_scale" yaml:"vignette_scale"`

	// TopDrivers caps AxisScore.TopDriverItemIDs (default 5).
	TopDrivers int `json:"top_drivers" yaml:"top_drivers"`
}

// DefaultScoringConfig returns the civic-axes scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ShrinkageK:      5,
		MaxContribution: 2,
		VignetteScale:   1,
		TopDrivers:      5,
	}
}

// WithDefaults fills zero fields from DefaultScoringConfig.
func (c ScoringConfig) WithDefaults() ScoringConfig {
	d := DefaultScoringConfig()
	if c.ShrinkageK <= 0 {
		c.ShrinkageK = d.ShrinkageK
	}
	if c.MaxContribution <= 0 {
		c.MaxContribution = d.MaxContribution
	}
	if c.VignetteScale == 0 {
		c.VignetteScale = d.VignetteScale
	}
	if c.TopDrivers <= 0 {
		c.TopDrivers = d.TopDrivers
	}
	return c
}

// MatchConfig holds the alignment thresholds and presentation caps of the
// match engine.
type MatchConfig struct {
	// StrongMaxDifference is the largest 0-10 difference still counted as
	// strong agreement (default 2).
	StrongMaxDifference float64 `json:"strong_max_difference" yaml:"strong_max_difference"`

	// ModerateMaxDifference is the largest difference counted as moderate
	// (default 3). Anything above is a disagreement.
	ModerateMaxDifference float64 `json:"moderate_max_difference" yaml:"moderate_max_difference"`

	// MaxKeyAgreements caps MatchResult.KeyAgreements (default 2). A
	// negative value lists none.
	MaxKeyAgreements int `json:"max_key_agreements" yaml:"max_key_agreements"`

	// MaxKeyDisagreements caps MatchResult.KeyDisagreements (default 1). A
	// negative value lists none.
	MaxKeyDisagreements int `json:"max_key_disagreements" yaml:"max_key_disagreements"`

	// MinRecommendConfidence is the confidence below which no vote is
	// recommended (default 0.2). A negative value turns the gate off.
	MinRecommendConfidence float64 `json:"min_recommend_confidence" yaml:"min_recommend_confidence"`
}

// DefaultMatchConfig returns the default alignment bands and caps.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		StrongMaxDifference:    2,
		ModerateMaxDifference:  3,
		MaxKeyAgreements:       2,
		MaxKeyDisagreements:    1,
		MinRecommendConfidence: 0.2,
	}
}

// WithDefaults fills zero fields from DefaultMatchConfig. Negative caps and
// a negative MinRecommendConfidence are kept as set.
func (c MatchConfig) WithDefaults() MatchConfig {
	d := DefaultMatchConfig()
	if c.StrongMaxDifference <= 0 {
		c.StrongMaxDifference = d.StrongMaxDifference
	}
	if c.ModerateMaxDifference <= 0 {
		c.ModerateMaxDifference = d.ModerateMaxDifference
	}
	if c.ModerateMaxDifference < c.StrongMaxDifference {
		c.ModerateMaxDifference = c.StrongMaxDifference
	}
	if c.MaxKeyAgreements == 0 {
		c.MaxKeyAgreements = d.MaxKeyAgreements
	}
	if c.MaxKeyDisagreements == 0 {
		c.MaxKeyDisagreements = d.MaxKeyDisagreements
	}
	if c.MinRecommendConfidence == 0 {
		c.MinRecommendConfidence = d.MinRecommendConfidence
	}
	return c
}

// FramingConfig holds the value-framing settings.
type FramingConfig struct {
	// NeutralBand is the |score| at or below which a meta-dimension is
	// treated as neutral (default 0.1). A negative value frames every
	// nonzero score.
	NeutralBand float64 `json:"neutral_band" yaml:"neutral_band"`
}

// DefaultFramingConfig returns the default framing settings.
func DefaultFramingConfig() FramingConfig {
	return FramingConfig{NeutralBand: 0.1}
}

// WithDefaults fills a zero NeutralBand from DefaultFramingConfig.
func (c FramingConfig) WithDefaults() FramingConfig {
	if c.NeutralBand == 0 {
		c.NeutralBand = DefaultFramingConfig().NeutralBand
	}
	return c
}

// StoreBackend selects the response repository implementation.
type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreSQLite StoreBackend = "sqlite"
	StoreRedis  StoreBackend = "redis"
)

// StoreConfig holds settings for the response repository.
type StoreConfig struct {
	Backend StoreBackend `json:"backend" yaml:"backend"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path"`

	RedisAddr     string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db" yaml:"redis_db"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format"`
}

// EngineConfig groups all configuration for one run of the engine.
type EngineConfig struct {
	ContentDir string        `json:"content_dir" yaml:"content_dir"`
	Scoring    ScoringConfig `json:"scoring" yaml:"scoring"`
	Match      MatchConfig   `json:"match" yaml:"match"`
	Framing    FramingConfig `json:"framing" yaml:"framing"`
	Store      StoreConfig   `json:"store" yaml:"store"`
	Log        LogConfig     `json:"log" yaml:"log"`
}

// DefaultEngineConfig returns defaults for every section.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ContentDir: "content/civic",
		Scoring:    DefaultScoringConfig(),
		Match:      DefaultMatchConfig(),
		Framing:    DefaultFramingConfig(),
		Store: StoreConfig{
			Backend:    StoreSQLite,
			SQLitePath: "ballot-builder.db",
			RedisAddr:  "localhost:6379",
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}
