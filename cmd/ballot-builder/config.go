// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/ballot-builder/internal/secrets"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

// setDefaults registers every configuration key with its default so config
// files and BALLOT_BUILDER_* variables can override any of them.
func setDefaults() {
	d := types.DefaultEngineConfig()

	viper.SetDefault("content_dir", d.ContentDir)
	viper.SetDefault("secrets_dir", ".secrets/")

	viper.SetDefault("scoring.shrinkage_k", d.Scoring.ShrinkageK)
	viper.SetDefault("scoring.max_contribution", d.Scoring.MaxContribution)
	viper.SetDefault("scoring.vignette_scale", d.Scoring.VignetteScale)
	viper.SetDefault("scoring.top_drivers", d.Scoring.TopDrivers)

	viper.SetDefault("match.strong_max_difference", d.Match.StrongMaxDifference)
	viper.SetDefault("match.moderate_max_difference", d.Match.ModerateMaxDifference)
	viper.SetDefault("match.max_key_agreements", d.Match.MaxKeyAgreements)
	viper.SetDefault("match.max_key_disagreements", d.Match.MaxKeyDisagreements)
	viper.SetDefault("match.min_recommend_confidence", d.Match.MinRecommendConfidence)

	viper.SetDefault("framing.neutral_band", d.Framing.NeutralBand)

	viper.SetDefault("store.backend", string(d.Store.Backend))
	viper.SetDefault("store.sqlite_path", d.Store.SQLitePath)
	viper.SetDefault("store.redis_addr", d.Store.RedisAddr)
	viper.SetDefault("store.redis_password", "")
	viper.SetDefault("store.redis_db", d.Store.RedisDB)

	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
}

// engineConfig assembles the typed configuration from viper. The Redis
// password falls back to the redis-password secret.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		ContentDir: viper.GetString("content_dir"),
		Scoring: types.ScoringConfig{
			ShrinkageK:      viper.GetFloat64("scoring.shrinkage_k"),
			MaxContribution: viper.GetFloat64("scoring.max_contribution"),
			VignetteScale:   viper.GetFloat64("scoring.vignette_scale"),
			TopDrivers:      viper.GetInt("scoring.top_drivers"),
		},
		Match: types.MatchConfig{
			StrongMaxDifference:    viper.GetFloat64("match.strong_max_difference"),
			ModerateMaxDifference:  viper.GetFloat64("match.moderate_max_difference"),
			MaxKeyAgreements:       viper.GetInt("match.max_key_agreements"),
			MaxKeyDisagreements:    viper.GetInt("match.max_key_disagreements"),
			MinRecommendConfidence: viper.GetFloat64("match.min_recommend_confidence"),
		},
		Framing: types.FramingConfig{
			NeutralBand: viper.GetFloat64("framing.neutral_band"),
		},
		Store: types.StoreConfig{
			Backend:       types.StoreBackend(viper.GetString("store.backend")),
			SQLitePath:    viper.GetString("store.sqlite_path"),
			RedisAddr:     viper.GetString("store.redis_addr"),
			RedisPassword: secrets.Default(loadedSecrets, secrets.RedisPassword, viper.GetString("store.redis_password")),
			RedisDB:       viper.GetInt("store.redis_db"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}
