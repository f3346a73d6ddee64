// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ballot-builder CLI. It loads a
// content bundle, records a user's responses, and prints axis scores, value
// profiles and candidate or measure matches.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ballot-builder/internal/logging"
	"github.com/pdiddy/ballot-builder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is built from the log.* settings before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the ballot-builder CLI.
var rootCmd = &cobra.Command{
	Use:   "ballot-builder",
	Short: "Score value assessments and match voters to candidates and measures",
	Long: `ballot-builder turns a user's answers to policy statements, Likert
prompts, sliders and vignettes into positions on a set of policy axes, derives
higher-order value dimensions and an archetype, and ranks candidates and
ballot measures by how closely they align.

Content (axes, items, meta-dimensions, archetypes, entities) comes from a
YAML bundle directory. Responses are kept in the configured store (memory,
sqlite or redis) or read from a YAML/JSON file with --responses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./ballot-builder.yaml or ~/.config/ballot-builder/ballot-builder.yaml)")
	pf.String("content", "", "content bundle directory (default content/civic)")
	pf.String("store", "", "response store backend: memory, sqlite, redis (default sqlite)")
	pf.String("db", "", "SQLite database path for the sqlite store")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	bindFlag("content_dir", "content")
	bindFlag("store.backend", "store")
	bindFlag("store.sqlite_path", "db")
	bindFlag("log.level", "log-level")

	setDefaults()
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ballot-builder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ballot-builder"))
		}
	}

	viper.SetEnvPrefix("BALLOT_BUILDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
