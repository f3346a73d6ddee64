// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/ballot-builder/internal/content"
	"github.com/pdiddy/ballot-builder/internal/profile"
	"github.com/pdiddy/ballot-builder/internal/responses"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

// loadSnapshot reads and validates the configured content bundle.
func loadSnapshot(cfg types.EngineConfig) (*content.Snapshot, error) {
	snap, err := content.Load(cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	m := snap.Manifest()
	logger.Debug("content loaded",
		zap.String("bundle", m.ID),
		zap.String("version", m.Version),
		zap.Int("axes", len(snap.Axes())),
		zap.Int("items", len(snap.Items())),
	)
	return snap, nil
}

func openStore(ctx context.Context, cfg types.EngineConfig) (responses.Repository, error) {
	return responses.Open(ctx, cfg.Store, logger)
}

// addResponseFlags registers the flags that choose where responses come from.
func addResponseFlags(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "user whose stored responses are scored")
	cmd.Flags().String("responses", "", "YAML or JSON response file to score instead of the store")
}

// userResponses returns the responses selected by --responses or --user.
// A file wins over the store; its user_id is used when --user is empty.
func userResponses(ctx context.Context, cmd *cobra.Command, cfg types.EngineConfig) (string, []types.ResponseEvent, error) {
	userID, _ := cmd.Flags().GetString("user")
	path, _ := cmd.Flags().GetString("responses")

	if path != "" {
		set, err := responses.ReadSet(path)
		if err != nil {
			return "", nil, err
		}
		if userID == "" {
			userID = set.UserID
		}
		return userID, set.Responses, nil
	}

	if userID == "" {
		return "", nil, fmt.Errorf("provide --user or --responses")
	}
	repo, err := openStore(ctx, cfg)
	if err != nil {
		return "", nil, err
	}
	defer repo.Close()

	events, err := repo.List(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	return userID, events, nil
}

// buildProfile loads content and responses and scores them.
func buildProfile(cmd *cobra.Command) (*profile.Builder, types.Profile, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := engineConfig()

	snap, err := loadSnapshot(cfg)
	if err != nil {
		return nil, types.Profile{}, err
	}
	userID, events, err := userResponses(ctx, cmd, cfg)
	if err != nil {
		return nil, types.Profile{}, err
	}

	b := profile.NewBuilder(snap, cfg, logger)
	return b, b.Build(userID, events), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
