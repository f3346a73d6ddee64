// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ballot-builder/internal/session"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Pick the next items to present to a user",
	Long: `Session selects unanswered items for the user, optionally filtered by
tag, government level or item kind, in random order. A fixed --seed always
yields the same selection.`,
	RunE: runSession,
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	snap, err := loadSnapshot(cfg)
	if err != nil {
		return err
	}

	var answered map[string]bool
	userID, _ := cmd.Flags().GetString("user")
	path, _ := cmd.Flags().GetString("responses")
	if userID != "" || path != "" {
		_, events, err := userResponses(cmd.Context(), cmd, cfg)
		if err != nil {
			return err
		}
		answered = session.Answered(events)
	}

	count, _ := cmd.Flags().GetInt("count")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	level, _ := cmd.Flags().GetString("level")
	kinds, _ := cmd.Flags().GetStringSlice("kind")

	filter := session.Filter{Tags: tags, Level: level}
	for _, k := range kinds {
		filter.Kinds = append(filter.Kinds, types.ItemKind(k))
	}

	var rng *rand.Rand
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		rng = session.NewRand(seed)
	} else {
		rng = session.NewRand(rand.Uint64())
	}

	items := session.Select(snap.Items(), answered, count, filter, rng)
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(cmd.OutOrStdout(), items)
	}
	formatSession(cmd.OutOrStdout(), items)
	return nil
}

func formatSession(w io.Writer, items []types.AssessmentItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Nothing left to answer.")
		return
	}
	for i, it := range items {
		fmt.Fprintf(w, "%d. [%s] %s (%s)\n", i+1, it.ID, it.Text, it.Kind)
		switch it.Kind {
		case types.ItemBinary:
			fmt.Fprintln(w, "   agree / disagree / unsure")
		case types.ItemLikert:
			fmt.Fprintln(w, "   1 (strongly disagree) .. 5 (strongly agree)")
		case types.ItemSlider:
			fmt.Fprintln(w, "   0 .. 10")
		case types.ItemVignette:
			for _, o := range it.Options {
				fmt.Fprintf(w, "   %s: %s\n", o.ID, o.Text)
			}
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "%d items\n", len(items))
}

func init() {
	addResponseFlags(sessionCmd)
	sessionCmd.Flags().Int("count", 10, "number of items to select")
	sessionCmd.Flags().Uint64("seed", 0, "random seed for a reproducible selection")
	sessionCmd.Flags().StringSlice("tag", nil, "keep items carrying any of these tags")
	sessionCmd.Flags().String("level", "", "keep items at this government level")
	sessionCmd.Flags().StringSlice("kind", nil, "keep items of these kinds")
	sessionCmd.Flags().Bool("json", false, "output items as JSON")
	rootCmd.AddCommand(sessionCmd)
}
