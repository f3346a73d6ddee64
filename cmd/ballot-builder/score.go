// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ballot-builder/internal/content"
	"github.com/pdiddy/ballot-builder/internal/profile"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print per-axis scores for a user's responses",
	Long: `Score aggregates the responses into one score per axis. Normalized is
the raw sum over the maximum possible; Shrunk pulls it toward neutral by the
axis confidence n/(n+k); Position maps Shrunk onto the 0-10 axis scale where
0 is the first pole.`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	snap, err := loadSnapshot(cfg)
	if err != nil {
		return err
	}
	_, events, err := userResponses(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}

	scores := profile.NewBuilder(snap, cfg, logger).Scores(events)
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(cmd.OutOrStdout(), scores)
	}
	formatScores(cmd.OutOrStdout(), snap, scores)
	return nil
}

func formatScores(w io.Writer, snap *content.Snapshot, scores []types.AxisScore) {
	fmt.Fprintf(w, "%-24s  %4s  %6s  %7s  %6s  %5s  %8s  %s\n",
		"Axis", "N", "Unsure", "Normal", "Conf", "Shrnk", "Position", "Top drivers")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, s := range scores {
		name := s.AxisID
		if a, ok := snap.Axis(s.AxisID); ok && a.Name != "" {
			name = a.Name
		}
		fmt.Fprintf(w, "%-24s  %4d  %6d  %+7.2f  %6.2f  %+5.2f  %8.2f  %s\n",
			truncate(name, 24), s.NAnswered, s.NUnsure, s.Normalized, s.Confidence, s.Shrunk, s.Position,
			strings.Join(s.TopDriverItemIDs, ", "))
	}
}

func init() {
	addResponseFlags(scoreCmd)
	scoreCmd.Flags().Bool("json", false, "output scores as JSON")
	rootCmd.AddCommand(scoreCmd)
}
