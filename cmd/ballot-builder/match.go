// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match [entity-id]",
	Short: "Rank candidates and measures by alignment with a user",
	Long: `Match compares the user's axis positions with each candidate's or
measure's stated positions. Only axes the user has answered and the entity
has a position on are compared. With an entity ID, match prints the
per-axis breakdown for that entity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	b, p, err := buildProfile(cmd)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	if len(args) == 1 {
		r, ok := b.MatchEntity(p, args[0])
		if !ok {
			return fmt.Errorf("unknown entity %q", args[0])
		}
		if jsonOutput {
			return writeJSON(w, r)
		}
		formatMatchDetail(w, r)
		return nil
	}

	kind, _ := cmd.Flags().GetString("kind")
	switch types.EntityKind(kind) {
	case "", types.EntityCandidate, types.EntityMeasure:
	default:
		return fmt.Errorf("unsupported kind %q: use candidate or measure", kind)
	}

	ranked := b.Match(p, types.EntityKind(kind))
	if jsonOutput {
		return writeJSON(w, ranked)
	}
	formatMatches(w, ranked)
	return nil
}

func formatMatches(w io.Writer, results []types.MatchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No entities to match.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %-9s  %6s  %6s  %5s  %s\n",
		"Rank", "Entity", "Kind", "Match", "Cosine", "Conf", "Recommendation")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for i, r := range results {
		pct := fmt.Sprintf("%.0f%%", r.MatchPercent)
		rec := string(r.Recommendation)
		if r.InsufficientData {
			pct, rec = "-", "insufficient data"
		}
		fmt.Fprintf(w, "%-4d  %-28s  %-9s  %6s  %+6.2f  %5.2f  %s\n",
			i+1, truncate(r.EntityName, 28), r.EntityKind, pct, r.Similarity, r.Confidence, rec)
	}
}

func formatMatchDetail(w io.Writer, r types.MatchResult) {
	fmt.Fprintf(w, "%s (%s)\n", r.EntityName, r.EntityKind)
	if r.InsufficientData {
		fmt.Fprintln(w, "Not enough answered axes overlap with this entity to compare.")
		return
	}
	fmt.Fprintf(w, "Match %.0f%%, similarity %+.2f, confidence %.2f: %s\n\n",
		r.MatchPercent, r.Similarity, r.Confidence, r.Recommendation)

	fmt.Fprintf(w, "%-24s  %5s  %6s  %5s  %-8s  %s\n", "Axis", "You", "Entity", "Diff", "Category", "Conf")
	fmt.Fprintln(w, strings.Repeat("-", 66))
	for _, c := range r.Comparisons {
		fmt.Fprintf(w, "%-24s  %5.1f  %6.1f  %5.1f  %-8s  %.2f\n",
			truncate(c.AxisName, 24), c.UserStance, c.EntityStance, c.Difference, c.Category, c.UserConfidence)
	}

	if len(r.KeyAgreements) > 0 {
		fmt.Fprintf(w, "\nAgree most on: %s\n", strings.Join(r.KeyAgreements, ", "))
	}
	if len(r.KeyDisagreements) > 0 {
		fmt.Fprintf(w, "Differ most on: %s\n", strings.Join(r.KeyDisagreements, ", "))
	}
}

func init() {
	addResponseFlags(matchCmd)
	matchCmd.Flags().String("kind", "", "restrict to candidate or measure")
	matchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(matchCmd)
}
