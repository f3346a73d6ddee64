// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print a user's value profile",
	Long: `Profile derives the meta-dimension scores, overall confidence,
nearest archetype and value framings from a user's responses.`,
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	_, p, err := buildProfile(cmd)
	if err != nil {
		return err
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	formatProfile(cmd.OutOrStdout(), p)
	return nil
}

func formatProfile(w io.Writer, p types.Profile) {
	if p.UserID != "" {
		fmt.Fprintf(w, "Profile for %s (%s)\n\n", p.UserID, p.ContentID)
	}

	fmt.Fprintf(w, "%-24s  %6s  %s\n", "Dimension", "Score", "Axes")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, m := range p.Meta {
		fmt.Fprintf(w, "%-24s  %+6.2f  %d\n", truncate(m.Name, 24), m.Score, m.Contributing)
	}

	fmt.Fprintf(w, "\nConfidence: %.2f (%s)\n", p.Confidence, p.ConfidenceLabel)

	if p.Archetype != nil {
		a := p.Archetype.Primary
		fmt.Fprintf(w, "Archetype:  %s (distance %.2f)\n", a.Archetype.Name, a.Distance)
		if a.Archetype.Summary != "" {
			fmt.Fprintf(w, "            %s\n", a.Archetype.Summary)
		}
		if s := p.Archetype.Secondary; s != nil {
			fmt.Fprintf(w, "Runner-up:  %s (distance %.2f)\n", s.Archetype.Name, s.Distance)
		}
	}

	if len(p.Framings) > 0 {
		fmt.Fprintln(w)
		for _, f := range p.Framings {
			fmt.Fprintf(w, "* %s\n", f.YouValue)
			if f.ResonanceFraming != "" {
				fmt.Fprintf(w, "  %s\n", f.ResonanceFraming)
			}
			if f.TradeoffFraming != "" {
				fmt.Fprintf(w, "  Tradeoff: %s\n", f.TradeoffFraming)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", p.Summary)
}

func init() {
	addResponseFlags(profileCmd)
	profileCmd.Flags().Bool("json", false, "output the profile as JSON")
	rootCmd.AddCommand(profileCmd)
}
