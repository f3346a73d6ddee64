// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ballot-builder/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and validate content bundles",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [bundle-dir]",
	Short: "Load a content bundle and report every integrity problem",
	Long: `Validate reads bundle.yaml, domains.yaml, axes.yaml, items.yaml and the
optional metadimensions.yaml, archetypes.yaml and entities.yaml from a bundle
directory and checks cross references, poles, item effects, vignette options,
archetype centroids and entity positions. All problems are listed together.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContentValidate,
}

func runContentValidate(cmd *cobra.Command, args []string) error {
	dir := engineConfig().ContentDir
	if len(args) == 1 {
		dir = args[0]
	}

	snap, err := content.Load(dir)
	if err != nil {
		return err
	}
	printBundleSummary(cmd.OutOrStdout(), snap)
	return nil
}

func printBundleSummary(w io.Writer, snap *content.Snapshot) {
	m := snap.Manifest()
	fmt.Fprintf(w, "%s (%s) version %s: ok\n", m.Name, m.ID, m.Version)
	fmt.Fprintf(w, "  domains:         %d\n", len(snap.Domains()))
	fmt.Fprintf(w, "  axes:            %d\n", len(snap.Axes()))
	fmt.Fprintf(w, "  items:           %d\n", len(snap.Items()))
	fmt.Fprintf(w, "  meta-dimensions: %d\n", len(snap.MetaDimensions()))
	fmt.Fprintf(w, "  archetypes:      %d\n", len(snap.Archetypes()))
	fmt.Fprintf(w, "  entities:        %d\n", len(snap.Entities("")))
}

var contentItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the assessment items of the configured bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(engineConfig())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-14s  %-8s  %-8s  %s\n", "ID", "Kind", "Level", "Text")
		fmt.Fprintln(w, strings.Repeat("-", 90))
		for _, it := range snap.Items() {
			fmt.Fprintf(w, "%-14s  %-8s  %-8s  %s\n", it.ID, it.Kind, it.Level, truncate(it.Text, 60))
			for _, o := range it.Options {
				fmt.Fprintf(w, "%-14s  %-8s  %-8s    %s: %s\n", "", "", "", o.ID, truncate(o.Text, 50))
			}
		}
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentItemsCmd)
	rootCmd.AddCommand(contentCmd)
}
