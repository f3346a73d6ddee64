// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ballot-builder/internal/responses"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

var respondCmd = &cobra.Command{
	Use:   "respond",
	Short: "Record, list and remove a user's responses",
	Long: `Respond manages the responses kept in the configured store. A later
answer to the same item replaces the earlier one; an answer older than the
stored one is reported as stale and ignored.`,
}

// --- add subcommand ---

var respondAddCmd = &cobra.Command{
	Use:   "add <item-id> <value>",
	Short: "Record one answer",
	Long: `Add records one answer. The value depends on the item kind:

  binary    agree, disagree or unsure
  likert    1-5
  slider    0-10
  vignette  the chosen option ID`,
	Args: cobra.ExactArgs(2),
	RunE: runRespondAdd,
}

func runRespondAdd(cmd *cobra.Command, args []string) error {
	userID, err := requiredUser(cmd)
	if err != nil {
		return err
	}
	cfg := engineConfig()
	snap, err := loadSnapshot(cfg)
	if err != nil {
		return err
	}

	item, ok := snap.Item(args[0])
	if !ok {
		return fmt.Errorf("unknown item %q", args[0])
	}
	value, err := parseValue(item, args[1])
	if err != nil {
		return err
	}
	at, _ := cmd.Flags().GetString("at")
	ev := types.ResponseEvent{Value: value}
	if at != "" {
		ev.AnsweredAt, err = time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
	}

	repo, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	stored, err := repo.Set(cmd.Context(), responses.Key{UserID: userID, ItemID: item.ID}, ev)
	if errors.Is(err, responses.ErrStale) {
		fmt.Fprintf(cmd.OutOrStdout(), "stale   %s: kept %s from %s\n", item.ID, stored.Value, stored.AnsweredAt.Format(time.RFC3339))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored  %s %s (%s)\n", item.ID, stored.Value, stored.ID)
	return nil
}

// parseValue converts a command-line answer into the value for item's kind.
func parseValue(item types.AssessmentItem, raw string) (types.ResponseValue, error) {
	var v types.ResponseValue
	switch item.Kind {
	case types.ItemBinary:
		v = types.Binary(types.BinaryAnswer(strings.ToLower(raw)))
	case types.ItemLikert, types.ItemSlider:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return v, fmt.Errorf("item %s expects a number, got %q", item.ID, raw)
		}
		if item.Kind == types.ItemLikert {
			v = types.Likert(n)
		} else {
			v = types.Slider(n)
		}
	case types.ItemVignette:
		if _, ok := item.Option(raw); !ok {
			ids := make([]string, len(item.Options))
			for i, o := range item.Options {
				ids[i] = o.ID
			}
			return v, fmt.Errorf("item %s has no option %q (options: %s)", item.ID, raw, strings.Join(ids, ", "))
		}
		v = types.Vignette(item.ID, raw)
	default:
		return v, fmt.Errorf("item %s has unknown kind %q", item.ID, item.Kind)
	}
	if err := v.Validate(); err != nil {
		return v, fmt.Errorf("item %s: %w", item.ID, err)
	}
	return v, nil
}

// --- import subcommand ---

var respondImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store every response in a YAML or JSON response file",
	Long: `Import reads a response set (user_id plus a list of responses) and
stores each one. --user overrides the file's user_id. Invalid answers are
reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRespondImport,
}

func runRespondImport(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	set, err := responses.ReadSet(args[0])
	if err != nil {
		return err
	}

	repo, err := openStore(cmd.Context(), engineConfig())
	if err != nil {
		return err
	}
	defer repo.Close()

	w := cmd.OutOrStdout()
	summary, err := responses.Import(cmd.Context(), repo, set, userID, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d stored, %d stale, %d failed\n", summary.Stored, summary.Stale, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d response(s) failed import", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var respondListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's stored responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requiredUser(cmd)
		if err != nil {
			return err
		}
		repo, err := openStore(cmd.Context(), engineConfig())
		if err != nil {
			return err
		}
		defer repo.Close()

		events, err := repo.List(cmd.Context(), userID)
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd.OutOrStdout(), types.ResponseSet{UserID: userID, Responses: events})
		}
		formatResponses(cmd.OutOrStdout(), events)
		return nil
	},
}

func formatResponses(w io.Writer, events []types.ResponseEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No responses.")
		return
	}
	fmt.Fprintf(w, "%-14s  %-24s  %s\n", "Item", "Value", "Answered")
	fmt.Fprintln(w, strings.Repeat("-", 62))
	for _, ev := range events {
		fmt.Fprintf(w, "%-14s  %-24s  %s\n", ev.ItemID, truncate(ev.Value.String(), 24), ev.AnsweredAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "\n%d responses\n", len(events))
}

// --- export subcommand ---

var respondExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a user's stored responses as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requiredUser(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")

		repo, err := openStore(cmd.Context(), engineConfig())
		if err != nil {
			return err
		}
		defer repo.Close()

		set, err := responses.Export(cmd.Context(), repo, userID)
		if err != nil {
			return err
		}
		if out == "" {
			return responses.WriteSet(cmd.OutOrStdout(), set, responses.Format(format))
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		if err := responses.WriteSet(f, set, responses.Format(format)); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d responses to %s\n", len(set.Responses), out)
		return nil
	},
}

// --- delete subcommand ---

var respondDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Remove a stored answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requiredUser(cmd)
		if err != nil {
			return err
		}
		repo, err := openStore(cmd.Context(), engineConfig())
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.Delete(cmd.Context(), responses.Key{UserID: userID, ItemID: args[0]}); err != nil {
			return fmt.Errorf("deleting %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func requiredUser(cmd *cobra.Command) (string, error) {
	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		return "", fmt.Errorf("--user is required")
	}
	return userID, nil
}

func init() {
	respondCmd.PersistentFlags().String("user", "", "user the responses belong to")

	respondAddCmd.Flags().String("at", "", "answer time in RFC 3339 (default now)")
	respondListCmd.Flags().Bool("json", false, "output as JSON")
	respondExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	respondExportCmd.Flags().String("output", "", "file to write (default stdout)")

	respondCmd.AddCommand(respondAddCmd)
	respondCmd.AddCommand(respondImportCmd)
	respondCmd.AddCommand(respondListCmd)
	respondCmd.AddCommand(respondExportCmd)
	respondCmd.AddCommand(respondDeleteCmd)

	rootCmd.AddCommand(respondCmd)
}
