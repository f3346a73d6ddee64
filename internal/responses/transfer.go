// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// Format names an on-disk encoding for response sets.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file extension. Anything other than
// .json is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ReadSet loads a response set from a YAML or JSON file.
func ReadSet(path string) (types.ResponseSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResponseSet{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var set types.ResponseSet
	switch FormatFor(path) {
	case FormatJSON:
		err = json.Unmarshal(data, &set)
	default:
		err = yaml.Unmarshal(data, &set)
	}
	if err != nil {
		return types.ResponseSet{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return set, nil
}

// WriteSet encodes set to w.
func WriteSet(w io.Writer, set types.ResponseSet, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(set, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(set)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// Export reads every stored response for userID into a set.
func Export(ctx context.Context, repo Repository, userID string) (types.ResponseSet, error) {
	events, err := repo.List(ctx, userID)
	if err != nil {
		return types.ResponseSet{}, err
	}
	return types.ResponseSet{UserID: userID, Responses: events}, nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Stored int
	Stale  int
	Failed int
}

// Total returns the number of events processed.
func (s ImportSummary) Total() int {
	return s.Stored + s.Stale + s.Failed
}

// Import stores every event in set under userID, or under set.UserID when
// userID is empty. Per-event progress is written to w. Invalid events are
// counted and skipped; only repository and context failures abort the run.
func Import(ctx context.Context, repo Repository, set types.ResponseSet, userID string, w io.Writer) (ImportSummary, error) {
	if userID == "" {
		userID = set.UserID
	}
	if userID == "" {
		return ImportSummary{}, fmt.Errorf("%w: no user for import", ErrInvalidKey)
	}

	var summary ImportSummary
	for _, ev := range set.Responses {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		key := Key{UserID: userID, ItemID: ev.ItemID}
		stored, err := repo.Set(ctx, key, ev)
		switch {
		case err == nil:
			fmt.Fprintf(w, "stored  %s %s\n", key.ItemID, stored.Value)
			summary.Stored++
		case errors.Is(err, ErrStale):
			fmt.Fprintf(w, "stale   %s (kept answer from %s)\n", key.ItemID, stored.AnsweredAt.Format("2006-01-02 15:04:05"))
			summary.Stale++
		case errors.Is(err, ErrInvalidKey), errors.Is(err, ErrInvalidValue):
			fmt.Fprintf(w, "failed  %s: %v\n", key.ItemID, err)
			summary.Failed++
		default:
			return summary, err
		}
	}
	return summary, nil
}
