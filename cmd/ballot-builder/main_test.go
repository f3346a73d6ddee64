// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ballot-builder/internal/content/contenttest"
	"github.com/pdiddy/ballot-builder/pkg/types"
)

const civicDir = "../../content/civic"

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestParseValue(t *testing.T) {
	items := make(map[string]types.AssessmentItem)
	for _, it := range contenttest.Bundle().Items {
		items[it.ID] = it
	}

	tests := []struct {
		name    string
		item    string
		raw     string
		want    types.ResponseValue
		wantErr string
	}{
		{"binary", "b1", "Agree", types.Binary(types.AnswerAgree), ""},
		{"binary unsure", "b2", "unsure", types.Binary(types.AnswerUnsure), ""},
		{"binary junk", "b1", "maybe", types.ResponseValue{}, "binary answer"},
		{"likert", "l1", "4", types.Likert(4), ""},
		{"likert out of range", "l1", "6", types.ResponseValue{}, "out of range"},
		{"slider", "s1", "0", types.Slider(0), ""},
		{"slider not a number", "s1", "ten", types.ResponseValue{}, "expects a number"},
		{"vignette", "v1", "y", types.Vignette("v1", "y"), ""},
		{"vignette unknown option", "v1", "z", types.ResponseValue{}, "options: x, y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(items[tt.item], tt.raw)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	got := truncate("Économie équitable", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Économi...", got)
	assert.Equal(t, 10, utf8.RuneCountInString(got))
	assert.Equal(t, "Économie", truncate("Économie", 8))
}

func TestFormatMatches_Insufficient(t *testing.T) {
	var buf bytes.Buffer
	formatMatches(&buf, []types.MatchResult{{
		EntityName:       "Nobody",
		EntityKind:       types.EntityCandidate,
		InsufficientData: true,
		Recommendation:   types.RecommendUnclear,
	}})
	assert.Contains(t, buf.String(), "insufficient data")

	buf.Reset()
	formatMatches(&buf, nil)
	assert.Equal(t, "No entities to match.\n", buf.String())
}

func TestCLI_RespondScoreMatch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	common := []string{"--content", civicDir, "--store", "sqlite", "--db", db}
	run := func(args ...string) string {
		return execute(t, append(args, common...)...)
	}

	out := run("content", "validate", civicDir)
	assert.Contains(t, out, "axes:            8")

	assert.Contains(t, run("respond", "add", "reg_01", "agree", "--user", "ana", "--at", "2026-05-01T09:00:00Z"), "stored  reg_01 agree")
	assert.Contains(t, run("respond", "add", "tax_01", "agree", "--user", "ana", "--at", "2026-05-01T09:01:00Z"), "stored  tax_01")
	assert.Contains(t, run("respond", "add", "reg_01", "disagree", "--user", "ana", "--at", "2026-04-01T09:00:00Z"), "stale   reg_01")

	out = run("respond", "list", "--user", "ana")
	assert.Contains(t, out, "2 responses")

	out = run("score", "--user", "ana")
	assert.Contains(t, out, "reg_01")

	out = run("profile", "--user", "ana")
	assert.Contains(t, out, "Confidence:")

	out = run("match", "--user", "ana", "--kind", "candidate", "--json")
	var results []types.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 3)

	assert.Contains(t, run("respond", "delete", "tax_01", "--user", "ana"), "deleted tax_01")

	out = run("session", "--user", "ana", "--count", "3", "--seed", "9")
	assert.Contains(t, out, "3 items")
	assert.NotContains(t, out, "[reg_01]")
}

func TestCLI_Version(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "ballot-builder dev")
}
