// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package responses

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"answers.json", FormatJSON},
		{"ANSWERS.JSON", FormatJSON},
		{"answers.yaml", FormatYAML},
		{"answers.yml", FormatYAML},
		{"answers", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.path))
		})
	}
}

func TestWriteReadSet(t *testing.T) {
	set := types.ResponseSet{
		UserID: "u1",
		Responses: []types.ResponseEvent{
			event("reg_01", types.Binary(types.AnswerAgree), 0),
			event("tax_01", types.Likert(4), time.Second),
			event("gov_04", types.Slider(0), 2*time.Second),
			event("vig_factory", types.Vignette("vig_factory", "retrain"), 3*time.Second),
		},
	}

	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSet(&buf, set, format))

			path := filepath.Join(t.TempDir(), "set."+string(format))
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			got, err := ReadSet(path)
			require.NoError(t, err)
			assert.Equal(t, "u1", got.UserID)
			require.Len(t, got.Responses, len(set.Responses))
			for i, ev := range got.Responses {
				assert.Equal(t, set.Responses[i].ItemID, ev.ItemID)
				assert.Equal(t, set.Responses[i].Value, ev.Value)
				assert.True(t, set.Responses[i].AnsweredAt.Equal(ev.AnsweredAt))
			}
		})
	}

	assert.Error(t, WriteSet(&bytes.Buffer{}, set, "toml"))
}

func TestReadSet_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadSet(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadSet(bad)
	assert.ErrorContains(t, err, "parsing")
}

func TestImportExport(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore()

	_, err := repo.Set(ctx, Key{UserID: "u1", ItemID: "clim_01"}, event("clim_01", types.Likert(5), time.Hour))
	require.NoError(t, err)

	set := types.ResponseSet{
		UserID: "u1",
		Responses: []types.ResponseEvent{
			event("reg_01", types.Binary(types.AnswerAgree), 0),
			event("clim_01", types.Likert(1), 0),
			event("tax_01", types.Likert(7), 0),
			event("", types.Likert(3), 0),
		},
	}

	var out bytes.Buffer
	summary, err := Import(ctx, repo, set, "", &out)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Stored: 1, Stale: 1, Failed: 2}, summary)
	assert.Equal(t, 4, summary.Total())
	assert.Contains(t, out.String(), "stored  reg_01 agree")
	assert.Contains(t, out.String(), "stale   clim_01")
	assert.Contains(t, out.String(), "failed  tax_01")

	exported, err := Export(ctx, repo, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", exported.UserID)
	require.Len(t, exported.Responses, 2)
	assert.Equal(t, "reg_01", exported.Responses[0].ItemID)
	assert.Equal(t, types.Likert(5), exported.Responses[1].Value)
}

func TestImport_UserOverride(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore()
	set := types.ResponseSet{UserID: "file-user", Responses: []types.ResponseEvent{event("reg_01", types.Likert(2), 0)}}

	_, err := Import(ctx, repo, set, "flag-user", &bytes.Buffer{})
	require.NoError(t, err)

	_, err = repo.Get(ctx, Key{UserID: "flag-user", ItemID: "reg_01"})
	assert.NoError(t, err)
	_, err = repo.Get(ctx, Key{UserID: "file-user", ItemID: "reg_01"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Import(ctx, repo, types.ResponseSet{}, "", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestImport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set := types.ResponseSet{UserID: "u1", Responses: []types.ResponseEvent{event("reg_01", types.Likert(2), 0)}}
	_, err := Import(ctx, NewMemoryStore(), set, "", &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}
