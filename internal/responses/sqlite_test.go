// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package responses

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "responses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	testRepository(t, func(t *testing.T) Repository {
		return newTestSQLite(t)
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.db")
	ctx := context.Background()
	key := Key{UserID: "u1", ItemID: "reg_01"}

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = s.Set(ctx, key, event("reg_01", types.Likert(4), 0))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, types.Likert(4), got.Value)
}

func TestSQLiteStore_History(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	key := Key{UserID: "u1", ItemID: "tax_02"}

	_, err := s.Set(ctx, key, event("tax_02", types.Binary(types.AnswerAgree), 0))
	require.NoError(t, err)
	_, err = s.Set(ctx, key, event("tax_02", types.Binary(types.AnswerDisagree), time.Minute))
	require.NoError(t, err)
	_, err = s.Set(ctx, key, event("tax_02", types.Binary(types.AnswerUnsure), -time.Minute))
	require.ErrorIs(t, err, ErrStale)
	require.NoError(t, s.Delete(ctx, key))

	history, err := s.History(ctx, key)
	require.NoError(t, err)
	require.Len(t, history, 2, "stale writes are not recorded")
	assert.Equal(t, types.Binary(types.AnswerAgree), history[0].Value)
	assert.Equal(t, types.Binary(types.AnswerDisagree), history[1].Value)
	assert.True(t, t0.Add(time.Minute).Equal(history[1].AnsweredAt))
}
