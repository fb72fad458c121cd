// SPDX-License-Identifier: MIT
package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_MigratesOnce(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Ping())
	require.NoError(t, s.Close())

	// reopening must not re-run the migration
	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM _migrations").Scan(&n))
	require.Equal(t, 1, n)
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	psnr := 48.13
	in := &Run{
		ID:             uuid.NewString(),
		Source:         "matrix",
		Width:          16,
		Height:         8,
		BlockSize:      8,
		Quality:        50,
		Blocks:         2,
		DCTZeros:       126,
		QuantizedZeros: 126,
		MSE:            1,
		PSNR:           &psnr,
		Result:         json.RawMessage(`{"block_size":8}`),
	}
	require.NoError(t, s.SaveRun(ctx, in))
	require.False(t, in.CreatedAt.IsZero())

	got, err := s.GetRun(ctx, in.ID)
	require.NoError(t, err)
	require.Equal(t, in.ID, got.ID)
	require.Equal(t, 126, got.QuantizedZeros)
	require.NotNil(t, got.PSNR)
	require.InDelta(t, psnr, *got.PSNR, 1e-12)
	require.JSONEq(t, `{"block_size":8}`, string(got.Result))
	require.WithinDuration(t, in.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestSaveRun_NullPSNR(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	in := &Run{ID: uuid.NewString(), Source: "image", Width: 8, Height: 8, BlockSize: 8, Quality: 50, Blocks: 1}
	require.NoError(t, s.SaveRun(ctx, in))

	got, err := s.GetRun(ctx, in.ID)
	require.NoError(t, err)
	require.Nil(t, got.PSNR)
	require.Equal(t, "null", string(got.Result))
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTest(t)

	_, err := s.GetRun(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.DeleteRun(context.Background(), "missing"), ErrNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		r := &Run{ID: uuid.NewString(), CreatedAt: base.Add(time.Duration(i) * time.Minute), Source: "matrix", BlockSize: 8}
		require.NoError(t, s.SaveRun(ctx, r))
		ids = append(ids, r.ID)
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, ids[2], runs[0].ID)
	require.Equal(t, ids[1], runs[1].ID)
	require.Nil(t, runs[0].Result)

	require.NoError(t, s.DeleteRun(ctx, ids[2]))
	runs, err = s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

func TestSQLiteTimeScan(t *testing.T) {
	var st sqliteTime
	require.NoError(t, st.Scan("2026-03-04T05:06:07.890Z"))
	require.Equal(t, 890*time.Millisecond, time.Duration(st.Time.Nanosecond()))
	require.NoError(t, st.Scan(int64(0)))
	require.Equal(t, int64(0), st.Time.Unix())
	require.NoError(t, st.Scan(nil))
	require.True(t, st.Time.IsZero())
	require.Error(t, st.Scan("yesterday"))
	require.Error(t, st.Scan(3.5))
}
