package ctrkstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ctrkdecode/internal/ctrk"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctrk.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})
	return db
}

func TestOpenRunsMigrations(t *testing.T) {
	db := openTestDB(t)
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='decode_run'`).Scan(&name)
	require.NoError(t, err, "decode_run table missing after Open")
}

func TestInsertAndGet(t *testing.T) {
	db := openTestDB(t)
	run := DecodeRun{
		RunID:         NewRunID(),
		SourceFile:    "session1.ctrk",
		DecodedAtUnix: 1700000000,
		SampleCount:   120,
		LapCount:      3,
		FirstTimeMS:   1000,
		LastTimeMS:    13000,
	}
	require.NoError(t, db.Insert(run))

	got, err := db.Get(run.RunID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, run, *got)
}

func TestGetMissingRunReturnsNil(t *testing.T) {
	db := openTestDB(t)
	got, err := db.Get("does-not-exist")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	db := openTestDB(t)
	older := DecodeRun{RunID: NewRunID(), SourceFile: "a.ctrk", DecodedAtUnix: 100, SampleCount: 1, LapCount: 1}
	newer := DecodeRun{RunID: NewRunID(), SourceFile: "b.ctrk", DecodedAtUnix: 200, SampleCount: 2, LapCount: 1}
	require.NoError(t, db.Insert(older))
	require.NoError(t, db.Insert(newer))

	runs, err := db.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, newer.RunID, runs[0].RunID, "newest run must sort first")
}

func TestSummarizeEmpty(t *testing.T) {
	count, laps, first, last := Summarize(nil)
	require.Equal(t, 0, count)
	require.Equal(t, 0, laps)
	require.Equal(t, int64(0), first)
	require.Equal(t, int64(0), last)
}

func TestSummarizeCountsLapTransitions(t *testing.T) {
	samples := []ctrk.Sample{
		{Lap: 1, TimeMS: 1000},
		{Lap: 1, TimeMS: 1100},
		{Lap: 2, TimeMS: 1200},
		{Lap: 2, TimeMS: 1300},
		{Lap: 3, TimeMS: 1400},
	}
	count, laps, first, last := Summarize(samples)
	require.Equal(t, 5, count)
	require.Equal(t, 3, laps)
	require.Equal(t, int64(1000), first)
	require.Equal(t, int64(1400), last)
}
