package ctrkstore

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/banshee-data/ctrkdecode/internal/ctrk"
)

// DecodeRun is one archived decode: a source file plus the summary of the
// sample sequence it produced.
type DecodeRun struct {
	RunID         string
	SourceFile    string
	DecodedAtUnix int64
	SampleCount   int
	LapCount      int
	FirstTimeMS   int64
	LastTimeMS    int64
}

// Summarize derives a DecodeRun's sample-sequence fields from a decoded
// sample set. The caller fills in RunID, SourceFile and DecodedAtUnix.
func Summarize(samples []ctrk.Sample) (sampleCount, lapCount int, firstMS, lastMS int64) {
	if len(samples) == 0 {
		return 0, 0, 0, 0
	}
	lap := samples[0].Lap
	lapCount = 1
	for _, s := range samples {
		if s.Lap != lap {
			lapCount++
			lap = s.Lap
		}
	}
	return len(samples), lapCount, samples[0].TimeMS, samples[len(samples)-1].TimeMS
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Insert archives a completed decode run.
func (db *DB) Insert(run DecodeRun) error {
	_, err := db.Exec(
		`INSERT INTO decode_run (run_id, source_file, decoded_at_unix, sample_count, lap_count, first_time_ms, last_time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.SourceFile, run.DecodedAtUnix, run.SampleCount, run.LapCount, run.FirstTimeMS, run.LastTimeMS,
	)
	return err
}

// Get looks up a single archived run by id.
func (db *DB) Get(runID string) (*DecodeRun, error) {
	row := db.QueryRow(
		`SELECT run_id, source_file, decoded_at_unix, sample_count, lap_count, first_time_ms, last_time_ms
		 FROM decode_run WHERE run_id = ?`, runID)
	var r DecodeRun
	if err := row.Scan(&r.RunID, &r.SourceFile, &r.DecodedAtUnix, &r.SampleCount, &r.LapCount, &r.FirstTimeMS, &r.LastTimeMS); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// ListRecent returns the most recently archived runs, newest first.
func (db *DB) ListRecent(limit int) ([]DecodeRun, error) {
	rows, err := db.Query(
		`SELECT run_id, source_file, decoded_at_unix, sample_count, lap_count, first_time_ms, last_time_ms
		 FROM decode_run ORDER BY decoded_at_unix DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []DecodeRun
	for rows.Next() {
		var r DecodeRun
		if err := rows.Scan(&r.RunID, &r.SourceFile, &r.DecodedAtUnix, &r.SampleCount, &r.LapCount, &r.FirstTimeMS, &r.LastTimeMS); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
