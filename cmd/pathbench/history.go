package main

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	batch       TEXT    NOT NULL,
	seed        INTEGER NOT NULL,
	dim         INTEGER NOT NULL,
	braid       REAL    NOT NULL,
	start_x     INTEGER NOT NULL,
	start_y     INTEGER NOT NULL,
	finish_x    INTEGER NOT NULL,
	finish_y    INTEGER NOT NULL,
	reachable   INTEGER NOT NULL,
	cost        INTEGER NOT NULL,
	expanded    INTEGER NOT NULL,
	direct_us   REAL    NOT NULL,
	coworker_us REAL    NOT NULL,
	sync_us     REAL    NOT NULL,
	mismatch    TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS runs_batch ON runs(batch);`

// openHistory opens or creates the run history database at path
func openHistory(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// saveRuns appends every run of r in one transaction
func saveRuns(db *sql.DB, r *report) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO runs (batch, seed, dim, braid, start_x, start_y, finish_x, finish_y,
			reachable, cost, expanded, direct_us, coworker_us, sync_us, mismatch)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, res := range r.Runs {
		// Seeds are stored by bit pattern; sqlite integers are signed
		_, err := stmt.Exec(r.Batch, int64(res.Seed), r.Config.Dim, r.Config.Braid,
			res.Start.X, res.Start.Y, res.Finish.X, res.Finish.Y,
			res.Reachable, res.Cost, res.Expanded,
			res.DirectUs, res.CoworkerUs, res.SyncUs, res.Mismatch)
		if err != nil {
			return 0, fmt.Errorf("insert seed %d: %w", res.Seed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(r.Runs), nil
}

// batchStats summarizes one stored batch
func batchStats(db *sql.DB, batch string) (runs, mismatches int, err error) {
	err = db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(mismatch <> ''), 0)
		FROM runs WHERE batch = ?`, batch).Scan(&runs, &mismatches)
	return runs, mismatches, err
}
