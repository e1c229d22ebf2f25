// Package histdb persists counter snapshots to SQLite so runs can be
// inspected and compared after the fact. One row per counter per saved
// run; bin counts are stored as a JSON array.
package histdb

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/tofmon/internal/hist"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the snapshot database.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the snapshot database at path and brings
// its schema up to date.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	d := &DB{db}
	if err := d.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// migrateUp applies all pending migrations from the embedded source.
// No-op when the schema is already current.
func (db *DB) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	// Not closing m: that would close the underlying DB connection.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Run is one recorded monitoring run.
type Run struct {
	ID        string
	Label     string
	StartedAt time.Time
}

// BeginRun records a new run and returns its generated ID.
func (db *DB) BeginRun(label string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (run_id, label, started_at) VALUES (?, ?, ?)`,
		id, label, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// Runs lists recorded runs, newest first.
func (db *DB) Runs() ([]Run, error) {
	rows, err := db.Query(`SELECT run_id, label, started_at FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Label, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SaveSnapshots writes every snapshot under the given run in one
// transaction. Saving the same run twice appends a new generation of rows;
// readers take the latest per name.
func (db *DB) SaveSnapshots(runID string, snaps []hist.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("save snapshots: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO hist_snapshots
			(run_id, name, title, dim, x_bins, x_min, x_max, y_bins, y_min, y_max,
			 counts, under, over, entries, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, s := range snaps {
		counts, err := json.Marshal(s.Counts)
		if err != nil {
			return fmt.Errorf("marshal counts for %s: %w", s.Name, err)
		}
		if _, err := stmt.Exec(
			runID, s.Name, s.Title, s.Dim,
			s.XBins, s.XMin, s.XMax, s.YBins, s.YMin, s.YMax,
			string(counts), s.Under, s.Over, s.Entries, now,
		); err != nil {
			return fmt.Errorf("insert snapshot %s: %w", s.Name, err)
		}
	}
	return tx.Commit()
}

// Snapshots returns the latest saved generation of every counter for the
// run, in name order.
func (db *DB) Snapshots(runID string) ([]hist.Snapshot, error) {
	rows, err := db.Query(`
		SELECT name, title, dim, x_bins, x_min, x_max, y_bins, y_min, y_max,
		       counts, under, over, entries
		FROM hist_snapshots
		WHERE run_id = ?
		  AND id IN (SELECT MAX(id) FROM hist_snapshots WHERE run_id = ? GROUP BY name)
		ORDER BY name`, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []hist.Snapshot
	for rows.Next() {
		var s hist.Snapshot
		var counts string
		if err := rows.Scan(
			&s.Name, &s.Title, &s.Dim,
			&s.XBins, &s.XMin, &s.XMax, &s.YBins, &s.YMin, &s.YMax,
			&counts, &s.Under, &s.Over, &s.Entries,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(counts), &s.Counts); err != nil {
			return nil, fmt.Errorf("decode counts for %s: %w", s.Name, err)
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
