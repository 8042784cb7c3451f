package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	variant    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	density    INTEGER NOT NULL,
	frames     INTEGER NOT NULL,
	total_area REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

func openIndex(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init index schema: %w", err)
	}
	return db, nil
}

func (s *Store) index(meta RunMetadata) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, variant, created_at, seed, density, frames, total_area)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Variant, meta.Timestamp.UnixNano(), meta.Seed, meta.Density, meta.Frames, meta.Final.TotalArea,
	)
	if err != nil {
		return fmt.Errorf("index run %s: %w", meta.ID, err)
	}
	return nil
}

func (s *Store) ids() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
