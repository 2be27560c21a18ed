// Package drophist keeps a local history of completed file drops.
package drophist

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	conn *sql.DB
}

// Drop is one completed drop with its files in source order.
type Drop struct {
	ID        int64
	WindowID  string
	DroppedAt time.Time
	Paths     []string
}

// Open initializes the database connection and schema.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS drops (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		window_id TEXT NOT NULL,
		dropped_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS drop_files (
		drop_id INTEGER NOT NULL REFERENCES drops(id),
		position INTEGER NOT NULL,
		path TEXT NOT NULL,
		PRIMARY KEY (drop_id, position)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{conn: db}, nil
}

// Add records one drop with all its files in a single transaction.
func (s *Store) Add(windowID string, paths []string, at time.Time) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO drops (window_id, dropped_at) VALUES (?, ?)",
		windowID, at.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, p := range paths {
		_, err := tx.Exec("INSERT INTO drop_files (drop_id, position, path) VALUES (?, ?, ?)",
			id, i, p)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recent returns up to limit drops, newest first, with their files in
// the original source order.
func (s *Store) Recent(limit int) ([]Drop, error) {
	rows, err := s.conn.Query(
		"SELECT id, window_id, dropped_at FROM drops ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drops []Drop
	for rows.Next() {
		var d Drop
		if err := rows.Scan(&d.ID, &d.WindowID, &d.DroppedAt); err != nil {
			return nil, err
		}
		drops = append(drops, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range drops {
		frows, err := s.conn.Query(
			"SELECT path FROM drop_files WHERE drop_id = ? ORDER BY position ASC",
			drops[i].ID)
		if err != nil {
			return nil, err
		}
		for frows.Next() {
			var p string
			if err := frows.Scan(&p); err != nil {
				frows.Close()
				return nil, err
			}
			drops[i].Paths = append(drops[i].Paths, p)
		}
		frows.Close()
		if err := frows.Err(); err != nil {
			return nil, err
		}
	}
	return drops, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
