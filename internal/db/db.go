// Package db writes mood entries into a standalone SQLite database, used as
// an export target that spreadsheet and BI tools can open directly.
package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// Entry is the row shape of the entries table.
type Entry struct {
	Position  int
	Timestamp time.Time
	Mood      string
	Task      string
	Note      sql.NullString
	Completed bool
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(DELETE)",
		path,
	)
	dbh, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return dbh, nil
}

func migrate(dbh *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := dbh.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

// WriteEntries replaces the contents of the entries table in one transaction.
func WriteEntries(dbh *sql.DB, entries []Entry) error {
	tx, err := dbh.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO entries(position, ts, mood, task, note, completed) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Position, e.Timestamp.UTC().Format(time.RFC3339Nano), e.Mood, e.Task, e.Note, e.Completed); err != nil {
			return fmt.Errorf("insert entry %d: %w", e.Position, err)
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO export_meta(key, value) VALUES('exported_at', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

// ReadEntries returns the stored rows ordered by position.
func ReadEntries(dbh *sql.DB) ([]Entry, error) {
	rows, err := dbh.Query(`SELECT position, ts, mood, task, note, completed FROM entries ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Position, &ts, &e.Mood, &e.Task, &e.Note, &e.Completed); err != nil {
			return nil, err
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("bad ts in row %d: %w", e.Position, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MoodCounts groups the stored rows by mood.
func MoodCounts(dbh *sql.DB) (map[string]int, error) {
	rows, err := dbh.Query(`SELECT mood, COUNT(*) FROM entries GROUP BY mood ORDER BY mood ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var mood string
		var n int
		if err := rows.Scan(&mood, &n); err != nil {
			return nil, err
		}
		counts[mood] = n
	}
	return counts, rows.Err()
}
