package journal

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/moodmate/internal/db"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

var (
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrExportMismatch = errors.New("export does not match the mood log")
)

var csvHeader = []string{"timestamp", "mood", "task", "note", "completed"}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV, FormatSQLite:
		return f, nil
	case "db", "sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w %q (want json, csv or sqlite)", ErrUnknownFormat, s)
	}
}

func (f Format) Ext() string {
	if f == FormatSQLite {
		return "db"
	}
	return string(f)
}

// Export writes every entry to a new timestamped file in the export dir and
// returns its path.
func (s *Store) Export(format Format) (string, error) {
	entries, err := s.All()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: nothing to export", ErrNoEntries)
	}
	if err := os.MkdirAll(s.opts.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	name := fmt.Sprintf("moodmate_export_%s.%s", s.now().Format("20060102_150405"), format.Ext())
	path := filepath.Join(s.opts.ExportDir, name)

	switch format {
	case FormatJSON:
		err = writeJSONAtomic(path, entries)
	case FormatCSV:
		err = writeCSV(path, entries)
	case FormatSQLite:
		err = writeSQLite(path, entries)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", err
	}
	s.log.Debug("exported mood log", "format", format, "entries", len(entries), "path", path)
	return path, nil
}

func writeCSV(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeCSV(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}

func encodeCSV(out io.Writer, entries []Entry) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.Timestamp.Local().Format(time.RFC3339Nano),
			e.Mood,
			e.Task,
			e.NoteText(),
			strconv.FormatBool(e.Completed),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSQLite(path string, entries []Entry) error {
	_ = os.Remove(path)
	dbh, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("open export db: %w", err)
	}
	defer dbh.Close()

	rows := make([]db.Entry, len(entries))
	for i, e := range entries {
		rows[i] = db.Entry{
			Position:  i,
			Timestamp: e.Timestamp.Time,
			Mood:      e.Mood,
			Task:      e.Task,
			Note:      sql.NullString{String: e.NoteText(), Valid: e.Note != nil},
			Completed: e.Completed,
		}
	}
	if err := db.WriteEntries(dbh, rows); err != nil {
		return err
	}
	return verifySQLite(dbh, entries)
}

// verifySQLite reads the per-mood counts back from the exported database and
// compares them with the log.
func verifySQLite(dbh *sql.DB, entries []Entry) error {
	got, err := db.MoodCounts(dbh)
	if err != nil {
		return fmt.Errorf("read back export db: %w", err)
	}
	want := make(map[string]int)
	for _, e := range entries {
		want[e.Mood]++
	}
	for mood, n := range want {
		if got[mood] != n {
			return fmt.Errorf("%w: export db has %d %q entries, log has %d", ErrExportMismatch, got[mood], mood, n)
		}
	}
	if len(got) != len(want) {
		return fmt.Errorf("%w: export db has %d moods, log has %d", ErrExportMismatch, len(got), len(want))
	}
	return nil
}
