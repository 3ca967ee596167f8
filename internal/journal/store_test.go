package journal

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/moodmate/internal/db"
)

// steppingClock returns a clock that advances one minute per call.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := cur
		cur = cur.Add(time.Minute)
		return t
	}
}

func newTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(Options{
		LogFile:    filepath.Join(dir, "moodmate_log.json"),
		MaxEntries: maxEntries,
		Now:        steppingClock(time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)),
	})
	require.NoError(t, err)
	return s
}

func strp(s string) *string { return &s }

func tasks(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Task
	}
	return out
}

func TestOpenCreatesEmptyLog(t *testing.T) {
	s := newTestStore(t, 0)

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
	assert.DirExists(t, s.ExportDir())
	assert.Equal(t, DefaultMaxEntries, s.MaxEntries())
	assert.Equal(t, filepath.Join(filepath.Dir(s.Path()), "moodmate_backup.json"), s.BackupPath())
}

func TestOpenKeepsExistingLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"timestamp":"2025-01-02T10:00:00","mood":"sad","task":"walk","note":null,"completed":false}]`), 0o644))

	s, err := Open(Options{LogFile: path})
	require.NoError(t, err)
	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "sad", all[0].Mood)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Options{})
	require.Error(t, err)
}

func TestAppend(t *testing.T) {
	s := newTestStore(t, 0)

	e, err := s.Append("Happy ", " Go for a walk", strp("  sunny  "))
	require.NoError(t, err)
	assert.Equal(t, "happy", e.Mood)
	assert.Equal(t, "Go for a walk", e.Task)
	assert.Equal(t, "sunny", e.NoteText())
	assert.False(t, e.Completed)

	_, err = s.Append("tired", "Nap", strp("   "))
	require.NoError(t, err)

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Nil(t, all[1].Note, "blank notes are stored as null")
	assert.True(t, all[0].Timestamp.Before(all[1].Timestamp.Time))
}

func TestAppendRejectsMissingFields(t *testing.T) {
	s := newTestStore(t, 0)

	_, err := s.Append("", "task", nil)
	require.ErrorIs(t, err, ErrInvalidEntry)
	_, err = s.Append("happy", "  ", nil)
	require.ErrorIs(t, err, ErrInvalidEntry)
}

func TestAppendKeepsNewestWithinCap(t *testing.T) {
	s := newTestStore(t, 3)

	for _, task := range []string{"t1", "t2", "t3", "t4", "t5"} {
		_, err := s.Append("bored", task, nil)
		require.NoError(t, err)
	}

	all, err := s.All()
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"t3", "t4", "t5"}, tasks(all)); diff != "" {
		t.Fatalf("retained tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestEdit(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("sad", "Call a friend", strp("rough day"))
	require.NoError(t, err)

	done := true
	e, err := s.Edit(0, Changes{Mood: strp("happy"), Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, "happy", e.Mood)
	assert.Equal(t, "Call a friend", e.Task)
	assert.Equal(t, "rough day", e.NoteText())
	assert.True(t, e.Completed)

	e, err = s.Edit(0, Changes{ClearNote: true, Task: strp("Call mum")})
	require.NoError(t, err)
	assert.Nil(t, e.Note)

	stored, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Call mum", stored.Task)
	assert.Nil(t, stored.Note)
	assert.True(t, stored.Completed)
}

func TestEditNormalizesLikeAppend(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("sad", "walk", strp("meh"))
	require.NoError(t, err)

	e, err := s.Edit(0, Changes{Mood: strp("  Happy "), Task: strp(" run  "), Note: strp("  better ")})
	require.NoError(t, err)
	assert.Equal(t, "happy", e.Mood)
	assert.Equal(t, "run", e.Task)
	assert.Equal(t, "better", e.NoteText())

	e, err = s.Edit(0, Changes{Note: strp("   ")})
	require.NoError(t, err)
	assert.Nil(t, e.Note)

	stored, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "happy", stored.Mood)
	assert.Nil(t, stored.Note)
}

func TestEditRejectsBadInput(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("sad", "Call a friend", nil)
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 42} {
		_, err := s.Edit(idx, Changes{Task: strp("x")})
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
	_, err = s.Edit(0, Changes{Task: strp(" ")})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = s.Get(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, 0)
	for _, task := range []string{"a", "b", "c"} {
		_, err := s.Append("anxious", task, nil)
		require.NoError(t, err)
	}

	removed, err := s.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Task)

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, tasks(all))

	_, err = s.Delete(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCompleteAndCompleteAll(t *testing.T) {
	s := newTestStore(t, 0)
	for _, task := range []string{"a", "b", "c"} {
		_, err := s.Append("motivated", task, nil)
		require.NoError(t, err)
	}

	e, err := s.Complete(1)
	require.NoError(t, err)
	assert.True(t, e.Completed)

	pending, err := s.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, 0, pending[0].Index)
	assert.Equal(t, 2, pending[1].Index)
	assert.Equal(t, "c", pending[1].Task)

	n, err := s.CompleteAll()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.CompleteAll()
	require.NoError(t, err)
	assert.Zero(t, n)

	pending, err = s.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRecent(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.Local)
	path := filepath.Join(dir, "log.json")
	old := []Entry{
		{Timestamp: Timestamp{now.AddDate(0, 0, -10)}, Mood: "sad", Task: "old"},
		{Timestamp: Timestamp{now.AddDate(0, 0, -7)}, Mood: "happy", Task: "edge"},
		{Timestamp: Timestamp{now.AddDate(0, 0, -1)}, Mood: "happy", Task: "new"},
	}
	require.NoError(t, writeEntries(path, old))

	s, err := Open(Options{LogFile: path, Now: func() time.Time { return now }})
	require.NoError(t, err)

	recent, err := s.Recent(7)
	require.NoError(t, err)
	assert.Equal(t, []string{"edge", "new"}, tasks(recent))
}

func TestCorruptLogIsReported(t *testing.T) {
	s := newTestStore(t, 0)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.All()
	require.ErrorIs(t, err, ErrCorruptLog)
	_, err = s.Append("happy", "x", nil)
	require.ErrorIs(t, err, ErrCorruptLog)

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(b), "a corrupt log must not be overwritten")
}

func TestEmptyFileReadsAsEmptyLog(t *testing.T) {
	s := newTestStore(t, 0)
	require.NoError(t, os.WriteFile(s.Path(), nil, 0o644))

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLegacyNaiveTimestamps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.json")
	legacy := `[
  {"timestamp": "2025-01-02T15:04:05.123456", "mood": "tired", "task": "Nap", "note": null, "completed": false},
  {"timestamp": "2025-01-03T08:00:00", "mood": "happy", "task": "Walk", "note": "nice", "completed": true}
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s, err := Open(Options{LogFile: path})
	require.NoError(t, err)
	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)

	want := time.Date(2025, 1, 2, 15, 4, 5, 123456000, time.Local)
	assert.True(t, all[0].Timestamp.Equal(want), "got %s", all[0].Timestamp)
	assert.Equal(t, "nice", all[1].NoteText())

	_, err = s.Complete(0)
	require.NoError(t, err)

	var raw []map[string]any
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &raw))
	ts, err := time.Parse(time.RFC3339Nano, raw[0]["timestamp"].(string))
	require.NoError(t, err, "rewritten timestamps carry a zone")
	assert.True(t, ts.Equal(want))
	assert.Contains(t, raw[0], "note")
	assert.Nil(t, raw[0]["note"])
}

func TestBackupAndRestore(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("happy", "a", nil)
	require.NoError(t, err)
	_, err = s.Append("sad", "b", strp("hmm"))
	require.NoError(t, err)

	path, err := s.Backup()
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.True(t, s.HasBackup())

	_, err = s.Delete(0)
	require.NoError(t, err)
	_, err = s.Append("bored", "c", nil)
	require.NoError(t, err)

	n, err := s.Restore()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tasks(all))
	assert.Equal(t, "hmm", all[1].NoteText())
}

func TestRestoreWithoutBackup(t *testing.T) {
	s := newTestStore(t, 0)
	assert.False(t, s.HasBackup())
	_, err := s.Restore()
	require.ErrorIs(t, err, ErrNoBackup)
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("happy", "keep me", nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.BackupPath(), []byte("[{"), 0o644))

	_, err = s.Restore()
	require.ErrorIs(t, err, ErrCorruptLog)

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"keep me"}, tasks(all))
}

func TestExportJSON(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("happy", "a", strp("n1"))
	require.NoError(t, err)
	_, err = s.Append("sad", "b", nil)
	require.NoError(t, err)

	path, err := s.Export(FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, s.ExportDir(), filepath.Dir(path))
	assert.Regexp(t, `^moodmate_export_\d{8}_\d{6}\.json$`, filepath.Base(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var exported []Entry
	require.NoError(t, json.Unmarshal(b, &exported))
	all, err := s.All()
	require.NoError(t, err)
	if diff := cmp.Diff(all, exported); diff != "" {
		t.Fatalf("export mismatch (-log +export):\n%s", diff)
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("happy", "walk, then rest", strp(`said "hi"`))
	require.NoError(t, err)
	_, err = s.Complete(0)
	require.NoError(t, err)

	path, err := s.Export(FormatCSV)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"timestamp", "mood", "task", "note", "completed"}, records[0])
	assert.Equal(t, []string{"happy", "walk, then rest", `said "hi"`, "true"}, records[1][1:])
}

func TestExportSQLite(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Append("happy", "a", strp("note"))
	require.NoError(t, err)
	_, err = s.Append("happy", "b", nil)
	require.NoError(t, err)
	_, err = s.Append("tired", "c", nil)
	require.NoError(t, err)

	path, err := s.Export(FormatSQLite)
	require.NoError(t, err)
	assert.Equal(t, ".db", filepath.Ext(path))

	dbh, err := db.Open(path)
	require.NoError(t, err)
	defer dbh.Close()

	rows, err := db.ReadEntries(dbh)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].Task)
	assert.True(t, rows[0].Note.Valid)
	assert.False(t, rows[1].Note.Valid)

	counts, err := db.MoodCounts(dbh)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"happy": 2, "tired": 1}, counts)
}

func TestVerifySQLiteDetectsMismatch(t *testing.T) {
	dbh, err := db.Open(filepath.Join(t.TempDir(), "export.db"))
	require.NoError(t, err)
	defer dbh.Close()

	ts := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	require.NoError(t, db.WriteEntries(dbh, []db.Entry{{Timestamp: ts, Mood: "happy", Task: "a"}}))

	assert.NoError(t, verifySQLite(dbh, []Entry{{Timestamp: Timestamp{ts}, Mood: "happy", Task: "a"}}))

	err = verifySQLite(dbh, []Entry{
		{Timestamp: Timestamp{ts}, Mood: "happy", Task: "a"},
		{Timestamp: Timestamp{ts}, Mood: "happy", Task: "b"},
	})
	assert.ErrorIs(t, err, ErrExportMismatch)

	err = verifySQLite(dbh, []Entry{{Timestamp: Timestamp{ts}, Mood: "tired", Task: "a"}})
	assert.ErrorIs(t, err, ErrExportMismatch)
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEncodeCSVReportsWriteErrors(t *testing.T) {
	boom := errors.New("disk full")
	entries := []Entry{{Timestamp: Timestamp{time.Now()}, Mood: "happy", Task: "a"}}
	assert.ErrorIs(t, encodeCSV(failingWriter{err: boom}, entries), boom)
}

func TestExportEmptyLog(t *testing.T) {
	s := newTestStore(t, 0)
	_, err := s.Export(FormatJSON)
	require.ErrorIs(t, err, ErrNoEntries)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"sqlite3", FormatSQLite, false},
		{"db", FormatSQLite, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := newTestStore(t, 0)
	other, err := Open(Options{LogFile: s.Path()})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store := s
			if i%2 == 1 {
				store = other
			}
			_, err := store.Append("stressed", "breathe", nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestIndexFromDisplay(t *testing.T) {
	idx, err := IndexFromDisplay(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, idx, "#1 is the newest entry")

	idx, err = IndexFromDisplay(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 5, DisplayNumber(idx, 5))

	for _, n := range []int{0, 6, -2} {
		_, err := IndexFromDisplay(n, 5)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}
