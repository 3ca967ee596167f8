// Package journal stores mood entries in a single JSON file.
//
// The file holds one indented JSON array, oldest entry first. Every change
// rewrites the whole file: the store reads it, applies the change and renames
// a fully written temp file over the original while holding both an
// in-process mutex and an advisory lock on "<log>.lock".
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

const DefaultMaxEntries = 1000

var (
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrNoEntries       = errors.New("no entries logged")
	ErrNoBackup        = errors.New("no backup file found")
	ErrCorruptLog      = errors.New("mood log is not valid JSON")
	ErrInvalidEntry    = errors.New("invalid entry")
)

type Options struct {
	LogFile    string
	BackupFile string
	ExportDir  string
	// MaxEntries caps the log on append; <= 0 means DefaultMaxEntries.
	MaxEntries int
	Logger     *log.Logger
	Now        func() time.Time
}

type Store struct {
	mu   sync.Mutex
	opts Options
	lock *flock.Flock
	log  *log.Logger
	now  func() time.Time
}

// Open prepares the log file (an empty array if it does not exist yet) and
// the export directory.
func Open(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.LogFile) == "" {
		return nil, errors.New("journal: log file path required")
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	dir := filepath.Dir(opts.LogFile)
	if opts.BackupFile == "" {
		opts.BackupFile = filepath.Join(dir, "moodmate_backup.json")
	}
	if opts.ExportDir == "" {
		opts.ExportDir = filepath.Join(dir, "moodmate_exports")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	if err := os.MkdirAll(opts.ExportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	s := &Store{
		opts: opts,
		lock: flock.New(opts.LogFile + ".lock"),
		log:  logger,
		now:  now,
	}

	if _, err := os.Stat(opts.LogFile); errors.Is(err, os.ErrNotExist) {
		if err := s.update(func(entries []Entry) ([]Entry, error) { return entries, nil }); err != nil {
			return nil, err
		}
		logger.Debug("created mood log", "path", opts.LogFile)
	} else if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	return s, nil
}

func (s *Store) Path() string       { return s.opts.LogFile }
func (s *Store) BackupPath() string { return s.opts.BackupFile }
func (s *Store) ExportDir() string  { return s.opts.ExportDir }
func (s *Store) MaxEntries() int    { return s.opts.MaxEntries }

// Append records a new pending entry stamped with the current time.
func (s *Store) Append(mood, task string, note *string) (Entry, error) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	task = strings.TrimSpace(task)
	if mood == "" || task == "" {
		return Entry{}, fmt.Errorf("%w: mood and task are required", ErrInvalidEntry)
	}
	e := Entry{
		Timestamp: Timestamp{s.now()},
		Mood:      mood,
		Task:      task,
	}
	if note != nil && strings.TrimSpace(*note) != "" {
		n := strings.TrimSpace(*note)
		e.Note = &n
	}

	err := s.update(func(entries []Entry) ([]Entry, error) {
		entries = append(entries, e)
		if over := len(entries) - s.opts.MaxEntries; over > 0 {
			s.log.Debug("trimming mood log", "dropped", over, "max", s.opts.MaxEntries)
			entries = entries[over:]
		}
		return entries, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// All returns every entry, oldest first.
func (s *Store) All() ([]Entry, error) {
	var out []Entry
	err := s.view(func(entries []Entry) error {
		out = entries
		return nil
	})
	return out, err
}

// Recent returns entries logged within the last days days.
func (s *Store) Recent(days int) ([]Entry, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	cutoff := s.now().AddDate(0, 0, -days)
	recent := make([]Entry, 0, len(all))
	for _, e := range all {
		if !e.Timestamp.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent, nil
}

// Pending returns the entries not yet marked completed with their log indexes.
func (s *Store) Pending() ([]Indexed, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	var pending []Indexed
	for i, e := range all {
		if !e.Completed {
			pending = append(pending, Indexed{Index: i, Entry: e})
		}
	}
	return pending, nil
}

func (s *Store) Get(index int) (Entry, error) {
	var e Entry
	err := s.view(func(entries []Entry) error {
		if err := checkIndex(index, len(entries)); err != nil {
			return err
		}
		e = entries[index]
		return nil
	})
	return e, err
}

// Edit applies c to the entry at index and returns the updated entry.
func (s *Store) Edit(index int, c Changes) (Entry, error) {
	if c.Mood != nil && strings.TrimSpace(*c.Mood) == "" {
		return Entry{}, fmt.Errorf("%w: mood cannot be empty", ErrInvalidEntry)
	}
	if c.Task != nil && strings.TrimSpace(*c.Task) == "" {
		return Entry{}, fmt.Errorf("%w: task cannot be empty", ErrInvalidEntry)
	}
	var updated Entry
	err := s.update(func(entries []Entry) ([]Entry, error) {
		if err := checkIndex(index, len(entries)); err != nil {
			return nil, err
		}
		c.apply(&entries[index])
		updated = entries[index]
		return entries, nil
	})
	return updated, err
}

func (s *Store) Complete(index int) (Entry, error) {
	done := true
	return s.Edit(index, Changes{Completed: &done})
}

// Delete removes the entry at index and returns it.
func (s *Store) Delete(index int) (Entry, error) {
	var removed Entry
	err := s.update(func(entries []Entry) ([]Entry, error) {
		if err := checkIndex(index, len(entries)); err != nil {
			return nil, err
		}
		removed = entries[index]
		return append(entries[:index], entries[index+1:]...), nil
	})
	return removed, err
}

// CompleteAll marks every pending entry completed and returns how many changed.
func (s *Store) CompleteAll() (int, error) {
	var n int
	err := s.update(func(entries []Entry) ([]Entry, error) {
		for i := range entries {
			if !entries[i].Completed {
				entries[i].Completed = true
				n++
			}
		}
		return entries, nil
	})
	return n, err
}

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%w: %d (have %d entries)", ErrIndexOutOfRange, index, n)
	}
	return nil
}

// view runs fn over a snapshot of the log under a shared lock.
func (s *Store) view(fn func([]Entry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	defer s.lock.Unlock()

	entries, err := readEntries(s.opts.LogFile)
	if err != nil {
		return err
	}
	return fn(entries)
}

// update is the single write path: read, modify, atomically replace.
func (s *Store) update(fn func([]Entry) ([]Entry, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	defer s.lock.Unlock()

	entries, err := readEntries(s.opts.LogFile)
	if err != nil {
		return err
	}
	entries, err = fn(entries)
	if err != nil {
		return err
	}
	return writeEntries(s.opts.LogFile, entries)
}

func readEntries(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mood log: %w", err)
	}
	return decodeEntries(path, b)
}

func decodeEntries(path string, b []byte) ([]Entry, error) {
	if len(strings.TrimSpace(string(b))) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptLog, path, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func writeEntries(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return writeJSONAtomic(path, entries)
}

// writeJSONAtomic writes v as indented JSON to a temp file next to path and
// renames it into place.
func writeJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	b = append(b, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
