package journal

import (
	"errors"
	"fmt"
	"os"
)

// Backup copies the current log to the backup file and returns its path.
// The log is decoded first so a corrupt log never overwrites a good backup.
func (s *Store) Backup() (string, error) {
	var entries []Entry
	err := s.view(func(all []Entry) error {
		if _, err := os.Stat(s.opts.LogFile); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrNoEntries, s.opts.LogFile)
		}
		entries = all
		return nil
	})
	if err != nil {
		return "", err
	}
	if err := writeEntries(s.opts.BackupFile, entries); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	s.log.Debug("backed up mood log", "entries", len(entries), "path", s.opts.BackupFile)
	return s.opts.BackupFile, nil
}

// HasBackup reports whether a backup file exists.
func (s *Store) HasBackup() bool {
	_, err := os.Stat(s.opts.BackupFile)
	return err == nil
}

// Restore overwrites the log with the backup contents and returns the number
// of restored entries. A backup that does not decode leaves the log untouched.
func (s *Store) Restore() (int, error) {
	b, err := os.ReadFile(s.opts.BackupFile)
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w at %s", ErrNoBackup, s.opts.BackupFile)
	}
	if err != nil {
		return 0, fmt.Errorf("read backup: %w", err)
	}
	restored, err := decodeEntries(s.opts.BackupFile, b)
	if err != nil {
		return 0, fmt.Errorf("backup might be corrupted: %w", err)
	}

	err = s.update(func([]Entry) ([]Entry, error) {
		return restored, nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Debug("restored mood log", "entries", len(restored), "from", s.opts.BackupFile)
	return len(restored), nil
}
