package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Entry is one record of the mood log.
type Entry struct {
	Timestamp Timestamp `json:"timestamp"`
	Mood      string    `json:"mood"`
	Task      string    `json:"task"`
	Note      *string   `json:"note"`
	Completed bool      `json:"completed"`
}

// HasNote reports whether the entry carries a non-empty note.
func (e Entry) HasNote() bool {
	return e.Note != nil && strings.TrimSpace(*e.Note) != ""
}

// NoteText returns the note or "" when there is none.
func (e Entry) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

// Indexed pairs an entry with its position in the log (0-based, oldest first).
type Indexed struct {
	Index int
	Entry
}

// Timestamp is written as RFC3339 with nanoseconds in local time. Older logs
// stored naive ISO-8601 strings without a zone; those are read as local time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Local().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp accepts the formats found in mood logs.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for i, layout := range timestampLayouts {
		var (
			tm  time.Time
			err error
		)
		if i == 0 {
			tm, err = time.Parse(layout, s)
		} else {
			tm, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// Changes describes a partial update. Nil fields are left untouched.
type Changes struct {
	Mood      *string
	Task      *string
	Note      *string
	ClearNote bool
	Completed *bool
}

// IsZero reports whether applying c would change nothing.
func (c Changes) IsZero() bool {
	return c.Mood == nil && c.Task == nil && c.Note == nil && !c.ClearNote && c.Completed == nil
}

// apply normalizes the same way Append does: mood lower-cased, text trimmed,
// blank notes dropped.
func (c Changes) apply(e *Entry) {
	if c.Mood != nil {
		e.Mood = strings.ToLower(strings.TrimSpace(*c.Mood))
	}
	if c.Task != nil {
		e.Task = strings.TrimSpace(*c.Task)
	}
	if c.ClearNote {
		e.Note = nil
	} else if c.Note != nil {
		if note := strings.TrimSpace(*c.Note); note != "" {
			e.Note = &note
		} else {
			e.Note = nil
		}
	}
	if c.Completed != nil {
		e.Completed = *c.Completed
	}
}

// IndexFromDisplay converts a 1-based, newest-first display number into a log index.
func IndexFromDisplay(n, total int) (int, error) {
	if n < 1 || n > total {
		return 0, fmt.Errorf("%w: #%d (have %d entries)", ErrIndexOutOfRange, n, total)
	}
	return total - n, nil
}

// DisplayNumber is the inverse of IndexFromDisplay.
func DisplayNumber(index, total int) int {
	return total - index
}
