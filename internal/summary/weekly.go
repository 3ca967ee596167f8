// Package summary builds the weekly mood and activity report.
package summary

import (
	"github.com/ramanasai/moodmate/internal/journal"
)

const (
	maxNotes   = 3
	noteLength = 70
)

type Report struct {
	Empty          bool
	Total          int
	Moods          []journal.MoodCount
	Completed      int
	CompletionRate float64
	// Notes holds up to three of the most recent notes, oldest first,
	// truncated to 70 characters.
	Notes []string
}

// Weekly summarises entries, typically those of the last seven days.
func Weekly(entries []journal.Entry) Report {
	if len(entries) == 0 {
		return Report{Empty: true}
	}
	st := journal.ComputeStats(entries)
	r := Report{
		Total:          st.Total,
		Moods:          st.MoodFrequency(),
		Completed:      st.Completed,
		CompletionRate: st.CompletionRate,
	}

	var notes []string
	for _, e := range entries {
		if e.HasNote() {
			notes = append(notes, e.NoteText())
		}
	}
	if len(notes) > maxNotes {
		notes = notes[len(notes)-maxNotes:]
	}
	for _, n := range notes {
		r.Notes = append(r.Notes, Truncate(n, noteLength))
	}
	return r
}

// Truncate cuts s to n runes and appends "..." when it was longer.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
