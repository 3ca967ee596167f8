package journal

import (
	"math"
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Stats aggregates the whole log.
type Stats struct {
	Total          int
	Completed      int
	CompletionRate float64 // percent, 0 for an empty log
	NotesCount     int
	ByMood         map[string]int
	ByDay          map[string]int // keyed by local date, YYYY-MM-DD
}

type MoodCount struct {
	Mood  string
	Count int
}

type DayCount struct {
	Day   time.Time
	Count int
}

func (s *Store) Stats() (Stats, error) {
	entries, err := s.All()
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(entries), nil
}

func ComputeStats(entries []Entry) Stats {
	st := Stats{
		Total:  len(entries),
		ByMood: map[string]int{},
		ByDay:  map[string]int{},
	}
	for _, e := range entries {
		st.ByMood[e.Mood]++
		st.ByDay[e.Timestamp.Local().Format(dayLayout)]++
		if e.Completed {
			st.Completed++
		}
		if e.HasNote() {
			st.NotesCount++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total) * 100
	}
	return st
}

// MoodFrequency lists moods by count, most frequent first; ties by name.
func (st Stats) MoodFrequency() []MoodCount {
	return SortMoodCounts(st.ByMood)
}

func SortMoodCounts(counts map[string]int) []MoodCount {
	out := make([]MoodCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, MoodCount{Mood: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mood < out[j].Mood
	})
	return out
}

// RecentDays returns per-day counts for days between now-days and now
// inclusive, newest first.
func (st Stats) RecentDays(now time.Time, days int) []DayCount {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	var out []DayCount
	for key, n := range st.ByDay {
		d, err := time.ParseInLocation(dayLayout, key, loc)
		if err != nil {
			continue
		}
		age := int(math.Round(today.Sub(d).Hours() / 24))
		if age < 0 || age > days {
			continue
		}
		out = append(out, DayCount{Day: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out
}
