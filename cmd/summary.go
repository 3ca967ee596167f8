package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/journal"
	"github.com/ramanasai/moodmate/internal/output"
	"github.com/ramanasai/moodmate/internal/summary"
)

const recentDays = 7

// statsCmd prints totals for the whole log and activity over the last week.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Mood counts, completion rate and recent activity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		stats, err := st.Stats()
		if err != nil {
			return err
		}
		s := styles()
		w := out(cmd)

		fmt.Fprintln(w, s.Title.Render("Mood Statistics"))
		if stats.Total == 0 {
			fmt.Fprintln(w, s.Meta.Render("No entries yet. Try `moodmate log <mood>`."))
			return nil
		}
		fmt.Fprintf(w, "  Total entries:   %d\n", stats.Total)
		fmt.Fprintf(w, "  Completed tasks: %d (%.1f%%)\n", stats.Completed, stats.CompletionRate)
		fmt.Fprintf(w, "  Entries w/ note: %d\n\n", stats.NotesCount)

		fmt.Fprintln(w, s.Title.Render("By mood"))
		writeMoodCounts(w, s, stats.MoodFrequency(), stats.Total)

		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("Last %d days", recentDays)))
		days := stats.RecentDays(timeNow().In(cfg.Location()), recentDays)
		if len(days) == 0 {
			fmt.Fprintln(w, s.Meta.Render("  no activity"))
		}
		for _, d := range days {
			fmt.Fprintf(w, "  %s  %d entr%s\n", s.Date.Render(d.Day.Format("Mon 2006-01-02")), d.Count, plural(d.Count, "y", "ies"))
		}
		return nil
	},
}

// summaryCmd is the weekly report.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Weekly summary of moods, tasks and notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		entries, err := st.Recent(recentDays)
		if err != nil {
			return err
		}
		r := summary.Weekly(entries)
		s := styles()
		w := out(cmd)

		fmt.Fprintln(w, s.Title.Render("Weekly Summary"))
		if r.Empty {
			fmt.Fprintln(w, s.Meta.Render("Nothing logged in the last 7 days."))
			return nil
		}
		fmt.Fprintln(w, s.Title.Render("Moods"))
		writeMoodCounts(w, s, r.Moods, r.Total)
		fmt.Fprintf(w, "\nTasks completed: %d/%d (%.1f%%)\n", r.Completed, r.Total, r.CompletionRate)
		if len(r.Notes) > 0 {
			fmt.Fprintln(w, "\n"+s.Title.Render("Recent notes"))
			for _, n := range r.Notes {
				fmt.Fprintln(w, s.Note.Render("  💭 "+n))
			}
		}
		return nil
	},
}

func writeMoodCounts(w io.Writer, s *output.Styles, counts []journal.MoodCount, total int) {
	for _, mc := range counts {
		pct := float64(mc.Count) / float64(total) * 100
		label := s.ForMood(mc.Mood).Render(fmt.Sprintf("%-12s", mc.Mood))
		fmt.Fprintf(w, "  %s %3d  %s\n", label, mc.Count, s.Meta.Render(fmt.Sprintf("%.0f%%", pct)))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
