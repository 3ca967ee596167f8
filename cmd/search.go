package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/output"
)

var (
	searchSince string
	searchLimit int
)

// searchCmd matches the query against mood, task and note, case-insensitively.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find entries whose mood, task or note contains the text",
	Long: `Examples:
	moodmate search walk
	moodmate search "deadline" --since "this week"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("empty search query")
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		entries, err := st.All()
		if err != nil {
			return err
		}
		var from time.Time
		if searchSince != "" {
			if from, err = output.ParseSince(searchSince, timeNow(), cfg.Location()); err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}
		}
		var rows []output.Row
		for _, r := range output.Rows(entries) {
			if r.Timestamp.Before(from) {
				continue
			}
			if matches(r, query) {
				rows = append(rows, r)
			}
			if searchLimit > 0 && len(rows) >= searchLimit {
				break
			}
		}

		s := styles()
		w := out(cmd)
		fmt.Fprintln(w, s.Title.Render("Search")+"  "+s.Meta.Render("query: ")+query)
		if len(rows) == 0 {
			fmt.Fprintln(w, s.Meta.Render("no results"))
			return nil
		}
		loc := cfg.Location()
		for _, r := range rows {
			fmt.Fprintf(w, "%s  %s  %s\n",
				s.ID.Render(fmt.Sprintf("#%d", r.Number)),
				s.Date.Render(r.Timestamp.In(loc).Format("2006-01-02 15:04")),
				highlight(s.ForMood(r.Mood), s.Highlight, r.Mood, query))
			fmt.Fprintln(w, "  "+highlight(s.Text, s.Highlight, r.Task, query))
			if r.HasNote() {
				fmt.Fprintln(w, "  💭 "+highlight(s.Note, s.Highlight, r.NoteText(), query))
			}
		}
		fmt.Fprintln(w, s.Meta.Render(fmt.Sprintf("%d match%s", len(rows), plural(len(rows), "", "es"))))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchSince, "since", "", "Only entries since this date (same forms as list --since)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Max results (0 for all)")
}

func matches(r output.Row, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Mood), q) ||
		strings.Contains(strings.ToLower(r.Task), q) ||
		strings.Contains(strings.ToLower(r.NoteText()), q)
}

// highlight renders text with base, and every case-insensitive occurrence of
// query with hl.
func highlight(base, hl lipgloss.Style, text, query string) string {
	lower, q := strings.ToLower(text), strings.ToLower(query)
	if q == "" || len(lower) != len(text) {
		return base.Render(text)
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, q)
		if i < 0 {
			if text != "" {
				b.WriteString(base.Render(text))
			}
			return b.String()
		}
		if i > 0 {
			b.WriteString(base.Render(text[:i]))
		}
		b.WriteString(hl.Render(text[i : i+len(q)]))
		text, lower = text[i+len(q):], lower[i+len(q):]
	}
}
