package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/journal"
	"github.com/ramanasai/moodmate/internal/output"
)

var (
	since       string
	preset      string
	listMood    string
	pendingOnly bool
	limit       int
	page        int
	format      string
	watch       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged entries, newest first",
	Long: `Entries are numbered from the newest (#1); use those numbers with
edit, done and delete.

Examples:
	moodmate list                          # everything, 20 per page
	moodmate list --pending                # tasks still open
	moodmate list --since yesterday        # since midnight yesterday
	moodmate list --preset week --mood sad
	moodmate list --format json --limit 0  # all entries as JSON
	moodmate list --watch                  # redraw when the log changes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		from, to, err := listWindow()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		renderer := newRenderer(f, catalog)

		render := func() error {
			entries, err := st.All()
			if err != nil {
				return err
			}
			list := buildList(entries, from, to)
			s, err := renderer.Render(list)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), s)
			return nil
		}
		if err := render(); err != nil {
			return err
		}
		if !watch {
			return nil
		}

		logger.Info("watching mood log, Ctrl+C to stop", "path", st.Path())
		return st.Watch(cmd.Context(), func() {
			fmt.Fprint(out(cmd), "\033[H\033[2J")
			if err := render(); err != nil {
				logger.Error("refresh failed", "err", err)
			}
		})
	},
}

func init() {
	listCmd.Flags().StringVar(&since, "since", "", "Start of the window: today, yesterday, '3 days', 'this week', 2025-01-15")
	listCmd.Flags().StringVar(&preset, "preset", "", "Named window: "+strings.Join(output.Presets, ", "))
	listCmd.Flags().StringVar(&listMood, "mood", "", "Only entries with this mood")
	listCmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only entries not yet completed")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Entries per page (0 shows all)")
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().StringVarP(&format, "format", "f", "default", "Output format: default, table, json, csv, compact, quiet")
	listCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and redraw when the log changes")
	listCmd.MarkFlagsMutuallyExclusive("since", "preset")
}

func listWindow() (from, to time.Time, err error) {
	loc := cfg.Location()
	switch {
	case preset != "":
		return output.Preset(preset, timeNow(), loc)
	case since != "":
		from, err = output.ParseSince(since, timeNow(), loc)
		if err != nil {
			return from, to, fmt.Errorf("invalid --since: %w", err)
		}
	}
	return from, to, nil
}

// buildList filters the whole log while keeping display numbers relative to
// it, so a filtered #3 is still #3 for edit/done/delete.
func buildList(entries []journal.Entry, from, to time.Time) *output.List {
	moodFilter := strings.ToLower(strings.TrimSpace(listMood))
	var rows []output.Row
	for _, r := range output.Rows(entries) {
		if !from.IsZero() && r.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !r.Timestamp.Before(to) {
			continue
		}
		if pendingOnly && r.Completed {
			continue
		}
		if moodFilter != "" && r.Mood != moodFilter {
			continue
		}
		rows = append(rows, r)
	}

	p := output.NewPagination(len(rows), limit, page)
	start, end := p.Bounds()

	list := &output.List{
		Title:      "Mood Log",
		Rows:       rows[start:end],
		Total:      len(rows),
		Page:       p.Current,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
		Filters:    map[string]string{},
	}
	if pendingOnly {
		list.Title = "Pending Tasks"
		list.Filters["status"] = "pending"
	}
	if !from.IsZero() {
		list.Filters["since"] = from.In(cfg.Location()).Format("2006-01-02 15:04")
	}
	if moodFilter != "" {
		list.Filters["mood"] = moodFilter
	}
	return list
}
