package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/journal"
)

var (
	editMood      string
	editTask      string
	editNote      string
	editClearNote bool
	editCompleted bool

	doneAll   bool
	doneYes   bool
	deleteYes bool
)

var editCmd = &cobra.Command{
	Use:   "edit <#>",
	Short: "Edit an entry by its list number",
	Long: `Examples:
	moodmate edit 1 --note "felt better after"   # newest entry
	moodmate edit 3 --mood tired --task "Nap"
	moodmate edit 2 --clear-note
	moodmate edit 2 --completed=false            # reopen a task`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var c journal.Changes
		flags := cmd.Flags()
		if flags.Changed("mood") {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}
			m, ok := catalog.Lookup(editMood)
			if !ok {
				return unknownMood(catalog, editMood)
			}
			c.Mood = &m.Name
		}
		if flags.Changed("task") {
			task := strings.TrimSpace(editTask)
			c.Task = &task
		}
		if flags.Changed("note") {
			note := strings.TrimSpace(editNote)
			if note == "" {
				c.ClearNote = true
			} else {
				c.Note = &note
			}
		}
		if editClearNote {
			c.ClearNote = true
		}
		if flags.Changed("completed") {
			c.Completed = &editCompleted
		}
		if c.IsZero() {
			return fmt.Errorf("nothing to update: pass at least one of --mood, --task, --note, --clear-note, --completed")
		}

		st, idx, err := resolveEntry(args[0])
		if err != nil {
			return err
		}
		e, err := st.Edit(idx, c)
		if err != nil {
			return err
		}
		logger.Debug("entry edited", "index", idx)
		printEntry(cmd, "✓ Updated", args[0], e)
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done [#]",
	Short: "Mark a task completed (or every pending task with --all)",
	Args: func(cmd *cobra.Command, args []string) error {
		if doneAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if doneAll {
			st, err := openStore()
			if err != nil {
				return err
			}
			pending, err := st.Pending()
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(out(cmd), styles().Meta.Render("No pending tasks."))
				return nil
			}
			if !doneYes {
				q := fmt.Sprintf("Mark all %d pending task(s) as completed?", len(pending))
				ok, err := confirm(cmd.InOrStdin(), out(cmd), q)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out(cmd), styles().Meta.Render("Cancelled, no tasks were marked."))
					return nil
				}
			}
			n, err := st.CompleteAll()
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), styles().Success.Render(fmt.Sprintf("✓ Marked %d task(s) completed", n)))
			return nil
		}

		st, idx, err := resolveEntry(args[0])
		if err != nil {
			return err
		}
		before, err := st.Get(idx)
		if err != nil {
			return err
		}
		if before.Completed {
			fmt.Fprintf(out(cmd), "#%s is already completed.\n", args[0])
			return nil
		}
		e, err := st.Complete(idx)
		if err != nil {
			return err
		}
		printEntry(cmd, "✓ Completed", args[0], e)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <#>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry by its list number",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, idx, err := resolveEntry(args[0])
		if err != nil {
			return err
		}
		if !deleteYes {
			target, err := st.Get(idx)
			if err != nil {
				return err
			}
			q := fmt.Sprintf("Delete #%s (%s · %s)? This cannot be undone.",
				strings.TrimPrefix(args[0], "#"), target.Mood, target.Task)
			ok, err := confirm(cmd.InOrStdin(), out(cmd), q)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out(cmd), styles().Meta.Render("Delete cancelled."))
				return nil
			}
		}
		e, err := st.Delete(idx)
		if err != nil {
			return err
		}
		logger.Debug("entry deleted", "index", idx)
		printEntry(cmd, "✓ Deleted", args[0], e)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editMood, "mood", "m", "", "New mood")
	editCmd.Flags().StringVarP(&editTask, "task", "t", "", "New task")
	editCmd.Flags().StringVarP(&editNote, "note", "n", "", "New note (empty clears it)")
	editCmd.Flags().BoolVar(&editClearNote, "clear-note", false, "Remove the note")
	editCmd.Flags().BoolVar(&editCompleted, "completed", false, "Set completion (--completed=false to reopen)")
	editCmd.MarkFlagsMutuallyExclusive("note", "clear-note")

	doneCmd.Flags().BoolVarP(&doneAll, "all", "a", false, "Mark every pending task completed")
	doneCmd.Flags().BoolVarP(&doneYes, "yes", "y", false, "Do not ask for confirmation with --all")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

// resolveEntry turns a list number (#1 = newest) into a log index.
func resolveEntry(arg string) (*journal.Store, int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid entry number %q", arg)
	}
	st, err := openStore()
	if err != nil {
		return nil, 0, err
	}
	entries, err := st.All()
	if err != nil {
		return nil, 0, err
	}
	if len(entries) == 0 {
		return nil, 0, fmt.Errorf("%w #%d: %w", journal.ErrIndexOutOfRange, n, journal.ErrNoEntries)
	}
	idx, err := journal.IndexFromDisplay(n, len(entries))
	if err != nil {
		return nil, 0, err
	}
	return st, idx, nil
}

func printEntry(cmd *cobra.Command, verb, number string, e journal.Entry) {
	s := styles()
	status := "pending"
	if e.Completed {
		status = "completed"
	}
	fmt.Fprintf(out(cmd), "%s #%s  %s · %s %s\n",
		s.Success.Render(verb), strings.TrimPrefix(number, "#"), e.Mood, e.Task, s.Meta.Render("("+status+")"))
	if e.HasNote() {
		fmt.Fprintln(out(cmd), s.Note.Render("  💭 "+e.NoteText()))
	}
}
