package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/journal"
	"github.com/ramanasai/moodmate/internal/mood"
)

var (
	logTask     string
	logCategory string
	logNote     string
	logPick     bool

	suggestCategory string
	suggestCount    int
)

var logCmd = &cobra.Command{
	Use:   "log <mood>",
	Short: "Log a mood with a suggested (or your own) task",
	Long: `Examples:
	moodmate log tired                             # first of the suggested tasks
	moodmate log bored --category creative --pick  # choose from suggestions
	moodmate log happy --task "Call mum" --note "sunny day"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		m, ok := catalog.Lookup(args[0])
		if !ok {
			return unknownMood(catalog, args[0])
		}

		task := strings.TrimSpace(logTask)
		if task == "" {
			tasks, err := catalog.Suggest(m.Name, logCategory, cfg.Mood.Suggestions)
			if err != nil {
				return err
			}
			task = tasks[0]
			if logPick {
				if task, err = pickTask(cmd.InOrStdin(), out(cmd), tasks); err != nil {
					return err
				}
			}
		}
		return saveEntry(cmd, m, task, logNote)
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick <mood>",
	Short: "Log a mood with a random task, no questions asked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		m, ok := catalog.Lookup(args[0])
		if !ok {
			return unknownMood(catalog, args[0])
		}
		task, err := catalog.Random(m.Name)
		if err != nil {
			return err
		}
		return saveEntry(cmd, m, task, "")
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <mood>",
	Short: "Show task suggestions for a mood without logging",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		m, ok := catalog.Lookup(args[0])
		if !ok {
			return unknownMood(catalog, args[0])
		}
		n := suggestCount
		if n <= 0 {
			n = cfg.Mood.Suggestions
		}
		tasks, err := catalog.Suggest(m.Name, suggestCategory, n)
		if err != nil {
			return err
		}
		s := styles()
		fmt.Fprintln(out(cmd), s.Title.Render(m.Label())+"  "+s.Meta.Render(m.Reaction))
		for i, t := range tasks {
			fmt.Fprintf(out(cmd), "  %s %s\n", s.ID.Render(fmt.Sprintf("%d.", i+1)), t)
		}
		return nil
	},
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List the moods and their activity categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := loadCatalog()
		if err != nil {
			return err
		}
		s := styles()
		for _, m := range catalog.Moods() {
			cats := make([]string, len(m.Categories))
			for i, c := range m.Categories {
				cats[i] = c.Name
			}
			fmt.Fprintf(out(cmd), "%-16s %s\n", s.Title.Render(m.Label()), s.Meta.Render(strings.Join(cats, ", ")))
		}
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logTask, "task", "t", "", "Your own task instead of a suggestion")
	logCmd.Flags().StringVarP(&logCategory, "category", "c", "", "Activity category to suggest from")
	logCmd.Flags().StringVarP(&logNote, "note", "n", "", "Optional note")
	logCmd.Flags().BoolVarP(&logPick, "pick", "p", false, "Choose among the suggestions interactively")

	suggestCmd.Flags().StringVarP(&suggestCategory, "category", "c", "", "Activity category to suggest from")
	suggestCmd.Flags().IntVarP(&suggestCount, "count", "n", 0, "Number of suggestions (default from config)")
}

func unknownMood(catalog *mood.Catalog, name string) error {
	return fmt.Errorf("%w %q (try one of: %s)", mood.ErrUnknownMood, name, strings.Join(catalog.Names(), ", "))
}

// pickTask prints numbered suggestions and reads a number, or free text used
// as the task itself.
func pickTask(in io.Reader, w io.Writer, tasks []string) (string, error) {
	s := styles()
	for i, t := range tasks {
		fmt.Fprintf(w, "  %s %s\n", s.ID.Render(fmt.Sprintf("%d.", i+1)), t)
	}
	fmt.Fprint(w, "Pick a number or type your own task: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read choice: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no task chosen")
	}
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(tasks) {
			return "", fmt.Errorf("choice %d out of range 1-%d", n, len(tasks))
		}
		return tasks[n-1], nil
	}
	return line, nil
}

func saveEntry(cmd *cobra.Command, m mood.Mood, task, note string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	var notePtr *string
	if strings.TrimSpace(note) != "" {
		notePtr = &note
	}
	e, err := st.Append(m.Name, task, notePtr)
	if err != nil {
		return err
	}
	printSaved(cmd, m, e)
	return nil
}

func printSaved(cmd *cobra.Command, m mood.Mood, e journal.Entry) {
	s := styles()
	fmt.Fprintln(out(cmd), s.Title.Render(m.Label())+"  "+m.Reaction)
	fmt.Fprintln(out(cmd), s.Success.Render("✓ Saved")+"  "+e.Task)
	if e.HasNote() {
		fmt.Fprintln(out(cmd), s.Note.Render("  💭 "+e.NoteText()))
	}
}
