package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/config"
	"github.com/ramanasai/moodmate/internal/journal"
	"github.com/ramanasai/moodmate/internal/mood"
	"github.com/ramanasai/moodmate/internal/notify"
	"github.com/ramanasai/moodmate/internal/output"
	"github.com/ramanasai/moodmate/internal/schedule"
	"github.com/ramanasai/moodmate/internal/ui"
	"github.com/ramanasai/moodmate/internal/version"
)

var (
	logFileFlag string
	verbose     bool
	noColor     bool

	cfg config.Config

	// logger writes operational messages to stderr; results go to stdout.
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
)

var rootCmd = &cobra.Command{
	Use:   "moodmate",
	Short: "Log how you feel and get something to do about it",
	Long: `MoodMate keeps a small JSON journal of moods and the tasks suggested for them.

Run without arguments for the interactive check-in, or use the subcommands:
	moodmate log tired --note "long day"     # suggested task for a mood
	moodmate quick happy                     # random task, no questions
	moodmate list --pending                  # what is still open
	moodmate done 1                          # complete the newest entry
	moodmate timer --work 25 --break 5       # focus/break countdown`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runCheckin,
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd.Version = version.Short()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Mood log file (default ~/.local/share/moodmate/moodmate_log.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		logCmd, quickCmd, suggestCmd, moodsCmd,
		listCmd, searchCmd, editCmd, doneCmd, deleteCmd,
		statsCmd, summaryCmd, timerCmd,
		backupCmd, restoreCmd, exportCmd,
		tuiCmd, versionCmd,
	)
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	if cfg.Reminder.Enabled && os.Getenv("MOODMATE_NO_REMINDER") != "1" {
		go schedule.RunConfigured(cmd.Context(), cfg, remind)
		logger.Debug("check-in reminder scheduled", "next", schedule.NextAt(timeNow(), cfg))
	}
	return nil
}

func remind() {
	pending := 0
	if st, err := openStore(); err == nil {
		if p, err := st.Pending(); err == nil {
			pending = len(p)
		}
	}
	title, msg := notify.FormatCheckIn(pending)
	if err := notify.Info(title, msg); err != nil {
		logger.Warn("reminder notification failed", "err", err)
	}
}

var timeNow = time.Now

func colorDisabled() bool {
	return noColor || os.Getenv("NO_COLOR") != "" || ui.Monochrome(cfg.Theme)
}

func openStore() (*journal.Store, error) {
	storage, err := cfg.Storage.Resolve(logFileFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve storage paths: %w", err)
	}
	return journal.Open(journal.Options{
		LogFile:    storage.LogFile,
		BackupFile: storage.BackupFile,
		ExportDir:  storage.ExportDir,
		MaxEntries: storage.MaxEntries,
		Logger:     logger,
	})
}

func loadCatalog() (*mood.Catalog, error) {
	return mood.Load(cfg.Mood.Catalog)
}

func newRenderer(format output.Format, catalog *mood.Catalog) *output.Renderer {
	rc := output.DefaultRenderConfig()
	rc.Format = format
	rc.Color = !colorDisabled()
	rc.Location = cfg.Location()
	if catalog != nil {
		rc.Emoji = make(map[string]string)
		for _, m := range catalog.Moods() {
			rc.Emoji[m.Name] = m.Emoji
		}
	}
	return output.NewRenderer(rc)
}

func styles() *output.Styles {
	return output.NewStyles(!colorDisabled())
}

func theme() ui.Theme {
	if colorDisabled() {
		return ui.PlainTheme
	}
	t, err := ui.ThemeByName(cfg.Theme)
	if err != nil {
		logger.Warn("using default theme", "err", err)
	}
	return t
}

func runCheckin(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	save := func(d ui.Draft) (journal.Entry, error) {
		return st.Append(d.Mood, d.Task, d.Note)
	}
	e, ok, err := ui.Run(catalog, cfg.Mood.Suggestions, save, theme())
	if err != nil {
		return err
	}
	if ok {
		logger.Debug("entry saved", "mood", e.Mood, "task", e.Task)
	}
	return nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
