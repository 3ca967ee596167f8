package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/journal"
)

var (
	restoreYes   bool
	exportFormat string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the mood log to the backup file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		path, err := st.Backup()
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), styles().Success.Render("✓ Backup written to ")+path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the mood log with the backup file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		if !st.HasBackup() {
			return fmt.Errorf("%w at %s", journal.ErrNoBackup, st.BackupPath())
		}
		if !restoreYes {
			ok, err := confirm(cmd.InOrStdin(), out(cmd), "This will overwrite your current mood log. Continue?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out(cmd), styles().Meta.Render("Restore cancelled."))
				return nil
			}
		}
		n, err := st.Restore()
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), styles().Success.Render(fmt.Sprintf("✓ Restored %d entr%s from ", n, plural(n, "y", "ies")))+st.BackupPath())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the mood log as JSON, CSV or SQLite",
	Long: `Writes moodmate_export_YYYYMMDD_HHMMSS.<ext> to the export directory.

Examples:
	moodmate export                  # JSON
	moodmate export --format csv
	moodmate export --format sqlite  # query with sqlite3 afterwards`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := journal.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		path, err := st.Export(f)
		if errors.Is(err, journal.ErrNoEntries) {
			fmt.Fprintln(out(cmd), styles().Meta.Render("Nothing to export yet."))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), styles().Success.Render("✓ Exported to ")+path)
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Do not ask for confirmation")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, csv, sqlite")
}

// confirm asks a Y/N question; anything but y/yes is a no.
func confirm(in io.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s (Y/N): ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
