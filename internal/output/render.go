// Package output renders mood log entries for the terminal and for scripts.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ramanasai/moodmate/internal/journal"
)

// Format selects how an entry list is rendered.
type Format string

const (
	FormatDefault Format = "default"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatCompact Format = "compact"
	FormatQuiet   Format = "quiet"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatCompact, FormatQuiet:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (default, table, json, csv, compact, quiet)", s)
	}
}

type RenderConfig struct {
	Format   Format
	Width    int
	Color    bool
	Location *time.Location
	// Emoji maps mood names to an emoji shown next to the mood.
	Emoji map[string]string
}

// DefaultRenderConfig sizes output from $COLUMNS.
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		Color:    true,
		Location: time.Local,
	}
}

// Row is an entry with its display number (#1 = newest) and log index.
type Row struct {
	Number int `json:"number"`
	Index  int `json:"index"`
	journal.Entry
}

// Rows numbers entries newest first, the order they are listed in.
func Rows(entries []journal.Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		rows = append(rows, Row{
			Number: journal.DisplayNumber(i, len(entries)),
			Index:  i,
			Entry:  entries[i],
		})
	}
	return rows
}

type List struct {
	Title      string            `json:"-"`
	Rows       []Row             `json:"entries"`
	Total      int               `json:"total"`
	Page       int               `json:"page,omitempty"`
	PerPage    int               `json:"per_page,omitempty"`
	TotalPages int               `json:"total_pages,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
}

type Renderer struct {
	config *RenderConfig
	styles *Styles
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	return &Renderer{config: config, styles: NewStyles(config.Color)}
}

func (r *Renderer) Styles() *Styles { return r.styles }

func (r *Renderer) Render(list *List) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list), nil
	case FormatCompact:
		return r.renderCompact(list), nil
	case FormatQuiet:
		return r.renderQuiet(list), nil
	default:
		return r.renderDefault(list), nil
	}
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 100)))
}

func (r *Renderer) renderDefault(list *List) string {
	var b strings.Builder

	title := list.Title
	if title == "" {
		title = "Mood Log"
	}
	b.WriteString(r.styles.Title.Render(title))
	for _, k := range []string{"since", "mood", "status"} {
		if v := list.Filters[k]; v != "" {
			b.WriteString("  " + r.styles.Meta.Render(k+": "+v))
		}
	}
	b.WriteString("\n" + r.rule() + "\n")

	if len(list.Rows) == 0 {
		b.WriteString(r.styles.Meta.Render("no entries") + "\n")
		return b.String()
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		b.WriteString(r.styles.Meta.Render(p.FormatSummary()) + "\n" + r.rule() + "\n")
	}

	for _, row := range list.Rows {
		b.WriteString(r.RenderRow(row))
		b.WriteString(r.rule() + "\n")
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		if nav := p.FormatNavigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(nav) + "\n")
		}
	}
	return b.String()
}

// RenderRow renders one entry as a meta line followed by task and note.
func (r *Renderer) RenderRow(row Row) string {
	var b strings.Builder
	ts := row.Timestamp.In(r.config.Location)

	meta := []string{
		r.styles.ID.Render(fmt.Sprintf("#%d", row.Number)),
		r.styles.Date.Render(ts.Format("2006-01-02 15:04")),
		r.MoodLabel(row.Mood),
		r.Status(row.Completed),
	}
	b.WriteString(strings.Join(meta, "  ") + "\n")
	b.WriteString(r.styles.Text.Render("  "+row.Task) + "\n")
	if row.HasNote() {
		b.WriteString(r.styles.Note.Render("  💭 "+row.NoteText()) + "\n")
	}
	return b.String()
}

func (r *Renderer) MoodLabel(mood string) string {
	label := strings.ToUpper(mood[:min(1, len(mood))]) + mood[min(1, len(mood)):]
	if e := r.config.Emoji[mood]; e != "" {
		label += " " + e
	}
	return r.styles.ForMood(mood).Render(label)
}

func (r *Renderer) Status(completed bool) string {
	if completed {
		return r.styles.Success.Render("✓ completed")
	}
	return r.styles.Warning.Render("○ pending")
}

func (r *Renderer) renderJSON(list *List) (string, error) {
	if list.Rows == nil {
		list.Rows = []Row{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Renderer) renderCSV(list *List) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"number", "timestamp", "mood", "task", "note", "completed"})
	for _, row := range list.Rows {
		_ = w.Write([]string{
			strconv.Itoa(row.Number),
			row.Timestamp.In(r.config.Location).Format(time.RFC3339),
			row.Mood,
			row.Task,
			row.NoteText(),
			strconv.FormatBool(row.Completed),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return b.String(), nil
}

func (r *Renderer) renderTable(list *List) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Separator).
		Headers("#", "When", "Mood", "Task", "Done").
		Width(min(r.config.Width, 120))

	for _, row := range list.Rows {
		done := ""
		if row.Completed {
			done = "✓"
		}
		t.Row(
			strconv.Itoa(row.Number),
			row.Timestamp.In(r.config.Location).Format("01-02 15:04"),
			row.Mood,
			truncate(oneLine(row.Task), 60),
			done,
		)
	}
	return t.String() + "\n"
}

func (r *Renderer) renderCompact(list *List) string {
	var b strings.Builder
	for _, row := range list.Rows {
		mark := "○"
		if row.Completed {
			mark = "✓"
		}
		fmt.Fprintf(&b, "%s %s %s %s %s\n",
			r.styles.ID.Render(fmt.Sprintf("#%-3d", row.Number)),
			r.styles.Time.Render(row.Timestamp.In(r.config.Location).Format("01-02 15:04")),
			mark,
			r.styles.ForMood(row.Mood).Render(row.Mood),
			truncate(oneLine(row.Task), 80))
	}
	return b.String()
}

// renderQuiet prints only tasks, one per line, for scripting.
func (r *Renderer) renderQuiet(list *List) string {
	var b strings.Builder
	for _, row := range list.Rows {
		b.WriteString(oneLine(row.Task) + "\n")
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
