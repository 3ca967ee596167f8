package output

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	ID        lipgloss.Style
	Time      lipgloss.Style
	Date      lipgloss.Style
	Mood      lipgloss.Style
	Text      lipgloss.Style
	Note      lipgloss.Style
	Highlight lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style

	colored bool
}

// ForMood is the mood style tinted with the mood's color.
func (s *Styles) ForMood(mood string) lipgloss.Style {
	if !s.colored {
		return s.Mood
	}
	return s.Mood.Foreground(ColorForMood(mood))
}

// NewStyles returns the colored style set, or plain bold/unstyled text when
// color is false.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		bold := plain.Bold(true)
		return &Styles{
			Title: bold, Separator: plain, Meta: plain, ID: plain, Time: plain,
			Date: plain, Mood: bold, Text: plain, Note: plain, Highlight: bold,
			Success: plain, Error: plain, Warning: plain,
		}
	}
	return &Styles{
		colored:   true,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		ID:        lipgloss.NewStyle().Faint(true),
		Time:      lipgloss.NewStyle().Faint(true),
		Date:      lipgloss.NewStyle().Faint(true),
		Mood:      lipgloss.NewStyle().Bold(true),
		Text:      lipgloss.NewStyle(),
		Note:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#CBA6F7")),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	}
}

// ColorForMood groups moods into warm, calm and heavy palettes.
func ColorForMood(mood string) lipgloss.Color {
	switch mood {
	case "happy", "inspired", "motivated":
		return lipgloss.Color("#A6E3A1") // green
	case "tired", "bored":
		return lipgloss.Color("#89B4FA") // blue
	case "anxious", "stressed", "overwhelmed":
		return lipgloss.Color("#FAB387") // peach
	case "sad":
		return lipgloss.Color("#94E2D5") // teal
	case "confused":
		return lipgloss.Color("#F5C2E7") // pink
	default:
		return lipgloss.Color("#F9E2AF") // yellow
	}
}
