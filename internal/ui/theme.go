package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("unknown theme")

type Theme struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Reaction lipgloss.Style
	Border   lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
}

var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Prompt:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")),
	Item:     lipgloss.NewStyle().PaddingLeft(2),
	Selected: lipgloss.NewStyle().PaddingLeft(0).Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
	Reaction: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#F2CDCD")),
	Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6C7086")).Padding(1, 2),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
}

// PlainTheme drops colors and borders for --no-color.
var PlainTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true),
	Prompt:   lipgloss.NewStyle().Bold(true),
	Item:     lipgloss.NewStyle().PaddingLeft(2),
	Selected: lipgloss.NewStyle().Bold(true),
	Reaction: lipgloss.NewStyle(),
	Border:   lipgloss.NewStyle(),
	Hint:     lipgloss.NewStyle(),
	Error:    lipgloss.NewStyle().Bold(true),
	Success:  lipgloss.NewStyle().Bold(true),
}

var themes = map[string]Theme{
	"default": DefaultTheme,
	"plain":   PlainTheme,
	"mono":    PlainTheme,
}

// ThemeByName resolves the config "theme" key. Unknown names return the
// default theme together with ErrUnknownTheme.
func ThemeByName(name string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "default"
	}
	t, ok := themes[key]
	if !ok {
		return DefaultTheme, fmt.Errorf("%w %q (want default, plain or mono)", ErrUnknownTheme, name)
	}
	return t, nil
}

// Monochrome reports whether the named theme renders without color.
func Monochrome(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "mono":
		return true
	}
	return false
}
