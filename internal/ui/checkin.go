// Package ui is the interactive check-in: pick a mood, narrow by category,
// choose or write a task, add an optional note, save.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramanasai/moodmate/internal/journal"
	"github.com/ramanasai/moodmate/internal/mood"
)

type step int

const (
	stepMood step = iota
	stepCategory
	stepTask
	stepCustomTask
	stepNote
	stepSaving
	stepDone
)

const (
	anyCategory = "anything"
	ownTask     = "✏  write my own"
)

// Draft is what the check-in collected.
type Draft struct {
	Mood string
	Task string
	Note *string
}

// SaveFunc persists a finished draft.
type SaveFunc func(Draft) (journal.Entry, error)

type savedMsg struct {
	entry journal.Entry
	err   error
}

type Model struct {
	catalog     *mood.Catalog
	suggestions int
	save        SaveFunc
	theme       Theme

	step     step
	cursor   int
	mood     mood.Mood
	category string
	tasks    []string
	task     string

	taskInput textinput.Model
	noteInput textinput.Model

	saved    *journal.Entry
	err      error
	quitting bool
}

func NewModel(catalog *mood.Catalog, suggestions int, save SaveFunc, theme Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "What will you do?"
	ti.CharLimit = 200
	ti.Width = 50

	ni := textinput.New()
	ni.Placeholder = "Optional note (enter to skip)"
	ni.CharLimit = 500
	ni.Width = 50

	if suggestions <= 0 {
		suggestions = mood.DefaultSuggestions
	}
	return Model{
		catalog:     catalog,
		suggestions: suggestions,
		save:        save,
		theme:       theme,
		taskInput:   ti,
		noteInput:   ni,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Saved returns the stored entry once the flow has completed.
func (m Model) Saved() (journal.Entry, bool) {
	if m.saved == nil {
		return journal.Entry{}, false
	}
	return *m.saved, true
}

func (m Model) Err() error { return m.err }

func (m Model) options() []string {
	switch m.step {
	case stepMood:
		moods := m.catalog.Moods()
		opts := make([]string, len(moods))
		for i, md := range moods {
			opts[i] = md.Label()
		}
		return opts
	case stepCategory:
		opts := make([]string, 0, len(m.mood.Categories)+1)
		for _, c := range m.mood.Categories {
			opts = append(opts, c.Name)
		}
		return append(opts, anyCategory)
	case stepTask:
		return append(append([]string(nil), m.tasks...), ownTask)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.step = stepDone
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.saved = &msg.entry
		}
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.step {
		case stepCustomTask:
			return m.updateCustomTask(msg)
		case stepNote:
			return m.updateNote(msg)
		case stepSaving, stepDone:
			return m, nil
		}
		return m.updateChoice(msg.String())
	}
	return m, nil
}

func (m Model) updateChoice(k string) (tea.Model, tea.Cmd) {
	opts := m.options()
	switch k {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case "esc":
		m = m.back()
	case "r":
		if m.step == stepTask {
			m.err = m.reshuffle()
		}
	case "enter":
		return m.choose(opts)
	}
	return m, nil
}

func (m Model) back() Model {
	switch m.step {
	case stepCategory:
		m.step = stepMood
	case stepTask:
		m.step = stepCategory
	}
	m.cursor = 0
	return m
}

func (m *Model) reshuffle() error {
	cat := m.category
	if cat == anyCategory {
		cat = ""
	}
	tasks, err := m.catalog.Suggest(m.mood.Name, cat, m.suggestions)
	if err != nil {
		return err
	}
	m.tasks = tasks
	m.cursor = 0
	return nil
}

func (m Model) choose(opts []string) (tea.Model, tea.Cmd) {
	if m.cursor >= len(opts) {
		return m, nil
	}
	switch m.step {
	case stepMood:
		m.mood = m.catalog.Moods()[m.cursor]
		m.step = stepCategory
		m.cursor = 0
	case stepCategory:
		m.category = opts[m.cursor]
		if m.err = m.reshuffle(); m.err != nil {
			return m, nil
		}
		m.step = stepTask
	case stepTask:
		if opts[m.cursor] == ownTask {
			m.step = stepCustomTask
			cmd := m.taskInput.Focus()
			return m, cmd
		}
		m.task = opts[m.cursor]
		m.step = stepNote
		cmd := m.noteInput.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateCustomTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.taskInput.Blur()
		m.step = stepTask
		return m, nil
	case "enter":
		task := strings.TrimSpace(m.taskInput.Value())
		if task == "" {
			return m, nil
		}
		m.task = task
		m.taskInput.Blur()
		m.step = stepNote
		cmd := m.noteInput.Focus()
		return m, cmd
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.noteInput.Blur()
		m.step = stepTask
		return m, nil
	case "enter":
		m.noteInput.Blur()
		d := Draft{Mood: m.mood.Name, Task: m.task}
		if note := strings.TrimSpace(m.noteInput.Value()); note != "" {
			d.Note = &note
		}
		m.step = stepSaving
		save := m.save
		return m, func() tea.Msg {
			e, err := save(d)
			return savedMsg{entry: e, err: err}
		}
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("MoodMate check-in") + "\n\n")

	switch m.step {
	case stepMood:
		b.WriteString(t.Prompt.Render("How are you feeling?") + "\n\n")
		m.renderOptions(&b)
	case stepCategory:
		b.WriteString(t.Reaction.Render(m.mood.Label()+"  "+m.mood.Reaction) + "\n\n")
		b.WriteString(t.Prompt.Render("What kind of activity?") + "\n\n")
		m.renderOptions(&b)
	case stepTask:
		b.WriteString(t.Prompt.Render("Pick something to do") + "\n\n")
		m.renderOptions(&b)
	case stepCustomTask:
		b.WriteString(t.Prompt.Render("Your task") + "\n\n" + m.taskInput.View() + "\n")
	case stepNote:
		b.WriteString(t.Prompt.Render("Task: ") + m.task + "\n\n" + m.noteInput.View() + "\n")
	case stepSaving:
		b.WriteString(t.Hint.Render("Saving…") + "\n")
	case stepDone:
		if m.saved != nil {
			b.WriteString(t.Success.Render("✓ Saved: ") + m.saved.Mood + " · " + m.saved.Task + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + t.Error.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + t.Hint.Render(m.hint()))
	return t.Border.Render(b.String()) + "\n"
}

func (m Model) renderOptions(b *strings.Builder) {
	for i, o := range m.options() {
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render("› "+o) + "\n")
		} else {
			b.WriteString(m.theme.Item.Render(o) + "\n")
		}
	}
}

func (m Model) hint() string {
	switch m.step {
	case stepMood:
		return "↑/↓ move · enter select · q quit"
	case stepTask:
		return "↑/↓ move · enter select · r reshuffle · esc back · q quit"
	case stepCustomTask, stepNote:
		return "enter confirm · esc back · ctrl+c quit"
	case stepSaving, stepDone:
		return ""
	}
	return "↑/↓ move · enter select · esc back · q quit"
}

// Run drives the check-in on the terminal and returns the saved entry, if any.
func Run(catalog *mood.Catalog, suggestions int, save SaveFunc, theme Theme) (journal.Entry, bool, error) {
	final, err := tea.NewProgram(NewModel(catalog, suggestions, save, theme)).Run()
	if err != nil {
		return journal.Entry{}, false, fmt.Errorf("check-in: %w", err)
	}
	m := final.(Model)
	if m.err != nil {
		return journal.Entry{}, false, m.err
	}
	e, ok := m.Saved()
	return e, ok, nil
}
