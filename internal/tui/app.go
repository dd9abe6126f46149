package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/pdxmph/todo-tui/internal/todo"
)

// Store loads and saves the task texts
type Store interface {
	Load() []string
	Save(tasks []string) error
}

// Model represents the main application state
type Model struct {
	list     *todo.List
	input    textinput.Model
	keys     keyMap
	help     help.Model
	logger   *log.Logger
	selected int
	width    int
	height   int
	err      error
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	editingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange for the row being edited

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("28")).
			Padding(0, 1)

	cancelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("241")).
			Padding(0, 1)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// New creates a new application model from the stored tasks
func New(store Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}

	tasks := store.Load()
	logger.Info("loaded tasks", "count", len(tasks))

	ti := textinput.New()
	ti.Placeholder = todo.Placeholder
	ti.Width = 40
	ti.Prompt = "> "
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	ti.Focus()

	return Model{
		list:   todo.New(store, tasks),
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
		logger: logger,
	}
}

// List returns the underlying task list
func (m Model) List() *todo.List {
	return m.list
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.width > 10 {
			m.input.Width = m.width - 10 // account for border, padding and prompt
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			editing := m.list.Editing()
			changed, err := m.list.Submit()
			m.setErr("saving tasks", err)
			if changed && !editing {
				m.selected = m.list.Len() - 1
				m.logger.Debug("added task", "count", m.list.Len())
			}
			m.syncInput()
			return m, nil

		case key.Matches(msg, m.keys.Cancel):
			if m.list.Editing() {
				m.list.CancelEdit()
				m.syncInput()
			}
			m.err = nil
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.selected < m.list.Len()-1 {
				m.selected++
			}
			return m, nil

		case key.Matches(msg, m.keys.Edit):
			if m.list.Len() == 0 {
				return m, nil
			}
			if err := m.list.BeginEdit(m.selected); err != nil {
				m.setErr("editing task", err)
				return m, nil
			}
			m.syncInput()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if m.list.Len() == 0 {
				return m, nil
			}
			m.setErr("deleting task", m.list.Delete(m.selected))
			m.selected = m.ensureValidSelection()
			m.syncInput()
			return m, nil
		}
	}

	// Everything else goes to the text input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.list.SetInput(m.input.Value())
	return m, cmd
}

// setErr records err for the status line and logs it
func (m *Model) setErr(action string, err error) {
	if err == nil {
		m.err = nil
		return
	}
	m.logger.Error(action, "err", err)
	m.err = fmt.Errorf("%s: %w", action, err)
}

// syncInput makes the text input show the draft or the edit value
func (m *Model) syncInput() {
	m.input.SetValue(m.list.InputValue())
	m.input.CursorEnd()
}

// ensureValidSelection ensures the current selection is within bounds
func (m Model) ensureValidSelection() int {
	n := m.list.Len()
	if n == 0 {
		return 0
	}
	if m.selected >= n {
		return n - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}

// View renders the UI
func (m Model) View() string {
	v := todo.Render(m.list)

	var lines []string
	lines = append(lines, titleStyle.Render("My To-Do List"))
	lines = append(lines, "")
	lines = append(lines, m.input.View())
	lines = append(lines, m.renderButtons(v))
	lines = append(lines, "")
	lines = append(lines, m.renderRows(v)...)

	if m.err != nil {
		lines = append(lines, "")
		lines = append(lines, errorStyle.Render("Error: "+m.err.Error()))
	}

	content := borderStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, content, " "+m.help.View(m.keys))
}

// renderButtons renders the submit button and, while editing, the cancel button
func (m Model) renderButtons(v todo.View) string {
	buttons := buttonStyle.Render(v.SubmitLabel)
	if v.ShowCancel {
		buttons += "  " + cancelStyle.Render(todo.CancelLabel)
	}
	return buttons
}

// renderRows renders one line per task
func (m Model) renderRows(v todo.View) []string {
	if len(v.Rows) == 0 {
		return []string{actionStyle.Render("No tasks yet")}
	}

	textWidth := 0
	for _, r := range v.Rows {
		if w := lipgloss.Width(r.Text); w > textWidth {
			textWidth = w
		}
	}

	actions := actionStyle.Render(fmt.Sprintf("[%s] [%s]", todo.EditActionLabel, todo.DeleteActionLabel))

	lines := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		text := r.Text + strings.Repeat(" ", textWidth-lipgloss.Width(r.Text))
		line := fmt.Sprintf("%2d. %s", r.Index+1, text)

		switch {
		case r.Index == m.selected:
			line = selectedStyle.Render(line)
		case r.Editing:
			line = editingStyle.Render(line)
		}
		if r.Editing {
			line += editingStyle.Render(" (editing)")
		}
		lines = append(lines, line+"  "+actions)
	}
	return lines
}
