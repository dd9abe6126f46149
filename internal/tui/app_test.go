package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pdxmph/todo-tui/internal/logging"
	"github.com/pdxmph/todo-tui/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, tasks ...string) (Model, *storage.TaskStore) {
	t.Helper()
	logger := logging.Discard().Logger
	store := storage.NewTaskStore(storage.NewMemoryBackend(), storage.DefaultKey, logger)
	if len(tasks) > 0 {
		require.NoError(t, store.Save(tasks))
	}
	return New(store, logger), store
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	esc    = tea.KeyMsg{Type: tea.KeyEsc}
	up     = tea.KeyMsg{Type: tea.KeyUp}
	down   = tea.KeyMsg{Type: tea.KeyDown}
	ctrlE  = tea.KeyMsg{Type: tea.KeyCtrlE}
	ctrlD  = tea.KeyMsg{Type: tea.KeyCtrlD}
	ctrlC  = tea.KeyMsg{Type: tea.KeyCtrlC}
	sizeUp = tea.WindowSizeMsg{Width: 80, Height: 24}
)

func TestNewLoadsStoredTasks(t *testing.T) {
	m, _ := newTestModel(t, "A", "B")
	assert.Equal(t, []string{"A", "B"}, m.List().Texts())
	assert.Contains(t, m.View(), "My To-Do List")
	assert.Contains(t, m.View(), "Add Task")
}

func TestTypingAndSubmitAddsTask(t *testing.T) {
	m, store := newTestModel(t)

	m = send(m, sizeUp, typeText("  Buy milk  "), enter)

	assert.Equal(t, []string{"Buy milk"}, m.List().Texts())
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, []string{"Buy milk"}, store.Load())
	assert.Contains(t, m.View(), "Buy milk")
}

func TestSubmitBlankDoesNothing(t *testing.T) {
	m, store := newTestModel(t, "A")

	m = send(m, typeText("   "), enter)

	assert.Equal(t, []string{"A"}, m.List().Texts())
	assert.Equal(t, []string{"A"}, store.Load())
}

func TestEditFlow(t *testing.T) {
	m, store := newTestModel(t, "A", "B", "C")

	m = send(m, down, ctrlE)
	require.True(t, m.List().Editing())
	assert.Equal(t, "B", m.input.Value())
	assert.Contains(t, m.View(), "Update Task")
	assert.Contains(t, m.View(), "Cancel")

	m = send(m, typeText("2"), enter)

	assert.False(t, m.List().Editing())
	assert.Equal(t, []string{"A", "B2", "C"}, store.Load())
	assert.NotContains(t, m.View(), "Update Task")
}

func TestEscCancelsEdit(t *testing.T) {
	m, store := newTestModel(t, "A")
	m = send(m, typeText("draft"), ctrlE, typeText("!!"), esc)

	assert.False(t, m.List().Editing())
	assert.Equal(t, "draft", m.input.Value())
	assert.Equal(t, []string{"A"}, store.Load())
	assert.NotContains(t, m.View(), "Cancel")

	// a second esc changes nothing
	m = send(m, esc)
	assert.Equal(t, "draft", m.input.Value())
}

func TestDeleteClampsSelection(t *testing.T) {
	m, store := newTestModel(t, "A", "B", "C")

	m = send(m, down, down, down, ctrlD)
	assert.Equal(t, []string{"A", "B"}, store.Load())
	assert.Equal(t, 1, m.selected)

	m = send(m, up, ctrlD)
	assert.Equal(t, []string{"B"}, store.Load())
	assert.Equal(t, 0, m.selected)

	m = send(m, ctrlD, ctrlD, ctrlE)
	assert.Empty(t, store.Load())
	assert.False(t, m.List().Editing())
	assert.Contains(t, m.View(), "No tasks yet")
}

func TestDeleteEditedRowCancelsEdit(t *testing.T) {
	m, _ := newTestModel(t, "A", "B")

	m = send(m, ctrlE, ctrlD)

	assert.False(t, m.List().Editing())
	assert.Equal(t, []string{"B"}, m.List().Texts())
	assert.Equal(t, "", m.input.Value())
}

func TestAddSelectsNewTask(t *testing.T) {
	m, _ := newTestModel(t, "A")
	m = send(m, typeText("B"), enter)
	assert.Equal(t, 1, m.selected)
}

type brokenStore struct{}

func (brokenStore) Load() []string { return nil }
func (brokenStore) Save([]string) error { return errors.New("read-only") }

func TestSaveErrorIsShown(t *testing.T) {
	m := New(brokenStore{}, logging.Discard().Logger)

	m = send(m, typeText("A"), enter)

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "read-only")
	assert.Equal(t, []string{"A"}, m.List().Texts())

	m = send(m, esc)
	assert.NoError(t, m.err)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(ctrlC)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
