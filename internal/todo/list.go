// Package todo holds the task list state and its transitions
//
// Tasks are addressed by position from the outside, as a user picks a row,
// but an edit session remembers the task by a generated ID so that deleting
// rows never redirects an in-progress edit to a different task
package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned when an index does not address a task
var ErrIndexOutOfRange = errors.New("task index out of range")

// Task is a single to-do entry
type Task struct {
	ID   string
	Text string
}

// Saver persists the full task list
type Saver interface {
	Save(tasks []string) error
}

// Mode is either Adding or Editing
type Mode interface {
	isMode()
}

// Adding is the default mode: the input holds the draft of a new task
type Adding struct {
	Draft string
}

// Editing means the input holds the working value for an existing task
type Editing struct {
	TaskID string
	Value  string

	draft string // draft to restore once the edit ends
}

func (Adding) isMode()  {}
func (Editing) isMode() {}

// List is the task list plus the transient input state
type List struct {
	tasks []Task
	mode  Mode
	saver Saver
	newID func() string
}

// Option configures a List
type Option func(*List)

// WithIDGenerator replaces the uuid generator used for task IDs
func WithIDGenerator(gen func() string) Option {
	return func(l *List) {
		l.newID = gen
	}
}

// New builds a list from previously stored task texts
func New(saver Saver, texts []string, opts ...Option) *List {
	l := &List{
		mode:  Adding{},
		saver: saver,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.tasks = make([]Task, 0, len(texts))
	for _, text := range texts {
		l.tasks = append(l.tasks, Task{ID: l.newID(), Text: text})
	}
	return l
}

// Tasks returns a copy of the tasks in insertion order
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Texts returns the task texts in insertion order
func (l *List) Texts() []string {
	out := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = t.Text
	}
	return out
}

// Len returns the number of tasks
func (l *List) Len() int {
	return len(l.tasks)
}

// Mode returns the current mode
func (l *List) Mode() Mode {
	return l.mode
}

// Editing reports whether an edit session is active
func (l *List) Editing() bool {
	_, ok := l.mode.(Editing)
	return ok
}

// EditIndex returns the position of the task being edited, or -1
func (l *List) EditIndex() int {
	e, ok := l.mode.(Editing)
	if !ok {
		return -1
	}
	return l.indexOf(e.TaskID)
}

// InputValue is what the single input field shows: the draft or the edit value
func (l *List) InputValue() string {
	switch m := l.mode.(type) {
	case Editing:
		return m.Value
	case Adding:
		return m.Draft
	}
	return ""
}

// UpdateDraft overwrites the draft
// While editing, the draft is kept for later
func (l *List) UpdateDraft(text string) {
	switch m := l.mode.(type) {
	case Adding:
		m.Draft = text
		l.mode = m
	case Editing:
		m.draft = text
		l.mode = m
	}
}

// UpdateEditValue overwrites the working value of the active edit
// Outside edit mode it does nothing
func (l *List) UpdateEditValue(text string) {
	if m, ok := l.mode.(Editing); ok {
		m.Value = text
		l.mode = m
	}
}

// SetInput routes text to the draft or the edit value depending on mode
func (l *List) SetInput(text string) {
	if l.Editing() {
		l.UpdateEditValue(text)
		return
	}
	l.UpdateDraft(text)
}

// Submit adds the draft as a new task or applies the active edit
//
// When adding, the draft is trimmed and a blank draft is ignored
// When editing, the value replaces the task text exactly as typed
// changed reports whether the task list was modified
func (l *List) Submit() (changed bool, err error) {
	switch m := l.mode.(type) {
	case Adding:
		text := strings.TrimSpace(m.Draft)
		if text == "" {
			return false, nil
		}
		l.tasks = append(l.tasks, Task{ID: l.newID(), Text: text})
		l.mode = Adding{}
		return true, l.save()

	case Editing:
		l.mode = Adding{Draft: m.draft}
		i := l.indexOf(m.TaskID)
		if i < 0 {
			return false, nil
		}
		l.tasks[i].Text = m.Value
		return true, l.save()
	}
	return false, nil
}

// BeginEdit starts editing the task at index, discarding any other edit
func (l *List) BeginEdit(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	draft := ""
	switch m := l.mode.(type) {
	case Adding:
		draft = m.Draft
	case Editing:
		draft = m.draft
	}
	t := l.tasks[index]
	l.mode = Editing{TaskID: t.ID, Value: t.Text, draft: draft}
	return nil
}

// CancelEdit leaves edit mode without touching the task list
func (l *List) CancelEdit() {
	if m, ok := l.mode.(Editing); ok {
		l.mode = Adding{Draft: m.draft}
	}
}

// Delete removes the task at index
// Deleting the task being edited cancels the edit
func (l *List) Delete(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if m, ok := l.mode.(Editing); ok && m.TaskID == l.tasks[index].ID {
		l.CancelEdit()
	}
	l.tasks = append(l.tasks[:index:index], l.tasks[index+1:]...)
	return l.save()
}

func (l *List) checkIndex(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l.tasks))
	}
	return nil
}

func (l *List) indexOf(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) save() error {
	if l.saver == nil {
		return nil
	}
	return l.saver.Save(l.Texts())
}
