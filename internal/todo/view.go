package todo

// Labels shown by the render layer
const (
	Placeholder       = "Add or edit a task"
	AddLabel          = "Add Task"
	UpdateLabel       = "Update Task"
	CancelLabel       = "Cancel"
	EditActionLabel   = "Edit"
	DeleteActionLabel = "Delete"
)

// Row is one rendered task
type Row struct {
	Index   int
	ID      string
	Text    string
	Editing bool
}

// View is everything a front end needs to draw the list
type View struct {
	Input       string
	Placeholder string
	SubmitLabel string
	ShowCancel  bool
	Rows        []Row
}

// Render maps the list state to a View
// It has no side effects
func Render(l *List) View {
	v := View{
		Input:       l.InputValue(),
		Placeholder: Placeholder,
		SubmitLabel: AddLabel,
		Rows:        make([]Row, len(l.tasks)),
	}

	editID := ""
	if m, ok := l.mode.(Editing); ok {
		v.SubmitLabel = UpdateLabel
		v.ShowCancel = true
		editID = m.TaskID
	}

	for i, t := range l.tasks {
		v.Rows[i] = Row{Index: i, ID: t.ID, Text: t.Text, Editing: t.ID == editID}
	}
	return v
}
