package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formKind selects which intent a submitted form turns into.
type formKind int

const (
	formAddProject formKind = iota
	formAddTask
	formAddMember
	formEditMember
	formOverrideProgress
)

// form is a small stack of text inputs rendered over the current screen.
// Tab moves between fields, Enter submits, Esc cancels.
type form struct {
	kind   formKind
	title  string
	fields []textinput.Model
	labels []string
	focus  int
}

func newFormField(placeholder, value string) textinput.Model {
	field := textinput.New()
	field.Placeholder = placeholder
	field.CharLimit = 64
	field.SetValue(value)
	return field
}

// startForm opens the form for the given intent, pre-filling edit forms
// from the current selection.
func (a *App) startForm(kind formKind) (tea.Model, tea.Cmd) {
	f := &form{kind: kind}
	switch kind {
	case formAddProject:
		f.title = "Add Project"
		f.labels = []string{"Name"}
		f.fields = []textinput.Model{newFormField("project name", "")}
	case formAddTask:
		f.title = "Add Task"
		f.labels = []string{"Name", "Assignee #"}
		f.fields = []textinput.Model{
			newFormField("task name", ""),
			newFormField("member number, blank = unassigned", ""),
		}
	case formAddMember:
		f.title = "Add Member"
		f.labels = []string{"Name", "Capacity"}
		f.fields = []textinput.Model{
			newFormField("member name", ""),
			newFormField("blank = default 5", ""),
		}
	case formEditMember:
		member, ok := a.selectedMember()
		if !ok {
			return a, nil
		}
		f.title = fmt.Sprintf("Edit %s", member.Name)
		f.labels = []string{"Name", "Capacity"}
		f.fields = []textinput.Model{
			newFormField("member name", member.Name),
			newFormField("capacity", strconv.Itoa(member.MaxCapacity)),
		}
	case formOverrideProgress:
		project, ok := a.selectedProject()
		if !ok {
			return a, nil
		}
		f.title = fmt.Sprintf("Override progress for %s", project.Name)
		f.labels = []string{"Progress %"}
		f.fields = []textinput.Model{newFormField("0-100", strconv.Itoa(project.Progress))}
	}
	cmd := f.fields[0].Focus()
	a.form = f
	a.formReturn = a.state
	a.state = stateForm
	a.statusMsg = "Enter → submit    Tab → next field    Esc → cancel"
	return a, cmd
}

// updateForm routes keys while a form is open.
func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a.returnToProjects()
	}
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.state = a.formReturn
		a.form = nil
		a.statusMsg = "Cancelled"
		return a, nil
	case "tab", "shift+tab", "down", "up":
		if len(a.form.fields) > 1 {
			a.form.fields[a.form.focus].Blur()
			if msg.String() == "shift+tab" || msg.String() == "up" {
				a.form.focus = (a.form.focus + len(a.form.fields) - 1) % len(a.form.fields)
			} else {
				a.form.focus = (a.form.focus + 1) % len(a.form.fields)
			}
			return a, a.form.fields[a.form.focus].Focus()
		}
	case "enter":
		return a.submitForm()
	}
	var cmd tea.Cmd
	a.form.fields[a.form.focus], cmd = a.form.fields[a.form.focus].Update(msg)
	return a, cmd
}

// submitForm turns the form values into a store intent. Numeric fields
// are never rejected: malformed input falls back to the clamp rules.
func (a *App) submitForm() (tea.Model, tea.Cmd) {
	f := a.form
	a.state = a.formReturn
	a.form = nil

	switch f.kind {
	case formAddProject:
		name := strings.TrimSpace(f.fields[0].Value())
		if name == "" {
			a.statusMsg = "Project name is required"
			return a, nil
		}
		project := a.store.AddProject(name)
		a.refreshProjectMenu()
		a.statusMsg = fmt.Sprintf("Added %s", project.Name)

	case formAddTask:
		name := strings.TrimSpace(f.fields[0].Value())
		if name == "" {
			a.statusMsg = "Task name is required"
			return a, nil
		}
		assigneeID := a.memberIDFromInput(f.fields[1].Value())
		task, ok := a.store.AddTask(a.activeProjectID, name, assigneeID)
		if !ok {
			a.statusMsg = "Project no longer exists"
			return a, nil
		}
		a.refreshProjectMenu()
		a.statusMsg = fmt.Sprintf("Added %s", task.Name)

	case formAddMember:
		name := strings.TrimSpace(f.fields[0].Value())
		if name == "" {
			a.statusMsg = "Member name is required"
			return a, nil
		}
		member := a.store.AddMember(name, parseCapacity(f.fields[1].Value(), 0))
		a.statusMsg = fmt.Sprintf("Added %s (capacity %d)", member.Name, member.MaxCapacity)

	case formEditMember:
		member, ok := a.selectedMember()
		if !ok {
			a.statusMsg = "Member no longer exists"
			return a, nil
		}
		a.store.UpdateMember(member.ID, f.fields[0].Value(), parseCapacity(f.fields[1].Value(), 1))
		a.refreshProjectMenu()
		a.statusMsg = fmt.Sprintf("Updated %s", strings.TrimSpace(f.fields[0].Value()))

	case formOverrideProgress:
		project, ok := a.selectedProject()
		if !ok {
			a.statusMsg = "Project no longer exists"
			return a, nil
		}
		value, err := strconv.Atoi(strings.TrimSpace(f.fields[0].Value()))
		if err != nil {
			value = 0
		}
		a.store.OverrideProjectProgress(project.ID, value)
		a.refreshProjectMenu()
		a.statusMsg = fmt.Sprintf("Progress for %s set manually (reverts on next task change)", project.Name)
	}
	return a, nil
}

// parseCapacity parses a capacity field. A blank value yields the given
// fallback (0 means "use the creation default"); anything unparseable
// falls back to 1 rather than being rejected.
func parseCapacity(value string, blank int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return blank
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 1
	}
	return parsed
}

// memberIDFromInput resolves a 1-based member number from the team panel
// into a member id. Anything that doesn't resolve means unassigned.
func (a *App) memberIDFromInput(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	index, err := strconv.Atoi(trimmed)
	if err != nil {
		return ""
	}
	views := a.store.TeamViews()
	if index < 1 || index > len(views) {
		return ""
	}
	return views[index-1].ID
}
