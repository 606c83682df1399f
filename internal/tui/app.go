// internal/tui/app.go
//
// This is the main TUI for crewboard. It uses bubbletea, which follows
// The Elm Architecture: the App model holds all state, Update reacts to
// messages, and View renders the model to a string.
//
// The TUI is a thin shell: every key press turns into a Store call, and
// the panes re-read snapshots afterwards. All derivation lives in the
// tracker package.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/crewboard/crewboard/internal/journal"
	"github.com/crewboard/crewboard/internal/tracker"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateProjects appState = iota // Project board with the team panel
	stateTasks                    // Tasks of the selected project
	stateTeam                     // Team workload detail
	stateForm                     // Text-input form over the previous screen
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithJournalTail overrides how many journal lines the activity panel shows.
func WithJournalTail(lines int) AppOption {
	return func(a *App) {
		if lines > 0 {
			a.journalTail = lines
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL state.
type App struct {
	state   appState
	store   *tracker.Store
	journal *journal.Journal

	// UI components
	projectMenu list.Model
	statusMsg   string
	form        *form
	formReturn  appState

	// Current selections
	activeProjectID string
	taskSelection   int
	memberSelection int

	journalTail int

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// projectItem implements list.Item for the project menu.
type projectItem struct {
	project   tracker.Project
	taskCount int
}

func (i projectItem) Title() string { return i.project.Name }

func (i projectItem) Description() string {
	return fmt.Sprintf("%d%% · %s · %d task(s)",
		i.project.Progress, statusLabel(i.project.Status), i.taskCount)
}

func (i projectItem) FilterValue() string { return i.project.Name }

// NewApp creates a new App instance around an already-loaded store.
func NewApp(store *tracker.Store, jrnl *journal.Journal, opts ...AppOption) *App {
	projectMenu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	projectMenu.Title = "⬡ PROJECTS"
	projectMenu.SetShowStatusBar(false)
	projectMenu.SetFilteringEnabled(false)

	app := &App{
		state:       stateProjects,
		store:       store,
		journal:     jrnl,
		projectMenu: projectMenu,
		journalTail: 6,
		statusMsg:   "Enter → open tasks    a add    o override    d delete    t team    q quit",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.refreshProjectMenu()
	return app
}

// refreshProjectMenu rebuilds the project list from a fresh snapshot.
func (a *App) refreshProjectMenu() {
	state := a.store.Snapshot()
	items := make([]list.Item, 0, len(state.Projects))
	selected := a.projectMenu.Index()
	for _, project := range state.Projects {
		items = append(items, projectItem{
			project:   project,
			taskCount: len(a.store.ProjectTasks(project.ID)),
		})
	}
	a.projectMenu.SetItems(items)
	if selected >= len(items) && len(items) > 0 {
		selected = len(items) - 1
	}
	if selected >= 0 && selected < len(items) {
		a.projectMenu.Select(selected)
	}
}

func (a *App) selectedProject() (tracker.Project, bool) {
	item, ok := a.projectMenu.SelectedItem().(projectItem)
	if !ok {
		return tracker.Project{}, false
	}
	return item.project, true
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.projectMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case tea.KeyMsg:
		if a.state == stateForm {
			return a.updateForm(msg)
		}
		key := msg.String()
		switch key {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateProjects {
				return a, tea.Quit
			}
		case "esc":
			if a.state != stateProjects {
				return a.returnToProjects()
			}
		}
		switch a.state {
		case stateProjects:
			if model, cmd, handled := a.updateProjects(key); handled {
				return model, cmd
			}
		case stateTasks:
			return a.updateTasks(key)
		case stateTeam:
			return a.updateTeam(key)
		}
	}

	// Non-key messages still need a home: the focused form input owns
	// its own cursor blink, and the project menu drives pagination.
	if a.state == stateForm && a.form != nil {
		var fieldCmd tea.Cmd
		a.form.fields[a.form.focus], fieldCmd = a.form.fields[a.form.focus].Update(msg)
		return a, fieldCmd
	}
	if a.state == stateProjects {
		var menuCmd tea.Cmd
		a.projectMenu, menuCmd = a.projectMenu.Update(msg)
		return a, menuCmd
	}
	return a, nil
}

// updateProjects handles keys on the project board. The bool reports
// whether the key was consumed; unconsumed keys fall through to the menu.
func (a *App) updateProjects(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "enter":
		project, ok := a.selectedProject()
		if !ok {
			a.statusMsg = "No project selected"
			return a, nil, true
		}
		a.activeProjectID = project.ID
		a.taskSelection = 0
		a.state = stateTasks
		a.statusMsg = "Space toggle    a add task    d delete task    Esc back"
		return a, nil, true
	case "a":
		model, cmd := a.startForm(formAddProject)
		return model, cmd, true
	case "o":
		if _, ok := a.selectedProject(); !ok {
			a.statusMsg = "No project selected"
			return a, nil, true
		}
		model, cmd := a.startForm(formOverrideProgress)
		return model, cmd, true
	case "d":
		project, ok := a.selectedProject()
		if !ok {
			a.statusMsg = "No project selected"
			return a, nil, true
		}
		a.store.DeleteProject(project.ID)
		a.refreshProjectMenu()
		a.statusMsg = fmt.Sprintf("Deleted %s and its tasks", project.Name)
		return a, nil, true
	case "t":
		a.state = stateTeam
		a.memberSelection = 0
		a.statusMsg = "a add member    e edit    d delete    Esc back"
		return a, nil, true
	}
	return a, nil, false
}

// updateTasks handles keys on the task pane.
func (a *App) updateTasks(key string) (tea.Model, tea.Cmd) {
	tasks := a.store.ProjectTasks(a.activeProjectID)
	switch key {
	case "up", "k":
		if a.taskSelection > 0 {
			a.taskSelection--
		}
	case "down", "j":
		if a.taskSelection < len(tasks)-1 {
			a.taskSelection++
		}
	case " ", "enter":
		if a.taskSelection < len(tasks) {
			task := tasks[a.taskSelection]
			a.store.SetTaskComplete(task.ID, !task.Complete)
			a.refreshProjectMenu()
			a.statusMsg = fmt.Sprintf("Toggled %s", task.Name)
		}
	case "a":
		return a.startForm(formAddTask)
	case "d":
		if a.taskSelection < len(tasks) {
			task := tasks[a.taskSelection]
			a.store.DeleteTask(task.ID)
			a.refreshProjectMenu()
			if a.taskSelection > 0 {
				a.taskSelection--
			}
			a.statusMsg = fmt.Sprintf("Deleted %s", task.Name)
		}
	}
	return a, nil
}

// updateTeam handles keys on the team pane.
func (a *App) updateTeam(key string) (tea.Model, tea.Cmd) {
	views := a.store.TeamViews()
	switch key {
	case "up", "k":
		if a.memberSelection > 0 {
			a.memberSelection--
		}
	case "down", "j":
		if a.memberSelection < len(views)-1 {
			a.memberSelection++
		}
	case "a":
		return a.startForm(formAddMember)
	case "e":
		if a.memberSelection < len(views) {
			return a.startForm(formEditMember)
		}
	case "d":
		if a.memberSelection < len(views) {
			member := views[a.memberSelection].Member
			a.store.DeleteMember(member.ID)
			a.refreshProjectMenu()
			if a.memberSelection > 0 {
				a.memberSelection--
			}
			a.statusMsg = fmt.Sprintf("Deleted %s and their tasks", member.Name)
		}
	}
	return a, nil
}

func (a *App) selectedMember() (tracker.Member, bool) {
	views := a.store.TeamViews()
	if a.memberSelection < 0 || a.memberSelection >= len(views) {
		return tracker.Member{}, false
	}
	return views[a.memberSelection].Member, true
}

// returnToProjects transitions back to the project board.
func (a *App) returnToProjects() (tea.Model, tea.Cmd) {
	a.state = stateProjects
	a.form = nil
	a.refreshProjectMenu()
	a.statusMsg = "Enter → open tasks    a add    o override    d delete    t team    q quit"
	return a, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
