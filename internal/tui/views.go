package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crewboard/crewboard/internal/tracker"
)

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	rightWidth := max(34, width/3)
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
		rightWidth = 0
	}
	if a.state == stateProjects {
		a.projectMenu.SetSize(max(20, leftWidth-4), max(10, a.height-12))
	}

	var content string
	switch a.state {
	case stateProjects:
		content = a.projectMenu.View()
	case stateTasks:
		content = a.renderTaskPane(leftWidth - 4)
	case stateTeam:
		content = a.renderTeamPane(leftWidth - 4)
	case stateForm:
		content = a.renderForm()
	}
	return a.renderBoard(content, leftWidth, rightWidth)
}

func (a *App) renderBoard(mainContent string, leftWidth, rightWidth int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ CREWBOARD")
	leftBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, leftWidth)).
		Render(mainContent)
	var body string
	if rightWidth > 0 {
		rightBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(max(20, rightWidth)).
			Render(a.renderTeamSummary(rightWidth - 4))
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	} else {
		body = leftBox
	}
	sections := []string{header, body}
	if journalPanel := a.renderJournalPanel(); journalPanel != "" {
		sections = append(sections, journalPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

// renderTaskPane lists the selected project's tasks with a cursor.
func (a *App) renderTaskPane(width int) string {
	state := a.store.Snapshot()
	var project tracker.Project
	for _, candidate := range state.Projects {
		if candidate.ID == a.activeProjectID {
			project = candidate
			break
		}
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("%s · %d%% %s", project.Name, project.Progress, statusLabel(project.Status)))

	tasks := a.store.ProjectTasks(a.activeProjectID)
	if len(tasks) == 0 {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
			Render("No tasks yet. Press a to add one.")
		return lipgloss.JoinVertical(lipgloss.Left, title, note)
	}
	members := memberNames(state.Members)
	var rows []string
	for i, task := range tasks {
		mark := "[ ]"
		if task.Complete {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, task.Name)
		if who, ok := members[task.AssigneeID]; ok {
			line += fmt.Sprintf(" · %s", who)
		} else {
			line += " · unassigned"
		}
		style := lipgloss.NewStyle().Width(max(20, width))
		if i == a.taskSelection {
			style = style.Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
			line = "> " + line
		} else {
			line = "  " + line
		}
		rows = append(rows, style.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
}

// renderTeamPane is the full team screen with selection and edit hints.
func (a *App) renderTeamPane(width int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("Team Workload")
	views := a.store.TeamViews()
	if len(views) == 0 {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
			Render("No team members. Press a to add one.")
		return lipgloss.JoinVertical(lipgloss.Left, title, note)
	}
	var rows []string
	for i, view := range views {
		rows = append(rows, a.renderMemberRow(view, i, i == a.memberSelection, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
}

func (a *App) renderMemberRow(view tracker.MemberView, index int, selected bool, width int) string {
	line1 := fmt.Sprintf("%d. %s", index+1, view.Name)
	line2 := fmt.Sprintf("%s %d%% · %d/%d open · %s",
		capacityBar(view.CapacityPct),
		view.CapacityPct,
		view.OpenTasks,
		view.MaxCapacity,
		riskBadge(view.Risk),
	)
	if over := view.OverCapacity(); over > 0 {
		line2 += fmt.Sprintf(" · %d over", over)
	}
	content := line1 + "\n" + line2
	style := lipgloss.NewStyle().Width(max(20, width)).Padding(0, 0, 1, 0)
	if selected {
		style = style.Bold(true).Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	}
	return style.Render(content)
}

// renderTeamSummary is the compact always-visible right panel.
func (a *App) renderTeamSummary(width int) string {
	views := a.store.TeamViews()
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("Team (%d)", len(views)))
	if len(views) == 0 {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).
			Render("No members yet. Press t then a to hire.")
		return lipgloss.JoinVertical(lipgloss.Left, title, note)
	}
	var rows []string
	for i, view := range views {
		line := fmt.Sprintf("%d. %s · %d open · %s", i+1, view.Name, view.OpenTasks, riskBadge(view.Risk))
		rows = append(rows, lipgloss.NewStyle().Width(max(20, width)).Render(line))
	}
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		MarginTop(1).
		Render("t → team detail")
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), hint)
}

func (a *App) renderForm() string {
	if a.form == nil {
		return ""
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(a.form.title)
	var rows []string
	for i, field := range a.form.fields {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).
			Render(a.form.labels[i])
		rows = append(rows, label, field.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
}

func (a *App) renderJournalPanel() string {
	if a.journal == nil {
		return ""
	}
	lines := a.journal.Tail(a.journalTail)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.journal.Path())
	if fileName == "." || fileName == "" {
		fileName = "journal"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("ACTIVITY · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func memberNames(members []tracker.Member) map[string]string {
	names := make(map[string]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}
	return names
}

// capacityBar renders a ten-cell utilization bar for a clamped percentage.
func capacityBar(pct int) string {
	filled := pct / 10
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", 10-filled) + "]"
}

func statusLabel(status tracker.Status) string {
	switch status {
	case tracker.StatusCompleted:
		return "Completed"
	default:
		return "In Progress"
	}
}

func riskBadge(risk tracker.RiskTier) string {
	switch risk {
	case tracker.RiskCritical:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).Render("CRITICAL")
	case tracker.RiskElevated:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Render("Elevated")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Render("Normal")
	}
}
