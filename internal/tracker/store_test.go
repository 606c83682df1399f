package tracker

import (
	"errors"
	"strings"
	"testing"
)

func testState() State {
	return State{
		Projects: []Project{
			{ID: "p1", Name: "Alpha"},
			{ID: "p2", Name: "Beta"},
		},
		Tasks: []Task{
			{ID: "t1", ProjectID: "p1", Name: "one", AssigneeID: "m1"},
			{ID: "t2", ProjectID: "p1", Name: "two", Complete: true},
			{ID: "t3", ProjectID: "p2", Name: "three", AssigneeID: "m1"},
			{ID: "t4", ProjectID: "p2", Name: "four", AssigneeID: "m2"},
		},
		Members: []Member{
			{ID: "m1", Name: "Ines", MaxCapacity: 5},
			{ID: "m2", Name: "Dario", MaxCapacity: 4},
		},
	}
}

func projectByID(t *testing.T, state State, id string) Project {
	t.Helper()
	for _, p := range state.Projects {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("project %s not found", id)
	return Project{}
}

func TestAddProjectStartsEmpty(t *testing.T) {
	store := NewStore(State{})
	project := store.AddProject("  Gamma  ")
	if project.Name != "Gamma" {
		t.Fatalf("name = %q, want trimmed", project.Name)
	}
	if project.Progress != 0 || project.Status != StatusInProgress {
		t.Fatalf("new project = %+v, want progress 0 in progress", project)
	}
	if project.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestAddTaskRequiresProject(t *testing.T) {
	store := NewStore(testState())
	if _, ok := store.AddTask("missing", "task", ""); ok {
		t.Fatalf("expected add against unknown project to be refused")
	}
	task, ok := store.AddTask("p1", "five", "ghost")
	if !ok {
		t.Fatalf("expected add to succeed")
	}
	if task.AssigneeID != "" {
		t.Fatalf("assignee = %q, want unassigned for unknown member", task.AssigneeID)
	}
	if task.Complete {
		t.Fatalf("new task must start incomplete")
	}
}

func TestAddTaskRecalculatesProgress(t *testing.T) {
	store := NewStore(testState())
	store.SetTaskComplete("t1", true)
	if got := projectByID(t, store.Snapshot(), "p1").Progress; got != 100 {
		t.Fatalf("progress = %d, want 100", got)
	}
	store.AddTask("p1", "five", "")
	if got := projectByID(t, store.Snapshot(), "p1").Progress; got != 67 {
		t.Fatalf("progress = %d, want 67 after adding an open task", got)
	}
}

func TestSetTaskCompleteSweepsStatus(t *testing.T) {
	store := NewStore(testState())
	store.SetTaskComplete("t1", true)
	project := projectByID(t, store.Snapshot(), "p1")
	if project.Progress != 100 || project.Status != StatusCompleted {
		t.Fatalf("project = %+v, want 100/completed", project)
	}
	store.SetTaskComplete("t1", false)
	project = projectByID(t, store.Snapshot(), "p1")
	if project.Progress != 50 || project.Status != StatusInProgress {
		t.Fatalf("project = %+v, want 50/in progress", project)
	}
}

func TestOverrideSticksUntilNextTaskMutation(t *testing.T) {
	store := NewStore(testState())
	store.OverrideProjectProgress("p1", 85)
	if got := projectByID(t, store.Snapshot(), "p1").Progress; got != 85 {
		t.Fatalf("progress = %d, want override 85", got)
	}

	// A task toggle anywhere sweeps every project, reverting the override.
	store.SetTaskComplete("t3", true)
	if got := projectByID(t, store.Snapshot(), "p1").Progress; got != 50 {
		t.Fatalf("progress = %d, want task-derived 50 after unrelated toggle", got)
	}
}

func TestOverrideClampsAndDerivesStatus(t *testing.T) {
	store := NewStore(testState())
	store.OverrideProjectProgress("p1", 250)
	project := projectByID(t, store.Snapshot(), "p1")
	if project.Progress != 100 || project.Status != StatusCompleted {
		t.Fatalf("project = %+v, want clamped 100/completed", project)
	}
	store.OverrideProjectProgress("p1", -3)
	project = projectByID(t, store.Snapshot(), "p1")
	if project.Progress != 0 || project.Status != StatusInProgress {
		t.Fatalf("project = %+v, want clamped 0/in progress", project)
	}
}

func TestDeleteProjectCascadesToOwnTasksOnly(t *testing.T) {
	store := NewStore(testState())
	store.DeleteProject("p1")
	state := store.Snapshot()
	if len(state.Projects) != 1 || state.Projects[0].ID != "p2" {
		t.Fatalf("projects = %+v, want only p2", state.Projects)
	}
	for _, task := range state.Tasks {
		if task.ProjectID == "p1" {
			t.Fatalf("task %s still references deleted project", task.ID)
		}
	}
	if len(state.Tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2 survivors", len(state.Tasks))
	}
}

func TestDeleteMemberCascadesAcrossProjects(t *testing.T) {
	store := NewStore(testState())
	store.SetTaskComplete("t2", true)
	store.DeleteMember("m1")
	state := store.Snapshot()

	if len(state.Members) != 1 {
		t.Fatalf("len(members) = %d, want 1", len(state.Members))
	}
	for _, task := range state.Tasks {
		if task.AssigneeID == "m1" {
			t.Fatalf("task %s still assigned to deleted member", task.ID)
		}
	}
	// p1 loses t1 and keeps completed t2: 1/1 done. p2 loses t3 and keeps
	// open t4: 0/1 done. Both recomputed in the same operation.
	p1 := projectByID(t, state, "p1")
	if p1.Progress != 100 || p1.Status != StatusCompleted {
		t.Fatalf("p1 = %+v, want 100/completed after cascade", p1)
	}
	p2 := projectByID(t, state, "p2")
	if p2.Progress != 0 || p2.Status != StatusInProgress {
		t.Fatalf("p2 = %+v, want 0/in progress after cascade", p2)
	}
}

func TestDeleteUnknownIDsAreNoops(t *testing.T) {
	store := NewStore(testState())
	before := store.Snapshot()
	store.DeleteProject("missing")
	store.DeleteMember("missing")
	store.DeleteTask("missing")
	store.SetTaskComplete("missing", true)
	store.OverrideProjectProgress("missing", 50)
	store.UpdateMember("missing", "Ghost", 9)
	after := store.Snapshot()
	if len(after.Projects) != len(before.Projects) ||
		len(after.Tasks) != len(before.Tasks) ||
		len(after.Members) != len(before.Members) {
		t.Fatalf("no-op operations changed state: before %+v after %+v", before, after)
	}
}

func TestDeleteMemberEmptyIDKeepsUnassignedTasks(t *testing.T) {
	store := NewStore(testState())
	store.AddTask("p2", "five", "")
	before := store.Snapshot()
	store.DeleteMember("")
	after := store.Snapshot()
	if len(after.Tasks) != len(before.Tasks) {
		t.Fatalf("tasks = %d, want %d", len(after.Tasks), len(before.Tasks))
	}
	unassigned := 0
	for _, task := range after.Tasks {
		if task.AssigneeID == "" {
			unassigned++
		}
	}
	if unassigned != 2 {
		t.Fatalf("unassigned tasks = %d, want 2", unassigned)
	}
}

func TestMemberCapacityRules(t *testing.T) {
	store := NewStore(State{})
	if got := store.AddMember("Ana", 0).MaxCapacity; got != 5 {
		t.Fatalf("unspecified capacity = %d, want default 5", got)
	}
	member := store.AddMember("Bo", -2)
	if member.MaxCapacity != 1 {
		t.Fatalf("capacity = %d, want floor 1", member.MaxCapacity)
	}
	store.UpdateMember(member.ID, "  Bo Chen  ", -1)
	state := store.Snapshot()
	for _, m := range state.Members {
		if m.ID != member.ID {
			continue
		}
		if m.Name != "Bo Chen" {
			t.Fatalf("name = %q, want trimmed", m.Name)
		}
		if m.MaxCapacity != 1 {
			t.Fatalf("capacity = %d, want floor 1 on update", m.MaxCapacity)
		}
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	store := NewStore(testState())
	snapshot := store.Snapshot()
	snapshot.Projects[0].Name = "mutated"
	snapshot.Tasks[0].Complete = true
	if store.Snapshot().Projects[0].Name == "mutated" {
		t.Fatalf("snapshot mutation leaked into store")
	}
	if store.Snapshot().Tasks[0].Complete {
		t.Fatalf("task mutation leaked into store")
	}
}

type captureJournal struct {
	lines []string
}

func (c *captureJournal) Info(format string, args ...any) {
	c.lines = append(c.lines, "INFO")
}

func (c *captureJournal) Warn(format string, args ...any) {
	c.lines = append(c.lines, "WARN")
}

func TestPersistFailureDoesNotRollBack(t *testing.T) {
	journal := &captureJournal{}
	store := NewStore(testState(),
		WithJournal(journal),
		WithPersist(func(State) error { return errors.New("disk full") }),
	)
	store.SetTaskComplete("t1", true)
	if got := projectByID(t, store.Snapshot(), "p1").Status; got != StatusCompleted {
		t.Fatalf("mutation must commit in memory despite persist failure, status = %s", got)
	}
	if !contains(journal.lines, "WARN") {
		t.Fatalf("persist failure should be recorded, got %v", journal.lines)
	}
}

func TestPersistReceivesCommittedSnapshot(t *testing.T) {
	var saved []State
	store := NewStore(testState(), WithPersist(func(state State) error {
		saved = append(saved, state)
		return nil
	}))
	store.SetTaskComplete("t1", true)
	if len(saved) != 1 {
		t.Fatalf("persist called %d times, want 1", len(saved))
	}
	if got := projectByID(t, saved[0], "p1").Progress; got != 100 {
		t.Fatalf("persisted progress = %d, want post-mutation 100", got)
	}
}

func contains(lines []string, want string) bool {
	for _, line := range lines {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}
