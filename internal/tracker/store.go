package tracker

import (
	"strings"

	"github.com/google/uuid"
)

const defaultMemberCapacity = 5

// Recorder receives a line for each committed mutation. *journal.Journal
// satisfies it; a nil Recorder disables recording.
type Recorder interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// PersistFunc receives a snapshot of the committed state after every
// mutation. Its error is recorded and otherwise ignored: the in-memory
// state stays authoritative even when the durable copy cannot be written.
type PersistFunc func(State) error

// Store is the single writer of the board state. Every mutating operation
// runs to completion (mutation, cascade, recompute, persist) before the
// next one may observe state, and every operation is total: unknown ids
// are no-ops and malformed numeric input is clamped, never rejected.
type Store struct {
	state   State
	journal Recorder
	persist PersistFunc
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithJournal attaches a mutation recorder.
func WithJournal(journal Recorder) StoreOption {
	return func(s *Store) {
		s.journal = journal
	}
}

// WithPersist attaches the snapshot sink fired after each mutation.
func WithPersist(persist PersistFunc) StoreOption {
	return func(s *Store) {
		s.persist = persist
	}
}

// NewStore builds a store owning a deep copy of the initial state.
func NewStore(initial State, opts ...StoreOption) *Store {
	store := &Store{state: initial.Clone()}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Snapshot returns a deep copy of the committed state.
func (s *Store) Snapshot() State {
	return s.state.Clone()
}

// ProjectTasks returns the tasks owned by one project.
func (s *Store) ProjectTasks(projectID string) []Task {
	var out []Task
	for _, task := range s.state.Tasks {
		if task.ProjectID == projectID {
			out = append(out, task)
		}
	}
	return out
}

// TeamViews derives the workload view for every member. The result is
// recomputed on each call; nothing is cached across mutations.
func (s *Store) TeamViews() []MemberView {
	return Analyze(s.state.Members, s.state.Tasks)
}

// AddProject inserts a new project with derived defaults.
func (s *Store) AddProject(name string) Project {
	project := Project{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Progress: 0,
		Status:   StatusInProgress,
	}
	s.state.Projects = append(s.state.Projects, project)
	s.record("project %q added", project.Name)
	s.commit()
	return project
}

// AddTask inserts a task under an existing project. The bool is false when
// the project does not exist, in which case state is unchanged. An
// assignee that does not resolve to a member is stored as unassigned.
func (s *Store) AddTask(projectID, name, assigneeID string) (Task, bool) {
	if _, ok := s.findProject(projectID); !ok {
		return Task{}, false
	}
	if _, ok := s.findMember(assigneeID); !ok {
		assigneeID = ""
	}
	task := Task{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		Name:       strings.TrimSpace(name),
		Complete:   false,
		AssigneeID: assigneeID,
	}
	s.state.Tasks = append(s.state.Tasks, task)
	s.recalculate()
	s.record("task %q added", task.Name)
	s.commit()
	return task, true
}

// AddMember inserts a team member. A zero capacity means "unspecified" and
// takes the default; anything below one is floored to one.
func (s *Store) AddMember(name string, capacity int) Member {
	member := Member{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		MaxCapacity: clampCapacity(capacity),
	}
	s.state.Members = append(s.state.Members, member)
	s.record("member %q added (capacity %d)", member.Name, member.MaxCapacity)
	s.commit()
	return member
}

// SetTaskComplete toggles a task's completion flag and re-derives every
// project's progress from the new task set. Unknown ids are no-ops.
func (s *Store) SetTaskComplete(taskID string, complete bool) {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != taskID {
			continue
		}
		s.state.Tasks[i].Complete = complete
		s.recalculate()
		s.record("task %q complete=%t", s.state.Tasks[i].Name, complete)
		s.commit()
		return
	}
}

// OverrideProjectProgress sets a project's progress directly from a
// user-supplied value, clamped to 0-100, and derives status from it. The
// recompute sweep is deliberately skipped: the override sticks until the
// next task mutation, which will overwrite it for every project.
func (s *Store) OverrideProjectProgress(projectID string, progress int) {
	for i := range s.state.Projects {
		if s.state.Projects[i].ID != projectID {
			continue
		}
		value := clampProgress(progress)
		s.state.Projects[i].Progress = value
		s.state.Projects[i].Status = statusFor(value)
		s.record("project %q progress overridden to %d", s.state.Projects[i].Name, value)
		s.commit()
		return
	}
}

// UpdateMember edits a member's name and capacity. The name is trimmed and
// the capacity clamped; an unknown id is a no-op.
func (s *Store) UpdateMember(memberID, name string, capacity int) {
	for i := range s.state.Members {
		if s.state.Members[i].ID != memberID {
			continue
		}
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.state.Members[i].Name = trimmed
		}
		s.state.Members[i].MaxCapacity = floorCapacity(capacity)
		s.record("member %q updated (capacity %d)", s.state.Members[i].Name, s.state.Members[i].MaxCapacity)
		s.commit()
		return
	}
}

// DeleteProject removes a project and cascades to every task it owns,
// then re-derives the remaining projects. Deleting an unknown id leaves
// state unchanged apart from an always-safe recompute.
func (s *Store) DeleteProject(projectID string) {
	name, existed := s.removeProject(projectID)
	if existed {
		removed := s.removeTasks(func(t Task) bool { return t.ProjectID == projectID })
		s.record("project %q deleted (%d tasks removed)", name, removed)
	}
	s.recalculate()
	s.commit()
}

// DeleteTask removes a single task and re-derives project progress.
func (s *Store) DeleteTask(taskID string) {
	var name string
	removed := s.removeTasks(func(t Task) bool {
		if t.ID == taskID {
			name = t.Name
			return true
		}
		return false
	})
	s.recalculate()
	if removed > 0 {
		s.record("task %q deleted", name)
	}
	s.commit()
}

// DeleteMember removes a member and cascades to every task assigned to
// them, across all projects. The tasks are removed outright rather than
// unassigned, so every project is re-derived against the reduced set.
// The cascade only runs when the member actually existed: an empty or
// unknown id must not match the empty AssigneeID that marks a task as
// unassigned.
func (s *Store) DeleteMember(memberID string) {
	name, existed := s.removeMember(memberID)
	if existed {
		removed := s.removeTasks(func(t Task) bool { return t.AssigneeID == memberID })
		s.record("member %q deleted (%d tasks removed)", name, removed)
	}
	s.recalculate()
	s.commit()
}

func (s *Store) recalculate() {
	s.state.Projects = Recalculate(s.state.Projects, s.state.Tasks)
}

func (s *Store) findProject(id string) (Project, bool) {
	for _, p := range s.state.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

func (s *Store) findMember(id string) (Member, bool) {
	if id == "" {
		return Member{}, false
	}
	for _, m := range s.state.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

func (s *Store) removeProject(id string) (string, bool) {
	for i, p := range s.state.Projects {
		if p.ID == id {
			s.state.Projects = append(s.state.Projects[:i], s.state.Projects[i+1:]...)
			return p.Name, true
		}
	}
	return "", false
}

func (s *Store) removeMember(id string) (string, bool) {
	for i, m := range s.state.Members {
		if m.ID == id {
			s.state.Members = append(s.state.Members[:i], s.state.Members[i+1:]...)
			return m.Name, true
		}
	}
	return "", false
}

func (s *Store) removeTasks(match func(Task) bool) int {
	kept := s.state.Tasks[:0]
	removed := 0
	for _, task := range s.state.Tasks {
		if match(task) {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	s.state.Tasks = kept
	return removed
}

func (s *Store) record(format string, args ...any) {
	if s.journal == nil {
		return
	}
	s.journal.Info(format, args...)
}

// commit fires the persistence hook with a snapshot of the new state.
// A write failure is recorded and swallowed: persistence is best effort
// and never rolls back the in-memory mutation.
func (s *Store) commit() {
	if s.persist == nil {
		return
	}
	if err := s.persist(s.state.Clone()); err != nil && s.journal != nil {
		s.journal.Warn("persist snapshot: %v", err)
	}
}

// clampCapacity applies creation-time rules: zero means "unspecified" and
// takes the default, anything else is floored to one.
func clampCapacity(capacity int) int {
	if capacity == 0 {
		return defaultMemberCapacity
	}
	return floorCapacity(capacity)
}

// floorCapacity enforces the minimum of one on every capacity write.
func floorCapacity(capacity int) int {
	if capacity < 1 {
		return 1
	}
	return capacity
}
